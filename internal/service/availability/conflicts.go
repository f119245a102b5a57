package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Overlaps пересекаются ли полуинтервалы [aStart, aEnd) и [bStart, bEnd)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// isFree true, если ни одна запись журнала не пересекает [start, end)
func isFree(entries []domain.LedgerEntry, start, end time.Time) bool {
	for _, e := range entries {
		if Overlaps(start, end, e.StartAt, e.EndAt) {
			return false
		}
	}
	return true
}
