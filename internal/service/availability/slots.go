package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// GenerateSlots возвращает все минуты начала t (от полуночи, по возрастанию), для которых
// [t, t+duration) лежит внутри рабочих часов и не пересекает перерыв.
// Касание границы перерыва допускается. Шаг кандидатов - granularity;
// granularity <= 0 означает шаг, равный длительности.
func GenerateSlots(window domain.WorkingWindow, durationMinutes, granularityMinutes int) []int {
	if durationMinutes <= 0 || durationMinutes > window.Hours.Length() {
		return nil
	}
	if granularityMinutes <= 0 {
		granularityMinutes = durationMinutes
	}

	slots := make([]int, 0, window.Hours.Length()/granularityMinutes+1)
	for t := window.Hours.From; t+durationMinutes <= window.Hours.To; t += granularityMinutes {
		if window.Contains(domain.MinuteRange{From: t, To: t + durationMinutes}) {
			slots = append(slots, t)
		}
	}

	return slots
}

// atMinute переносит минуту суток на календарный день date (настенное время)
func atMinute(date time.Time, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, date.Location())
}

// mergeSlots объединяет списки слотов сотрудников в один отсортированный список без повторов
func mergeSlots(lists ...[]time.Time) []time.Time {
	seen := make(map[int64]struct{})
	merged := make([]time.Time, 0)

	for _, list := range lists {
		for _, slot := range list {
			k := slot.Unix()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, slot)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Before(merged[j])
	})
	return merged
}
