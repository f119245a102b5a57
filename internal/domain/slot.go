package domain

import "time"

// EmployeeDate is the unit of slot cache invalidation
type EmployeeDate struct {
	EmployeeID int64
	Date       string // YYYY-MM-DD in the salon timezone
}

// DayStart returns local midnight of t's calendar day in loc
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// SpannedDates lists every local date touched by [start, end)
func SpannedDates(employeeID int64, start, end time.Time, loc *time.Location) []EmployeeDate {
	day := DayStart(start, loc)
	dates := []EmployeeDate{{EmployeeID: employeeID, Date: day.Format(DateFormat)}}

	for {
		day = day.AddDate(0, 0, 1)
		if !day.Before(end) {
			break
		}
		dates = append(dates, EmployeeDate{EmployeeID: employeeID, Date: day.Format(DateFormat)})
	}

	return dates
}
