package planner

import (
	"time"

	"github.com/dukerupert/supper/internal/model"
)

// DaysPerMonth approximates a month. Plans, and the date arithmetic built on
// them, assume every month is 30 days long.
const DaysPerMonth = 30

// Window returns the first day and the length in days of a plan anchored at
// anchor. Weekly plans start on the Sunday on or before anchor, monthly plans
// on the first of anchor's month. A count below 1 is treated as 1 and an
// unknown unit as weeks. The start is a calendar date at midnight UTC.
func Window(anchor time.Time, unit model.DurationUnit, count int) (time.Time, int) {
	if count < 1 {
		count = 1
	}
	day := Date(anchor)
	if unit == model.DurationMonth {
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, count * DaysPerMonth
	}
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, count * 7
}

// Date returns t's calendar date in its own location, as midnight UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayKey identifies t's calendar date regardless of location or clock time.
func dayKey(t time.Time) int64 {
	return Date(t).Unix()
}
