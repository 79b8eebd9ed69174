package service

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// SameDay reports whether t falls on the calendar day of day, evaluated in day's location.
func SameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayRange returns 00:00:00.000 and 23:59:59.999 of t's calendar day.
func DayRange(t time.Time) (time.Time, time.Time) {
	return beginningOfDay(t), endOfDay(t)
}

// WeekRange returns the Sunday-start week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	start := beginningOfDay(t).AddDate(0, 0, -int(t.Weekday()))
	return start, endOfDay(start.AddDate(0, 0, 6))
}

func MonthRange(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, endOfDay(start.AddDate(0, 1, -1))
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
