// Package calendar holds the date math behind the daily verse: month/day
// decomposition, month grids and clamped month arithmetic.
//
// Weeks start on Sunday. Weekday indexes are 1 (Sunday) through 7 (Saturday).
package calendar

import "time"

// Blank marks a grid cell that falls outside the month.
const Blank = 0

// Week is one row of a month grid. Cells hold a day-of-month or Blank.
type Week [7]int

// Calendar decomposes and compares instants in a fixed location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Calendar for loc. A nil loc means time.Local.
func New(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy of c that reads "now" from clock.
func (c Calendar) WithClock(clock func() time.Time) Calendar {
	c.now = clock
	return c
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// Now is the current instant in the calendar's location.
func (c Calendar) Now() time.Time {
	clock := c.now
	if clock == nil {
		clock = time.Now
	}
	return clock().In(c.Location())
}

// Today is local midnight of the current day.
func (c Calendar) Today() time.Time {
	return StartOfDay(c.Now())
}

// Decompose returns the month (1-12) and day-of-month of t in the calendar's location.
func (c Calendar) Decompose(t time.Time) (month, day int) {
	_, m, d := t.In(c.Location()).Date()
	return int(m), d
}

// IsSameDay reports whether a and b fall on the same local calendar day.
func (c Calendar) IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.Location()).Date()
	by, bm, bd := b.In(c.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t is on the current local day.
func (c Calendar) IsToday(t time.Time) bool {
	return c.IsSameDay(t, c.Now())
}

// Date builds local midnight of year-month-day in the calendar's location.
func (c Calendar) Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, c.Location())
}

// ValidMonth reports whether month is within 1-12.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ValidDay reports whether day exists in year-month.
func ValidDay(year, month, day int) bool {
	return ValidMonth(month) && day >= 1 && day <= DaysInMonth(year, month)
}

// IsLeapYear reports whether year has a February 29 in the proleptic Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year, or 0 for an invalid month.
func DaysInMonth(year, month int) int {
	if !ValidMonth(month) {
		return 0
	}
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOfFirst returns the weekday of the first day of month, 1 = Sunday … 7 = Saturday.
func WeekdayOfFirst(year, month int) int {
	if !ValidMonth(month) {
		return 0
	}
	return int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()) + 1
}

// BuildMonthMatrix lays out month as Sunday-first weeks. Cells before the
// first and after the last day are Blank. Returns nil for an invalid month.
func BuildMonthMatrix(year, month int) []Week {
	if !ValidMonth(month) {
		return nil
	}

	offset := WeekdayOfFirst(year, month) - 1
	days := DaysInMonth(year, month)
	cells := offset + days
	rows := (cells + 6) / 7

	weeks := make([]Week, rows)
	for day := 1; day <= days; day++ {
		idx := offset + day - 1
		weeks[idx/7][idx%7] = day
	}
	return weeks
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths moves t by n months. When the day does not exist in the target
// month it is clamped to that month's last day, so Jan 31 + 1 month is
// Feb 28 (or 29), never March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := floorMod(total, 12) + 1

	if last := DaysInMonth(year, month); d > last {
		d = last
	}
	return time.Date(year, time.Month(month), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
