// Package notification plans and delivers the daily verse reminder.
package notification

import (
	"fmt"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
)

// DefaultDays is how many days ahead reminders are planned.
const DefaultDays = 7

// Title is the heading every reminder carries.
const Title = "Today's Verse"

// Identifier names the reminder for t's local day, e.g. dailyVerse_2025_3_16.
func Identifier(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("dailyVerse_%d_%d_%d", y, int(m), d)
}

// Plan returns the fire times for the next days days at hour:minute in
// now's location. Today is left out once now has reached hour:minute.
func Plan(now time.Time, hour, minute, days int) []time.Time {
	if days <= 0 {
		days = DefaultDays
	}

	today := calendar.StartOfDay(now)
	out := make([]time.Time, 0, days)
	for offset := 0; offset < days; offset++ {
		if offset == 0 && (now.Hour() > hour || (now.Hour() == hour && now.Minute() >= minute)) {
			continue
		}
		day := calendar.AddDays(today, offset)
		y, m, d := day.Date()
		out = append(out, time.Date(y, m, d, hour, minute, 0, 0, now.Location()))
	}
	return out
}

// CancelWindow lists the identifiers cleared before re-planning: from
// yesterday through 13 days ahead.
func CancelWindow(now time.Time) []string {
	out := make([]string, 0, 15)
	for offset := -1; offset < 14; offset++ {
		out = append(out, Identifier(calendar.AddDays(now, offset)))
	}
	return out
}
