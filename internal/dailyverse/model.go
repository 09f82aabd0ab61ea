package dailyverse

import (
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

const dateLayout = "2006-01-02"

// DailyVerse is the verse shown for one calendar day.
type DailyVerse struct {
	Date        string           `json:"date" example:"2025-03-16"`
	Requested   translation.Code `json:"requested_version" example:"NKRV"`
	Verse       versestore.Verse `json:"verse"`
	Reference   string           `json:"reference" example:"John 3:16"`
	FellBack    bool             `json:"fell_back"`
	Placeholder bool             `json:"placeholder"`
}

// MonthView is a month laid out in Sunday-first weeks.
type MonthView struct {
	Year        int             `json:"year" example:"2025"`
	Month       int             `json:"month" example:"3"`
	DaysInMonth int             `json:"days_in_month" example:"31"`
	Weeks       []calendar.Week `json:"weeks"`
	// Today is the day of month for today, or 0 when today is in another month.
	Today int `json:"today"`
}

type TranslationOption struct {
	Code        translation.Code `json:"code" example:"WEBBE"`
	DisplayName string           `json:"display_name" example:"World English Bible (WEBBE)"`
}

type Translations struct {
	Effective         translation.Code    `json:"effective" example:"WEBBE"`
	Selected          translation.Code    `json:"selected,omitempty"`
	SecondaryAttached bool                `json:"secondary_attached"`
	Region            string              `json:"region,omitempty" example:"KOR"`
	Options           []TranslationOption `json:"options"`
}

// WidgetEntry is one widget timeline entry. Clients reload at NextRefresh.
type WidgetEntry struct {
	Date        time.Time        `json:"date"`
	Version     translation.Code `json:"version" example:"WEBBE"`
	Verse       versestore.Verse `json:"verse"`
	Reference   string           `json:"reference" example:"John 3:16"`
	Placeholder bool             `json:"placeholder"`
	NextRefresh time.Time        `json:"next_refresh"`
}
