// Package resolver turns a date and a translation into the day's verse.
package resolver

import (
	"context"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

// Lookuper is the part of the verse store the resolver needs.
type Lookuper interface {
	Lookup(ctx context.Context, month, day int, code string) (versestore.Verse, bool, error)
}

type Resolver struct {
	store Lookuper
	cal   calendar.Calendar
}

func New(store Lookuper, cal calendar.Calendar) *Resolver {
	return &Resolver{store: store, cal: cal}
}

// Resolve looks up the verse for the local day of date in code. It does
// not substitute another translation; ok=false means there is no text.
func (r *Resolver) Resolve(ctx context.Context, date time.Time, code translation.Code) (versestore.Verse, bool, error) {
	month, day := r.cal.Decompose(date)
	return r.store.Lookup(ctx, month, day, code.String())
}

func (r *Resolver) Calendar() calendar.Calendar { return r.cal }
