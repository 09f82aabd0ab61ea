package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore/versestoretest"
)

type countingStore struct {
	calls []string
	err   error
}

func (c *countingStore) Lookup(_ context.Context, month, day int, code string) (versestore.Verse, bool, error) {
	c.calls = append(c.calls, code)
	if c.err != nil {
		return versestore.Verse{}, false, c.err
	}
	return versestore.Verse{Month: month, Day: day, VersionCode: code}, true, nil
}

func TestResolve_FromFile(t *testing.T) {
	ctx := context.Background()
	r := New(versestoretest.Open(t), calendar.New(time.UTC))

	v, ok, err := r.Resolve(ctx, time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC), translation.WEBBE)
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if v.Reference() != "Matthew 12:18" {
		t.Errorf("Reference() = %q", v.Reference())
	}

	v, ok, err = r.Resolve(ctx, time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC), translation.WEBBE)
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if v.Reference() != "Ecclesiastes 12:1-2" {
		t.Errorf("Reference() = %q", v.Reference())
	}

	// No substitution: an unattached translation is simply absent.
	if _, ok, err := r.Resolve(ctx, time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC), translation.KJV); err != nil || ok {
		t.Fatalf("expected absent KJV, got ok=%v err=%v", ok, err)
	}
}

func TestResolve_IgnoresYear(t *testing.T) {
	ctx := context.Background()
	r := New(versestoretest.Open(t), calendar.New(time.UTC))

	for _, year := range []int{1999, 2024, 2025, 2031} {
		v, ok, err := r.Resolve(ctx, time.Date(year, 3, 16, 12, 0, 0, 0, time.UTC), translation.NKRV)
		if err != nil || !ok {
			t.Fatalf("%d: ok=%v err=%v", year, ok, err)
		}
		if v.BookName != "요한복음" {
			t.Errorf("%d: unexpected book %q", year, v.BookName)
		}
	}
}

func TestResolve_UsesCalendarLocation(t *testing.T) {
	store := &countingStore{}
	r := New(store, calendar.New(time.FixedZone("KST", 9*60*60)))

	v, _, _ := r.Resolve(context.Background(), time.Date(2025, 12, 24, 20, 0, 0, 0, time.UTC), translation.NKRV)
	if v.Month != 12 || v.Day != 25 {
		t.Errorf("resolved %d/%d, want 12/25", v.Month, v.Day)
	}
	if len(store.calls) != 1 {
		t.Errorf("expected exactly one lookup, got %d", len(store.calls))
	}
}

func TestResolve_StoreError(t *testing.T) {
	boom := errors.New("disk gone")
	r := New(&countingStore{err: boom}, calendar.New(time.UTC))

	if _, _, err := r.Resolve(context.Background(), time.Now(), translation.WEBBE); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
