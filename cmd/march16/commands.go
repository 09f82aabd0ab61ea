package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

func printJSON(g *Globals, v any) error {
	enc := json.NewEncoder(g.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseVersion(s string) (translation.Code, error) {
	if s == "" {
		return "", nil
	}
	return translation.Parse(s)
}

// VerseCmd prints the verse for a day.
type VerseCmd struct {
	Date    string `arg:"" optional:"" help:"Day as YYYY-MM-DD (default today)"`
	Version string `short:"v" help:"Translation code (NKRV, WEBBE, KJV)"`
	JSON    bool   `name:"json" help:"Print JSON"`
}

func (c *VerseCmd) Run(g *Globals) error {
	ctx := context.Background()

	code, err := parseVersion(c.Version)
	if err != nil {
		return err
	}

	store, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := g.service(ctx, store, "")
	if err != nil {
		return err
	}

	date := svc.Calendar().Now()
	if c.Date != "" {
		date, err = time.ParseInLocation(time.DateOnly, c.Date, svc.Calendar().Location())
		if err != nil {
			return fmt.Errorf("date %q: expected YYYY-MM-DD", c.Date)
		}
	}

	v, err := svc.Verse(ctx, date, code, g.Lang)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(g, v)
	}

	w := g.out()
	fmt.Fprintf(w, "%s  %s (%s)\n", v.Date, v.Reference, v.Verse.VersionCode)
	fmt.Fprintln(w, v.Verse.Content)
	switch {
	case v.Placeholder:
		fmt.Fprintln(w, "(no verse for this day, showing placeholder)")
	case v.FellBack:
		fmt.Fprintf(w, "(no %s text for this day, showing %s)\n", v.Requested, v.Verse.VersionCode)
	}
	return nil
}

// CalendarCmd prints a Sunday-first month grid.
type CalendarCmd struct {
	Year  int `arg:"" optional:"" help:"Year (default this year)"`
	Month int `arg:"" optional:"" help:"Month 1-12 (default this month)"`
}

func (c *CalendarCmd) Run(g *Globals) error {
	cal, err := g.calendar()
	if err != nil {
		return err
	}
	now := cal.Now()

	year, month := c.Year, c.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	weeks := calendar.BuildMonthMatrix(year, month)
	if weeks == nil {
		return fmt.Errorf("month %d is out of range", month)
	}

	w := g.out()
	fmt.Fprintf(w, "%s %d\n", time.Month(month), year)
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa")
	for _, week := range weeks {
		var b strings.Builder
		for _, day := range week {
			switch {
			case day == calendar.Blank:
				b.WriteString("    ")
			case cal.IsToday(cal.Date(year, month, day)):
				fmt.Fprintf(&b, "%3d*", day)
			default:
				fmt.Fprintf(&b, "%3d ", day)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
	return nil
}

// WidgetCmd prints the entry the home screen widget would show now.
type WidgetCmd struct {
	Version string `short:"v" help:"Stored translation selection"`
	JSON    bool   `name:"json" help:"Print JSON"`
}

func (c *WidgetCmd) Run(g *Globals) error {
	ctx := context.Background()

	code, err := parseVersion(c.Version)
	if err != nil {
		return err
	}

	store, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := g.service(ctx, store, code)
	if err != nil {
		return err
	}

	entry, err := svc.Widget(ctx, svc.Calendar().Now(), g.Lang)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(g, entry)
	}

	w := g.out()
	fmt.Fprintln(w, entry.Verse.Content)
	fmt.Fprintf(w, "  %s\n", entry.Reference)
	fmt.Fprintf(w, "next refresh %s\n", entry.NextRefresh.Format(time.RFC3339))
	return nil
}

// BuildCmd writes a data file from a JSON dataset.
type BuildCmd struct {
	Input string `arg:"" help:"JSON dataset" type:"existingfile"`
	Out   string `short:"o" required:"" help:"Data file to write" type:"path"`
}

func (c *BuildCmd) Run(g *Globals) error {
	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	ds, err := versestore.LoadDataset(f)
	if err != nil {
		return err
	}
	if err := versestore.Build(context.Background(), c.Out, ds); err != nil {
		return err
	}

	info, err := os.Stat(c.Out)
	if err != nil {
		return err
	}
	kind := "primary"
	if ds.Secondary() {
		kind = "secondary"
	}
	fmt.Fprintf(g.out(), "wrote %s %s file %s: %d definitions, %d texts\n",
		humanize.Bytes(uint64(info.Size())), kind, c.Out, len(ds.Definitions), len(ds.Texts))
	return nil
}

// PackCmd compresses a data file for download.
type PackCmd struct {
	Source string `arg:"" help:"Data file to compress" type:"existingfile"`
	Out    string `short:"o" help:"Archive to write (default SOURCE.xz)" type:"path"`
}

func (c *PackCmd) Run(g *Globals) error {
	out := c.Out
	if out == "" {
		out = c.Source + ".xz"
	}

	digest, err := versestore.Pack(c.Source, out)
	if err != nil {
		return err
	}

	src, err := os.Stat(c.Source)
	if err != nil {
		return err
	}
	dst, err := os.Stat(out)
	if err != nil {
		return err
	}

	w := g.out()
	fmt.Fprintf(w, "packed %s -> %s (%s -> %s)\n", c.Source, out,
		humanize.Bytes(uint64(src.Size())), humanize.Bytes(uint64(dst.Size())))
	fmt.Fprintf(w, "digest %s\n", digest)
	return nil
}

// InspectCmd reports what a data file contains and which days have no text.
type InspectCmd struct {
	Digest string `help:"Expected BLAKE3 digest of the primary file"`
	Limit  int    `help:"Missing days to list per translation" default:"10"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

type inspectReport struct {
	Path         string                       `json:"path"`
	Size         string                       `json:"size"`
	Digest       string                       `json:"digest"`
	Stats        versestore.Stats             `json:"stats"`
	Translations []string                     `json:"translations"`
	Missing      map[string][]versestore.Slot `json:"missing"`
}

func (c *InspectCmd) Run(g *Globals) error {
	ctx := context.Background()

	if c.Digest != "" {
		want, err := versestore.ParseDigest(c.Digest)
		if err != nil {
			return err
		}
		if err := versestore.VerifyFile(g.DB, want); err != nil {
			return err
		}
	}

	store, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := os.Stat(g.DB)
	if err != nil {
		return err
	}
	digest, err := versestore.HashFile(g.DB)
	if err != nil {
		return err
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	codes, err := store.Translations(ctx)
	if err != nil {
		return err
	}

	report := inspectReport{
		Path:         g.DB,
		Size:         humanize.Bytes(uint64(info.Size())),
		Digest:       digest.String(),
		Stats:        stats,
		Translations: codes,
		Missing:      make(map[string][]versestore.Slot, len(codes)),
	}
	for _, code := range codes {
		missing, err := store.MissingSlots(ctx, code)
		if err != nil {
			return err
		}
		report.Missing[code] = missing
	}

	if c.JSON {
		return printJSON(g, report)
	}

	w := g.out()
	fmt.Fprintf(w, "%s (%s)\n", report.Path, report.Size)
	fmt.Fprintf(w, "digest %s\n", report.Digest)
	if stats.Secondary != "" {
		fmt.Fprintf(w, "secondary %s\n", stats.Secondary)
	}
	fmt.Fprintf(w, "%d days defined\n", stats.Definitions)
	for _, code := range codes {
		missing := report.Missing[code]
		fmt.Fprintf(w, "%-6s %4d texts, %3d days missing", code, stats.Texts[code], len(missing))
		if len(missing) > 0 && c.Limit > 0 {
			shown := missing
			if len(shown) > c.Limit {
				shown = shown[:c.Limit]
			}
			parts := make([]string, len(shown))
			for i, sl := range shown {
				parts[i] = fmt.Sprintf("%d/%d", sl.Month, sl.Day)
			}
			fmt.Fprintf(w, ": %s", strings.Join(parts, " "))
			if len(missing) > len(shown) {
				fmt.Fprint(w, " ...")
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
