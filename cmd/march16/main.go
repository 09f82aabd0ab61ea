// Command march16 reads and builds the daily verse data files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/taiwoajasa245/march16-verse-api/internal/calendar"
	"github.com/taiwoajasa245/march16-verse-api/internal/dailyverse"
	"github.com/taiwoajasa245/march16-verse-api/internal/region"
	"github.com/taiwoajasa245/march16-verse-api/internal/resolver"
	"github.com/taiwoajasa245/march16-verse-api/internal/settings"
	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

// Globals are the flags every command shares.
type Globals struct {
	DB        string `name:"db" help:"Primary verse data file" default:"data/March16DB.sqlite" env:"VERSE_DB_PATH" type:"path"`
	Secondary string `help:"Secondary translation file to attach" type:"path"`
	TZ        string `name:"tz" help:"Time zone for \"today\"" default:"Local" env:"TZ_NAME"`
	Lang      string `help:"Reader language, e.g. ko or en" default:"en"`
	Region    string `help:"Storefront country (ISO alpha-3)" env:"STOREFRONT_COUNTRY"`
	Verbose   bool   `short:"V" help:"Log at info level"`

	Out io.Writer        `kong:"-"`
	Now func() time.Time `kong:"-"`
}

type cli struct {
	Globals

	Verse    VerseCmd    `cmd:"" help:"Print the verse for a day"`
	Calendar CalendarCmd `cmd:"" help:"Print a month grid"`
	Widget   WidgetCmd   `cmd:"" help:"Print today's widget entry"`
	Build    BuildCmd    `cmd:"" help:"Build a verse data file from JSON"`
	Pack     PackCmd     `cmd:"" help:"Compress a data file and print its digest"`
	Inspect  InspectCmd  `cmd:"" help:"Report contents and missing days of a data file"`
}

var CLI cli

func (g *Globals) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Globals) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (g *Globals) calendar() (calendar.Calendar, error) {
	loc := time.Local
	if g.TZ != "" && g.TZ != "Local" {
		l, err := time.LoadLocation(g.TZ)
		if err != nil {
			return calendar.Calendar{}, fmt.Errorf("time zone %q: %w", g.TZ, err)
		}
		loc = l
	}
	cal := calendar.New(loc)
	if g.Now != nil {
		cal = cal.WithClock(g.Now)
	}
	return cal, nil
}

func (g *Globals) openStore(ctx context.Context) (*versestore.Store, error) {
	store, err := versestore.Open(ctx, g.DB, versestore.WithLogger(g.logger()))
	if err != nil {
		return nil, err
	}
	if g.Secondary != "" {
		if err := store.AttachSecondary(ctx, g.Secondary); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

// service builds the same daily verse service the API runs, with settings
// held in memory.
func (g *Globals) service(ctx context.Context, store *versestore.Store, override translation.Code) (*dailyverse.Service, error) {
	cal, err := g.calendar()
	if err != nil {
		return nil, err
	}

	p := settings.NewMemoryProvider(nil)
	if override != "" {
		s := settings.Defaults()
		s.SelectedVersion = override
		if err := p.For("").Save(ctx, s); err != nil {
			return nil, err
		}
	}

	logger := g.logger()
	detector := region.NewDetector(region.StaticSource(g.Region), nil, logger)
	if _, err := detector.Detect(ctx); err != nil {
		return nil, err
	}

	return dailyverse.NewService(resolver.New(store, cal), store, p, detector, translation.DefaultPolicy(), logger), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("march16"),
		kong.Description("March16 daily verse tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
