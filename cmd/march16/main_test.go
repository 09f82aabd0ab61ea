package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore/versestoretest"
)

var march16 = time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var c cli
	parser, err := kong.New(&c, kong.Name("march16"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	c.Out = &out
	c.Now = func() time.Time { return march16 }
	err = kctx.Run(&c.Globals)
	return out.String(), err
}

func TestVerseCmd(t *testing.T) {
	db := versestoretest.PrimaryFile(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"today", []string{"verse"}, []string{"2025-03-16  John 3:16 (WEBBE)", "For God so loved"}},
		{"korean", []string{"verse", "--lang", "ko"}, []string{"요한복음 3:16 (NKRV)"}},
		{"explicit date", []string{"verse", "2025-01-01", "-v", "nkrv"}, []string{"예레미야애가 3:22-23"}},
		{"fallback", []string{"verse", "2025-12-25", "-v", "NKRV"}, []string{"Matthew 12:18 (WEBBE)", "no NKRV text"}},
		{"placeholder", []string{"verse", "2025-07-04"}, []string{"John 3:16", "showing placeholder"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--db", db, "--tz", "UTC"}, tt.args...)
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestVerseCmd_Errors(t *testing.T) {
	db := versestoretest.PrimaryFile(t)

	if _, err := run(t, "--db", db, "verse", "16-03-2025"); err == nil {
		t.Error("expected bad date error")
	}
	if _, err := run(t, "--db", db, "verse", "-v", "NIV"); err == nil {
		t.Error("expected unknown translation error")
	}
	if _, err := run(t, "--db", filepath.Join(t.TempDir(), "missing.sqlite"), "verse"); err == nil {
		t.Error("expected missing file error")
	}
}

func TestVerseCmd_JSONWithSecondary(t *testing.T) {
	db := versestoretest.PrimaryFile(t)
	kjv := versestoretest.SecondaryFile(t)

	out, err := run(t, "--db", db, "--secondary", kjv, "--tz", "UTC", "verse", "2025-12-01", "-v", "KJV", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Reference string `json:"reference"`
		Verse     struct {
			VersionCode string `json:"version_code"`
		} `json:"verse"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Verse.VersionCode != "KJV" || got.Reference != "Ecclesiastes 12:1-2" {
		t.Errorf("got %+v", got)
	}
}

func TestCalendarCmd(t *testing.T) {
	out, err := run(t, "--tz", "UTC", "calendar", "2025", "3")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "March 2025" {
		t.Errorf("title = %q", lines[0])
	}
	// March 1 2025 is a Saturday.
	if !strings.HasSuffix(lines[2], "  1") || strings.Contains(lines[2], " 2") {
		t.Errorf("first week = %q", lines[2])
	}
	if !strings.Contains(out, " 16*") {
		t.Errorf("today not marked:\n%s", out)
	}
	if len(lines) != 2+6 {
		t.Errorf("expected 6 weeks, got %d", len(lines)-2)
	}

	if _, err := run(t, "calendar", "2025", "13"); err == nil {
		t.Error("expected invalid month error")
	}
}

func TestWidgetCmd(t *testing.T) {
	db := versestoretest.PrimaryFile(t)

	out, err := run(t, "--db", db, "--tz", "UTC", "widget")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "John 3:16") || !strings.Contains(out, "next refresh 2025-03-17T00:00:00Z") {
		t.Errorf("unexpected widget output:\n%s", out)
	}
}

func TestBuildPackInspect(t *testing.T) {
	dir := t.TempDir()

	raw, err := json.Marshal(versestoretest.PrimaryDataset())
	if err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "dataset.json")
	if err := os.WriteFile(input, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "March16.sqlite")

	out, err := run(t, "build", input, "--out", db)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "primary file") || !strings.Contains(out, "4 definitions, 7 texts") {
		t.Errorf("build output: %s", out)
	}

	out, err = run(t, "pack", db)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if _, err := os.Stat(db + ".xz"); err != nil {
		t.Fatalf("archive not written: %v", err)
	}
	want, err := versestore.HashFile(db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "digest "+want.String()) {
		t.Errorf("pack output: %s", out)
	}

	out, err = run(t, "--db", db, "inspect", "--digest", want.String(), "--json")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatal(err)
	}
	if report.Stats.Definitions != 4 || report.Stats.Texts["WEBBE"] != 4 || report.Stats.Texts["NKRV"] != 3 {
		t.Errorf("stats = %+v", report.Stats)
	}
	if got := len(report.Missing["WEBBE"]); got != 366-4 {
		t.Errorf("WEBBE missing %d days", got)
	}

	var zero versestore.Digest
	if _, err := run(t, "--db", db, "inspect", "--digest", zero.String()); err == nil {
		t.Error("expected digest mismatch")
	}
}
