package database_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/taiwoajasa245/march16-verse-api/internal/database"
	"github.com/taiwoajasa245/march16-verse-api/internal/database/databasetest"
)

var srv database.Service

func TestMain(m *testing.M) {
	var (
		teardown func(context.Context) error
		err      error
	)
	srv, teardown, err = databasetest.MustStartPostgresContainer()
	if err != nil {
		log.Printf("could not start postgres container, integration tests will be skipped: %v", err)
		srv = nil
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if srv == nil {
		t.Skip("postgres container not available")
	}
}

func TestHealth(t *testing.T) {
	requireDB(t)
	stats := srv.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	requireDB(t)
	if err := database.Migrate(srv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var n int
	err := srv.DB().QueryRowContext(context.Background(),
		`SELECT count(*) FROM information_schema.tables WHERE table_name IN ('devices', 'bookmarks')`).Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected both tables, found %d", n)
	}
}

func TestConnString(t *testing.T) {
	cfg := database.Config{Host: "db", Port: "5432", Database: "march16", Username: "u", Password: "p", Schema: "public"}
	want := "postgres://u:p@db:5432/march16?sslmode=disable&search_path=public"
	if got := cfg.ConnString(); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}
