package settings

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
)

var redisAddr string

func mustStartRedisContainer() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return container.Terminate, err
	}
	redisAddr = endpoint

	return container.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := mustStartRedisContainer()
	if err != nil {
		log.Printf("could not start redis container, redis tests will be skipped: %v", err)
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown redis container: %v", err)
		}
	}
	os.Exit(code)
}

func newTestRedisStore(t *testing.T, namespace string) (*RedisStore, *redis.Client) {
	t.Helper()
	if redisAddr == "" {
		t.Skip("redis container not available")
	}

	client, err := NewRedisClient(RedisConfig{Addr: redisAddr, PoolSize: 2})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, namespace, nil), client
}

func TestRedisStore_LoadDefaults(t *testing.T) {
	store, _ := newTestRedisStore(t, "load-defaults")

	s, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s != Defaults() {
		t.Fatalf("empty hash should decode to defaults, got %+v", s)
	}
}

func TestRedisStore_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	store, client := newTestRedisStore(t, "save-clear")

	s := Defaults()
	s.SelectedVersion = translation.KJV
	s.NotificationHour = 6
	if err := store.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	raw, err := client.HGetAll(ctx, "settings:save-clear").Result()
	if err != nil {
		t.Fatal(err)
	}
	if raw[KeySelectedVersion] != "KJV" || raw[KeyNotificationHour] != "6" {
		t.Fatalf("unexpected stored fields %v", raw)
	}

	s.SelectedVersion = ""
	if err := store.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.SelectedVersion != "" {
		t.Fatalf("override should be cleared, got %q", got.SelectedVersion)
	}
}

func TestRedisStore_SharedAcrossHandles(t *testing.T) {
	ctx := context.Background()
	writer, _ := newTestRedisStore(t, "shared")
	reader, _ := newTestRedisStore(t, "shared")

	s := Defaults()
	s.Appearance = AppearanceLight
	if err := writer.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := reader.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Appearance != AppearanceLight {
		t.Fatalf("second handle saw %+v", got)
	}
}

func TestRedisProvider_PerDeviceHashes(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedisStore(t, "unused")
	p := NewRedisProvider(client, "provider", nil)

	s := Defaults()
	s.NotificationHour = 21
	if err := p.For("device-a").Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	raw, err := client.HGetAll(ctx, "settings:provider:device-a").Result()
	if err != nil {
		t.Fatal(err)
	}
	if raw[KeyNotificationHour] != "21" {
		t.Fatalf("unexpected stored fields %v", raw)
	}

	other, err := p.For("device-b").Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if other != Defaults() {
		t.Fatalf("device-b saw %+v", other)
	}
}
