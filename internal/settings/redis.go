package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taiwoajasa245/march16-verse-api/internal/events"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: 1,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisStore keeps one hash per namespace.
type RedisStore struct {
	client    *redis.Client
	namespace string
	device    string
	broker    *events.Broker
}

func NewRedisStore(client *redis.Client, namespace string, broker *events.Broker) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{client: client, namespace: namespace, broker: broker}
}

func (r *RedisStore) key() string {
	return fmt.Sprintf("settings:%s", r.namespace)
}

func (r *RedisStore) Load(ctx context.Context) (Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.key()).Result()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return Decode(fields), nil
}

func (r *RedisStore) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	fields := Encode(s)
	values := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		values = append(values, k, v)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key(), values...)
		if _, ok := fields[KeySelectedVersion]; !ok {
			pipe.HDel(ctx, r.key(), KeySelectedVersion)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if r.broker != nil {
		r.broker.Emit(events.SettingsChanged, "device", r.device)
	}
	return nil
}

// RedisProvider gives every device its own hash under the group namespace.
type RedisProvider struct {
	client    *redis.Client
	namespace string
	broker    *events.Broker
}

func NewRedisProvider(client *redis.Client, namespace string, broker *events.Broker) *RedisProvider {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisProvider{client: client, namespace: namespace, broker: broker}
}

func (p *RedisProvider) For(deviceID string) Store {
	st := NewRedisStore(p.client, Namespace(p.namespace, deviceID), p.broker)
	st.device = deviceID
	return st
}
