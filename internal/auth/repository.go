package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/taiwoajasa245/march16-verse-api/internal/database"
)

var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrInternalServer  = errors.New("internal server error")
)

// Repository defines the methods the Auth module provides for DB operations.
type Repository interface {
	CreateDevice(ctx context.Context, device Device) (*Device, error)
	GetDevice(ctx context.Context, id string) (*Device, error)
	TouchDevice(ctx context.Context, id string, at time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) CreateDevice(ctx context.Context, device Device) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO devices (id, platform, language)
		VALUES ($1, $2, $3)
		RETURNING created_at, last_seen_at
	`
	err := r.db.QueryRowContext(ctx, query, device.ID, device.Platform, device.Language).
		Scan(&device.CreatedAt, &device.LastSeenAt)
	if err != nil {
		return nil, ErrInternalServer
	}
	return &device, nil
}

func (r *repository) GetDevice(ctx context.Context, id string) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT id, platform, language, created_at, last_seen_at
		FROM devices
		WHERE id = $1
	`
	var d Device
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Platform, &d.Language, &d.CreatedAt, &d.LastSeenAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, ErrInternalServer
	}
	return &d, nil
}

func (r *repository) TouchDevice(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE devices SET last_seen_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return ErrInternalServer
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
