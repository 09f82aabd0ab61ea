package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taiwoajasa245/march16-verse-api/pkg/util"
)

type AuthService struct {
	repo   Repository
	tokens *util.TokenManager
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthService(repo Repository, tokens *util.TokenManager, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return AuthService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterDevice stores a new device and issues its token.
func (s *AuthService) RegisterDevice(ctx context.Context, req RegisterDeviceRequest) (*Device, error) {
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if !allowedPlatforms[platform] {
		return nil, ErrInvalidPlatform
	}

	device, err := s.repo.CreateDevice(ctx, Device{
		ID:       uuid.NewString(),
		Platform: platform,
		Language: strings.TrimSpace(req.Language),
	})
	if err != nil {
		s.logger.Error("create device", "error", err)
		return nil, err
	}

	token, err := s.tokens.Generate(device.ID, device.Platform, device.Language)
	if err != nil {
		s.logger.Error("sign device token", "error", err)
		return nil, ErrInternalServer
	}
	device.Token = token

	s.logger.Info("device registered", "device_id", device.ID, "platform", device.Platform)
	return device, nil
}

// GetDevice returns the device and records that it was seen.
func (s *AuthService) GetDevice(ctx context.Context, id string) (*Device, error) {
	device, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchDevice(ctx, id, s.now()); err != nil {
		s.logger.Warn("touch device", "device_id", id, "error", err)
	}
	return device, nil
}
