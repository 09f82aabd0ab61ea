package util

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.Generate("0b0e7c57-8f59-4c0e-9a3f-8d61a4b8f0f1", "ios", "ko-KR")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.DeviceID != "0b0e7c57-8f59-4c0e-9a3f-8d61a4b8f0f1" || claims.Platform != "ios" || claims.Language != "ko-KR" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	other, _ := NewTokenManager("other-secret", time.Hour)

	token, _ := other.Generate("device", "ios", "")
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token: expected ErrInvalidToken, got %v", err)
	}

	expired, _ := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Generate("device", "ios", "")
	if _, err := m.Validate(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: expected ErrInvalidToken, got %v", err)
	}

	if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
