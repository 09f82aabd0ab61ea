// JWT token generation/validation

package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "march16-verse-api"

var (
	ErrMissingSecret = errors.New("JWT_SECRET not set")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// Claims defines what goes inside the JWT
type Claims struct {
	DeviceID string `json:"device_id"`
	Platform string `json:"platform,omitempty"`
	Language string `json:"lang,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and checks device tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Generate returns a signed token for a device. language is the tag the
// device registered with and may be empty.
func (m *TokenManager) Generate(deviceID, platform, language string) (string, error) {
	now := m.now()
	claims := Claims{
		DeviceID: deviceID,
		Platform: platform,
		Language: language,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and checks a token.
func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Verify the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.DeviceID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
