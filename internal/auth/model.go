// Device model definition
package auth

import "time"

type RegisterDeviceRequest struct {
	Platform string `json:"platform" example:"ios"`
	Language string `json:"language,omitempty" example:"ko-KR"`
}

type Device struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	Language   string    `json:"language,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	Token      string    `json:"token,omitempty"`
}

var allowedPlatforms = map[string]bool{
	"ios":     true,
	"android": true,
	"widget":  true,
	"web":     true,
	"cli":     true,
}
