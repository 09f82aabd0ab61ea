package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
	"github.com/taiwoajasa245/march16-verse-api/pkg/util"
)

type contextKey string

const (
	claimsContextKey   contextKey = "claims"
	deviceIDContextKey contextKey = "device_id"
)

// AuthMiddleware rejects requests without a valid device token.
func AuthMiddleware(tokens *util.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Missing Authorization header", "device not registered")
				return
			}
			authenticate(tokens, authHeader, next, w, r)
		})
	}
}

// OptionalAuthMiddleware lets requests without an Authorization header
// through anonymously. A header that is present must carry a valid token.
func OptionalAuthMiddleware(tokens *util.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			authenticate(tokens, authHeader, next, w, r)
		})
	}
}

func authenticate(tokens *util.TokenManager, authHeader string, next http.Handler, w http.ResponseWriter, r *http.Request) {
	// Must start with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Error(w, http.StatusUnauthorized, "Invalid token format", "")
		return
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := tokens.Validate(tokenStr)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid or expired token", "")
		return
	}

	ctx := context.WithValue(r.Context(), claimsContextKey, claims)
	ctx = context.WithValue(ctx, deviceIDContextKey, claims.DeviceID)

	next.ServeHTTP(w, r.WithContext(ctx))
}

func GetClaimsFromContext(r *http.Request) (*util.Claims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*util.Claims)
	return claims, ok
}

func GetDeviceIDFromContext(r *http.Request) (string, bool) {
	return DeviceIDFrom(r.Context())
}

// DeviceIDFrom returns the authenticated device, if any, carried by ctx.
func DeviceIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(deviceIDContextKey).(string)
	return id, ok && id != ""
}

// WithDeviceID puts a device id in ctx the way AuthMiddleware does.
func WithDeviceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey, id)
}

// ReaderLanguage is the language the request asks for, falling back to the
// language the calling device registered with.
func ReaderLanguage(r *http.Request) string {
	if lang := util.PreferredLanguage(r); lang != "" {
		return lang
	}
	if claims, ok := GetClaimsFromContext(r); ok {
		return util.BaseLanguage(claims.Language)
	}
	return ""
}
