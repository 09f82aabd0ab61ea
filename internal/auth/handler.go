package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

type AuthHandler struct {
	service AuthService
}

func NewHandler(service AuthService) AuthHandler {
	return AuthHandler{service: service}
}

// RegisterDeviceHandler godoc
// @Summary Register a device
// @Description Creates a device record and returns its bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterDeviceRequest true "Device"
// @Success 201 {object} response.APIResponse{data=Device}
// @Failure 400 {object} response.APIResponse
// @Router /auth/register-device [post]
func (h *AuthHandler) RegisterDeviceHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.Platform == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"platform": "Platform is required",
		})
		return
	}

	device, err := h.service.RegisterDevice(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidPlatform) {
			response.Error(w, http.StatusBadRequest, "Unsupported platform", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to register device", err.Error())
		return
	}

	response.Created(w, device, "Device registered successfully")
}

// GetDeviceHandler godoc
// @Summary Current device
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Device}
// @Failure 401 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetDeviceHandler(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := GetDeviceIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "device not found")
		return
	}

	device, err := h.service.GetDevice(r.Context(), deviceID)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			response.NotFound(w, "Device not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to fetch device", err.Error())
		return
	}

	response.Success(w, device, "Device fetched successfully")
}
