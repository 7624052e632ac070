package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/handler/http/response"
)

type SettingsHandler interface {
	GetClockWindow(w http.ResponseWriter, r *http.Request)
	UpdateClockWindow(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

// GetClockWindow handles GET /settings/clock-window
func (h *settingsHandlerImpl) GetClockWindow(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetClockWindowSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateClockWindow handles PUT /settings/clock-window
func (h *settingsHandlerImpl) UpdateClockWindow(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateClockWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode clock window request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.UpdateClockWindow(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock window updated", result)
}
