package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/notification"
)

type ToastHandler struct {
	bus    *notification.Bus
	logger zerolog.Logger
}

func NewToastHandler(bus *notification.Bus, logger zerolog.Logger) *ToastHandler {
	return &ToastHandler{
		bus:    bus,
		logger: logger.With().Str("handler", "toast").Logger(),
	}
}

// List returns the currently live toasts oldest-first, for rendering.
func (h *ToastHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"toasts": h.bus.List()})
}
