package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/repository"
)

type CameraHandler struct {
	repo   repository.CameraRepository
	logger zerolog.Logger
}

func NewCameraHandler(repo repository.CameraRepository, logger zerolog.Logger) *CameraHandler {
	return &CameraHandler{
		repo:   repo,
		logger: logger.With().Str("handler", "camera").Logger(),
	}
}

func (h *CameraHandler) List(w http.ResponseWriter, r *http.Request) {
	cameras, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list cameras")
		http.Error(w, "Failed to list cameras", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cameras": cameras})
}
