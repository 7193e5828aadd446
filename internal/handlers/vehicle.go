package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/repository"
)

type VehicleHandler struct {
	repo   repository.VehicleRepository
	logger zerolog.Logger
}

func NewVehicleHandler(repo repository.VehicleRepository, logger zerolog.Logger) *VehicleHandler {
	return &VehicleHandler{
		repo:   repo,
		logger: logger.With().Str("handler", "vehicle").Logger(),
	}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list vehicles")
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}

func (h *VehicleHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleID"]
	vehicle, err := h.repo.ToggleWatchlist(r.Context(), vehicleID)
	if err != nil {
		http.Error(w, "Failed to toggle watchlist", statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}
