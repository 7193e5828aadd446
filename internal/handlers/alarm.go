package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/authz"
	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/repository"
	"github.com/aegisops/aegis-api/internal/workflow"
)

type AlarmHandler struct {
	repo     repository.AlarmRepository
	incident *workflow.Incident
	logger   zerolog.Logger
}

func NewAlarmHandler(repo repository.AlarmRepository, incident *workflow.Incident, logger zerolog.Logger) *AlarmHandler {
	return &AlarmHandler{
		repo:     repo,
		incident: incident,
		logger:   logger.With().Str("handler", "alarm").Logger(),
	}
}

func (h *AlarmHandler) List(w http.ResponseWriter, r *http.Request) {
	alarms, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list alarms")
		http.Error(w, "Failed to list alarms", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"alarms": alarms})
}

func (h *AlarmHandler) Get(w http.ResponseWriter, r *http.Request) {
	alarmID := mux.Vars(r)["alarmID"]
	alarm, err := h.repo.Get(r.Context(), alarmID)
	if err != nil {
		http.Error(w, "Alarm not found", statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, alarm)
}

type reportAlarmRequest struct {
	Type        models.AlarmType `json:"type"`
	Title       string           `json:"title"`
	CameraName  string           `json:"camera_name"`
	Description string           `json:"description"`
	SnapshotURL string           `json:"snapshot_url"`
}

// Report inserts an externally reported alarm, e.g. a manual report
// from a patrol or a bridge from a real sensor system.
func (h *AlarmHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportAlarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !models.IsValidAlarmType(req.Type) {
		http.Error(w, "Invalid alarm type", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	alarm, err := h.incident.ReportAlarm(r.Context(), models.Alarm{
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		CameraName:  strings.TrimSpace(req.CameraName),
		Description: req.Description,
		SnapshotURL: req.SnapshotURL,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to report alarm")
		http.Error(w, "Failed to report alarm", statusForError(err))
		return
	}
	writeJSON(w, http.StatusCreated, alarm)
}

type updateAlarmStatusRequest struct {
	Status models.AlarmStatus `json:"status"`
}

func (h *AlarmHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	operator, ok := authz.OperatorFromRequest(r)
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}
	alarmID := mux.Vars(r)["alarmID"]

	var req updateAlarmStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !models.IsValidAlarmStatus(req.Status) {
		http.Error(w, "Invalid alarm status", http.StatusBadRequest)
		return
	}

	if err := h.incident.OverrideAlarmStatus(r.Context(), operator, alarmID, req.Status); err != nil {
		http.Error(w, "Failed to update alarm status", statusForError(err))
		return
	}

	alarm, err := h.repo.Get(r.Context(), alarmID)
	if err != nil {
		http.Error(w, "Failed to load alarm", statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, alarm)
}
