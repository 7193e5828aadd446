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

type IssueHandler struct {
	repo     repository.IssueRepository
	incident *workflow.Incident
	logger   zerolog.Logger
}

func NewIssueHandler(repo repository.IssueRepository, incident *workflow.Incident, logger zerolog.Logger) *IssueHandler {
	return &IssueHandler{
		repo:     repo,
		incident: incident,
		logger:   logger.With().Str("handler", "issue").Logger(),
	}
}

func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	issues, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list issues")
		http.Error(w, "Failed to list issues", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"issues": issues})
}

func (h *IssueHandler) Get(w http.ResponseWriter, r *http.Request) {
	issueID := mux.Vars(r)["issueID"]
	issue, err := h.repo.Get(r.Context(), issueID)
	if err != nil {
		http.Error(w, "Issue not found", statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// Create is the direct-creation path for work orders that do not
// originate from an alarm: patrol tasks, repairs, fire-safety hazards.
func (h *IssueHandler) Create(w http.ResponseWriter, r *http.Request) {
	operator, ok := authz.OperatorFromRequest(r)
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	var draft workflow.IssueDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(draft.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if !models.IsValidIssuePriority(draft.Priority) {
		http.Error(w, "Invalid priority", http.StatusBadRequest)
		return
	}
	if !models.IsValidIssueCategory(draft.Category) {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}

	issue, err := h.incident.CreateIssue(r.Context(), operator, draft)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create issue")
		http.Error(w, "Failed to create issue", statusForError(err))
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

// CreateFromAlarm turns the addressed alarm into a work order.
func (h *IssueHandler) CreateFromAlarm(w http.ResponseWriter, r *http.Request) {
	operator, ok := authz.OperatorFromRequest(r)
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}
	alarmID := mux.Vars(r)["alarmID"]

	var form workflow.IssueForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !models.IsValidIssuePriority(form.Priority) {
		http.Error(w, "Invalid priority", http.StatusBadRequest)
		return
	}
	if !models.IsValidIssueCategory(form.Category) {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}

	issue, err := h.incident.CreateIssueFromAlarm(r.Context(), operator, alarmID, form)
	if err != nil {
		h.logger.Warn().Err(err).Str("alarm_id", alarmID).Msg("create issue from alarm rejected")
		http.Error(w, "Failed to create issue from alarm", statusForError(err))
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

type issueActionRequest struct {
	Action  models.IssueAction `json:"action"`
	Content string             `json:"content"`
}

// HandleAction applies a COMMENT or COMPLETE action to the issue.
func (h *IssueHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	operator, ok := authz.OperatorFromRequest(r)
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}
	issueID := mux.Vars(r)["issueID"]

	var req issueActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !models.IsValidIssueAction(req.Action) {
		http.Error(w, "Invalid issue action", http.StatusBadRequest)
		return
	}
	if req.Action == models.IssueActionComment && strings.TrimSpace(req.Content) == "" {
		http.Error(w, "Content is required for a comment", http.StatusBadRequest)
		return
	}

	issue, err := h.incident.HandleIssue(r.Context(), operator, issueID, req.Action, req.Content)
	if err != nil {
		h.logger.Warn().Err(err).Str("issue_id", issueID).Msg("issue action rejected")
		http.Error(w, "Failed to handle issue", statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, issue)
}
