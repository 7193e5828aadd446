package workflow

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/notification"
	"github.com/aegisops/aegis-api/internal/repository"
	"github.com/aegisops/aegis-api/internal/timefmt"
)

// DefaultCloseRemark is appended to the CLOSE entry when an issue is
// completed without an explicit remark.
const DefaultCloseRemark = "处理完成，工单办结"

// IssueForm carries the fields of the disposal form the operator fills
// in when turning an alarm into a work order.
type IssueForm struct {
	Instruction string               `json:"instruction"`
	Priority    models.IssuePriority `json:"priority"`
	Category    models.IssueCategory `json:"category"`
	Assignee    string               `json:"assignee"`
	DueDate     string               `json:"due_date"`
}

// Incident orchestrates the alarm/issue lifecycle. It owns no data of
// its own: both registries are mutated through one SQL transaction per
// operation, so no reader observes an issue without its linked alarm
// updated, or vice versa. Every state-changing operation emits exactly
// one toast, success or informational, even when it ends up a no-op.
//
// Unknown ids surface as repository.ErrNotFound rather than silently
// doing nothing; acting on a DONE issue is a hard repository.ErrIssueClosed.
// Both policies are applied uniformly across all operations.
type Incident struct {
	db     *sql.DB
	alarms repository.AlarmRepository
	issues repository.IssueRepository
	bus    *notification.Bus
	logger zerolog.Logger
}

func NewIncident(db *sql.DB, alarms repository.AlarmRepository, issues repository.IssueRepository, bus *notification.Bus, logger zerolog.Logger) *Incident {
	return &Incident{
		db:     db,
		alarms: alarms,
		issues: issues,
		bus:    bus,
		logger: logger.With().Str("component", "incident_workflow").Logger(),
	}
}

// CreateIssueFromAlarm turns a PENDING alarm into an OPEN issue, links
// the two records bidirectionally, and flips the alarm to PROCESSING —
// all in one transaction.
func (w *Incident) CreateIssueFromAlarm(ctx context.Context, operator, alarmID string, form IssueForm) (models.Issue, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Issue{}, errors.Wrap(err, "begin create issue from alarm")
	}
	defer tx.Rollback()

	var alarmTitle, alarmDescription string
	var alarmStatus models.AlarmStatus
	err = tx.QueryRowContext(ctx,
		`SELECT title, description, status FROM alarms WHERE id = ?`, alarmID,
	).Scan(&alarmTitle, &alarmDescription, &alarmStatus)
	if err == sql.ErrNoRows {
		w.bus.Show("报警记录不存在", models.ToastSeverityInfo)
		return models.Issue{}, errors.Wrapf(repository.ErrNotFound, "alarm %s", alarmID)
	}
	if err != nil {
		return models.Issue{}, errors.Wrap(err, "load alarm")
	}
	// An alarm carries at most one open issue; only PENDING alarms can
	// spawn a new one.
	if alarmStatus != models.AlarmStatusPending {
		w.bus.Show("该报警已在处置中", models.ToastSeverityInfo)
		return models.Issue{}, errors.Wrapf(repository.ErrInvalidTransition, "alarm %s is %s", alarmID, alarmStatus)
	}

	now := time.Now()
	description := strings.TrimSpace(form.Instruction)
	if description == "" {
		description = alarmDescription
	}
	dueDate := strings.TrimSpace(form.DueDate)
	if dueDate == "" {
		dueDate = timefmt.EndOfDay(now)
	}

	issue := models.Issue{
		ID:             uuid.NewString(),
		Title:          "处置: " + alarmTitle,
		Priority:       form.Priority,
		DueDate:        dueDate,
		Category:       form.Category,
		Status:         models.IssueStatusOpen,
		Description:    description,
		Initiator:      operator,
		Assignee:       form.Assignee,
		RelatedAlarmID: &alarmID,
		CreatedAt:      timefmt.Stamp(now),
		Logs: []models.IssueLog{{
			ID:        uuid.NewString(),
			Action:    models.LogActionCreate,
			Operator:  operator,
			Timestamp: timefmt.Stamp(now),
			Content:   "发起报警处置工单。指派给: " + form.Assignee + ", 备注: " + form.Instruction,
		}},
	}

	if err := repository.InsertIssueTx(ctx, tx, issue); err != nil {
		return models.Issue{}, err
	}
	for _, entry := range issue.Logs {
		if err := repository.AppendLogTx(ctx, tx, issue.ID, entry); err != nil {
			return models.Issue{}, err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE alarms SET status = ?, related_issue_id = ? WHERE id = ?`,
		models.AlarmStatusProcessing, issue.ID, alarmID,
	); err != nil {
		return models.Issue{}, errors.Wrap(err, "link alarm to issue")
	}

	if err := tx.Commit(); err != nil {
		return models.Issue{}, errors.Wrap(err, "commit create issue from alarm")
	}

	w.logger.Info().
		Str("alarm_id", alarmID).
		Str("issue_id", issue.ID).
		Str("operator", operator).
		Msg("issue created from alarm")
	w.bus.Show("工单已生成，已添加至待办事项", models.ToastSeveritySuccess)
	return issue, nil
}

// HandleIssue applies a COMMENT or COMPLETE action to an OPEN issue.
// COMMENT appends a PROCESS entry and leaves the status alone. COMPLETE
// appends a CLOSE entry, marks the issue DONE, and resolves the linked
// alarm if the issue carries one. Once DONE, an issue accepts nothing.
func (w *Incident) HandleIssue(ctx context.Context, operator, issueID string, action models.IssueAction, content string) (models.Issue, error) {
	if !models.IsValidIssueAction(action) {
		return models.Issue{}, errors.Errorf("unknown issue action %q", action)
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Issue{}, errors.Wrap(err, "begin handle issue")
	}
	defer tx.Rollback()

	var status models.IssueStatus
	var relatedAlarmID *string
	err = tx.QueryRowContext(ctx,
		`SELECT status, related_alarm_id FROM issues WHERE id = ?`, issueID,
	).Scan(&status, &relatedAlarmID)
	if err == sql.ErrNoRows {
		w.bus.Show("工单不存在", models.ToastSeverityInfo)
		return models.Issue{}, errors.Wrapf(repository.ErrNotFound, "issue %s", issueID)
	}
	if err != nil {
		return models.Issue{}, errors.Wrap(err, "load issue")
	}
	if status == models.IssueStatusDone {
		w.bus.Show("工单已办结，无法再次操作", models.ToastSeverityInfo)
		return models.Issue{}, errors.Wrapf(repository.ErrIssueClosed, "issue %s", issueID)
	}

	now := time.Now()
	content = strings.TrimSpace(content)

	entry := models.IssueLog{
		ID:        uuid.NewString(),
		Operator:  operator,
		Timestamp: timefmt.Stamp(now),
		Content:   content,
	}
	switch action {
	case models.IssueActionComplete:
		entry.Action = models.LogActionClose
		if entry.Content == "" {
			entry.Content = DefaultCloseRemark
		}
	case models.IssueActionComment:
		entry.Action = models.LogActionProcess
	}

	if err := repository.AppendLogTx(ctx, tx, issueID, entry); err != nil {
		return models.Issue{}, err
	}

	if action == models.IssueActionComplete {
		if _, err := tx.ExecContext(ctx,
			`UPDATE issues SET status = ? WHERE id = ?`, models.IssueStatusDone, issueID,
		); err != nil {
			return models.Issue{}, errors.Wrap(err, "close issue")
		}
		// Completion propagates one way only: closing the issue always
		// resolves the originating alarm.
		if relatedAlarmID != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE alarms SET status = ? WHERE id = ?`, models.AlarmStatusResolved, *relatedAlarmID,
			); err != nil {
				return models.Issue{}, errors.Wrap(err, "resolve linked alarm")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Issue{}, errors.Wrap(err, "commit handle issue")
	}

	w.logger.Info().
		Str("issue_id", issueID).
		Str("action", string(action)).
		Str("operator", operator).
		Msg("issue handled")
	if action == models.IssueActionComplete {
		w.bus.Show("工单已办结", models.ToastSeveritySuccess)
	} else {
		w.bus.Show("处理记录已提交", models.ToastSeveritySuccess)
	}

	handled, err := w.issues.Get(ctx, issueID)
	if err != nil {
		return models.Issue{}, errors.Wrap(err, "reload issue")
	}
	return handled, nil
}

// IssueDraft describes a directly created work order, the path used for
// patrol tasks, repair orders, and fire-safety hazards that do not
// originate from an alarm.
type IssueDraft struct {
	Title       string               `json:"title"`
	Priority    models.IssuePriority `json:"priority"`
	DueDate     string               `json:"due_date"`
	Category    models.IssueCategory `json:"category"`
	Description string               `json:"description"`
	Assignee    string               `json:"assignee"`
	Remark      string               `json:"remark"`
}

// CreateIssue creates a work order that is not linked to any alarm.
func (w *Incident) CreateIssue(ctx context.Context, operator string, draft IssueDraft) (models.Issue, error) {
	now := time.Now()
	dueDate := strings.TrimSpace(draft.DueDate)
	if dueDate == "" {
		dueDate = timefmt.EndOfDay(now)
	}
	content := strings.TrimSpace(draft.Remark)
	if content == "" {
		content = "任务派发"
	}

	issue := models.Issue{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Priority:    draft.Priority,
		DueDate:     dueDate,
		Category:    draft.Category,
		Status:      models.IssueStatusOpen,
		Description: draft.Description,
		Initiator:   operator,
		Assignee:    draft.Assignee,
		CreatedAt:   timefmt.Stamp(now),
		Logs: []models.IssueLog{{
			ID:        uuid.NewString(),
			Action:    models.LogActionCreate,
			Operator:  operator,
			Timestamp: timefmt.Stamp(now),
			Content:   content,
		}},
	}

	created, err := w.issues.Add(ctx, issue)
	if err != nil {
		return models.Issue{}, err
	}
	w.bus.Show("工单已创建", models.ToastSeveritySuccess)
	return created, nil
}

// ReportAlarm inserts an externally reported alarm. Reported alarms
// always start PENDING regardless of what the caller sent.
func (w *Incident) ReportAlarm(ctx context.Context, alarm models.Alarm) (models.Alarm, error) {
	if alarm.ID == "" {
		alarm.ID = uuid.NewString()
	}
	if alarm.Timestamp == "" {
		alarm.Timestamp = timefmt.Clock(time.Now())
	}
	alarm.Status = models.AlarmStatusPending
	alarm.RelatedIssueID = nil

	reported, err := w.alarms.Add(ctx, alarm)
	if err != nil {
		return models.Alarm{}, err
	}
	w.bus.Show("收到新的报警消息", models.ToastSeverityError)
	return reported, nil
}

var alarmStatusRank = map[models.AlarmStatus]int{
	models.AlarmStatusPending:    0,
	models.AlarmStatusProcessing: 1,
	models.AlarmStatusResolved:   2,
}

// OverrideAlarmStatus is the manual escape hatch behind the dashboard's
// "mark resolved" button. It bypasses issue creation but still honors
// the alarm state machine: the status only ever moves forward, and
// re-applying the current status is an idempotent no-op.
func (w *Incident) OverrideAlarmStatus(ctx context.Context, operator, alarmID string, status models.AlarmStatus) error {
	if !models.IsValidAlarmStatus(status) {
		return errors.Errorf("unknown alarm status %q", status)
	}

	alarm, err := w.alarms.Get(ctx, alarmID)
	if errors.Is(err, repository.ErrNotFound) {
		w.bus.Show("报警记录不存在", models.ToastSeverityInfo)
		return errors.Wrapf(repository.ErrNotFound, "alarm %s", alarmID)
	}
	if err != nil {
		return err
	}

	if alarmStatusRank[status] < alarmStatusRank[alarm.Status] {
		w.bus.Show("报警状态不允许该操作", models.ToastSeverityInfo)
		return errors.Wrapf(repository.ErrInvalidTransition, "alarm %s: %s -> %s", alarmID, alarm.Status, status)
	}

	if err := w.alarms.SetStatus(ctx, alarmID, status); err != nil {
		return err
	}
	w.logger.Info().
		Str("alarm_id", alarmID).
		Str("status", string(status)).
		Str("operator", operator).
		Msg("alarm status overridden")
	w.bus.Show("报警状态已更新", models.ToastSeveritySuccess)
	return nil
}
