package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aegisops/aegis-api/internal/models"
)

// IssueRepository owns the issue registry and each issue's audit trail.
// Trails are append-only; entries are returned in strict insertion order
// and there is no way to reorder or remove them. Status changes and log
// appends for live issues go through the incident workflow, which runs
// them inside a single transaction.
type IssueRepository interface {
	Add(ctx context.Context, issue models.Issue) (models.Issue, error)
	Get(ctx context.Context, id string) (models.Issue, error)
	List(ctx context.Context) ([]models.Issue, error)
}

type issueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Add inserts an issue together with its initial log entries in one
// transaction, so no reader ever observes an issue without its CREATE
// entry.
func (r *issueRepository) Add(ctx context.Context, issue models.Issue) (models.Issue, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Issue{}, fmt.Errorf("begin insert issue: %w", err)
	}
	defer tx.Rollback()

	if err := insertIssueTx(ctx, tx, issue); err != nil {
		return models.Issue{}, err
	}
	for _, entry := range issue.Logs {
		if err := appendLogTx(ctx, tx, issue.ID, entry); err != nil {
			return models.Issue{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.Issue{}, fmt.Errorf("commit insert issue: %w", err)
	}
	return issue, nil
}

func (r *issueRepository) Get(ctx context.Context, id string) (models.Issue, error) {
	const query = `
		SELECT id, title, priority, due_date, category, status, description, initiator, assignee, related_alarm_id, created_at
		FROM issues
		WHERE id = ?
	`
	var issue models.Issue
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&issue.ID,
		&issue.Title,
		&issue.Priority,
		&issue.DueDate,
		&issue.Category,
		&issue.Status,
		&issue.Description,
		&issue.Initiator,
		&issue.Assignee,
		&issue.RelatedAlarmID,
		&issue.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Issue{}, ErrNotFound
	}
	if err != nil {
		return models.Issue{}, fmt.Errorf("get issue: %w", err)
	}

	issue.Logs, err = r.listLogs(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// List returns all issues newest-first, each with its full audit trail.
func (r *issueRepository) List(ctx context.Context) ([]models.Issue, error) {
	const query = `
		SELECT id, title, priority, due_date, category, status, description, initiator, assignee, related_alarm_id, created_at
		FROM issues
		ORDER BY rowid DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		var issue models.Issue
		if err := rows.Scan(
			&issue.ID,
			&issue.Title,
			&issue.Priority,
			&issue.DueDate,
			&issue.Category,
			&issue.Status,
			&issue.Description,
			&issue.Initiator,
			&issue.Assignee,
			&issue.RelatedAlarmID,
			&issue.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logsByIssue, err := r.listAllLogs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range issues {
		issues[i].Logs = logsByIssue[issues[i].ID]
	}
	return issues, nil
}

func (r *issueRepository) listLogs(ctx context.Context, issueID string) ([]models.IssueLog, error) {
	const query = `
		SELECT id, action, operator, timestamp, content
		FROM issue_logs
		WHERE issue_id = ?
		ORDER BY rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, issueID)
	if err != nil {
		return nil, fmt.Errorf("list issue logs: %w", err)
	}
	defer rows.Close()

	var logs []models.IssueLog
	for rows.Next() {
		var entry models.IssueLog
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Operator, &entry.Timestamp, &entry.Content); err != nil {
			return nil, fmt.Errorf("scan issue log: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (r *issueRepository) listAllLogs(ctx context.Context) (map[string][]models.IssueLog, error) {
	const query = `
		SELECT issue_id, id, action, operator, timestamp, content
		FROM issue_logs
		ORDER BY rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list issue logs: %w", err)
	}
	defer rows.Close()

	logs := make(map[string][]models.IssueLog)
	for rows.Next() {
		var issueID string
		var entry models.IssueLog
		if err := rows.Scan(&issueID, &entry.ID, &entry.Action, &entry.Operator, &entry.Timestamp, &entry.Content); err != nil {
			return nil, fmt.Errorf("scan issue log: %w", err)
		}
		logs[issueID] = append(logs[issueID], entry)
	}
	return logs, rows.Err()
}

// insertIssueTx and appendLogTx are shared with the incident workflow,
// which performs its cross-registry mutations inside one transaction.

func insertIssueTx(ctx context.Context, tx *sql.Tx, issue models.Issue) error {
	const query = `
		INSERT INTO issues (id, title, priority, due_date, category, status, description, initiator, assignee, related_alarm_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		issue.ID,
		issue.Title,
		issue.Priority,
		issue.DueDate,
		issue.Category,
		issue.Status,
		issue.Description,
		issue.Initiator,
		issue.Assignee,
		issue.RelatedAlarmID,
		issue.CreatedAt,
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("insert issue %s: %w", issue.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func appendLogTx(ctx context.Context, tx *sql.Tx, issueID string, entry models.IssueLog) error {
	const query = `
		INSERT INTO issue_logs (id, issue_id, action, operator, timestamp, content)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query, entry.ID, issueID, entry.Action, entry.Operator, entry.Timestamp, entry.Content)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("append issue log %s: %w", entry.ID, ErrDuplicate)
		}
		return fmt.Errorf("append issue log: %w", err)
	}
	return nil
}

// InsertIssueTx inserts an issue row as part of a caller-owned transaction.
func InsertIssueTx(ctx context.Context, tx *sql.Tx, issue models.Issue) error {
	return insertIssueTx(ctx, tx, issue)
}

// AppendLogTx appends an audit entry as part of a caller-owned transaction.
func AppendLogTx(ctx context.Context, tx *sql.Tx, issueID string, entry models.IssueLog) error {
	return appendLogTx(ctx, tx, issueID, entry)
}
