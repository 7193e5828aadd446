package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aegisops/aegis-api/internal/models"
)

// AlarmRepository owns the alarm registry. Alarms are permanent history:
// there is no delete. The repository does not validate status-transition
// legality; that business rule belongs to the incident workflow.
type AlarmRepository interface {
	Add(ctx context.Context, alarm models.Alarm) (models.Alarm, error)
	Get(ctx context.Context, id string) (models.Alarm, error)
	List(ctx context.Context) ([]models.Alarm, error)
	SetStatus(ctx context.Context, id string, status models.AlarmStatus) error
}

type alarmRepository struct {
	db *sql.DB
}

func NewAlarmRepository(db *sql.DB) AlarmRepository {
	return &alarmRepository{db: db}
}

func (r *alarmRepository) Add(ctx context.Context, alarm models.Alarm) (models.Alarm, error) {
	const query = `
		INSERT INTO alarms (id, type, title, timestamp, camera_name, status, description, snapshot_url, related_issue_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		alarm.ID,
		alarm.Type,
		alarm.Title,
		alarm.Timestamp,
		alarm.CameraName,
		alarm.Status,
		alarm.Description,
		alarm.SnapshotURL,
		alarm.RelatedIssueID,
	)
	if err != nil {
		if isUniqueErr(err) {
			return models.Alarm{}, fmt.Errorf("insert alarm %s: %w", alarm.ID, ErrDuplicate)
		}
		return models.Alarm{}, fmt.Errorf("insert alarm: %w", err)
	}
	return alarm, nil
}

func (r *alarmRepository) Get(ctx context.Context, id string) (models.Alarm, error) {
	const query = `
		SELECT id, type, title, timestamp, camera_name, status, description, snapshot_url, related_issue_id
		FROM alarms
		WHERE id = ?
	`
	return scanAlarm(r.db.QueryRowContext(ctx, query, id))
}

// List returns all alarms newest-first.
func (r *alarmRepository) List(ctx context.Context) ([]models.Alarm, error) {
	const query = `
		SELECT id, type, title, timestamp, camera_name, status, description, snapshot_url, related_issue_id
		FROM alarms
		ORDER BY rowid DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()

	var alarms []models.Alarm
	for rows.Next() {
		var a models.Alarm
		if err := rows.Scan(
			&a.ID,
			&a.Type,
			&a.Title,
			&a.Timestamp,
			&a.CameraName,
			&a.Status,
			&a.Description,
			&a.SnapshotURL,
			&a.RelatedIssueID,
		); err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}
		alarms = append(alarms, a)
	}
	return alarms, rows.Err()
}

// SetStatus is idempotent: re-applying the current status is not an error.
func (r *alarmRepository) SetStatus(ctx context.Context, id string, status models.AlarmStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE alarms SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set alarm status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set alarm status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alarm %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlarm(row rowScanner) (models.Alarm, error) {
	var a models.Alarm
	err := row.Scan(
		&a.ID,
		&a.Type,
		&a.Title,
		&a.Timestamp,
		&a.CameraName,
		&a.Status,
		&a.Description,
		&a.SnapshotURL,
		&a.RelatedIssueID,
	)
	if err == sql.ErrNoRows {
		return models.Alarm{}, ErrNotFound
	}
	if err != nil {
		return models.Alarm{}, fmt.Errorf("scan alarm: %w", err)
	}
	return a, nil
}
