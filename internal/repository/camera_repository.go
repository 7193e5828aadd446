package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aegisops/aegis-api/internal/models"
)

// CameraRepository is a read-mostly directory; cameras are seeded at
// startup and served for display only.
type CameraRepository interface {
	Add(ctx context.Context, camera models.Camera) error
	List(ctx context.Context) ([]models.Camera, error)
}

type cameraRepository struct {
	db *sql.DB
}

func NewCameraRepository(db *sql.DB) CameraRepository {
	return &cameraRepository{db: db}
}

func (r *cameraRepository) Add(ctx context.Context, camera models.Camera) error {
	const query = `
		INSERT INTO cameras (id, name, location, status, type, thumbnail, longitude, latitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		camera.ID,
		camera.Name,
		camera.Location,
		camera.Status,
		camera.Type,
		camera.Thumbnail,
		camera.Longitude,
		camera.Latitude,
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("insert camera %s: %w", camera.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert camera: %w", err)
	}
	return nil
}

func (r *cameraRepository) List(ctx context.Context) ([]models.Camera, error) {
	const query = `
		SELECT id, name, location, status, type, thumbnail, longitude, latitude
		FROM cameras
		ORDER BY rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	defer rows.Close()

	var cameras []models.Camera
	for rows.Next() {
		var c models.Camera
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.Status, &c.Type, &c.Thumbnail, &c.Longitude, &c.Latitude); err != nil {
			return nil, fmt.Errorf("scan camera: %w", err)
		}
		cameras = append(cameras, c)
	}
	return cameras, rows.Err()
}
