package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aegisops/aegis-api/internal/models"
)

type VehicleRepository interface {
	Add(ctx context.Context, vehicle models.VehicleRecord) error
	List(ctx context.Context) ([]models.VehicleRecord, error)
	ToggleWatchlist(ctx context.Context, id string) (models.VehicleRecord, error)
}

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Add(ctx context.Context, vehicle models.VehicleRecord) error {
	const query = `
		INSERT INTO vehicles (id, plate, color, type, timestamp, location, image_url, is_watchlisted, owner_name, speed, direction, lane, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Plate,
		vehicle.Color,
		vehicle.Type,
		vehicle.Timestamp,
		vehicle.Location,
		vehicle.ImageURL,
		vehicle.IsWatchlisted,
		vehicle.OwnerName,
		vehicle.Speed,
		vehicle.Direction,
		vehicle.Lane,
		vehicle.Confidence,
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("insert vehicle %s: %w", vehicle.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// List returns capture records newest-first.
func (r *vehicleRepository) List(ctx context.Context) ([]models.VehicleRecord, error) {
	const query = `
		SELECT id, plate, color, type, timestamp, location, image_url, is_watchlisted, owner_name, speed, direction, lane, confidence
		FROM vehicles
		ORDER BY rowid DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.VehicleRecord
	for rows.Next() {
		var v models.VehicleRecord
		if err := rows.Scan(
			&v.ID,
			&v.Plate,
			&v.Color,
			&v.Type,
			&v.Timestamp,
			&v.Location,
			&v.ImageURL,
			&v.IsWatchlisted,
			&v.OwnerName,
			&v.Speed,
			&v.Direction,
			&v.Lane,
			&v.Confidence,
		); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) ToggleWatchlist(ctx context.Context, id string) (models.VehicleRecord, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET is_watchlisted = NOT is_watchlisted WHERE id = ?`, id)
	if err != nil {
		return models.VehicleRecord{}, fmt.Errorf("toggle watchlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.VehicleRecord{}, fmt.Errorf("toggle watchlist: %w", err)
	}
	if affected == 0 {
		return models.VehicleRecord{}, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}

	const query = `
		SELECT id, plate, color, type, timestamp, location, image_url, is_watchlisted, owner_name, speed, direction, lane, confidence
		FROM vehicles
		WHERE id = ?
	`
	var v models.VehicleRecord
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID,
		&v.Plate,
		&v.Color,
		&v.Type,
		&v.Timestamp,
		&v.Location,
		&v.ImageURL,
		&v.IsWatchlisted,
		&v.OwnerName,
		&v.Speed,
		&v.Direction,
		&v.Lane,
		&v.Confidence,
	)
	if err != nil {
		return models.VehicleRecord{}, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}
