package models

// VehicleRecord is a plate-capture record from a gate or lane camera.
type VehicleRecord struct {
	ID            string  `json:"id" db:"id"`
	Plate         string  `json:"plate" db:"plate"`
	Color         string  `json:"color" db:"color"`
	Type          string  `json:"type" db:"type"`
	Timestamp     string  `json:"timestamp" db:"timestamp"`
	Location      string  `json:"location" db:"location"`
	ImageURL      string  `json:"image_url" db:"image_url"`
	IsWatchlisted bool    `json:"is_watchlisted" db:"is_watchlisted"`
	OwnerName     string  `json:"owner_name" db:"owner_name"`
	Speed         int     `json:"speed" db:"speed"`
	Direction     string  `json:"direction" db:"direction"`
	Lane          int     `json:"lane" db:"lane"`
	Confidence    float64 `json:"confidence" db:"confidence"`
}
