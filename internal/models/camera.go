package models

type CameraStatus string

const (
	CameraStatusOnline  CameraStatus = "ONLINE"
	CameraStatusOffline CameraStatus = "OFFLINE"
	CameraStatusAlarm   CameraStatus = "ALARM"
)

// Camera is a display-only directory entry; the core never interprets
// the thumbnail or stream content.
type Camera struct {
	ID        string       `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Location  string       `json:"location" db:"location"`
	Status    CameraStatus `json:"status" db:"status"`
	Type      string       `json:"type" db:"type"`
	Thumbnail string       `json:"thumbnail" db:"thumbnail"`
	Longitude float64      `json:"longitude" db:"longitude"`
	Latitude  float64      `json:"latitude" db:"latitude"`
}
