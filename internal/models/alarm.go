package models

type AlarmType string

const (
	AlarmTypeIntrusion AlarmType = "INTRUSION"
	AlarmTypeFire      AlarmType = "FIRE"
	AlarmTypeVehicle   AlarmType = "VEHICLE"
	AlarmTypeSystem    AlarmType = "SYSTEM"
)

func IsValidAlarmType(t AlarmType) bool {
	switch t {
	case AlarmTypeIntrusion, AlarmTypeFire, AlarmTypeVehicle, AlarmTypeSystem:
		return true
	}
	return false
}

type AlarmStatus string

const (
	AlarmStatusPending    AlarmStatus = "PENDING"
	AlarmStatusProcessing AlarmStatus = "PROCESSING"
	AlarmStatusResolved   AlarmStatus = "RESOLVED"
)

func IsValidAlarmStatus(s AlarmStatus) bool {
	switch s {
	case AlarmStatusPending, AlarmStatusProcessing, AlarmStatusResolved:
		return true
	}
	return false
}

// Alarm is a detected security/fire/vehicle event requiring triage.
// Alarms are permanent history: they are never deleted, only moved
// through PENDING -> PROCESSING -> RESOLVED.
type Alarm struct {
	ID             string      `json:"id" db:"id"`
	Type           AlarmType   `json:"type" db:"type"`
	Title          string      `json:"title" db:"title"`
	Timestamp      string      `json:"timestamp" db:"timestamp"`
	CameraName     string      `json:"camera_name" db:"camera_name"`
	Status         AlarmStatus `json:"status" db:"status"`
	Description    string      `json:"description" db:"description"`
	SnapshotURL    string      `json:"snapshot_url" db:"snapshot_url"`
	RelatedIssueID *string     `json:"related_issue_id,omitempty" db:"related_issue_id"`
}
