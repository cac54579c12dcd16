package domain

import "time"

type IncidentSeverity string

const (
	IncidentSeverityMinor    IncidentSeverity = "MINOR"
	IncidentSeverityModerate IncidentSeverity = "MODERATE"
	IncidentSeverityMajor    IncidentSeverity = "MAJOR"
)

type IncidentStatus string

const (
	IncidentStatusOpen     IncidentStatus = "OPEN"
	IncidentStatusReviewed IncidentStatus = "REVIEWED"
	IncidentStatusResolved IncidentStatus = "RESOLVED"
)

type Incident struct {
	ID          int32            `json:"id"`
	BookingID   int32            `json:"booking_id"`
	VehicleID   *int32           `json:"vehicle_id,omitempty"`
	Severity    IncidentSeverity `json:"severity"`
	Status      IncidentStatus   `json:"status"`
	Description string           `json:"description"`
	ReportedBy  int32            `json:"reported_by"`
	Resolution  string           `json:"resolution,omitempty"`
	CreatedOn   time.Time        `json:"created_on"`
	UpdatedOn   time.Time        `json:"updated_on"`
}

// EvidencePhoto is a stored photo attached to a booking's return workflow
// evidence step or to an incident.
type EvidencePhoto struct {
	ID         int32     `json:"id"`
	BookingID  int32     `json:"booking_id"`
	IncidentID *int32    `json:"incident_id,omitempty"`
	StorageKey string    `json:"storage_key"`
	Caption    string    `json:"caption,omitempty"`
	UploadedBy int32     `json:"uploaded_by"`
	CreatedOn  time.Time `json:"created_on"`
}
