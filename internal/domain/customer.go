package domain

import "time"

type Customer struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	DriverLicense string    `json:"driver_license"`
	DateOfBirth   string    `json:"date_of_birth"`
	AgeBand       string    `json:"age_band"`
	Blocked       bool      `json:"blocked"`
	BlockReason   string    `json:"block_reason,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
