package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusRetired     VehicleStatus = "RETIRED"
)

type Vehicle struct {
	ID                  int32           `json:"id"`
	CategoryID          *int32          `json:"category_id,omitempty"`
	Make                string          `json:"make"`
	Model               string          `json:"model"`
	Year                int             `json:"year"`
	LicensePlate        string          `json:"license_plate"`
	Odometer            int32           `json:"odometer"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	ProtectionDailyRate decimal.Decimal `json:"protection_daily_rate"`
	Status              VehicleStatus   `json:"status"`
	Location            string          `json:"location"`
	CreatedOn           time.Time       `json:"created_on"`
	UpdatedOn           time.Time       `json:"updated_on"`
}

type VehicleCategory struct {
	ID                  int32           `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	ProtectionDailyRate decimal.Decimal `json:"protection_daily_rate"`
	CreatedOn           time.Time       `json:"created_on"`
}

// UnitKind tags what a booking is actually for: a specific fleet vehicle or
// a vehicle category fulfilled at pickup time.
type UnitKind string

const (
	UnitKindVehicle  UnitKind = "vehicle"
	UnitKindCategory UnitKind = "category"
)

// BookedUnit is the tagged union a booking row's polymorphic unit reference
// resolves to. Resolution happens once at the repository boundary; nothing
// downstream inspects raw row shape.
type BookedUnit struct {
	Kind     UnitKind         `json:"kind"`
	Vehicle  *Vehicle         `json:"vehicle,omitempty"`
	Category *VehicleCategory `json:"category,omitempty"`
}

// DailyRate returns the unit's base daily rate regardless of kind.
func (u BookedUnit) DailyRate() decimal.Decimal {
	switch u.Kind {
	case UnitKindVehicle:
		if u.Vehicle != nil {
			return u.Vehicle.DailyRate
		}
	case UnitKindCategory:
		if u.Category != nil {
			return u.Category.DailyRate
		}
	}
	return decimal.Zero
}

// ProtectionDailyRate returns the unit's protection-plan daily rate.
func (u BookedUnit) ProtectionDailyRate() decimal.Decimal {
	switch u.Kind {
	case UnitKindVehicle:
		if u.Vehicle != nil {
			return u.Vehicle.ProtectionDailyRate
		}
	case UnitKindCategory:
		if u.Category != nil {
			return u.Category.ProtectionDailyRate
		}
	}
	return decimal.Zero
}
