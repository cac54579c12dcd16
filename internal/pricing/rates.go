package pricing

import "github.com/shopspring/decimal"

// WeekendPolicy selects how the weekend surcharge is applied.
type WeekendPolicy string

const (
	// WeekendPolicyPickupDay applies one surcharge against the whole vehicle
	// base total when the pickup date falls on Fri/Sat/Sun.
	WeekendPolicyPickupDay WeekendPolicy = "pickup-day"
	// WeekendPolicyPerDay surcharges each Fri/Sat/Sun day in the rental span
	// individually at the daily rate.
	WeekendPolicyPerDay WeekendPolicy = "per-day"
)

// RateTable holds every rate and fee the pricing calculator uses. It is
// resolved once per request from the persisted pricing settings and passed
// in explicitly; the calculator never reads global state.
type RateTable struct {
	PSTRate              decimal.Decimal
	GSTRate              decimal.Decimal
	PVRTDailyFee         decimal.Decimal
	ACSRCHDailyFee       decimal.Decimal
	WeekendSurchargeRate decimal.Decimal
	WeekendPolicy        WeekendPolicy
	WeeklyDiscountDays   int
	WeeklyDiscountRate   decimal.Decimal
	MonthlyDiscountDays  int
	MonthlyDiscountRate  decimal.Decimal
	YoungDriverDailyFee  decimal.Decimal
	LateGraceMinutes     int
	LateHourlyRate       decimal.Decimal
	Version              int32
}

// DefaultRateTable returns the British Columbia rate card the platform ships
// with: 7% PST, 5% GST, $1.50/day PVRT, $1.00/day ACSRCH, 15% weekend
// surcharge on the pickup day, 10% weekly / 20% monthly duration discounts
// and a $15.00/day young-driver fee.
func DefaultRateTable() RateTable {
	return RateTable{
		PSTRate:              decimal.NewFromFloat(0.07),
		GSTRate:              decimal.NewFromFloat(0.05),
		PVRTDailyFee:         decimal.NewFromFloat(1.50),
		ACSRCHDailyFee:       decimal.NewFromFloat(1.00),
		WeekendSurchargeRate: decimal.NewFromFloat(0.15),
		WeekendPolicy:        WeekendPolicyPickupDay,
		WeeklyDiscountDays:   7,
		WeeklyDiscountRate:   decimal.NewFromFloat(0.10),
		MonthlyDiscountDays:  21,
		MonthlyDiscountRate:  decimal.NewFromFloat(0.20),
		YoungDriverDailyFee:  decimal.NewFromFloat(15.00),
		LateGraceMinutes:     30,
		LateHourlyRate:       decimal.NewFromFloat(25.00),
		Version:              1,
	}
}
