package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgeBand is the primary driver's age band as collected at checkout.
type AgeBand string

const (
	AgeBandYoung    AgeBand = "20_24"
	AgeBandStandard AgeBand = "25_70"
)

// DiscountType tags which duration discount tier applied.
type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountWeekly  DiscountType = "weekly"
	DiscountMonthly DiscountType = "monthly"
)

// PricingInput is the full tuple the calculator prices. It is immutable per
// call; negative values are the caller's responsibility to reject upstream.
type PricingInput struct {
	VehicleDailyRate     decimal.Decimal
	RentalDays           int
	ProtectionDailyRate  decimal.Decimal
	AddOnsTotal          decimal.Decimal
	DeliveryFee          decimal.Decimal
	DifferentDropoffFee  decimal.Decimal
	DriverAgeBand        AgeBand
	PickupDate           *time.Time
	LateFeeAmount        decimal.Decimal
}

// PricingBreakdown is fully derived from a PricingInput and a RateTable.
// Every monetary field is already rounded to cents.
type PricingBreakdown struct {
	VehicleBaseTotal      decimal.Decimal `json:"vehicle_base_total"`
	WeekendSurcharge      decimal.Decimal `json:"weekend_surcharge"`
	VehicleAfterSurcharge decimal.Decimal `json:"vehicle_after_surcharge"`
	DurationDiscount      decimal.Decimal `json:"duration_discount"`
	DiscountType          DiscountType    `json:"discount_type"`
	VehicleTotal          decimal.Decimal `json:"vehicle_total"`
	ProtectionTotal       decimal.Decimal `json:"protection_total"`
	PVRTTotal             decimal.Decimal `json:"pvrt_total"`
	ACSRCHTotal           decimal.Decimal `json:"acsrch_total"`
	DailyFeesTotal        decimal.Decimal `json:"daily_fees_total"`
	YoungDriverFee        decimal.Decimal `json:"young_driver_fee"`
	AddOnsTotal           decimal.Decimal `json:"add_ons_total"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	DifferentDropoffFee   decimal.Decimal `json:"different_dropoff_fee"`
	LateFee               decimal.Decimal `json:"late_fee"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	PSTAmount             decimal.Decimal `json:"pst_amount"`
	GSTAmount             decimal.Decimal `json:"gst_amount"`
	TaxAmount             decimal.Decimal `json:"tax_amount"`
	Total                 decimal.Decimal `json:"total"`
	RateVersion           int32           `json:"rate_version"`
}

// DurationDiscount describes the discount tier for a rental length.
type DurationDiscount struct {
	Rate decimal.Decimal
	Type DiscountType
}

// round2 rounds to cents, half up. Applied to every intermediate monetary
// value before it feeds a later sum so repeated calculations cannot drift.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GetDurationDiscount returns the discount tier for the rental length:
// 21+ days monthly, 7+ days weekly, otherwise none.
func GetDurationDiscount(rentalDays int, table RateTable) DurationDiscount {
	switch {
	case rentalDays >= table.MonthlyDiscountDays:
		return DurationDiscount{Rate: table.MonthlyDiscountRate, Type: DiscountMonthly}
	case rentalDays >= table.WeeklyDiscountDays:
		return DurationDiscount{Rate: table.WeeklyDiscountRate, Type: DiscountWeekly}
	default:
		return DurationDiscount{Rate: decimal.Zero, Type: DiscountNone}
	}
}

// weekendSurcharge computes the surcharge under the table's configured
// policy. Pickup-day policy charges once against the whole base total when
// the pickup date is a weekend day; per-day policy charges the daily rate
// for each weekend day in the span.
func weekendSurcharge(input PricingInput, base decimal.Decimal, table RateTable) decimal.Decimal {
	switch table.WeekendPolicy {
	case WeekendPolicyPerDay:
		weekendDays := CountWeekendDays(input.PickupDate, input.RentalDays)
		if weekendDays == 0 {
			return decimal.Zero
		}
		return round2(input.VehicleDailyRate.
			Mul(decimal.NewFromInt(int64(weekendDays))).
			Mul(table.WeekendSurchargeRate))
	default:
		if !IsWeekendPickup(input.PickupDate) {
			return decimal.Zero
		}
		return round2(base.Mul(table.WeekendSurchargeRate))
	}
}

// CalculateBookingPricing computes the full price breakdown for a booking.
// Pure and deterministic: identical inputs always produce identical
// breakdowns, and the invariant total == round2(subtotal + pst + gst) holds
// for any well-typed input.
func CalculateBookingPricing(input PricingInput, table RateTable) PricingBreakdown {
	days := decimal.NewFromInt(int64(input.RentalDays))

	vehicleBase := round2(input.VehicleDailyRate.Mul(days))
	surcharge := weekendSurcharge(input, vehicleBase, table)
	afterSurcharge := vehicleBase.Add(surcharge)

	discount := GetDurationDiscount(input.RentalDays, table)
	discountAmount := round2(afterSurcharge.Mul(discount.Rate))
	vehicleTotal := afterSurcharge.Sub(discountAmount)

	protectionTotal := round2(input.ProtectionDailyRate.Mul(days))

	pvrtTotal := round2(table.PVRTDailyFee.Mul(days))
	acsrchTotal := round2(table.ACSRCHDailyFee.Mul(days))
	dailyFeesTotal := pvrtTotal.Add(acsrchTotal)

	youngDriverFee := decimal.Zero
	if input.DriverAgeBand == AgeBandYoung {
		youngDriverFee = round2(table.YoungDriverDailyFee.Mul(days))
	}

	addOns := round2(input.AddOnsTotal)
	delivery := round2(input.DeliveryFee)
	dropoff := round2(input.DifferentDropoffFee)
	lateFee := round2(input.LateFeeAmount)

	subtotal := round2(vehicleTotal.
		Add(protectionTotal).
		Add(addOns).
		Add(delivery).
		Add(dropoff).
		Add(youngDriverFee).
		Add(dailyFeesTotal).
		Add(lateFee))

	pstAmount := round2(subtotal.Mul(table.PSTRate))
	gstAmount := round2(subtotal.Mul(table.GSTRate))
	taxAmount := round2(pstAmount.Add(gstAmount))
	total := round2(subtotal.Add(taxAmount))

	return PricingBreakdown{
		VehicleBaseTotal:      vehicleBase,
		WeekendSurcharge:      surcharge,
		VehicleAfterSurcharge: afterSurcharge,
		DurationDiscount:      discountAmount,
		DiscountType:          discount.Type,
		VehicleTotal:          vehicleTotal,
		ProtectionTotal:       protectionTotal,
		PVRTTotal:             pvrtTotal,
		ACSRCHTotal:           acsrchTotal,
		DailyFeesTotal:        dailyFeesTotal,
		YoungDriverFee:        youngDriverFee,
		AddOnsTotal:           addOns,
		DeliveryFee:           delivery,
		DifferentDropoffFee:   dropoff,
		LateFee:               lateFee,
		Subtotal:              subtotal,
		PSTAmount:             pstAmount,
		GSTAmount:             gstAmount,
		TaxAmount:             taxAmount,
		Total:                 total,
		RateVersion:           table.Version,
	}
}

// CalculateLateFee computes the late-return charge. The first
// table.LateGraceMinutes are free. Billable minutes round up to whole
// hours. With a known daily rate the first two hours bill at 25% of the
// daily rate each, beyond that one additional full day is charged. Without
// a daily rate the flat hourly rate applies, capped at 24 billable hours.
func CalculateLateFee(minutesLate int, dailyRate *decimal.Decimal, table RateTable) decimal.Decimal {
	if minutesLate <= table.LateGraceMinutes {
		return decimal.Zero
	}

	billableMinutes := minutesLate - table.LateGraceMinutes
	hoursLate := billableMinutes / 60
	if billableMinutes%60 > 0 {
		hoursLate++
	}

	if dailyRate != nil {
		if hoursLate <= 2 {
			return round2(decimal.NewFromInt(int64(hoursLate)).
				Mul(*dailyRate).
				Mul(decimal.NewFromFloat(0.25)))
		}
		return round2(*dailyRate)
	}

	if hoursLate > 24 {
		hoursLate = 24
	}
	return round2(decimal.NewFromInt(int64(hoursLate)).Mul(table.LateHourlyRate))
}
