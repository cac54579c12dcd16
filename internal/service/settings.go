package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"

	"github.com/shopspring/decimal"
)

type settingsService struct {
	settingsRepo  repository.SettingsRepository
	defaultPolicy pricing.WeekendPolicy
}

// NewSettingsService builds the rate-table resolver. defaultPolicy is the
// deployment's configured weekend policy; a persisted
// surcharge.weekend_policy override still wins.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaultPolicy pricing.WeekendPolicy) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, defaultPolicy: defaultPolicy}
}

// Recognized override keys. Anything else is rejected at write time so the
// settings table never accumulates dead rows.
var settingKeys = map[string]bool{
	"tax.pst_rate":             true,
	"tax.gst_rate":             true,
	"fees.pvrt_daily":          true,
	"fees.acsrch_daily":        true,
	"fees.young_driver_daily":  true,
	"surcharge.weekend_rate":   true,
	"surcharge.weekend_policy": true,
	"discount.weekly_days":     true,
	"discount.weekly_rate":     true,
	"discount.monthly_days":    true,
	"discount.monthly_rate":    true,
	"late.grace_minutes":       true,
	"late.hourly_rate":         true,
}

func (s *settingsService) ResolveRateTable(ctx context.Context) (pricing.RateTable, error) {
	table := pricing.DefaultRateTable()
	if s.defaultPolicy != "" {
		table.WeekendPolicy = s.defaultPolicy
	}

	settings, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return table, fmt.Errorf("load pricing settings: %w", err)
	}

	for _, st := range settings {
		if err := applySetting(&table, st.Key, st.Value); err != nil {
			return table, fmt.Errorf("setting %s: %w", st.Key, err)
		}
		if st.Version > table.Version {
			table.Version = st.Version
		}
	}
	return table, nil
}

func applySetting(table *pricing.RateTable, key, value string) error {
	switch key {
	case "tax.pst_rate":
		return setDecimal(&table.PSTRate, value)
	case "tax.gst_rate":
		return setDecimal(&table.GSTRate, value)
	case "fees.pvrt_daily":
		return setDecimal(&table.PVRTDailyFee, value)
	case "fees.acsrch_daily":
		return setDecimal(&table.ACSRCHDailyFee, value)
	case "fees.young_driver_daily":
		return setDecimal(&table.YoungDriverDailyFee, value)
	case "surcharge.weekend_rate":
		return setDecimal(&table.WeekendSurchargeRate, value)
	case "surcharge.weekend_policy":
		policy := pricing.WeekendPolicy(value)
		if policy != pricing.WeekendPolicyPickupDay && policy != pricing.WeekendPolicyPerDay {
			return fmt.Errorf("unknown weekend policy %q", value)
		}
		table.WeekendPolicy = policy
		return nil
	case "discount.weekly_days":
		return setInt(&table.WeeklyDiscountDays, value)
	case "discount.weekly_rate":
		return setDecimal(&table.WeeklyDiscountRate, value)
	case "discount.monthly_days":
		return setInt(&table.MonthlyDiscountDays, value)
	case "discount.monthly_rate":
		return setDecimal(&table.MonthlyDiscountRate, value)
	case "late.grace_minutes":
		return setInt(&table.LateGraceMinutes, value)
	case "late.hourly_rate":
		return setDecimal(&table.LateHourlyRate, value)
	}
	// Unknown keys in the table are skipped rather than fatal: a newer
	// deployment may have written keys this build does not know.
	return nil
}

func setDecimal(dst *decimal.Decimal, value string) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func (s *settingsService) UpdateSetting(ctx context.Context, operatorID int32, key, value string) (*domain.PricingSetting, error) {
	key = strings.TrimSpace(key)
	if !settingKeys[key] {
		return nil, fmt.Errorf("%w: unknown setting key %q", ErrValidation, key)
	}
	// Parse against a scratch table so bad values never reach the store.
	scratch := pricing.DefaultRateTable()
	if err := applySetting(&scratch, key, value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	setting := &domain.PricingSetting{
		Key:       key,
		Value:     value,
		UpdatedBy: &operatorID,
	}
	if err := s.settingsRepo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("save setting: %w", err)
	}
	return setting, nil
}

func (s *settingsService) ListSettings(ctx context.Context) ([]domain.PricingSetting, error) {
	return s.settingsRepo.GetAll(ctx)
}
