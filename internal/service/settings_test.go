package service

import (
	"context"
	"testing"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettingsService_ResolveRateTable(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsWhenEmpty", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("GetAll", ctx).Return([]domain.PricingSetting{}, nil)

		table, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).ResolveRateTable(ctx)
		assert.NoError(t, err)
		assert.Equal(t, pricing.DefaultRateTable(), table)
		assert.Equal(t, int32(1), table.Version)
	})

	t.Run("OverridesApplied", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("GetAll", ctx).Return([]domain.PricingSetting{
			{Key: "tax.pst_rate", Value: "0.08", Version: 3},
			{Key: "surcharge.weekend_policy", Value: "per-day", Version: 7},
			{Key: "late.grace_minutes", Value: "45", Version: 5},
		}, nil)

		table, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).ResolveRateTable(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "0.08", table.PSTRate.String())
		assert.Equal(t, pricing.WeekendPolicyPerDay, table.WeekendPolicy)
		assert.Equal(t, 45, table.LateGraceMinutes)
		assert.Equal(t, int32(7), table.Version)
	})

	t.Run("ConfiguredPolicyIsTheBaseline", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("GetAll", ctx).Return([]domain.PricingSetting{}, nil)

		table, err := NewSettingsService(repo, pricing.WeekendPolicyPerDay).ResolveRateTable(ctx)
		assert.NoError(t, err)
		assert.Equal(t, pricing.WeekendPolicyPerDay, table.WeekendPolicy)
	})

	t.Run("PersistedPolicyBeatsConfigured", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("GetAll", ctx).Return([]domain.PricingSetting{
			{Key: "surcharge.weekend_policy", Value: "pickup-day", Version: 2},
		}, nil)

		table, err := NewSettingsService(repo, pricing.WeekendPolicyPerDay).ResolveRateTable(ctx)
		assert.NoError(t, err)
		assert.Equal(t, pricing.WeekendPolicyPickupDay, table.WeekendPolicy)
	})

	t.Run("UnknownKeySkipped", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("GetAll", ctx).Return([]domain.PricingSetting{
			{Key: "fees.carbon_daily", Value: "2.50", Version: 9},
		}, nil)

		table, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).ResolveRateTable(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), table.Version)
	})
}

func TestSettingsService_UpdateSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("Upsert", ctx, mock.AnythingOfType("*domain.PricingSetting")).Return(nil)

		setting, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).UpdateSetting(ctx, 9, "tax.gst_rate", "0.06")
		assert.NoError(t, err)
		assert.Equal(t, "tax.gst_rate", setting.Key)
		assert.Equal(t, "0.06", setting.Value)
		if assert.NotNil(t, setting.UpdatedBy) {
			assert.Equal(t, int32(9), *setting.UpdatedBy)
		}
	})

	t.Run("UnknownKeyRejected", func(t *testing.T) {
		repo := new(MockSettingsRepo)

		_, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).UpdateSetting(ctx, 9, "fees.carbon_daily", "2.50")
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "Upsert", ctx, mock.Anything)
	})

	t.Run("BadValueRejected", func(t *testing.T) {
		repo := new(MockSettingsRepo)

		_, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).UpdateSetting(ctx, 9, "tax.pst_rate", "seven percent")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("BadWeekendPolicyRejected", func(t *testing.T) {
		repo := new(MockSettingsRepo)

		_, err := NewSettingsService(repo, pricing.WeekendPolicyPickupDay).UpdateSetting(ctx, 9, "surcharge.weekend_policy", "fridays-only")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
