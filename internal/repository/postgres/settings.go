package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Upsert(ctx context.Context, s *domain.PricingSetting) error {
	// Every write bumps the global settings version so resolved rate
	// tables can be tied back to the configuration they were built from.
	query := `INSERT INTO pricing_settings (key, value, version, updated_by, updated_on)
		VALUES ($1, $2, (SELECT COALESCE(MAX(version), 0) + 1 FROM pricing_settings), $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			version = EXCLUDED.version,
			updated_by = EXCLUDED.updated_by,
			updated_on = EXCLUDED.updated_on
		RETURNING id, version`
	return r.db.QueryRowContext(ctx, query, s.Key, s.Value, s.UpdatedBy, time.Now()).Scan(&s.ID, &s.Version)
}

func (r *settingsRepository) GetAll(ctx context.Context) ([]domain.PricingSetting, error) {
	query := `SELECT id, key, value, version, updated_by, updated_on FROM pricing_settings ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.PricingSetting
	for rows.Next() {
		var s domain.PricingSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Version, &s.UpdatedBy, &s.UpdatedOn); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *settingsRepository) CurrentVersion(ctx context.Context) (int32, error) {
	var version int32
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM pricing_settings`).Scan(&version)
	return version, err
}
