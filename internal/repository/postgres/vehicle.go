package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (category_id, make, model, year, license_plate, odometer,
		daily_rate, protection_daily_rate, status, location, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.CategoryID, v.Make, v.Model, v.Year, v.LicensePlate,
		v.Odometer, v.DailyRate, v.ProtectionDailyRate, v.Status, v.Location, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, category_id, make, model, year, license_plate, odometer,
		daily_rate, protection_daily_rate, status, location, created_on, updated_on
		FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.CategoryID, &v.Make, &v.Model,
		&v.Year, &v.LicensePlate, &v.Odometer, &v.DailyRate, &v.ProtectionDailyRate,
		&v.Status, &v.Location, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET category_id=$1, make=$2, model=$3, year=$4, license_plate=$5,
		odometer=$6, daily_rate=$7, protection_daily_rate=$8, status=$9, location=$10, updated_on=$11
		WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, v.CategoryID, v.Make, v.Model, v.Year, v.LicensePlate,
		v.Odometer, v.DailyRate, v.ProtectionDailyRate, v.Status, v.Location, time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	// Fleet rows are retired, never hard-deleted, so bookings keep their
	// vehicle reference.
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, domain.VehicleStatusRetired, time.Now(), id)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	where := "1=1"
	args := []any{}
	if status != "" {
		where = "status = $1"
		args = append(args, status)
	}
	base := `SELECT id, category_id, make, model, year, license_plate, odometer,
		daily_rate, protection_daily_rate, status, location, created_on, updated_on
		FROM vehicles WHERE ` + where

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+base+") as sub", args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := base + fmt.Sprintf(" ORDER BY make, model LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.CategoryID, &v.Make, &v.Model, &v.Year, &v.LicensePlate,
			&v.Odometer, &v.DailyRate, &v.ProtectionDailyRate, &v.Status, &v.Location,
			&v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) GetCategoryByID(ctx context.Context, id int32) (*domain.VehicleCategory, error) {
	c := &domain.VehicleCategory{}
	query := `SELECT id, name, description, daily_rate, protection_daily_rate, created_on
		FROM vehicle_categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description,
		&c.DailyRate, &c.ProtectionDailyRate, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *vehicleRepository) ListCategories(ctx context.Context) ([]domain.VehicleCategory, error) {
	query := `SELECT id, name, description, daily_rate, protection_daily_rate, created_on
		FROM vehicle_categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.VehicleCategory
	for rows.Next() {
		var c domain.VehicleCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DailyRate, &c.ProtectionDailyRate, &c.CreatedOn); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *vehicleRepository) ResolveUnit(ctx context.Context, kind domain.UnitKind, vehicleID, categoryID *int32) (*domain.BookedUnit, error) {
	switch kind {
	case domain.UnitKindVehicle:
		if vehicleID == nil {
			return nil, fmt.Errorf("vehicle unit without vehicle id")
		}
		v, err := r.GetByID(ctx, *vehicleID)
		if err != nil {
			return nil, err
		}
		return &domain.BookedUnit{Kind: domain.UnitKindVehicle, Vehicle: v}, nil
	case domain.UnitKindCategory:
		if categoryID == nil {
			return nil, fmt.Errorf("category unit without category id")
		}
		c, err := r.GetCategoryByID(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		return &domain.BookedUnit{Kind: domain.UnitKindCategory, Category: c}, nil
	default:
		return nil, fmt.Errorf("unknown unit kind %q", kind)
	}
}
