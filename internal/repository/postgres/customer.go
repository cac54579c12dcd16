package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, email, phone, driver_license, date_of_birth, age_band, blocked, COALESCE(block_reason, ''), created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, driver_license, date_of_birth, age_band, blocked, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.DriverLicense,
		c.DateOfBirth, c.AgeBand, c.Blocked, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.DriverLicense, &c.DateOfBirth, &c.AgeBand, &c.Blocked, &c.BlockReason, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.DriverLicense, &c.DateOfBirth, &c.AgeBand, &c.Blocked, &c.BlockReason, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3, driver_license=$4,
		date_of_birth=$5, age_band=$6, blocked=$7, block_reason=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.DriverLicense,
		c.DateOfBirth, c.AgeBand, c.Blocked, c.BlockReason, time.Now(), c.ID)
	return err
}
