package postgres

import (
	"context"
	"database/sql"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type operatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(db *sql.DB) repository.OperatorRepository {
	return &operatorRepository{db: db}
}

const operatorColumns = `id, name, email, role, created_on`

func (r *operatorRepository) GetByID(ctx context.Context, id int32) (*domain.Operator, error) {
	op := &domain.Operator{}
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&op.ID, &op.Name, &op.Email, &op.Role, &op.CreatedOn)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	op := &domain.Operator{}
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&op.ID, &op.Name, &op.Email, &op.Role, &op.CreatedOn)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (r *operatorRepository) List(ctx context.Context) ([]domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operators []domain.Operator
	for rows.Next() {
		var op domain.Operator
		if err := rows.Scan(&op.ID, &op.Name, &op.Email, &op.Role, &op.CreatedOn); err != nil {
			return nil, err
		}
		operators = append(operators, op)
	}
	return operators, rows.Err()
}
