package postgres

import (
	"database/sql"

	"github.com/mapsensemedia/betterrental-sub009/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.VehicleRepository
	repository.CustomerRepository
	repository.DepositRepository
	repository.IncidentRepository
	repository.TicketRepository
	repository.SettingsRepository
	repository.OperatorRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		BookingRepository:  NewBookingRepository(db),
		VehicleRepository:  NewVehicleRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		DepositRepository:  NewDepositRepository(db),
		IncidentRepository: NewIncidentRepository(db),
		TicketRepository:   NewTicketRepository(db),
		SettingsRepository: NewSettingsRepository(db),
		OperatorRepository: NewOperatorRepository(db),
	}
}
