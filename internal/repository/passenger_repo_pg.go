package repository

import (
	"context"
	"errors"

	"github.com/avelikov/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	ListByFlight(ctx context.Context, flightID string) ([]domain.Passenger, error)
	CreateBooking(ctx context.Context, flightID, passportID, firstName, lastName string) (*domain.Passenger, error)
	UpdateBooking(ctx context.Context, flightID string, customerID int64, passportID, firstName, lastName string) (*domain.Passenger, error)
	DeleteBooking(ctx context.Context, flightID string, customerID int64) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) ListByFlight(ctx context.Context, flightID string) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT p.flight_id, p.customer_id, c.passport_id, c.first_name, c.last_name
		FROM passengers p
		JOIN customers c ON c.id = p.customer_id
		WHERE p.flight_id = $1
		ORDER BY p.customer_id`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.FlightID, &p.CustomerID, &p.PassportID, &p.FirstName, &p.LastName); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

// CreateBooking reuses an existing customer row for a known passport_id and
// creates one otherwise, then links it to the flight. Customer fields are
// never overwritten on this path. The whole sequence runs in one transaction
// so a failure leaves no partial state behind.
func (r *PGPassengerRepository) CreateBooking(ctx context.Context, flightID, passportID, firstName, lastName string) (*domain.Passenger, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id=$1)`, flightID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrFlightNotFound
	}

	var customerID int64
	err = tx.QueryRow(ctx, `SELECT id FROM customers WHERE passport_id=$1`, passportID).Scan(&customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `INSERT INTO customers (passport_id, first_name, last_name)
			VALUES ($1, $2, $3) RETURNING id`, passportID, firstName, lastName).Scan(&customerID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO passengers (flight_id, customer_id) VALUES ($1, $2)`, flightID, customerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.Passenger{
		FlightID:   flightID,
		CustomerID: customerID,
		PassportID: passportID,
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}

// UpdateBooking overwrites the customer's passport_id and names in place,
// keeping the surrogate key. The passenger row must already link the customer
// to the flight.
func (r *PGPassengerRepository) UpdateBooking(ctx context.Context, flightID string, customerID int64, passportID, firstName, lastName string) (*domain.Passenger, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM passengers WHERE flight_id=$1 AND customer_id=$2)`, flightID, customerID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrPassengerNotFound
	}

	cmd, err := tx.Exec(ctx, `UPDATE customers SET passport_id=$1, first_name=$2, last_name=$3, updated_at=now() WHERE id=$4`,
		passportID, firstName, lastName, customerID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrPassengerNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.Passenger{
		FlightID:   flightID,
		CustomerID: customerID,
		PassportID: passportID,
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}

// DeleteBooking removes the passenger row only; the customer row stays.
func (r *PGPassengerRepository) DeleteBooking(ctx context.Context, flightID string, customerID int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE flight_id=$1 AND customer_id=$2`, flightID, customerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}
	return nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
