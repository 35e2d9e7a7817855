package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// Store is the Entity Store contract consumed by the domain engines.
// It exposes set-based reads and atomic writes over the five entity
// kinds plus the apartment-owner link.  Implementations must surface
// constraint failures as the error kinds defined in errors.go and must
// cascade deletes: removing an owner, apartment or customer also
// removes every dependent reservation, review and ownership link.
//
// InTx runs fn against a transaction-bound view of the store.  Every
// call made through the Store passed to fn belongs to one transaction;
// returning an error rolls it back, returning nil commits it.  Reads
// performed inside the transaction are stable enough for a
// check-then-write to be safe against concurrent writers.
type Store interface {
	AddOwner(ctx context.Context, o model.Owner) error
	GetOwner(ctx context.Context, id int64) (*model.Owner, error)
	DeleteOwner(ctx context.Context, id int64) error
	ListOwners(ctx context.Context) ([]model.Owner, error)

	AddApartment(ctx context.Context, a model.Apartment) error
	GetApartment(ctx context.Context, id int64) (*model.Apartment, error)
	DeleteApartment(ctx context.Context, id int64) error
	ListApartments(ctx context.Context) ([]model.Apartment, error)
	SearchApartments(ctx context.Context, city, country string) ([]model.Apartment, error)

	AddCustomer(ctx context.Context, c model.Customer) error
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context) ([]model.Customer, error)

	AddReservation(ctx context.Context, r model.Reservation) error
	DeleteReservation(ctx context.Context, customerID, apartmentID int64, start time.Time) error
	CountOverlapping(ctx context.Context, apartmentID int64, start, end time.Time) (int, error)
	HasCompletedStay(ctx context.Context, customerID, apartmentID int64, by time.Time) (bool, error)
	ReservationsByApartment(ctx context.Context, apartmentID int64) ([]model.Reservation, error)
	ReservationsByCustomer(ctx context.Context, customerID int64) ([]model.Reservation, error)
	ListReservations(ctx context.Context) ([]model.Reservation, error)

	AddReview(ctx context.Context, r model.Review) error
	UpdateReview(ctx context.Context, r model.Review) error
	GetReview(ctx context.Context, customerID, apartmentID int64) (*model.Review, error)
	ReviewsByApartment(ctx context.Context, apartmentID int64) ([]model.Review, error)
	ReviewsByCustomer(ctx context.Context, customerID int64) ([]model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)

	AssignOwner(ctx context.Context, ownerID, apartmentID int64) error
	RemoveOwner(ctx context.Context, ownerID, apartmentID int64) error
	OwnerOfApartment(ctx context.Context, apartmentID int64) (*model.Owner, error)
	ApartmentsByOwner(ctx context.Context, ownerID int64) ([]model.Apartment, error)
	ListOwnershipLinks(ctx context.Context) ([]model.OwnershipLink, error)

	InTx(ctx context.Context, fn func(Store) error) error
}

// DBTX is the subset of *sql.DB and *sql.Tx the MySQL repositories
// execute against.  Binding repositories to this interface lets the
// same query code run directly on the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
