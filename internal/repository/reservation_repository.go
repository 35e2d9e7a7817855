package repository

import (
	"context"
	"time"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// ReservationRepo provides persistence for reservations.  All dates
// are stored as DATE columns in UTC; ranges are half-open, so EndDate
// is the checkout day and may equal the StartDate of the next stay.
type ReservationRepo struct {
	db DBTX
}

// NewReservationRepo returns a ReservationRepo bound to the given
// executor.
func NewReservationRepo(db DBTX) *ReservationRepo { return &ReservationRepo{db: db} }

// AddReservation inserts a reservation row.  Missing customer or
// apartment surfaces as ErrForeignKeyViolation; non-positive price or
// an inverted range as ErrCheckViolation.  Overlap admission is the
// engine's responsibility and must run in the same transaction as the
// insert, using CountOverlapping.
func (r *ReservationRepo) AddReservation(ctx context.Context, res model.Reservation) error {
	const q = `INSERT INTO reservations (customer_id, apartment_id, start_date, end_date, total_price)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, res.CustomerID, res.ApartmentID, res.StartDate, res.EndDate, res.TotalPrice)
	return MapError(err)
}

// DeleteReservation removes the reservation identified by customer,
// apartment and start date.  ErrNotFound is returned when no such
// reservation exists.
func (r *ReservationRepo) DeleteReservation(ctx context.Context, customerID, apartmentID int64, start time.Time) error {
	const q = `DELETE FROM reservations WHERE customer_id = ? AND apartment_id = ? AND start_date = ?`
	res, err := r.db.ExecContext(ctx, q, customerID, apartmentID, start)
	if err != nil {
		return MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOverlapping counts reservations for the apartment whose range
// intersects [start, end).  The rows are read FOR UPDATE so that when
// the call runs inside a transaction, InnoDB's index range locks block
// a concurrent writer from slipping an overlapping insert in between
// the check and the commit.
func (r *ReservationRepo) CountOverlapping(ctx context.Context, apartmentID int64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE apartment_id = ? AND start_date < ? AND end_date > ?
	           FOR UPDATE`
	var n int
	if err := r.db.QueryRowContext(ctx, q, apartmentID, end, start).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// HasCompletedStay reports whether the customer has at least one
// reservation on the apartment that ended on or before the given date.
func (r *ReservationRepo) HasCompletedStay(ctx context.Context, customerID, apartmentID int64, by time.Time) (bool, error) {
	const q = `SELECT EXISTS(
	               SELECT 1 FROM reservations
	               WHERE customer_id = ? AND apartment_id = ? AND end_date <= ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, customerID, apartmentID, by).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// ReservationsByApartment returns all reservations for one apartment
// ordered by start date.
func (r *ReservationRepo) ReservationsByApartment(ctx context.Context, apartmentID int64) ([]model.Reservation, error) {
	const q = `SELECT customer_id, apartment_id, start_date, end_date, total_price
	           FROM reservations WHERE apartment_id = ? ORDER BY start_date`
	return r.queryReservations(ctx, q, apartmentID)
}

// ReservationsByCustomer returns all reservations made by one customer
// ordered by start date.
func (r *ReservationRepo) ReservationsByCustomer(ctx context.Context, customerID int64) ([]model.Reservation, error) {
	const q = `SELECT customer_id, apartment_id, start_date, end_date, total_price
	           FROM reservations WHERE customer_id = ? ORDER BY start_date`
	return r.queryReservations(ctx, q, customerID)
}

// ListReservations returns every reservation in the system.
func (r *ReservationRepo) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT customer_id, apartment_id, start_date, end_date, total_price
	           FROM reservations ORDER BY apartment_id, start_date`
	return r.queryReservations(ctx, q)
}

func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.CustomerID, &res.ApartmentID, &res.StartDate, &res.EndDate, &res.TotalPrice); err != nil {
			return nil, MapError(err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return reservations, nil
}
