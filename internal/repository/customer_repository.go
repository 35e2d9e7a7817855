package repository

import (
	"context"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// CustomerRepo provides persistence for customers.  Deleting a
// customer cascades to their reservations and reviews.
type CustomerRepo struct {
	db DBTX
}

// NewCustomerRepo returns a CustomerRepo bound to the given executor.
func NewCustomerRepo(db DBTX) *CustomerRepo { return &CustomerRepo{db: db} }

// AddCustomer inserts a new customer row.  A duplicate id surfaces as
// ErrUniqueViolation, a non-positive id as ErrCheckViolation.
func (r *CustomerRepo) AddCustomer(ctx context.Context, c model.Customer) error {
	const q = `INSERT INTO customers (id, name) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name)
	return MapError(err)
}

// GetCustomer returns the customer with the given id or ErrNotFound.
func (r *CustomerRepo) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `SELECT id, name FROM customers WHERE id = ?`
	var c model.Customer
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name); err != nil {
		return nil, MapError(err)
	}
	return &c, nil
}

// DeleteCustomer removes the customer and all dependent rows.
// ErrNotFound is returned when no such customer exists.
func (r *CustomerRepo) DeleteCustomer(ctx context.Context, id int64) error {
	const q = `DELETE FROM customers WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
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

// ListCustomers returns all customers ordered by id.
func (r *CustomerRepo) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	const q = `SELECT id, name FROM customers ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()
	customers := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, MapError(err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return customers, nil
}
