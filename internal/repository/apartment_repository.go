package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// ApartmentRepo provides persistence for apartments.  Deleting an
// apartment cascades to its reservations, reviews and ownership link.
type ApartmentRepo struct {
	db DBTX
}

// NewApartmentRepo returns an ApartmentRepo bound to the given executor.
func NewApartmentRepo(db DBTX) *ApartmentRepo { return &ApartmentRepo{db: db} }

// AddApartment inserts a new apartment row.  A duplicate id or a
// duplicate (address, city, country) triple surfaces as
// ErrUniqueViolation; non-positive id or size as ErrCheckViolation.
func (r *ApartmentRepo) AddApartment(ctx context.Context, a model.Apartment) error {
	const q = `INSERT INTO apartments (id, address, city, country, size) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, a.ID, a.Address, a.City, a.Country, a.Size)
	return MapError(err)
}

// GetApartment returns the apartment with the given id or ErrNotFound.
func (r *ApartmentRepo) GetApartment(ctx context.Context, id int64) (*model.Apartment, error) {
	const q = `SELECT id, address, city, country, size FROM apartments WHERE id = ?`
	var a model.Apartment
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Address, &a.City, &a.Country, &a.Size)
	if err != nil {
		return nil, MapError(err)
	}
	return &a, nil
}

// DeleteApartment removes the apartment and all dependent rows.
// ErrNotFound is returned when no such apartment exists.
func (r *ApartmentRepo) DeleteApartment(ctx context.Context, id int64) error {
	const q = `DELETE FROM apartments WHERE id = ?`
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

// ListApartments returns all apartments ordered by id.
func (r *ApartmentRepo) ListApartments(ctx context.Context) ([]model.Apartment, error) {
	const q = `SELECT id, address, city, country, size FROM apartments ORDER BY id`
	return r.queryApartments(ctx, q)
}

// SearchApartments returns apartments filtered by city and/or country.
// Empty filter values match everything; matching is case-insensitive
// on the collation of the underlying columns.
func (r *ApartmentRepo) SearchApartments(ctx context.Context, city, country string) ([]model.Apartment, error) {
	q := `SELECT id, address, city, country, size FROM apartments`
	var conds []string
	var args []any
	if city != "" {
		conds = append(conds, "city = ?")
		args = append(args, city)
	}
	if country != "" {
		conds = append(conds, "country = ?")
		args = append(args, country)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"
	return r.queryApartments(ctx, q, args...)
}

func (r *ApartmentRepo) queryApartments(ctx context.Context, q string, args ...any) ([]model.Apartment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()
	apartments := make([]model.Apartment, 0)
	for rows.Next() {
		var a model.Apartment
		if err := rows.Scan(&a.ID, &a.Address, &a.City, &a.Country, &a.Size); err != nil {
			return nil, MapError(err)
		}
		apartments = append(apartments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return apartments, nil
}
