package repository

import (
	"context"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// OwnershipRepo persists the apartment-owner link.  The link table is
// keyed by apartment, which enforces the one-owner-per-apartment rule
// at the schema level.
type OwnershipRepo struct {
	db DBTX
}

// NewOwnershipRepo returns an OwnershipRepo bound to the given
// executor.
func NewOwnershipRepo(db DBTX) *OwnershipRepo { return &OwnershipRepo{db: db} }

// AssignOwner links the apartment to the owner.  An apartment that is
// already owned surfaces as ErrUniqueViolation; a missing owner or
// apartment as ErrForeignKeyViolation.
func (r *OwnershipRepo) AssignOwner(ctx context.Context, ownerID, apartmentID int64) error {
	const q = `INSERT INTO apartment_owners (owner_id, apartment_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, ownerID, apartmentID)
	return MapError(err)
}

// RemoveOwner deletes the link between the owner and the apartment.
// ErrNotFound is returned when that exact link does not exist.
func (r *OwnershipRepo) RemoveOwner(ctx context.Context, ownerID, apartmentID int64) error {
	const q = `DELETE FROM apartment_owners WHERE owner_id = ? AND apartment_id = ?`
	res, err := r.db.ExecContext(ctx, q, ownerID, apartmentID)
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

// OwnerOfApartment returns the owner currently linked to the apartment
// or ErrNotFound when the apartment is unowned or missing.
func (r *OwnershipRepo) OwnerOfApartment(ctx context.Context, apartmentID int64) (*model.Owner, error) {
	const q = `SELECT o.id, o.name
	           FROM apartment_owners ao JOIN owners o ON o.id = ao.owner_id
	           WHERE ao.apartment_id = ?`
	var o model.Owner
	if err := r.db.QueryRowContext(ctx, q, apartmentID).Scan(&o.ID, &o.Name); err != nil {
		return nil, MapError(err)
	}
	return &o, nil
}

// ApartmentsByOwner returns all apartments currently linked to the
// owner, ordered by id.
func (r *OwnershipRepo) ApartmentsByOwner(ctx context.Context, ownerID int64) ([]model.Apartment, error) {
	const q = `SELECT a.id, a.address, a.city, a.country, a.size
	           FROM apartment_owners ao JOIN apartments a ON a.id = ao.apartment_id
	           WHERE ao.owner_id = ? ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
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

// ListOwnershipLinks returns every apartment-owner link.
func (r *OwnershipRepo) ListOwnershipLinks(ctx context.Context) ([]model.OwnershipLink, error) {
	const q = `SELECT owner_id, apartment_id FROM apartment_owners ORDER BY apartment_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()
	links := make([]model.OwnershipLink, 0)
	for rows.Next() {
		var l model.OwnershipLink
		if err := rows.Scan(&l.OwnerID, &l.ApartmentID); err != nil {
			return nil, MapError(err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return links, nil
}
