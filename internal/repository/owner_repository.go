package repository

import (
	"context"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// OwnerRepo provides persistence for owners.  Deleting an owner also
// removes their ownership links through the schema's cascading foreign
// keys; the apartments themselves survive.
type OwnerRepo struct {
	db DBTX
}

// NewOwnerRepo returns an OwnerRepo bound to the given executor.
func NewOwnerRepo(db DBTX) *OwnerRepo { return &OwnerRepo{db: db} }

// AddOwner inserts a new owner row.  A duplicate id surfaces as
// ErrUniqueViolation, a non-positive id as ErrCheckViolation.
func (r *OwnerRepo) AddOwner(ctx context.Context, o model.Owner) error {
	const q = `INSERT INTO owners (id, name) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, o.ID, o.Name)
	return MapError(err)
}

// GetOwner returns the owner with the given id or ErrNotFound.
func (r *OwnerRepo) GetOwner(ctx context.Context, id int64) (*model.Owner, error) {
	const q = `SELECT id, name FROM owners WHERE id = ?`
	var o model.Owner
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.Name); err != nil {
		return nil, MapError(err)
	}
	return &o, nil
}

// DeleteOwner removes the owner and, via cascade, their ownership
// links.  ErrNotFound is returned when no such owner exists.
func (r *OwnerRepo) DeleteOwner(ctx context.Context, id int64) error {
	const q = `DELETE FROM owners WHERE id = ?`
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

// ListOwners returns all owners ordered by id.
func (r *OwnerRepo) ListOwners(ctx context.Context) ([]model.Owner, error) {
	const q = `SELECT id, name FROM owners ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()
	owners := make([]model.Owner, 0)
	for rows.Next() {
		var o model.Owner
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, MapError(err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return owners, nil
}
