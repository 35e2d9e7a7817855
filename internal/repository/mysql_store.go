package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLStore assembles the per-entity repositories into the Store
// contract.  The zero value is not usable; construct it with
// NewMySQLStore.
type MySQLStore struct {
	db *sql.DB // nil when the store is bound to a transaction
	*OwnerRepo
	*ApartmentRepo
	*CustomerRepo
	*ReservationRepo
	*ReviewRepo
	*OwnershipRepo
}

var _ Store = (*MySQLStore)(nil)

// NewMySQLStore returns a Store backed by the given connection pool.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{
		db:              db,
		OwnerRepo:       NewOwnerRepo(db),
		ApartmentRepo:   NewApartmentRepo(db),
		CustomerRepo:    NewCustomerRepo(db),
		ReservationRepo: NewReservationRepo(db),
		ReviewRepo:      NewReviewRepo(db),
		OwnershipRepo:   NewOwnershipRepo(db),
	}
}

// bind returns a view of the store whose repositories execute against
// the given transaction.
func bind(tx *sql.Tx) *MySQLStore {
	return &MySQLStore{
		OwnerRepo:       NewOwnerRepo(tx),
		ApartmentRepo:   NewApartmentRepo(tx),
		CustomerRepo:    NewCustomerRepo(tx),
		ReservationRepo: NewReservationRepo(tx),
		ReviewRepo:      NewReviewRepo(tx),
		OwnershipRepo:   NewOwnershipRepo(tx),
	}
}

// InTx runs fn inside a database transaction.  The Store passed to fn
// routes every call through that transaction; an error from fn rolls
// the transaction back (a panic does too, before propagating), a nil
// return commits it.  Calling InTx on an already transaction-bound store runs
// fn in the enclosing transaction.
func (s *MySQLStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MapError(err)
	}
	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()
	if err := fn(bind(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", MapError(err))
	}
	done = true
	return nil
}
