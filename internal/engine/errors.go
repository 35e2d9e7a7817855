// Package engine implements the domain rules and analytics of the
// rental marketplace: admission of reservations and reviews, the
// aggregate ratings and profit figures, and the value-for-money and
// recommendation rankings.  Every operation is a pure function of the
// Entity Store's current state; nothing is cached between calls.
package engine

import (
	"errors"
	"fmt"

	"github.com/iliyamo/apartment-rental/internal/repository"
)

// ErrInvalidInput is returned for malformed or out-of-range arguments:
// non-positive ids, a rating outside 1..10, an inverted date range or
// a non-positive price.
var ErrInvalidInput = errors.New("engine: invalid input")

// ErrNotFound is returned when a referenced entity or a required prior
// fact, such as a completed stay backing a review, does not exist.
var ErrNotFound = errors.New("engine: not found")

// ErrConflict is returned for uniqueness violations: duplicate ids,
// overlapping reservations, an apartment that already has an owner or
// a duplicate review.
var ErrConflict = errors.New("engine: conflict")

// ErrStoreUnavailable is returned when the Entity Store cannot be
// reached or a transaction cannot complete for infrastructure reasons.
var ErrStoreUnavailable = errors.New("engine: store unavailable")

// fromStore maps the store's error kinds onto the caller-facing
// taxonomy.  Foreign-key failures mean a referenced entity is missing,
// so they surface as ErrNotFound; check and not-null failures are bad
// arguments; anything unrecognised is treated as an infrastructure
// fault and wrapped in ErrStoreUnavailable.
func fromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrStoreUnavailable):
		return err
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrForeignKeyViolation):
		return ErrNotFound
	case errors.Is(err, repository.ErrUniqueViolation):
		return ErrConflict
	case errors.Is(err, repository.ErrCheckViolation),
		errors.Is(err, repository.ErrNotNullViolation):
		return ErrInvalidInput
	case errors.Is(err, repository.ErrUnavailable):
		return ErrStoreUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
