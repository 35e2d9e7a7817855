package engine

import (
	"context"
	"time"

	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository"
)

// Admission validates and applies mutations to reservations, reviews
// and ownership links.  Cheap argument checks run before the store is
// touched; every precondition that depends on existing facts is
// evaluated inside the same transaction as the write, so either the
// precondition held at commit time or nothing changed.
type Admission struct {
	store repository.Store
}

// NewAdmission constructs an Admission over the given store.
func NewAdmission(store repository.Store) *Admission {
	if store == nil {
		panic("nil store passed to NewAdmission")
	}
	return &Admission{store: store}
}

// day normalises a timestamp to midnight UTC.  All reservation and
// review dates are calendar dates; stripping the clock keeps the
// half-open interval arithmetic exact.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Reserve books the apartment for the customer over the half-open
// range [start, end).  It fails with ErrInvalidInput for non-positive
// ids or price or when end is not after start, ErrNotFound when the
// customer or apartment does not exist, and ErrConflict when an
// existing reservation overlaps the requested range.  Touching
// endpoints do not conflict: a stay may check in on another's checkout
// day.
func (a *Admission) Reserve(ctx context.Context, customerID, apartmentID int64, start, end time.Time, price float64) error {
	start, end = day(start), day(end)
	if customerID <= 0 || apartmentID <= 0 || price <= 0 || !start.Before(end) {
		return ErrInvalidInput
	}
	return a.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.GetCustomer(ctx, customerID); err != nil {
			return fromStore(err)
		}
		if _, err := tx.GetApartment(ctx, apartmentID); err != nil {
			return fromStore(err)
		}
		overlapping, err := tx.CountOverlapping(ctx, apartmentID, start, end)
		if err != nil {
			return fromStore(err)
		}
		if overlapping > 0 {
			return ErrConflict
		}
		return fromStore(tx.AddReservation(ctx, model.Reservation{
			CustomerID:  customerID,
			ApartmentID: apartmentID,
			StartDate:   start,
			EndDate:     end,
			TotalPrice:  price,
		}))
	})
}

// Cancel removes the reservation identified by customer, apartment and
// start date.  It fails with ErrNotFound when no such reservation
// exists.
func (a *Admission) Cancel(ctx context.Context, customerID, apartmentID int64, start time.Time) error {
	if customerID <= 0 || apartmentID <= 0 {
		return ErrInvalidInput
	}
	return fromStore(a.store.DeleteReservation(ctx, customerID, apartmentID, day(start)))
}

// Review records the customer's rating of the apartment.  It fails
// with ErrInvalidInput when the rating is outside 1..10 or an id is
// non-positive, ErrNotFound when the customer has no reservation on
// the apartment that ended on or before the review date, and
// ErrConflict when the pair already has a review; callers should use
// UpdateReview in that case.
func (a *Admission) Review(ctx context.Context, customerID, apartmentID int64, date time.Time, rating int, text string) error {
	if customerID <= 0 || apartmentID <= 0 || rating < 1 || rating > 10 {
		return ErrInvalidInput
	}
	date = day(date)
	return a.store.InTx(ctx, func(tx repository.Store) error {
		completed, err := tx.HasCompletedStay(ctx, customerID, apartmentID, date)
		if err != nil {
			return fromStore(err)
		}
		if !completed {
			return ErrNotFound
		}
		return fromStore(tx.AddReview(ctx, model.Review{
			CustomerID:  customerID,
			ApartmentID: apartmentID,
			ReviewDate:  date,
			Rating:      rating,
			Text:        text,
		}))
	})
}

// UpdateReview overwrites the date, rating and text of the customer's
// existing review of the apartment.  The date can only move forward:
// the call fails with ErrNotFound when no review for the pair has a
// review date on or before the new date.  Repeating the same update is
// a no-op on the second call.
func (a *Admission) UpdateReview(ctx context.Context, customerID, apartmentID int64, newDate time.Time, newRating int, newText string) error {
	if customerID <= 0 || apartmentID <= 0 || newRating < 1 || newRating > 10 {
		return ErrInvalidInput
	}
	newDate = day(newDate)
	return a.store.InTx(ctx, func(tx repository.Store) error {
		current, err := tx.GetReview(ctx, customerID, apartmentID)
		if err != nil {
			return fromStore(err)
		}
		if current.ReviewDate.After(newDate) {
			return ErrNotFound
		}
		return fromStore(tx.UpdateReview(ctx, model.Review{
			CustomerID:  customerID,
			ApartmentID: apartmentID,
			ReviewDate:  newDate,
			Rating:      newRating,
			Text:        newText,
		}))
	})
}

// AssignOwner links the apartment to the owner.  It fails with
// ErrNotFound when either side does not exist and ErrConflict when the
// apartment already has an owner; an apartment has at most one owner
// at a time.
func (a *Admission) AssignOwner(ctx context.Context, ownerID, apartmentID int64) error {
	if ownerID <= 0 || apartmentID <= 0 {
		return ErrInvalidInput
	}
	return a.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.GetOwner(ctx, ownerID); err != nil {
			return fromStore(err)
		}
		if _, err := tx.GetApartment(ctx, apartmentID); err != nil {
			return fromStore(err)
		}
		return fromStore(tx.AssignOwner(ctx, ownerID, apartmentID))
	})
}

// RemoveOwner deletes the link between the owner and the apartment.
// It fails with ErrNotFound when that exact link does not exist.
func (a *Admission) RemoveOwner(ctx context.Context, ownerID, apartmentID int64) error {
	if ownerID <= 0 || apartmentID <= 0 {
		return ErrInvalidInput
	}
	return fromStore(a.store.RemoveOwner(ctx, ownerID, apartmentID))
}
