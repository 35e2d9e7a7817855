package repository

import (
	"context"

	"github.com/iliyamo/apartment-rental/internal/model"
)

// ReviewRepo provides persistence for reviews.  The schema enforces at
// most one review per (customer, apartment) pair and a rating between
// 1 and 10.
type ReviewRepo struct {
	db DBTX
}

// NewReviewRepo returns a ReviewRepo bound to the given executor.
func NewReviewRepo(db DBTX) *ReviewRepo { return &ReviewRepo{db: db} }

// AddReview inserts a review row.  A second review for the same pair
// surfaces as ErrUniqueViolation, an out-of-range rating as
// ErrCheckViolation and a missing customer or apartment as
// ErrForeignKeyViolation.
func (r *ReviewRepo) AddReview(ctx context.Context, rev model.Review) error {
	const q = `INSERT INTO reviews (customer_id, apartment_id, review_date, rating, review_text)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, rev.CustomerID, rev.ApartmentID, rev.ReviewDate, rev.Rating, rev.Text)
	return MapError(err)
}

// UpdateReview overwrites the date, rating and text of the review for
// the pair.  ErrNotFound is returned when the pair has no review.  The
// forward-only date rule is checked by the admission engine inside the
// same transaction, not here.
func (r *ReviewRepo) UpdateReview(ctx context.Context, rev model.Review) error {
	const q = `UPDATE reviews SET review_date = ?, rating = ?, review_text = ?
	           WHERE customer_id = ? AND apartment_id = ?`
	res, err := r.db.ExecContext(ctx, q, rev.ReviewDate, rev.Rating, rev.Text, rev.CustomerID, rev.ApartmentID)
	if err != nil {
		return MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if n == 0 {
		// MySQL reports zero affected rows for a no-op update of an
		// existing row, so confirm absence before reporting ErrNotFound.
		if _, err := r.GetReview(ctx, rev.CustomerID, rev.ApartmentID); err != nil {
			return err
		}
	}
	return nil
}

// GetReview returns the review for the (customer, apartment) pair or
// ErrNotFound.
func (r *ReviewRepo) GetReview(ctx context.Context, customerID, apartmentID int64) (*model.Review, error) {
	const q = `SELECT customer_id, apartment_id, review_date, rating, review_text
	           FROM reviews WHERE customer_id = ? AND apartment_id = ?`
	var rev model.Review
	err := r.db.QueryRowContext(ctx, q, customerID, apartmentID).
		Scan(&rev.CustomerID, &rev.ApartmentID, &rev.ReviewDate, &rev.Rating, &rev.Text)
	if err != nil {
		return nil, MapError(err)
	}
	return &rev, nil
}

// ReviewsByApartment returns all reviews of one apartment.
func (r *ReviewRepo) ReviewsByApartment(ctx context.Context, apartmentID int64) ([]model.Review, error) {
	const q = `SELECT customer_id, apartment_id, review_date, rating, review_text
	           FROM reviews WHERE apartment_id = ? ORDER BY customer_id`
	return r.queryReviews(ctx, q, apartmentID)
}

// ReviewsByCustomer returns all reviews written by one customer.
func (r *ReviewRepo) ReviewsByCustomer(ctx context.Context, customerID int64) ([]model.Review, error) {
	const q = `SELECT customer_id, apartment_id, review_date, rating, review_text
	           FROM reviews WHERE customer_id = ? ORDER BY apartment_id`
	return r.queryReviews(ctx, q, customerID)
}

// ListReviews returns every review in the system.
func (r *ReviewRepo) ListReviews(ctx context.Context) ([]model.Review, error) {
	const q = `SELECT customer_id, apartment_id, review_date, rating, review_text
	           FROM reviews ORDER BY apartment_id, customer_id`
	return r.queryReviews(ctx, q)
}

func (r *ReviewRepo) queryReviews(ctx context.Context, q string, args ...any) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.CustomerID, &rev.ApartmentID, &rev.ReviewDate, &rev.Rating, &rev.Text); err != nil {
			return nil, MapError(err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return reviews, nil
}
