package model

import "time"

// Reservation records a customer's stay at an apartment over a
// half-open date range [StartDate, EndDate).  Two reservations for the
// same apartment may touch at an endpoint but never overlap.  The row
// is removed when either the customer or the apartment is deleted.
//
// Fields:
//  CustomerID  – customer who made the reservation.
//  ApartmentID – apartment being reserved.
//  StartDate   – first night of the stay (inclusive).
//  EndDate     – checkout date (exclusive), strictly after StartDate.
//  TotalPrice  – total price for the whole stay, strictly positive.
type Reservation struct {
	CustomerID  int64     `json:"customer_id"`  // reservations.customer_id
	ApartmentID int64     `json:"apartment_id"` // reservations.apartment_id
	StartDate   time.Time `json:"start_date"`   // reservations.start_date
	EndDate     time.Time `json:"end_date"`     // reservations.end_date
	TotalPrice  float64   `json:"total_price"`  // reservations.total_price
}

// Nights returns the length of the stay in nights.  EndDate is
// exclusive, so a one-night stay spans exactly one day.
func (r Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// PricePerNight returns the nightly rate of the reservation.  It
// returns 0 for a malformed zero-length range instead of dividing by
// zero; admission rules reject such ranges before they are stored.
func (r Reservation) PricePerNight() float64 {
	n := r.Nights()
	if n <= 0 {
		return 0
	}
	return r.TotalPrice / float64(n)
}

// Overlaps reports whether the reservation's date range intersects the
// half-open range [start, end).  Touching endpoints do not overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && start.Before(r.EndDate)
}
