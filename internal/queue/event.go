// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is
// admitted.  It carries enough information for downstream consumers to
// log, notify or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	CustomerID  int64   `json:"customer_id"`
	ApartmentID int64   `json:"apartment_id"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalPrice  float64 `json:"total_price"`
	ConfirmedAt string  `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is
// cancelled by its customer.
type ReservationCancelledEvent struct {
	CustomerID  int64  `json:"customer_id"`
	ApartmentID int64  `json:"apartment_id"`
	StartDate   string `json:"start_date"`
	CancelledAt string `json:"cancelled_at"`
}
