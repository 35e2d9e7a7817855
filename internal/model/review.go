package model

import "time"

// Review is a customer's rating of an apartment after a completed
// stay.  A customer may hold at most one review per apartment; later
// submissions update the existing row rather than adding another.  The
// row is removed when either the customer or the apartment is deleted.
//
// Fields:
//  CustomerID  – reviewing customer.
//  ApartmentID – reviewed apartment.
//  ReviewDate  – date of the review; never precedes the end of the
//                customer's stay at the apartment.
//  Rating      – integer rating between 1 and 10 inclusive.
//  Text        – free-form review text.
type Review struct {
	CustomerID  int64     `json:"customer_id"`  // reviews.customer_id
	ApartmentID int64     `json:"apartment_id"` // reviews.apartment_id
	ReviewDate  time.Time `json:"review_date"`  // reviews.review_date
	Rating      int       `json:"rating"`       // reviews.rating
	Text        string    `json:"text"`         // reviews.review_text
}

// OwnershipLink ties an apartment to its current owner.  An apartment
// has at most one owner at a time; the link is keyed by apartment.
type OwnershipLink struct {
	OwnerID     int64 `json:"owner_id"`     // apartment_owners.owner_id
	ApartmentID int64 `json:"apartment_id"` // apartment_owners.apartment_id
}
