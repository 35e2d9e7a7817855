package model

// Customer represents a guest who reserves apartments and may review
// them after a completed stay.
//
// Fields:
//  ID   – primary key identifier, always positive.
//  Name – display name of the customer.
type Customer struct {
	ID   int64  `json:"id"`   // customers.id
	Name string `json:"name"` // customers.name
}
