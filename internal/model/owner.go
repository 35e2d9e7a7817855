package model

// Owner represents a person who owns one or more apartments listed on
// the marketplace.  Ownership itself is recorded separately in the
// apartment_owners table so that an apartment can change hands without
// touching this row.
//
// Fields:
//  ID   – primary key identifier, always positive.
//  Name – display name of the owner.
type Owner struct {
	ID   int64  `json:"id"`   // owners.id
	Name string `json:"name"` // owners.name
}
