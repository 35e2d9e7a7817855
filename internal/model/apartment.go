package model

// Apartment represents a rentable unit.  The (address, city, country)
// triple is unique across the system; two listings may share an address
// only if they are in different cities or countries.
//
// Fields:
//  ID      – primary key identifier, always positive.
//  Address – street address within the city.
//  City    – city the apartment is located in.
//  Country – country the apartment is located in.
//  Size    – size in square meters, always positive.
type Apartment struct {
	ID      int64  `json:"id"`      // apartments.id
	Address string `json:"address"` // apartments.address
	City    string `json:"city"`    // apartments.city
	Country string `json:"country"` // apartments.country
	Size    int    `json:"size"`    // apartments.size
}

// Location returns the (city, country) pair as a single comparable key.
// It is used when counting the distinct locations an owner covers.
func (a Apartment) Location() string {
	return a.City + "\x00" + a.Country
}
