package engine

import (
	"context"

	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository"
)

// Catalog manages the lifecycle of the base entities: owners,
// apartments and customers.  Adds reject malformed values before
// touching the store and report duplicates as ErrConflict; deletes
// cascade to dependent reservations, reviews and ownership links
// through the store.
type Catalog struct {
	store repository.Store
}

// NewCatalog constructs a Catalog over the given store.
func NewCatalog(store repository.Store) *Catalog {
	if store == nil {
		panic("nil store passed to NewCatalog")
	}
	return &Catalog{store: store}
}

// AddOwner registers a new owner.
func (c *Catalog) AddOwner(ctx context.Context, o model.Owner) error {
	if o.ID <= 0 || o.Name == "" {
		return ErrInvalidInput
	}
	return fromStore(c.store.AddOwner(ctx, o))
}

// GetOwner returns the owner with the given id.
func (c *Catalog) GetOwner(ctx context.Context, id int64) (*model.Owner, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	o, err := c.store.GetOwner(ctx, id)
	return o, fromStore(err)
}

// DeleteOwner removes the owner and their ownership links.
func (c *Catalog) DeleteOwner(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return fromStore(c.store.DeleteOwner(ctx, id))
}

// AddApartment registers a new apartment listing.
func (c *Catalog) AddApartment(ctx context.Context, a model.Apartment) error {
	if a.ID <= 0 || a.Size <= 0 || a.Address == "" || a.City == "" || a.Country == "" {
		return ErrInvalidInput
	}
	return fromStore(c.store.AddApartment(ctx, a))
}

// GetApartment returns the apartment with the given id.
func (c *Catalog) GetApartment(ctx context.Context, id int64) (*model.Apartment, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	a, err := c.store.GetApartment(ctx, id)
	return a, fromStore(err)
}

// DeleteApartment removes the apartment together with its
// reservations, reviews and ownership link.
func (c *Catalog) DeleteApartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return fromStore(c.store.DeleteApartment(ctx, id))
}

// SearchApartments lists apartments, optionally filtered by city
// and/or country.
func (c *Catalog) SearchApartments(ctx context.Context, city, country string) ([]model.Apartment, error) {
	apartments, err := c.store.SearchApartments(ctx, city, country)
	return apartments, fromStore(err)
}

// AddCustomer registers a new customer.
func (c *Catalog) AddCustomer(ctx context.Context, cu model.Customer) error {
	if cu.ID <= 0 || cu.Name == "" {
		return ErrInvalidInput
	}
	return fromStore(c.store.AddCustomer(ctx, cu))
}

// GetCustomer returns the customer with the given id.
func (c *Catalog) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	cu, err := c.store.GetCustomer(ctx, id)
	return cu, fromStore(err)
}

// DeleteCustomer removes the customer together with their
// reservations and reviews.
func (c *Catalog) DeleteCustomer(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return fromStore(c.store.DeleteCustomer(ctx, id))
}

// ApartmentOwner returns the owner currently linked to the apartment,
// or ErrNotFound when the apartment is unowned.
func (c *Catalog) ApartmentOwner(ctx context.Context, apartmentID int64) (*model.Owner, error) {
	if apartmentID <= 0 {
		return nil, ErrInvalidInput
	}
	o, err := c.store.OwnerOfApartment(ctx, apartmentID)
	return o, fromStore(err)
}

// OwnerApartments returns all apartments currently owned by the owner.
// An unknown owner yields an empty list, not an error.
func (c *Catalog) OwnerApartments(ctx context.Context, ownerID int64) ([]model.Apartment, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidInput
	}
	apartments, err := c.store.ApartmentsByOwner(ctx, ownerID)
	return apartments, fromStore(err)
}
