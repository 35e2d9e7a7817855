// Package memory provides an in-memory implementation of the
// repository.Store contract.  It enforces the same constraints the
// relational schema does (positive ids, unique addresses, rating
// range, one owner per apartment) and performs the cascade sweep that
// MySQL gets from ON DELETE CASCADE explicitly.  It backs the engine
// unit tests and can serve embedded or demo deployments.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository"
)

type reservationKey struct {
	customerID  int64
	apartmentID int64
	start       string // start date formatted as 2006-01-02
}

type reviewKey struct {
	customerID  int64
	apartmentID int64
}

// Store keeps all entities in mutex-guarded maps.  A dedicated
// transaction mutex serialises InTx bodies so that a check-then-write
// composed inside InTx cannot interleave with another transaction.
type Store struct {
	txMu         sync.Mutex
	mu           sync.RWMutex
	owners       map[int64]model.Owner
	apartments   map[int64]model.Apartment
	customers    map[int64]model.Customer
	reservations map[reservationKey]model.Reservation
	reviews      map[reviewKey]model.Review
	ownerOf      map[int64]int64 // apartment id -> owner id
}

var _ repository.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		owners:       make(map[int64]model.Owner),
		apartments:   make(map[int64]model.Apartment),
		customers:    make(map[int64]model.Customer),
		reservations: make(map[reservationKey]model.Reservation),
		reviews:      make(map[reviewKey]model.Review),
		ownerOf:      make(map[int64]int64),
	}
}

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// InTx executes fn while holding the transaction mutex, so no two
// transactions interleave and a check performed inside fn still holds
// when its write lands.  The in-memory store cannot roll back partial
// writes; engine callers perform all checks before their first write,
// which keeps the check-then-write contract intact.  InTx must not be
// nested.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// Owners.

func (s *Store) AddOwner(ctx context.Context, o model.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addOwner(o)
}

func (s *Store) addOwner(o model.Owner) error {
	if o.ID <= 0 {
		return repository.ErrCheckViolation
	}
	if _, ok := s.owners[o.ID]; ok {
		return repository.ErrUniqueViolation
	}
	s.owners[o.ID] = o
	return nil
}

func (s *Store) GetOwner(ctx context.Context, id int64) (*model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getOwner(id)
}

func (s *Store) getOwner(id int64) (*model.Owner, error) {
	o, ok := s.owners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (s *Store) DeleteOwner(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteOwner(id)
}

func (s *Store) deleteOwner(id int64) error {
	if _, ok := s.owners[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.owners, id)
	// Cascade: drop ownership links; apartments themselves survive.
	for aptID, ownerID := range s.ownerOf {
		if ownerID == id {
			delete(s.ownerOf, aptID)
		}
	}
	return nil
}

func (s *Store) ListOwners(ctx context.Context) ([]model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listOwners()
}

func (s *Store) listOwners() ([]model.Owner, error) {
	owners := make([]model.Owner, 0, len(s.owners))
	for _, o := range s.owners {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].ID < owners[j].ID })
	return owners, nil
}

// Apartments.

func (s *Store) AddApartment(ctx context.Context, a model.Apartment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addApartment(a)
}

func (s *Store) addApartment(a model.Apartment) error {
	if a.ID <= 0 || a.Size <= 0 {
		return repository.ErrCheckViolation
	}
	if _, ok := s.apartments[a.ID]; ok {
		return repository.ErrUniqueViolation
	}
	for _, other := range s.apartments {
		if strings.EqualFold(other.Address, a.Address) &&
			strings.EqualFold(other.City, a.City) &&
			strings.EqualFold(other.Country, a.Country) {
			return repository.ErrUniqueViolation
		}
	}
	s.apartments[a.ID] = a
	return nil
}

func (s *Store) GetApartment(ctx context.Context, id int64) (*model.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getApartment(id)
}

func (s *Store) getApartment(id int64) (*model.Apartment, error) {
	a, ok := s.apartments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (s *Store) DeleteApartment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteApartment(id)
}

func (s *Store) deleteApartment(id int64) error {
	if _, ok := s.apartments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.apartments, id)
	delete(s.ownerOf, id)
	for k := range s.reservations {
		if k.apartmentID == id {
			delete(s.reservations, k)
		}
	}
	for k := range s.reviews {
		if k.apartmentID == id {
			delete(s.reviews, k)
		}
	}
	return nil
}

func (s *Store) ListApartments(ctx context.Context) ([]model.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listApartments()
}

func (s *Store) listApartments() ([]model.Apartment, error) {
	apartments := make([]model.Apartment, 0, len(s.apartments))
	for _, a := range s.apartments {
		apartments = append(apartments, a)
	}
	sort.Slice(apartments, func(i, j int) bool { return apartments[i].ID < apartments[j].ID })
	return apartments, nil
}

func (s *Store) SearchApartments(ctx context.Context, city, country string) ([]model.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all, _ := s.listApartments()
	matched := make([]model.Apartment, 0, len(all))
	for _, a := range all {
		if city != "" && !strings.EqualFold(a.City, city) {
			continue
		}
		if country != "" && !strings.EqualFold(a.Country, country) {
			continue
		}
		matched = append(matched, a)
	}
	return matched, nil
}

// Customers.

func (s *Store) AddCustomer(ctx context.Context, c model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCustomer(c)
}

func (s *Store) addCustomer(c model.Customer) error {
	if c.ID <= 0 {
		return repository.ErrCheckViolation
	}
	if _, ok := s.customers[c.ID]; ok {
		return repository.ErrUniqueViolation
	}
	s.customers[c.ID] = c
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getCustomer(id)
}

func (s *Store) getCustomer(id int64) (*model.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCustomer(id)
}

func (s *Store) deleteCustomer(id int64) error {
	if _, ok := s.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.customers, id)
	for k := range s.reservations {
		if k.customerID == id {
			delete(s.reservations, k)
		}
	}
	for k := range s.reviews {
		if k.customerID == id {
			delete(s.reviews, k)
		}
	}
	return nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customers := make([]model.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

// Reservations.

func (s *Store) AddReservation(ctx context.Context, r model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addReservation(r)
}

func (s *Store) addReservation(r model.Reservation) error {
	if r.TotalPrice <= 0 || !r.StartDate.Before(r.EndDate) {
		return repository.ErrCheckViolation
	}
	if _, ok := s.customers[r.CustomerID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	if _, ok := s.apartments[r.ApartmentID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	s.reservations[reservationKey{r.CustomerID, r.ApartmentID, dateKey(r.StartDate)}] = r
	return nil
}

func (s *Store) DeleteReservation(ctx context.Context, customerID, apartmentID int64, start time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteReservation(customerID, apartmentID, start)
}

func (s *Store) deleteReservation(customerID, apartmentID int64, start time.Time) error {
	k := reservationKey{customerID, apartmentID, dateKey(start)}
	if _, ok := s.reservations[k]; !ok {
		return repository.ErrNotFound
	}
	delete(s.reservations, k)
	return nil
}

func (s *Store) CountOverlapping(ctx context.Context, apartmentID int64, start, end time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countOverlapping(apartmentID, start, end)
}

func (s *Store) countOverlapping(apartmentID int64, start, end time.Time) (int, error) {
	n := 0
	for _, r := range s.reservations {
		if r.ApartmentID == apartmentID && r.Overlaps(start, end) {
			n++
		}
	}
	return n, nil
}

func (s *Store) HasCompletedStay(ctx context.Context, customerID, apartmentID int64, by time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasCompletedStay(customerID, apartmentID, by)
}

func (s *Store) hasCompletedStay(customerID, apartmentID int64, by time.Time) (bool, error) {
	for _, r := range s.reservations {
		if r.CustomerID == customerID && r.ApartmentID == apartmentID && !r.EndDate.After(by) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ReservationsByApartment(ctx context.Context, apartmentID int64) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterReservations(func(r model.Reservation) bool { return r.ApartmentID == apartmentID }), nil
}

func (s *Store) ReservationsByCustomer(ctx context.Context, customerID int64) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterReservations(func(r model.Reservation) bool { return r.CustomerID == customerID }), nil
}

func (s *Store) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterReservations(func(model.Reservation) bool { return true }), nil
}

func (s *Store) filterReservations(keep func(model.Reservation) bool) []model.Reservation {
	reservations := make([]model.Reservation, 0)
	for _, r := range s.reservations {
		if keep(r) {
			reservations = append(reservations, r)
		}
	}
	sort.Slice(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if a.ApartmentID != b.ApartmentID {
			return a.ApartmentID < b.ApartmentID
		}
		return a.StartDate.Before(b.StartDate)
	})
	return reservations
}

// Reviews.

func (s *Store) AddReview(ctx context.Context, r model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addReview(r)
}

func (s *Store) addReview(r model.Review) error {
	if r.Rating < 1 || r.Rating > 10 {
		return repository.ErrCheckViolation
	}
	if _, ok := s.customers[r.CustomerID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	if _, ok := s.apartments[r.ApartmentID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	k := reviewKey{r.CustomerID, r.ApartmentID}
	if _, ok := s.reviews[k]; ok {
		return repository.ErrUniqueViolation
	}
	s.reviews[k] = r
	return nil
}

func (s *Store) UpdateReview(ctx context.Context, r model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateReview(r)
}

func (s *Store) updateReview(r model.Review) error {
	if r.Rating < 1 || r.Rating > 10 {
		return repository.ErrCheckViolation
	}
	k := reviewKey{r.CustomerID, r.ApartmentID}
	if _, ok := s.reviews[k]; !ok {
		return repository.ErrNotFound
	}
	s.reviews[k] = r
	return nil
}

func (s *Store) GetReview(ctx context.Context, customerID, apartmentID int64) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getReview(customerID, apartmentID)
}

func (s *Store) getReview(customerID, apartmentID int64) (*model.Review, error) {
	r, ok := s.reviews[reviewKey{customerID, apartmentID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *Store) ReviewsByApartment(ctx context.Context, apartmentID int64) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterReviews(func(r model.Review) bool { return r.ApartmentID == apartmentID }), nil
}

func (s *Store) ReviewsByCustomer(ctx context.Context, customerID int64) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterReviews(func(r model.Review) bool { return r.CustomerID == customerID }), nil
}

func (s *Store) ListReviews(ctx context.Context) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterReviews(func(model.Review) bool { return true }), nil
}

func (s *Store) filterReviews(keep func(model.Review) bool) []model.Review {
	reviews := make([]model.Review, 0)
	for _, r := range s.reviews {
		if keep(r) {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		a, b := reviews[i], reviews[j]
		if a.ApartmentID != b.ApartmentID {
			return a.ApartmentID < b.ApartmentID
		}
		return a.CustomerID < b.CustomerID
	})
	return reviews
}

// Ownership.

func (s *Store) AssignOwner(ctx context.Context, ownerID, apartmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignOwner(ownerID, apartmentID)
}

func (s *Store) assignOwner(ownerID, apartmentID int64) error {
	if _, ok := s.owners[ownerID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	if _, ok := s.apartments[apartmentID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	if _, ok := s.ownerOf[apartmentID]; ok {
		return repository.ErrUniqueViolation
	}
	s.ownerOf[apartmentID] = ownerID
	return nil
}

func (s *Store) RemoveOwner(ctx context.Context, ownerID, apartmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeOwner(ownerID, apartmentID)
}

func (s *Store) removeOwner(ownerID, apartmentID int64) error {
	if current, ok := s.ownerOf[apartmentID]; !ok || current != ownerID {
		return repository.ErrNotFound
	}
	delete(s.ownerOf, apartmentID)
	return nil
}

func (s *Store) OwnerOfApartment(ctx context.Context, apartmentID int64) (*model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerOfApartment(apartmentID)
}

func (s *Store) ownerOfApartment(apartmentID int64) (*model.Owner, error) {
	ownerID, ok := s.ownerOf[apartmentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.getOwner(ownerID)
}

func (s *Store) ApartmentsByOwner(ctx context.Context, ownerID int64) ([]model.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apartmentsByOwner(ownerID)
}

func (s *Store) apartmentsByOwner(ownerID int64) ([]model.Apartment, error) {
	apartments := make([]model.Apartment, 0)
	for aptID, oid := range s.ownerOf {
		if oid != ownerID {
			continue
		}
		if a, ok := s.apartments[aptID]; ok {
			apartments = append(apartments, a)
		}
	}
	sort.Slice(apartments, func(i, j int) bool { return apartments[i].ID < apartments[j].ID })
	return apartments, nil
}

func (s *Store) ListOwnershipLinks(ctx context.Context) ([]model.OwnershipLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listOwnershipLinks()
}

func (s *Store) listOwnershipLinks() ([]model.OwnershipLink, error) {
	links := make([]model.OwnershipLink, 0, len(s.ownerOf))
	for aptID, ownerID := range s.ownerOf {
		links = append(links, model.OwnershipLink{OwnerID: ownerID, ApartmentID: aptID})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ApartmentID < links[j].ApartmentID })
	return links, nil
}
