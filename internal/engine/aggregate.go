package engine

import (
	"context"
	"sort"

	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository"
)

// Aggregates derives per-apartment and per-owner statistics as
// read-time folds over the Entity Store.  Absence of data is a valid
// business state: empty inputs produce zero values and empty lists,
// never errors.
type Aggregates struct {
	store repository.Store
}

// NewAggregates constructs an Aggregates engine over the given store.
func NewAggregates(store repository.Store) *Aggregates {
	if store == nil {
		panic("nil store passed to NewAggregates")
	}
	return &Aggregates{store: store}
}

// OwnerReservationCount pairs an owner with the number of reservations
// across the apartments they currently own.
type OwnerReservationCount struct {
	OwnerID   int64  `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	Count     int    `json:"reservations"`
}

// MonthProfit is the platform's profit for one calendar month.
type MonthProfit struct {
	Month  int     `json:"month"`
	Profit float64 `json:"profit"`
}

// profitCut is the platform's share of each reservation's total price.
const profitCut = 0.15

// ApartmentRating returns the arithmetic mean of the apartment's
// review ratings, or 0.0 when it has none.
func (g *Aggregates) ApartmentRating(ctx context.Context, apartmentID int64) (float64, error) {
	reviews, err := g.store.ReviewsByApartment(ctx, apartmentID)
	if err != nil {
		return 0, fromStore(err)
	}
	return meanRating(reviews), nil
}

func meanRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// OwnerRating returns the mean, over the owner's apartments, of each
// apartment's rating.  This is a mean of means: an apartment with no
// reviews contributes 0.0 to the outer mean rather than being skipped,
// and an owner with no apartments rates 0.0.
func (g *Aggregates) OwnerRating(ctx context.Context, ownerID int64) (float64, error) {
	apartments, err := g.store.ApartmentsByOwner(ctx, ownerID)
	if err != nil {
		return 0, fromStore(err)
	}
	if len(apartments) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, a := range apartments {
		rating, err := g.ApartmentRating(ctx, a.ID)
		if err != nil {
			return 0, err
		}
		sum += rating
	}
	return sum / float64(len(apartments)), nil
}

// ReservationCountByOwner returns, for every owner in the system, the
// number of reservations across the apartments they currently own.
// Owners with no apartments or no reservations appear with a zero
// count.  The result is ordered by owner id.
func (g *Aggregates) ReservationCountByOwner(ctx context.Context) ([]OwnerReservationCount, error) {
	owners, err := g.store.ListOwners(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	links, err := g.store.ListOwnershipLinks(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	reservations, err := g.store.ListReservations(ctx)
	if err != nil {
		return nil, fromStore(err)
	}

	perApartment := make(map[int64]int)
	for _, r := range reservations {
		perApartment[r.ApartmentID]++
	}
	perOwner := make(map[int64]int)
	for _, l := range links {
		perOwner[l.OwnerID] += perApartment[l.ApartmentID]
	}

	counts := make([]OwnerReservationCount, 0, len(owners))
	for _, o := range owners {
		counts = append(counts, OwnerReservationCount{
			OwnerID:   o.ID,
			OwnerName: o.Name,
			Count:     perOwner[o.ID],
		})
	}
	return counts, nil
}

// TopCustomer returns the customer with the most reservations overall,
// breaking ties in favour of the smallest customer id.  When no
// reservations exist it returns nil with a nil error.
func (g *Aggregates) TopCustomer(ctx context.Context) (*model.Customer, error) {
	reservations, err := g.store.ListReservations(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	if len(reservations) == 0 {
		return nil, nil
	}
	counts := make(map[int64]int)
	for _, r := range reservations {
		counts[r.CustomerID]++
	}
	var bestID int64
	best := 0
	for id, n := range counts {
		if n > best || (n == best && id < bestID) {
			bestID, best = id, n
		}
	}
	customer, err := g.store.GetCustomer(ctx, bestID)
	if err != nil {
		return nil, fromStore(err)
	}
	return customer, nil
}

// MultiCityOwners returns the owners whose apartments collectively
// cover every distinct (city, country) pair present across all
// apartments in the system.  With no apartments at all the result is
// empty.  The result is ordered by owner id.
func (g *Aggregates) MultiCityOwners(ctx context.Context) ([]model.Owner, error) {
	apartments, err := g.store.ListApartments(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	if len(apartments) == 0 {
		return []model.Owner{}, nil
	}
	total := make(map[string]struct{})
	byID := make(map[int64]model.Apartment, len(apartments))
	for _, a := range apartments {
		total[a.Location()] = struct{}{}
		byID[a.ID] = a
	}

	links, err := g.store.ListOwnershipLinks(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	covered := make(map[int64]map[string]struct{})
	for _, l := range links {
		a, ok := byID[l.ApartmentID]
		if !ok {
			continue
		}
		if covered[l.OwnerID] == nil {
			covered[l.OwnerID] = make(map[string]struct{})
		}
		covered[l.OwnerID][a.Location()] = struct{}{}
	}

	owners, err := g.store.ListOwners(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	qualified := make([]model.Owner, 0)
	for _, o := range owners {
		if len(covered[o.ID]) == len(total) {
			qualified = append(qualified, o)
		}
	}
	sort.Slice(qualified, func(i, j int) bool { return qualified[i].ID < qualified[j].ID })
	return qualified, nil
}

// ProfitPerMonth returns the platform's profit for each calendar month
// of the given year: 15% of the total price of every reservation whose
// end date falls in that month.  The result always holds twelve
// entries ordered January through December; months without qualifying
// reservations report 0.0.
func (g *Aggregates) ProfitPerMonth(ctx context.Context, year int) ([]MonthProfit, error) {
	reservations, err := g.store.ListReservations(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	months := make([]MonthProfit, 12)
	for i := range months {
		months[i].Month = i + 1
	}
	for _, r := range reservations {
		end := r.EndDate.UTC()
		if end.Year() != year {
			continue
		}
		months[int(end.Month())-1].Profit += r.TotalPrice * profitCut
	}
	return months, nil
}
