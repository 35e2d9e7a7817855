package engine_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/iliyamo/apartment-rental/internal/engine"
	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository/memory"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// addReview inserts a review directly, bypassing admission checks.
func addReview(t *testing.T, s *memory.Store, customerID, apartmentID int64, rating int) {
	t.Helper()
	err := s.AddReview(context.Background(), model.Review{
		CustomerID:  customerID,
		ApartmentID: apartmentID,
		ReviewDate:  date(2025, 6, 1),
		Rating:      rating,
		Text:        "stay",
	})
	if err != nil {
		t.Fatalf("add review (%d,%d): %v", customerID, apartmentID, err)
	}
}

func addReservation(t *testing.T, s *memory.Store, customerID, apartmentID int64, start, end time.Time, price float64) {
	t.Helper()
	err := s.AddReservation(context.Background(), model.Reservation{
		CustomerID:  customerID,
		ApartmentID: apartmentID,
		StartDate:   start,
		EndDate:     end,
		TotalPrice:  price,
	})
	if err != nil {
		t.Fatalf("add reservation (%d,%d): %v", customerID, apartmentID, err)
	}
}

func assignOwner(t *testing.T, s *memory.Store, ownerID, apartmentID int64) {
	t.Helper()
	if err := s.AssignOwner(context.Background(), ownerID, apartmentID); err != nil {
		t.Fatalf("assign owner %d -> apartment %d: %v", ownerID, apartmentID, err)
	}
}

func TestApartmentRating(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)
	g := engine.NewAggregates(s)

	got, err := g.ApartmentRating(ctx, 1)
	if err != nil {
		t.Fatalf("rating with no reviews: %v", err)
	}
	if got != 0 {
		t.Fatalf("rating with no reviews = %v, want 0", got)
	}

	addReview(t, s, 1, 1, 7)
	addReview(t, s, 2, 1, 4)
	got, err = g.ApartmentRating(ctx, 1)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if !almostEqual(got, 5.5) {
		t.Fatalf("rating = %v, want 5.5", got)
	}

	// Reviews of other apartments do not leak in.
	addReview(t, s, 1, 2, 10)
	got, err = g.ApartmentRating(ctx, 1)
	if err != nil {
		t.Fatalf("rating after unrelated review: %v", err)
	}
	if !almostEqual(got, 5.5) {
		t.Fatalf("rating after unrelated review = %v, want 5.5", got)
	}
}

func TestOwnerRating(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)
	g := engine.NewAggregates(s)

	got, err := g.OwnerRating(ctx, 1)
	if err != nil {
		t.Fatalf("rating with no apartments: %v", err)
	}
	if got != 0 {
		t.Fatalf("rating with no apartments = %v, want 0", got)
	}

	// One apartment rated 8.0, one with no reviews.  The unreviewed
	// apartment drags the mean down to 4.0 instead of being skipped.
	assignOwner(t, s, 1, 1)
	assignOwner(t, s, 1, 2)
	addReview(t, s, 1, 1, 8)
	got, err = g.OwnerRating(ctx, 1)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if !almostEqual(got, 4.0) {
		t.Fatalf("rating = %v, want 4.0", got)
	}
}

func TestReservationCountByOwner(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)
	if err := s.AddOwner(ctx, model.Owner{ID: 2, Name: "Petra"}); err != nil {
		t.Fatalf("add owner: %v", err)
	}
	assignOwner(t, s, 1, 1)
	assignOwner(t, s, 1, 2)
	addReservation(t, s, 1, 1, date(2025, 1, 1), date(2025, 1, 5), 400)
	addReservation(t, s, 2, 1, date(2025, 1, 5), date(2025, 1, 9), 400)
	addReservation(t, s, 1, 2, date(2025, 2, 1), date(2025, 2, 3), 200)

	counts, err := engine.NewAggregates(s).ReservationCountByOwner(ctx)
	if err != nil {
		t.Fatalf("ReservationCountByOwner: %v", err)
	}
	want := []engine.OwnerReservationCount{
		{OwnerID: 1, OwnerName: "Olga", Count: 3},
		{OwnerID: 2, OwnerName: "Petra", Count: 0},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(counts), len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestTopCustomer(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)
	g := engine.NewAggregates(s)

	got, err := g.TopCustomer(ctx)
	if err != nil {
		t.Fatalf("top customer with no reservations: %v", err)
	}
	if got != nil {
		t.Fatalf("top customer with no reservations = %+v, want nil", got)
	}

	// One reservation each: the tie goes to the lower customer id.
	addReservation(t, s, 2, 1, date(2025, 1, 1), date(2025, 1, 3), 200)
	addReservation(t, s, 1, 2, date(2025, 1, 1), date(2025, 1, 3), 200)
	got, err = g.TopCustomer(ctx)
	if err != nil {
		t.Fatalf("top customer: %v", err)
	}
	if got == nil || got.ID != 1 {
		t.Fatalf("tied top customer = %+v, want id 1", got)
	}

	// A second reservation breaks the tie.
	addReservation(t, s, 2, 2, date(2025, 2, 1), date(2025, 2, 3), 200)
	got, err = g.TopCustomer(ctx)
	if err != nil {
		t.Fatalf("top customer: %v", err)
	}
	if got == nil || got.ID != 2 || got.Name != "Bob" {
		t.Fatalf("top customer = %+v, want Bob (id 2)", got)
	}
}

func TestMultiCityOwners(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	g := engine.NewAggregates(s)

	// No apartments anywhere: nobody qualifies, not even vacuously.
	if err := s.AddOwner(ctx, model.Owner{ID: 1, Name: "Olga"}); err != nil {
		t.Fatalf("add owner: %v", err)
	}
	owners, err := g.MultiCityOwners(ctx)
	if err != nil {
		t.Fatalf("MultiCityOwners: %v", err)
	}
	if len(owners) != 0 {
		t.Fatalf("owners with no apartments = %+v, want empty", owners)
	}

	if err := s.AddOwner(ctx, model.Owner{ID: 2, Name: "Petra"}); err != nil {
		t.Fatalf("add owner: %v", err)
	}
	// Same city name in two countries counts as two distinct locations.
	apartments := []model.Apartment{
		{ID: 1, Address: "1 Main St", City: "Paris", Country: "France", Size: 40},
		{ID: 2, Address: "2 Main St", City: "Paris", Country: "USA", Size: 40},
		{ID: 3, Address: "3 Main St", City: "Paris", Country: "France", Size: 40},
	}
	for _, a := range apartments {
		if err := s.AddApartment(ctx, a); err != nil {
			t.Fatalf("add apartment %d: %v", a.ID, err)
		}
	}
	assignOwner(t, s, 1, 1)
	assignOwner(t, s, 1, 2)
	assignOwner(t, s, 2, 3)

	owners, err = g.MultiCityOwners(ctx)
	if err != nil {
		t.Fatalf("MultiCityOwners: %v", err)
	}
	if len(owners) != 1 || owners[0].ID != 1 {
		t.Fatalf("owners = %+v, want only id 1", owners)
	}
}

func TestProfitPerMonth(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)
	g := engine.NewAggregates(s)

	// Ends in January 2025.
	addReservation(t, s, 1, 1, date(2025, 1, 1), date(2025, 1, 5), 1000)
	// Spans the month boundary; attributed to February by end date.
	addReservation(t, s, 1, 1, date(2025, 1, 28), date(2025, 2, 2), 500)
	// Also February.
	addReservation(t, s, 2, 2, date(2025, 2, 10), date(2025, 2, 12), 300)
	// Different year; excluded entirely.
	addReservation(t, s, 2, 1, date(2024, 2, 10), date(2024, 2, 12), 900)

	months, err := g.ProfitPerMonth(ctx, 2025)
	if err != nil {
		t.Fatalf("ProfitPerMonth: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	total := 0.0
	for i, m := range months {
		if m.Month != i+1 {
			t.Fatalf("month %d has label %d", i, m.Month)
		}
		total += m.Profit
	}
	if !almostEqual(months[0].Profit, 150) {
		t.Fatalf("January profit = %v, want 150", months[0].Profit)
	}
	if !almostEqual(months[1].Profit, 120) {
		t.Fatalf("February profit = %v, want 120", months[1].Profit)
	}
	if !almostEqual(months[2].Profit, 0) {
		t.Fatalf("March profit = %v, want 0", months[2].Profit)
	}
	// The year's profit is exactly 15% of its revenue.
	if !almostEqual(total, 0.15*1800) {
		t.Fatalf("total profit = %v, want %v", total, 0.15*1800)
	}
}
