package engine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/iliyamo/apartment-rental/internal/engine"
	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository/memory"
)

// seedRankingStore builds a store with four apartments and three
// customers.  Tests layer reservations and reviews on top.
func seedRankingStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	for _, c := range []model.Customer{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}} {
		if err := s.AddCustomer(ctx, c); err != nil {
			t.Fatalf("seed customer %d: %v", c.ID, err)
		}
	}
	for id := int64(1); id <= 4; id++ {
		a := model.Apartment{ID: id, Address: fmt.Sprintf("%d Harbor Rd", id), City: "Haifa", Country: "Israel", Size: 60}
		if err := s.AddApartment(ctx, a); err != nil {
			t.Fatalf("seed apartment %d: %v", id, err)
		}
	}
	return s
}

func TestBestValueForMoney(t *testing.T) {
	ctx := context.Background()

	t.Run("no qualifying apartment", func(t *testing.T) {
		s := seedRankingStore(t)
		k := engine.NewRanking(s)
		got, err := k.BestValueForMoney(ctx)
		if err != nil {
			t.Fatalf("BestValueForMoney: %v", err)
		}
		if got != nil {
			t.Fatalf("best = %+v, want nil", got)
		}

		// A review without a reservation, or the reverse, still does
		// not qualify.
		addReview(t, s, 1, 3, 9)
		addReservation(t, s, 1, 4, date(2025, 1, 1), date(2025, 1, 5), 400)
		got, err = k.BestValueForMoney(ctx)
		if err != nil {
			t.Fatalf("BestValueForMoney: %v", err)
		}
		if got != nil {
			t.Fatalf("best = %+v, want nil", got)
		}
	})

	t.Run("highest rating per nightly price wins", func(t *testing.T) {
		s := seedRankingStore(t)
		// Apartment 1: 100 per night, rated 8 -> ratio 0.08.
		addReservation(t, s, 1, 1, date(2025, 1, 1), date(2025, 1, 5), 400)
		addReview(t, s, 1, 1, 8)
		// Apartment 2: 50 per night, rated 6 -> ratio 0.12, the best
		// value despite the lower rating.
		addReservation(t, s, 2, 2, date(2025, 1, 1), date(2025, 1, 3), 100)
		addReview(t, s, 2, 2, 6)

		got, err := engine.NewRanking(s).BestValueForMoney(ctx)
		if err != nil {
			t.Fatalf("BestValueForMoney: %v", err)
		}
		if got == nil || got.ID != 2 {
			t.Fatalf("best = %+v, want apartment 2", got)
		}
	})

	t.Run("tie goes to the lowest id", func(t *testing.T) {
		s := seedRankingStore(t)
		for _, apartmentID := range []int64{1, 2} {
			addReservation(t, s, 1, apartmentID, date(2025, 1, 1), date(2025, 1, 5), 400)
			addReview(t, s, 1, apartmentID, 8)
		}
		got, err := engine.NewRanking(s).BestValueForMoney(ctx)
		if err != nil {
			t.Fatalf("BestValueForMoney: %v", err)
		}
		if got == nil || got.ID != 1 {
			t.Fatalf("best = %+v, want apartment 1", got)
		}
	})
}

func TestRecommendInput(t *testing.T) {
	ctx := context.Background()
	k := engine.NewRanking(seedRankingStore(t))

	if _, err := k.Recommend(ctx, 0); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("zero id: error = %v, want ErrInvalidInput", err)
	}
	if _, err := k.Recommend(ctx, -5); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("negative id: error = %v, want ErrInvalidInput", err)
	}

	// A customer with no reviews has no peers to learn from.
	got, err := k.Recommend(ctx, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("recommendations = %+v, want empty", got)
	}
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	s := seedRankingStore(t)

	// Alice rated apartments 1 and 2.  Bob shares apartment 1 and rates
	// half as high as Alice (8 vs 4), so his ratings are scaled by 2.
	// Carol shares apartment 2 and rates exactly like Alice.
	addReview(t, s, 1, 1, 8)
	addReview(t, s, 1, 2, 6)
	addReview(t, s, 2, 1, 4)
	addReview(t, s, 2, 3, 5)
	addReview(t, s, 3, 2, 6)
	addReview(t, s, 3, 3, 7)
	addReview(t, s, 3, 4, 2)

	got, err := engine.NewRanking(s).Recommend(ctx, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// Bob predicts apartment 3 at 5*2 = 10 (clamped from exactly 10);
	// Carol predicts it at 7*1 = 7, averaging 8.5.  Only Carol rated
	// apartment 4.  Apartments 1 and 2 are excluded as already
	// reviewed; results come back ordered by apartment id.
	want := []engine.Recommendation{
		{Apartment: model.Apartment{ID: 3}, ExpectedRating: 8.5},
		{Apartment: model.Apartment{ID: 4}, ExpectedRating: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d recommendations, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Apartment.ID != want[i].Apartment.ID {
			t.Fatalf("recommendation %d is apartment %d, want %d", i, got[i].Apartment.ID, want[i].Apartment.ID)
		}
		if !almostEqual(got[i].ExpectedRating, want[i].ExpectedRating) {
			t.Fatalf("apartment %d expected rating = %v, want %v", got[i].Apartment.ID, got[i].ExpectedRating, want[i].ExpectedRating)
		}
	}
}

func TestRecommendClamping(t *testing.T) {
	ctx := context.Background()

	t.Run("high predictions cap at 10", func(t *testing.T) {
		s := seedRankingStore(t)
		// Ratio 10/2 = 5; the peer's 9 for apartment 2 would predict 45.
		addReview(t, s, 1, 1, 10)
		addReview(t, s, 2, 1, 2)
		addReview(t, s, 2, 2, 9)
		got, err := engine.NewRanking(s).Recommend(ctx, 1)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(got) != 1 || got[0].Apartment.ID != 2 || !almostEqual(got[0].ExpectedRating, 10) {
			t.Fatalf("recommendations = %+v, want apartment 2 at 10", got)
		}
	})

	t.Run("low predictions floor at 1", func(t *testing.T) {
		s := seedRankingStore(t)
		// Ratio 2/8 = 0.25; the peer's 3 for apartment 2 would predict 0.75.
		addReview(t, s, 1, 1, 2)
		addReview(t, s, 2, 1, 8)
		addReview(t, s, 2, 2, 3)
		got, err := engine.NewRanking(s).Recommend(ctx, 1)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(got) != 1 || got[0].Apartment.ID != 2 || !almostEqual(got[0].ExpectedRating, 1) {
			t.Fatalf("recommendations = %+v, want apartment 2 at 1", got)
		}
	})
}

func TestRecommendIgnoresUnrelatedPeers(t *testing.T) {
	ctx := context.Background()
	s := seedRankingStore(t)
	// Alice and Bob share apartment 1.  Carol reviewed only apartment
	// 3, shares nothing with Alice, and must not influence the result.
	addReview(t, s, 1, 1, 6)
	addReview(t, s, 2, 1, 6)
	addReview(t, s, 2, 3, 4)
	addReview(t, s, 3, 3, 10)

	got, err := engine.NewRanking(s).Recommend(ctx, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 1 || got[0].Apartment.ID != 3 || !almostEqual(got[0].ExpectedRating, 4) {
		t.Fatalf("recommendations = %+v, want apartment 3 at 4 from the shared peer only", got)
	}
}
