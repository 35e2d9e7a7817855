package engine

import (
	"context"
	"sort"

	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository"
)

// Ranking computes the value-for-money ordering and personalised
// apartment recommendations.  Like the aggregate engine it holds no
// state of its own; every call folds over the store's current facts.
type Ranking struct {
	store repository.Store
}

// NewRanking constructs a Ranking engine over the given store.
func NewRanking(store repository.Store) *Ranking {
	if store == nil {
		panic("nil store passed to NewRanking")
	}
	return &Ranking{store: store}
}

// Recommendation pairs an apartment with the rating a customer is
// expected to give it.
type Recommendation struct {
	Apartment      model.Apartment `json:"apartment"`
	ExpectedRating float64         `json:"expected_rating"`
}

// BestValueForMoney returns the apartment with the highest ratio of
// mean rating to mean price per night.  Only apartments with at least
// one reservation and at least one review participate; the others are
// excluded from the ranking rather than scored as zero.  Ties go to
// the lowest apartment id.  When no apartment qualifies the result is
// nil with a nil error.
func (k *Ranking) BestValueForMoney(ctx context.Context) (*model.Apartment, error) {
	apartments, err := k.store.ListApartments(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	reservations, err := k.store.ListReservations(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	reviews, err := k.store.ListReviews(ctx)
	if err != nil {
		return nil, fromStore(err)
	}

	type nightly struct {
		sum float64
		n   int
	}
	pricePerNight := make(map[int64]*nightly)
	for _, r := range reservations {
		agg := pricePerNight[r.ApartmentID]
		if agg == nil {
			agg = &nightly{}
			pricePerNight[r.ApartmentID] = agg
		}
		agg.sum += r.PricePerNight()
		agg.n++
	}
	ratings := make(map[int64][]model.Review)
	for _, r := range reviews {
		ratings[r.ApartmentID] = append(ratings[r.ApartmentID], r)
	}

	var best *model.Apartment
	bestRatio := 0.0
	// Apartments are listed in ascending id order, so keeping only a
	// strictly better ratio gives the lowest id on ties.
	for i := range apartments {
		a := apartments[i]
		nights, reviewed := pricePerNight[a.ID], ratings[a.ID]
		if nights == nil || nights.n == 0 || len(reviewed) == 0 {
			continue
		}
		meanNight := nights.sum / float64(nights.n)
		if meanNight <= 0 {
			continue
		}
		ratio := meanRating(reviewed) / meanNight
		if best == nil || ratio > bestRatio {
			best, bestRatio = &apartments[i], ratio
		}
	}
	return best, nil
}

// clampRating bounds a predicted rating to the valid 1..10 range.
func clampRating(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// Recommend predicts, for every apartment the customer has not yet
// reviewed, the rating they would give it.  The prediction assumes a
// peer's rating behaviour scales multiplicatively relative to the
// customer's: for each peer sharing at least one reviewed apartment
// the fold averages the customer-to-peer rating ratios over the shared
// apartments, multiplies the peer's rating of the candidate by that
// ratio, clamps the product to 1..10 and averages the clamped values
// across peers.  Candidates no qualifying peer has reviewed are
// omitted.  Results are ordered by apartment id.
func (k *Ranking) Recommend(ctx context.Context, customerID int64) ([]Recommendation, error) {
	if customerID <= 0 {
		return nil, ErrInvalidInput
	}
	mine, err := k.store.ReviewsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fromStore(err)
	}
	if len(mine) == 0 {
		// Without any reviews there are no peers to learn from.
		return []Recommendation{}, nil
	}
	myRating := make(map[int64]int, len(mine))
	for _, r := range mine {
		myRating[r.ApartmentID] = r.Rating
	}

	all, err := k.store.ListReviews(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	byPeer := make(map[int64][]model.Review)
	for _, r := range all {
		if r.CustomerID == customerID {
			continue
		}
		byPeer[r.CustomerID] = append(byPeer[r.CustomerID], r)
	}

	// avg_ratio per peer: mean of (my rating ÷ peer rating) over the
	// apartments both of us reviewed.
	avgRatio := make(map[int64]float64)
	for peerID, peerReviews := range byPeer {
		sum, shared := 0.0, 0
		for _, pr := range peerReviews {
			if my, ok := myRating[pr.ApartmentID]; ok {
				sum += float64(my) / float64(pr.Rating)
				shared++
			}
		}
		if shared > 0 {
			avgRatio[peerID] = sum / float64(shared)
		}
	}

	// Average the clamped peer predictions per unreviewed apartment.
	type prediction struct {
		sum float64
		n   int
	}
	predictions := make(map[int64]*prediction)
	for peerID, ratio := range avgRatio {
		for _, pr := range byPeer[peerID] {
			if _, reviewedByMe := myRating[pr.ApartmentID]; reviewedByMe {
				continue
			}
			p := predictions[pr.ApartmentID]
			if p == nil {
				p = &prediction{}
				predictions[pr.ApartmentID] = p
			}
			p.sum += clampRating(float64(pr.Rating) * ratio)
			p.n++
		}
	}
	if len(predictions) == 0 {
		return []Recommendation{}, nil
	}

	apartments, err := k.store.ListApartments(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	recommendations := make([]Recommendation, 0, len(predictions))
	for _, a := range apartments {
		if p, ok := predictions[a.ID]; ok {
			recommendations = append(recommendations, Recommendation{
				Apartment:      a,
				ExpectedRating: p.sum / float64(p.n),
			})
		}
	}
	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Apartment.ID < recommendations[j].Apartment.ID
	})
	return recommendations, nil
}
