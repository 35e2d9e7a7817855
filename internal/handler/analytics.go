package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/apartment-rental/internal/engine"
)

// AnalyticsHandler exposes the aggregate and ranking queries.  Every
// endpoint recomputes from current facts; absence of data returns
// zero values or empty lists with a 200, never an error status.
type AnalyticsHandler struct {
	Aggregates *engine.Aggregates
	Ranking    *engine.Ranking
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(aggregates *engine.Aggregates, ranking *engine.Ranking) *AnalyticsHandler {
	if aggregates == nil || ranking == nil {
		panic("nil engine passed to NewAnalyticsHandler")
	}
	return &AnalyticsHandler{Aggregates: aggregates, Ranking: ranking}
}

// ApartmentRating handles GET /v1/apartments/:id/rating.
func (h *AnalyticsHandler) ApartmentRating(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	rating, err := h.Aggregates.ApartmentRating(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"apartment_id": id, "rating": rating})
}

// OwnerRating handles GET /v1/owners/:id/rating.
func (h *AnalyticsHandler) OwnerRating(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	rating, err := h.Aggregates.OwnerRating(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"owner_id": id, "rating": rating})
}

// ReservationCounts handles GET /v1/analytics/reservations-per-owner.
func (h *AnalyticsHandler) ReservationCounts(c echo.Context) error {
	counts, err := h.Aggregates.ReservationCountByOwner(c.Request().Context())
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// TopCustomer handles GET /v1/analytics/top-customer.  With no
// reservations in the system the response body is a JSON null.
func (h *AnalyticsHandler) TopCustomer(c echo.Context) error {
	customer, err := h.Aggregates.TopCustomer(c.Request().Context())
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// MultiCityOwners handles GET /v1/analytics/multi-city-owners.
func (h *AnalyticsHandler) MultiCityOwners(c echo.Context) error {
	owners, err := h.Aggregates.MultiCityOwners(c.Request().Context())
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, owners)
}

// ProfitPerMonth handles GET /v1/analytics/profit/:year.  The response
// always holds twelve entries, January through December.
func (h *AnalyticsHandler) ProfitPerMonth(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	months, err := h.Aggregates.ProfitPerMonth(c.Request().Context(), year)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, months)
}

// BestValueForMoney handles GET /v1/analytics/best-value.  With no
// qualifying apartment the response body is a JSON null.
func (h *AnalyticsHandler) BestValueForMoney(c echo.Context) error {
	apartment, err := h.Ranking.BestValueForMoney(c.Request().Context())
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, apartment)
}

// Recommendations handles GET /v1/customers/:id/recommendations.
func (h *AnalyticsHandler) Recommendations(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	recommendations, err := h.Ranking.Recommend(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, recommendations)
}
