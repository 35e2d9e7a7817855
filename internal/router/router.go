package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/apartment-rental/internal/config"
	"github.com/iliyamo/apartment-rental/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/apartment-rental/internal/middleware" // import middleware for rate limiting
)

// RegisterRoutes registers operational routes on the provided Echo instance.
// At the moment it only exposes a health check endpoint, which load balancers
// and monitoring systems use to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the entity CRUD routes under /v1.  These
// endpoints create, fetch and delete owners, apartments and customers, and
// expose simple catalog lookups.  Deletions cascade to dependent rows, so
// they are grouped with the mutating routes when rate limiting applies.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, limit echo.MiddlewareFunc) {
	// Read-only lookups are left unthrottled.
	e.GET("/v1/owners/:id", h.GetOwner)
	e.GET("/v1/owners/:id/apartments", h.OwnerApartments)
	e.GET("/v1/apartments/:id", h.GetApartment)
	e.GET("/v1/apartments/:id/owner", h.ApartmentOwner)
	e.GET("/v1/apartments", h.SearchApartments)
	e.GET("/v1/customers/:id", h.GetCustomer)

	// Mutating routes share the rate limiter when one is configured.
	g := e.Group("/v1")
	if limit != nil {
		g.Use(limit)
	}
	g.POST("/owners", h.CreateOwner)
	g.DELETE("/owners/:id", h.DeleteOwner)
	g.POST("/apartments", h.CreateApartment)
	g.DELETE("/apartments/:id", h.DeleteApartment)
	g.POST("/customers", h.CreateCustomer)
	g.DELETE("/customers/:id", h.DeleteCustomer)
}

// RegisterReservations registers the reservation, ownership and review
// routes.  All of these mutate state, so the whole group runs behind the
// rate limiter when one is configured.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, rv *handler.ReviewHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if limit != nil {
		g.Use(limit)
	}
	// Reservations are keyed by (customer, apartment, start date); the
	// cancel route takes the same triple in the request body.
	g.POST("/reservations", r.Reserve)
	g.DELETE("/reservations", r.Cancel)
	// Ownership links tie an apartment to at most one owner.
	g.POST("/ownerships", r.AssignOwner)
	g.DELETE("/ownerships", r.RemoveOwner)
	// Reviews require a completed stay; updates require a non-regressing date.
	g.POST("/reviews", rv.Create)
	g.PUT("/reviews", rv.Update)
}

// RegisterAnalytics registers the read-only aggregate and ranking routes.
// These endpoints recompute from current facts on every request and are
// never throttled or cached.
func RegisterAnalytics(e *echo.Echo, a *handler.AnalyticsHandler) {
	e.GET("/v1/apartments/:id/rating", a.ApartmentRating)
	e.GET("/v1/owners/:id/rating", a.OwnerRating)
	e.GET("/v1/analytics/reservations-per-owner", a.ReservationCounts)
	e.GET("/v1/analytics/top-customer", a.TopCustomer)
	e.GET("/v1/analytics/multi-city-owners", a.MultiCityOwners)
	e.GET("/v1/analytics/profit/:year", a.ProfitPerMonth)
	e.GET("/v1/analytics/best-value", a.BestValueForMoney)
	e.GET("/v1/customers/:id/recommendations", a.Recommendations)
}

// RateLimiter builds the shared rate-limit middleware from configuration.
// It returns nil when limiting is disabled or no Redis client is available,
// in which case callers register their routes without throttling.
func RateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return middleware.RateLimit(cfg, rdb)
}
