package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/apartment-rental/internal/engine"
	"github.com/iliyamo/apartment-rental/internal/queue"
	queue_publisher "github.com/iliyamo/apartment-rental/internal/service"
)

// ReservationHandler exposes reservation admission and cancellation.
// After a successful mutation it publishes a domain event; publishing
// is best effort and never fails the request.
type ReservationHandler struct {
	Admission *engine.Admission
	Catalog   *engine.Catalog
	// Publish toggles event publishing; disabled in tests and when no
	// broker is configured.
	Publish bool
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(admission *engine.Admission, catalog *engine.Catalog, publish bool) *ReservationHandler {
	if admission == nil || catalog == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Admission: admission, Catalog: catalog, Publish: publish}
}

type reserveRequest struct {
	CustomerID  int64   `json:"customer_id"`
	ApartmentID int64   `json:"apartment_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalPrice  float64 `json:"total_price"`
}

// Reserve handles POST /v1/reservations.  Overlapping requests on the
// same apartment are rejected with 409; touching endpoints are
// allowed.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	var body reserveRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
	}

	ctx := c.Request().Context()
	if err := h.Admission.Reserve(ctx, body.CustomerID, body.ApartmentID, start, end, body.TotalPrice); err != nil {
		return engineError(c, err)
	}

	if h.Publish {
		event := queue.ReservationConfirmedEvent{
			CustomerID:  body.CustomerID,
			ApartmentID: body.ApartmentID,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
			TotalPrice:  body.TotalPrice,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if apt, err := h.Catalog.GetApartment(ctx, body.ApartmentID); err == nil {
			event.City, event.Country = apt.City, apt.Country
		}
		_ = queue_publisher.PublishReservationConfirmed(ctx, event)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "confirmed"})
}

type cancelRequest struct {
	CustomerID  int64  `json:"customer_id"`
	ApartmentID int64  `json:"apartment_id"`
	StartDate   string `json:"start_date"`
}

// Cancel handles DELETE /v1/reservations.  The reservation is
// identified by customer, apartment and start date.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	var body cancelRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
	}

	ctx := c.Request().Context()
	if err := h.Admission.Cancel(ctx, body.CustomerID, body.ApartmentID, start); err != nil {
		return engineError(c, err)
	}

	if h.Publish {
		_ = queue_publisher.PublishReservationCancelled(ctx, queue.ReservationCancelledEvent{
			CustomerID:  body.CustomerID,
			ApartmentID: body.ApartmentID,
			StartDate:   body.StartDate,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.NoContent(http.StatusNoContent)
}

type ownershipRequest struct {
	OwnerID     int64 `json:"owner_id"`
	ApartmentID int64 `json:"apartment_id"`
}

// AssignOwner handles POST /v1/ownerships.
func (h *ReservationHandler) AssignOwner(c echo.Context) error {
	var body ownershipRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Admission.AssignOwner(c.Request().Context(), body.OwnerID, body.ApartmentID); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "assigned"})
}

// RemoveOwner handles DELETE /v1/ownerships.
func (h *ReservationHandler) RemoveOwner(c echo.Context) error {
	var body ownershipRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Admission.RemoveOwner(c.Request().Context(), body.OwnerID, body.ApartmentID); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
