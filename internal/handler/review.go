package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/apartment-rental/internal/engine"
)

// ReviewHandler exposes review creation and updating.
type ReviewHandler struct {
	Admission *engine.Admission
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(admission *engine.Admission) *ReviewHandler {
	if admission == nil {
		panic("nil admission passed to NewReviewHandler")
	}
	return &ReviewHandler{Admission: admission}
}

type reviewRequest struct {
	CustomerID  int64  `json:"customer_id"`
	ApartmentID int64  `json:"apartment_id"`
	ReviewDate  string `json:"review_date"`
	Rating      int    `json:"rating"`
	Text        string `json:"text"`
}

// Create handles POST /v1/reviews.  A review is admitted only after a
// completed stay; a second review for the same pair yields 409 and
// callers should PUT instead.
func (h *ReviewHandler) Create(c echo.Context) error {
	var body reviewRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := parseDate(body.ReviewDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review_date"})
	}
	if err := h.Admission.Review(c.Request().Context(),
		body.CustomerID, body.ApartmentID, date, body.Rating, body.Text); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "reviewed"})
}

// Update handles PUT /v1/reviews.  The review date can only move
// forward; repeating an identical update is a no-op.
func (h *ReviewHandler) Update(c echo.Context) error {
	var body reviewRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := parseDate(body.ReviewDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review_date"})
	}
	if err := h.Admission.UpdateReview(c.Request().Context(),
		body.CustomerID, body.ApartmentID, date, body.Rating, body.Text); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
}
