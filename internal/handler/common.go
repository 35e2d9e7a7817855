// Package handler contains the HTTP adapters over the domain engines.
// Handlers bind and validate the wire format, delegate every decision
// to the engines and translate the engine error taxonomy into HTTP
// status codes.  No business rule lives in this package.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/apartment-rental/internal/engine"
)

// dateLayout is the wire format for all reservation and review dates.
const dateLayout = "2006-01-02"

// paramID parses a positive integer path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// parseDate parses a 2006-01-02 date string.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// engineError maps the engine taxonomy onto an HTTP response.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input"})
	case errors.Is(err, engine.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, engine.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, engine.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
