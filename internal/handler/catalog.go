package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/apartment-rental/internal/engine"
	"github.com/iliyamo/apartment-rental/internal/model"
)

// CatalogHandler exposes the lifecycle of owners, apartments and
// customers.
type CatalogHandler struct {
	Catalog *engine.Catalog
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *engine.Catalog) *CatalogHandler {
	if catalog == nil {
		panic("nil catalog passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: catalog}
}

// CreateOwner handles POST /v1/owners.
func (h *CatalogHandler) CreateOwner(c echo.Context) error {
	var o model.Owner
	if err := c.Bind(&o); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Catalog.AddOwner(c.Request().Context(), o); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

// GetOwner handles GET /v1/owners/:id.
func (h *CatalogHandler) GetOwner(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	o, err := h.Catalog.GetOwner(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// DeleteOwner handles DELETE /v1/owners/:id.  Ownership links of the
// owner are removed with them.
func (h *CatalogHandler) DeleteOwner(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteOwner(c.Request().Context(), id); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OwnerApartments handles GET /v1/owners/:id/apartments.
func (h *CatalogHandler) OwnerApartments(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	apartments, err := h.Catalog.OwnerApartments(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, apartments)
}

// CreateApartment handles POST /v1/apartments.
func (h *CatalogHandler) CreateApartment(c echo.Context) error {
	var a model.Apartment
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Catalog.AddApartment(c.Request().Context(), a); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// GetApartment handles GET /v1/apartments/:id.
func (h *CatalogHandler) GetApartment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.Catalog.GetApartment(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteApartment handles DELETE /v1/apartments/:id.  Reservations,
// reviews and the ownership link cascade away with the listing.
func (h *CatalogHandler) DeleteApartment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteApartment(c.Request().Context(), id); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchApartments handles GET /v1/apartments with optional ?city= and
// ?country= filters.
func (h *CatalogHandler) SearchApartments(c echo.Context) error {
	apartments, err := h.Catalog.SearchApartments(c.Request().Context(),
		c.QueryParam("city"), c.QueryParam("country"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, apartments)
}

// ApartmentOwner handles GET /v1/apartments/:id/owner.
func (h *CatalogHandler) ApartmentOwner(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	o, err := h.Catalog.ApartmentOwner(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// CreateCustomer handles POST /v1/customers.
func (h *CatalogHandler) CreateCustomer(c echo.Context) error {
	var cu model.Customer
	if err := c.Bind(&cu); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Catalog.AddCustomer(c.Request().Context(), cu); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, cu)
}

// GetCustomer handles GET /v1/customers/:id.
func (h *CatalogHandler) GetCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	cu, err := h.Catalog.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, cu)
}

// DeleteCustomer handles DELETE /v1/customers/:id.  The customer's
// reservations and reviews cascade away with them.
func (h *CatalogHandler) DeleteCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteCustomer(c.Request().Context(), id); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
