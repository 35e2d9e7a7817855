package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/apartment-rental/internal/engine"
	"github.com/iliyamo/apartment-rental/internal/model"
	"github.com/iliyamo/apartment-rental/internal/repository/memory"
)

func TestCatalogEntities(t *testing.T) {
	ctx := context.Background()
	c := engine.NewCatalog(memory.New())

	if err := c.AddOwner(ctx, model.Owner{ID: 1, Name: "Olga"}); err != nil {
		t.Fatalf("add owner: %v", err)
	}
	if err := c.AddOwner(ctx, model.Owner{ID: 1, Name: "Again"}); !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("duplicate owner: error = %v, want ErrConflict", err)
	}
	if err := c.AddOwner(ctx, model.Owner{ID: -1, Name: "Bad"}); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("negative owner id: error = %v, want ErrInvalidInput", err)
	}

	got, err := c.GetOwner(ctx, 1)
	if err != nil || got.Name != "Olga" {
		t.Fatalf("get owner = %+v, %v", got, err)
	}
	if _, err := c.GetOwner(ctx, 9); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("get missing owner: error = %v, want ErrNotFound", err)
	}
	if err := c.DeleteOwner(ctx, 1); err != nil {
		t.Fatalf("delete owner: %v", err)
	}
	if err := c.DeleteOwner(ctx, 1); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("second delete: error = %v, want ErrNotFound", err)
	}
}

func TestCatalogOwnership(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)
	c := engine.NewCatalog(s)
	a := engine.NewAdmission(s)

	if _, err := c.ApartmentOwner(ctx, 1); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("owner of unowned apartment: error = %v, want ErrNotFound", err)
	}
	if err := a.AssignOwner(ctx, 1, 1); err != nil {
		t.Fatalf("assign: %v", err)
	}
	owner, err := c.ApartmentOwner(ctx, 1)
	if err != nil || owner.ID != 1 {
		t.Fatalf("apartment owner = %+v, %v", owner, err)
	}

	apartments, err := c.OwnerApartments(ctx, 1)
	if err != nil {
		t.Fatalf("owner apartments: %v", err)
	}
	if len(apartments) != 1 || apartments[0].ID != 1 {
		t.Fatalf("owner apartments = %+v, want only apartment 1", apartments)
	}
}

func TestCatalogSearch(t *testing.T) {
	ctx := context.Background()
	c := engine.NewCatalog(seedStore(t))

	got, err := c.SearchApartments(ctx, "Haifa", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search returned %d apartments, want 2", len(got))
	}
	got, err = c.SearchApartments(ctx, "Oslo", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("search for unknown city = %+v, want empty", got)
	}
}
