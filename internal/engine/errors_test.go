package engine

import (
	"errors"
	"testing"

	"github.com/iliyamo/apartment-rental/internal/repository"
)

func TestFromStore(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", repository.ErrNotFound, ErrNotFound},
		{"foreign key means missing entity", repository.ErrForeignKeyViolation, ErrNotFound},
		{"unique violation", repository.ErrUniqueViolation, ErrConflict},
		{"check violation", repository.ErrCheckViolation, ErrInvalidInput},
		{"not null violation", repository.ErrNotNullViolation, ErrInvalidInput},
		{"unavailable", repository.ErrUnavailable, ErrStoreUnavailable},
		{"already mapped", ErrConflict, ErrConflict},
		{"unknown fault", errors.New("disk on fire"), ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromStore(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("fromStore(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("fromStore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
