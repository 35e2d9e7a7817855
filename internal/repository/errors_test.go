package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMapError(t *testing.T) {
	opaque := errors.New("something else entirely")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"duplicate entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, ErrUniqueViolation},
		{"missing parent row", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, ErrForeignKeyViolation},
		{"referenced row", &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}, ErrForeignKeyViolation},
		{"check constraint", &mysql.MySQLError{Number: 3819, Message: "Check constraint violated"}, ErrCheckViolation},
		{"null column", &mysql.MySQLError{Number: 1048, Message: "Column cannot be null"}, ErrNotNullViolation},
		{"bad connection", driver.ErrBadConn, ErrUnavailable},
		{"invalid driver connection", mysql.ErrInvalidConn, ErrUnavailable},
		{"closed pool", sql.ErrConnDone, ErrUnavailable},
		{"finished transaction", sql.ErrTxDone, ErrUnavailable},
		{"deadline exceeded", context.DeadlineExceeded, ErrUnavailable},
		{"network error", &net.OpError{Op: "dial", Err: errors.New("refused")}, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.in); !errors.Is(got, tt.want) {
				t.Fatalf("MapError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("sentinels pass through", func(t *testing.T) {
		for _, sentinel := range []error{
			ErrNotFound, ErrUniqueViolation, ErrForeignKeyViolation,
			ErrCheckViolation, ErrNotNullViolation, ErrUnavailable,
		} {
			wrapped := fmt.Errorf("add reservation: %w", sentinel)
			if got := MapError(wrapped); !errors.Is(got, sentinel) {
				t.Fatalf("MapError(%v) = %v, lost the sentinel", wrapped, got)
			}
		}
	})

	t.Run("unrecognised errors are unchanged", func(t *testing.T) {
		if got := MapError(opaque); got != opaque {
			t.Fatalf("MapError(opaque) = %v, want the original error", got)
		}
		unknownMySQL := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"}
		var mysqlErr *mysql.MySQLError
		if got := MapError(unknownMySQL); !errors.As(got, &mysqlErr) || mysqlErr.Number != 1205 {
			t.Fatalf("MapError(unknown mysql error) = %v, want it unchanged", got)
		}
	})
}
