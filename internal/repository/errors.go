// Package repository defines the Entity Store contract for the rental
// marketplace together with its MySQL implementation.  This file holds
// the error kinds shared by every implementation.  Constraint failures
// detected by the database are translated into these sentinel values so
// that higher layers can react to a violated uniqueness rule or a
// missing parent row without inspecting driver specifics.
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrUniqueViolation is returned when an insert or update would
// duplicate a primary key or unique index.
var ErrUniqueViolation = errors.New("repository: unique violation")

// ErrForeignKeyViolation is returned when a row references a parent
// that does not exist.
var ErrForeignKeyViolation = errors.New("repository: foreign key violation")

// ErrCheckViolation is returned when a value falls outside a CHECK
// constraint, such as a non-positive id or a rating outside 1..10.
var ErrCheckViolation = errors.New("repository: check violation")

// ErrNotNullViolation is returned when a required column is missing.
var ErrNotNullViolation = errors.New("repository: not null violation")

// ErrUnavailable is returned when the store cannot be reached or a
// transaction cannot complete for infrastructure reasons.
var ErrUnavailable = errors.New("repository: store unavailable")

// MySQL server error numbers relevant to the schema's constraints.
const (
	mysqlErrDupEntry        = 1062 // ER_DUP_ENTRY
	mysqlErrBadNull         = 1048 // ER_BAD_NULL_ERROR
	mysqlErrRowIsReferenced = 1451 // ER_ROW_IS_REFERENCED_2
	mysqlErrNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2
	mysqlErrCheckViolated   = 3819 // ER_CHECK_CONSTRAINT_VIOLATED
)

// MapError converts driver-level errors into the store's error kinds.
// sql.ErrNoRows becomes ErrNotFound, recognised MySQL constraint errors
// become the matching violation sentinel and connectivity failures
// become ErrUnavailable.  Errors that are already one of the sentinels
// pass through unchanged; anything unrecognised is returned as is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUniqueViolation),
		errors.Is(err, ErrForeignKeyViolation),
		errors.Is(err, ErrCheckViolation),
		errors.Is(err, ErrNotNullViolation),
		errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDupEntry:
			return ErrUniqueViolation
		case mysqlErrNoReferencedRow, mysqlErrRowIsReferenced:
			return ErrForeignKeyViolation
		case mysqlErrCheckViolated:
			return ErrCheckViolation
		case mysqlErrBadNull:
			return ErrNotNullViolation
		}
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, sql.ErrTxDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return ErrUnavailable
	}
	return err
}
