package database

import (
	"context"
	"database/sql"
)

// Schema provisioning for the five entity kinds and the ownership
// link.  Constraints mirror the domain rules: positive ids and sizes,
// ratings between 1 and 10, end after start, a unique listing address
// per city and country, one review per customer and apartment, one
// owner per apartment, and cascading deletes from owners, apartments
// and customers to their dependents.

// createStatements are executed in order; children follow parents so
// the foreign keys resolve.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id   BIGINT       NOT NULL,
		name VARCHAR(255) NOT NULL,
		PRIMARY KEY (id),
		CONSTRAINT owners_id_chk CHECK (id > 0)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS apartments (
		id      BIGINT       NOT NULL,
		address VARCHAR(255) NOT NULL,
		city    VARCHAR(128) NOT NULL,
		country VARCHAR(128) NOT NULL,
		size    INT          NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY apartments_location_uq (address, city, country),
		CONSTRAINT apartments_id_chk   CHECK (id > 0),
		CONSTRAINT apartments_size_chk CHECK (size > 0)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS customers (
		id   BIGINT       NOT NULL,
		name VARCHAR(255) NOT NULL,
		PRIMARY KEY (id),
		CONSTRAINT customers_id_chk CHECK (id > 0)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reservations (
		customer_id  BIGINT NOT NULL,
		apartment_id BIGINT NOT NULL,
		start_date   DATE   NOT NULL,
		end_date     DATE   NOT NULL,
		total_price  DOUBLE NOT NULL,
		PRIMARY KEY (customer_id, apartment_id, start_date),
		KEY reservations_apartment_idx (apartment_id, start_date),
		CONSTRAINT reservations_customer_fk
			FOREIGN KEY (customer_id) REFERENCES customers (id) ON DELETE CASCADE,
		CONSTRAINT reservations_apartment_fk
			FOREIGN KEY (apartment_id) REFERENCES apartments (id) ON DELETE CASCADE,
		CONSTRAINT reservations_price_chk CHECK (total_price > 0),
		CONSTRAINT reservations_range_chk CHECK (end_date > start_date)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reviews (
		customer_id  BIGINT NOT NULL,
		apartment_id BIGINT NOT NULL,
		review_date  DATE   NOT NULL,
		rating       INT    NOT NULL,
		review_text  TEXT   NOT NULL,
		UNIQUE KEY reviews_pair_uq (customer_id, apartment_id),
		CONSTRAINT reviews_customer_fk
			FOREIGN KEY (customer_id) REFERENCES customers (id) ON DELETE CASCADE,
		CONSTRAINT reviews_apartment_fk
			FOREIGN KEY (apartment_id) REFERENCES apartments (id) ON DELETE CASCADE,
		CONSTRAINT reviews_rating_chk CHECK (rating BETWEEN 1 AND 10)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS apartment_owners (
		owner_id     BIGINT NOT NULL,
		apartment_id BIGINT NOT NULL,
		PRIMARY KEY (apartment_id),
		CONSTRAINT apartment_owners_owner_fk
			FOREIGN KEY (owner_id) REFERENCES owners (id) ON DELETE CASCADE,
		CONSTRAINT apartment_owners_apartment_fk
			FOREIGN KEY (apartment_id) REFERENCES apartments (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// tables in child-first order for clearing and dropping.
var tables = []string{
	"apartment_owners",
	"reviews",
	"reservations",
	"customers",
	"apartments",
	"owners",
}

// CreateSchema provisions all tables.  It is idempotent.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ClearTables deletes every row from every table, children first so
// no foreign key is violated mid-sweep.
func ClearTables(ctx context.Context, db *sql.DB) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema removes all tables, children first.
func DropSchema(ctx context.Context, db *sql.DB) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return err
		}
	}
	return nil
}
