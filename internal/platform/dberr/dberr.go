// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Classification happens here, at the store boundary, so raw Postgres
// error text never crosses into handler responses: callers see only the
// mapped [apperr.AppError] while the cause stays attached for logging.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/database/schema"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error by SQLSTATE and constraint name:
//
//   - pgx.ErrNoRows                  -> NOT_FOUND
//   - 23505 unique_violation         -> CONFLICT (duplicate key)
//   - 23503 foreign_key, 23514 check -> VALIDATION_ERROR
//   - anything else                  -> INTERNAL_ERROR (transaction failure)
//
// The action tag names the statement for server-side log correlation.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgErr.ConstraintName))
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Operation violates a referential constraint")
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value rejected by a data constraint")
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// conflictMessage maps a violated unique constraint to a client-safe message.
func conflictMessage(constraint string) string {
	switch constraint {
	case schema.BooksPKey:
		return "ISBN already exists"
	case schema.AuthorsNameUnique:
		return "Author already exists"
	default:
		return "Resource already exists"
	}
}
