// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/dberr"
)

/*
TestWrap verifies the SQLSTATE and constraint classification.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "no_rows_is_not_found",
			err:        pgx.ErrNoRows,
			wantCode:   "NOT_FOUND",
			wantStatus: http.StatusNotFound,
		},
		{
			name:        "duplicate_isbn_is_conflict",
			err:         &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_pkey"},
			wantCode:    "CONFLICT",
			wantStatus:  http.StatusConflict,
			wantMessage: "ISBN already exists",
		},
		{
			name:        "duplicate_author_is_conflict",
			err:         &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "authors_author_key"},
			wantCode:    "CONFLICT",
			wantStatus:  http.StatusConflict,
			wantMessage: "Author already exists",
		},
		{
			name:       "foreign_key_is_validation",
			err:        &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			wantCode:   "VALIDATION_ERROR",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "check_violation_is_validation",
			err:        &pgconn.PgError{Code: pgerrcode.CheckViolation},
			wantCode:   "VALIDATION_ERROR",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown_error_is_internal",
			err:        errors.New("connection reset"),
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_statement")
			require.Error(t, wrapped)

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, ae.Message)
			}
		})
	}
}

/*
TestWrap_Nil verifies that success passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_KeepsCauseForLogging verifies internal wrapping tags the statement.
*/
func TestWrap_KeepsCauseForLogging(t *testing.T) {
	cause := errors.New("socket closed")
	wrapped := dberr.Wrap(cause, "list_books")

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	require.NotNil(t, ae.Cause)
	assert.ErrorIs(t, ae.Cause, cause)
	assert.Contains(t, ae.Cause.Error(), "list_books")
}
