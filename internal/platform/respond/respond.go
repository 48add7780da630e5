// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// crucial for mobile apps and frontend SPAs to parse data robustly.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/ctxkey"
	"github.com/tomebase/tomebase/pkg/pagination"
)

// BookEnvelope is the JSON envelope for single-book responses.
type BookEnvelope struct {
	Book interface{} `json:"book"`
}

// BooksEnvelope is the JSON envelope for multi-book responses without
// pagination metadata.
type BooksEnvelope struct {
	Books interface{} `json:"books"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Books      interface{}     `json:"books"`
	Pagination pagination.Meta `json:"pagination"`
}

// DeletedEnvelope is the JSON envelope for bulk-delete responses. It
// reports how many books were removed and echoes back their last state.
type DeletedEnvelope struct {
	DeletedCount int         `json:"deletedCount"`
	Books        interface{} `json:"books"`
}

// ErrorEnvelope is the JSON envelope for error responses. Errors holds
// one flattened "field: message" string per failed field and is omitted
// when the error carries no field details.
type ErrorEnvelope struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Book writes a 200 OK response with a single book envelope.
func Book(writer http.ResponseWriter, book interface{}) {
	JSON(writer, http.StatusOK, BookEnvelope{Book: book})
}

// CreatedBook writes a 201 Created response with a single book envelope.
func CreatedBook(writer http.ResponseWriter, book interface{}) {
	JSON(writer, http.StatusCreated, BookEnvelope{Book: book})
}

// Books writes a 200 OK response with a plain book list envelope.
func Books(writer http.ResponseWriter, books interface{}) {
	JSON(writer, http.StatusOK, BooksEnvelope{Books: books})
}

// Paginated writes a 200 OK response with a book list and a pagination block.
func Paginated(writer http.ResponseWriter, books interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Books: books, Pagination: metadata})
}

// Deleted writes a 200 OK response for a bulk delete.
func Deleted(writer http.ResponseWriter, count int, books interface{}) {
	JSON(writer, http.StatusOK, DeletedEnvelope{DeletedCount: count, Books: books})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Message: appError.Message,
		Errors:  flattenDetails(appError.Details),
	})
}

// flattenDetails renders field errors as "field: message" strings.
func flattenDetails(details []apperr.FieldError) []string {
	if len(details) == 0 {
		return nil
	}
	flat := make([]string, 0, len(details))
	for _, detail := range details {
		flat = append(flat, fmt.Sprintf("%s: %s", detail.Field, detail.Message))
	}
	return flat
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
