// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset-based navigation is requested via query
// parameters and how the resulting metadata is delivered in the API
// response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// Params holds the parsed limit and offset from a request's query string,
// plus whether the caller asked for the total record count.
type Params struct {
	Limit        int
	Offset       int
	IncludeTotal bool
}

// Meta is the pagination metadata included in API list responses.
//
// TotalRecords and HasMore are nil when the caller opted out of the
// total count (getTotal=false); NextPage is always the offset a client
// should pass to fetch the following page, whether or not more rows
// actually exist.
type Meta struct {
	TotalRecords *int  `json:"totalRecords,omitempty"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
	NextPage     int   `json:"nextPage"`
	HasMore      *bool `json:"hasMore,omitempty"`
}

// NewMeta constructs pagination metadata for a response.
//
// total is the full matching row count, or nil when it was not computed.
func NewMeta(limit, offset int, total *int) Meta {
	meta := Meta{
		TotalRecords: total,
		Limit:        limit,
		Offset:       offset,
		NextPage:     limit + offset,
	}
	if total != nil {
		hasMore := offset+limit < *total
		meta.HasMore = &hasMore
	}
	return meta
}

// FromRequest parses "limit", "offset", and "getTotal" query parameters.
//
// # Clamping
//
// An absent or invalid limit falls back to [DefaultLimit]; a valid limit
// above [MaxLimit] is honored up to that cap rather than reset, so large
// legitimate pages are not shrunk to the default. Negative offsets clamp
// to zero. The total count is included unless getTotal is explicitly
// "false".
func FromRequest(r *http.Request) Params {
	limit := parseIntParam(r, "limit", DefaultLimit)
	offset := parseIntParam(r, "offset", 0)

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return Params{
		Limit:        limit,
		Offset:       offset,
		IncludeTotal: r.URL.Query().Get("getTotal") != "false",
	}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
