// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomebase/tomebase/pkg/pagination"
	"github.com/tomebase/tomebase/pkg/pointer"
)

/*
TestFromRequest verifies query parsing and clamping of limit/offset/getTotal.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		wantLimit        int
		wantOffset       int
		wantIncludeTotal bool
	}{
		{"defaults", "", 10, 0, true},
		{"explicit_values", "limit=25&offset=50", 25, 50, true},
		{"zero_limit_falls_back", "limit=0", 10, 0, true},
		{"negative_offset_clamped", "offset=-5", 10, 0, true},
		{"excessive_limit_capped_not_reset", "limit=5000", 100, 0, true},
		{"limit_at_cap_honored", "limit=100", 100, 0, true},
		{"get_total_disabled", "getTotal=false", 10, 0, false},
		{"get_total_garbage_stays_on", "getTotal=no", 10, 0, true},
		{"unparseable_limit_falls_back", "limit=abc", 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/books?"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
			assert.Equal(t, tt.wantIncludeTotal, params.IncludeTotal)
		})
	}
}

/*
TestNewMeta verifies the nextPage and hasMore derivations.
*/
func TestNewMeta(t *testing.T) {
	t.Run("with_total", func(t *testing.T) {
		meta := pagination.NewMeta(10, 0, pointer.To(25))

		require.NotNil(t, meta.TotalRecords)
		assert.Equal(t, 25, *meta.TotalRecords)
		assert.Equal(t, 10, meta.NextPage)
		require.NotNil(t, meta.HasMore)
		assert.True(t, *meta.HasMore)
	})

	t.Run("last_page_boundary", func(t *testing.T) {
		// offset+limit == total means nothing is left.
		meta := pagination.NewMeta(10, 15, pointer.To(25))

		assert.Equal(t, 25, meta.NextPage)
		require.NotNil(t, meta.HasMore)
		assert.False(t, *meta.HasMore)
	})

	t.Run("without_total", func(t *testing.T) {
		meta := pagination.NewMeta(10, 20, nil)

		assert.Nil(t, meta.TotalRecords)
		assert.Nil(t, meta.HasMore)
		assert.Equal(t, 30, meta.NextPage)
		assert.Equal(t, 10, meta.Limit)
		assert.Equal(t, 20, meta.Offset)
	})
}
