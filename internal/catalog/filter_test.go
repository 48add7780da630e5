// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package catalog_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomebase/tomebase/internal/catalog"
	"github.com/tomebase/tomebase/internal/platform/apperr"
)

/*
TestDefaultFilter verifies the permissive bounds that match every book.
*/
func TestDefaultFilter(t *testing.T) {
	filter := catalog.DefaultFilter()

	assert.Empty(t, filter.Author)
	assert.Empty(t, filter.Title)
	assert.Equal(t, 0, filter.MinYear)
	assert.Equal(t, time.Now().Year(), filter.MaxYear)
	assert.Equal(t, 0.0, filter.MinRating)
	assert.Equal(t, 5.0, filter.MaxRating)
	assert.Equal(t, 0, filter.MinRatingCount)
	assert.Nil(t, filter.MaxRatingCount)
}

/*
TestFilterFromQuery verifies query parsing and the silent fallback contract.
*/
func TestFilterFromQuery(t *testing.T) {
	t.Run("all_params", func(t *testing.T) {
		values := url.Values{}
		values.Set("author", "hunt")
		values.Set("title", "pragmatic")
		values.Set("minYear", "1990")
		values.Set("maxYear", "2020")
		values.Set("minRating", "3.5")
		values.Set("maxRating", "4.5")
		values.Set("minRatingCount", "10")
		values.Set("maxRatingCount", "5000")

		filter := catalog.FilterFromQuery(values)

		assert.Equal(t, "hunt", filter.Author)
		assert.Equal(t, "pragmatic", filter.Title)
		assert.Equal(t, 1990, filter.MinYear)
		assert.Equal(t, 2020, filter.MaxYear)
		assert.Equal(t, 3.5, filter.MinRating)
		assert.Equal(t, 4.5, filter.MaxRating)
		assert.Equal(t, 10, filter.MinRatingCount)
		require.NotNil(t, filter.MaxRatingCount)
		assert.Equal(t, 5000, *filter.MaxRatingCount)
	})

	t.Run("invalid_values_fall_back_to_defaults", func(t *testing.T) {
		values := url.Values{}
		values.Set("minYear", "abc")
		values.Set("maxYear", "-5")
		values.Set("minRating", "high")
		values.Set("maxRatingCount", "-1")

		filter := catalog.FilterFromQuery(values)

		assert.Equal(t, catalog.DefaultFilter(), filter)
	})

	t.Run("empty_query_is_default", func(t *testing.T) {
		assert.Equal(t, catalog.DefaultFilter(), catalog.FilterFromQuery(url.Values{}))
	})
}

/*
TestFilter_Validate verifies that contradictory explicit bounds are rejected.
*/
func TestFilter_Validate(t *testing.T) {
	maxCount := 5

	tests := []struct {
		name    string
		mutate  func(f *catalog.Filter)
		wantErr bool
	}{
		{"default_is_valid", func(f *catalog.Filter) {}, false},
		{"min_year_after_max", func(f *catalog.Filter) { f.MinYear = 2020; f.MaxYear = 2010 }, true},
		{"min_rating_above_max", func(f *catalog.Filter) { f.MinRating = 4.5; f.MaxRating = 3.0 }, true},
		{"min_count_above_max", func(f *catalog.Filter) { f.MinRatingCount = 10; f.MaxRatingCount = &maxCount }, true},
		{"equal_bounds_valid", func(f *catalog.Filter) { f.MinYear = 2000; f.MaxYear = 2000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := catalog.DefaultFilter()
			tt.mutate(&filter)

			err := filter.Validate()
			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "Invalid filter parameters", ae.Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
