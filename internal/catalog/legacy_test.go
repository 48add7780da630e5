// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomebase/tomebase/internal/catalog"
	"github.com/tomebase/tomebase/pkg/pointer"
)

func sampleBook() catalog.Book {
	return catalog.Book{
		ISBN13:        9780134685991,
		Authors:       []string{"David Thomas", "Andrew Hunt"},
		Publication:   2019,
		OriginalTitle: "The Pragmatic Programmer",
		Title:         "The Pragmatic Programmer: Your Journey to Mastery",
		Ratings: catalog.Ratings{
			Average: pointer.To(4.33),
			Count:   3,
			Rating4: 2,
			Rating5: 1,
		},
		Icons: catalog.Icons{
			Large: "https://images.example.com/9780134685991.jpg",
			Small: "https://images.example.com/9780134685991-small.jpg",
		},
	}
}

/*
TestToLegacy verifies flattening into the pre-migration contract.
*/
func TestToLegacy(t *testing.T) {
	legacy := catalog.ToLegacy(sampleBook())

	assert.Equal(t, "9780134685991", legacy.ISBN13)
	assert.Equal(t, "David Thomas, Andrew Hunt", legacy.Authors)
	assert.Equal(t, 2019, legacy.Publication)
	assert.Equal(t, "The Pragmatic Programmer", legacy.OriginalTitle)
	require.NotNil(t, legacy.AverageRating)
	assert.InDelta(t, 4.33, *legacy.AverageRating, 0.0001)
	assert.Equal(t, 3, legacy.RatingsCount)
	assert.Equal(t, 2, legacy.Ratings4)
	assert.Equal(t, "https://images.example.com/9780134685991.jpg", legacy.ImageURL)
	assert.Equal(t, "https://images.example.com/9780134685991-small.jpg", legacy.SmallImageURL)
}

/*
TestToLegacy_LeadingZeros verifies the numeric key is padded back to 13 digits.
*/
func TestToLegacy_LeadingZeros(t *testing.T) {
	book := sampleBook()
	book.ISBN13 = 19

	assert.Equal(t, "0000000000019", catalog.ToLegacy(book).ISBN13)
}

/*
TestFromLegacy_RoundTrip verifies converting forward and back is lossless.
*/
func TestFromLegacy_RoundTrip(t *testing.T) {
	original := sampleBook()

	restored, err := catalog.FromLegacy(catalog.ToLegacy(original))
	require.NoError(t, err)

	assert.Equal(t, original, restored)
}

/*
TestFromLegacy_RejectsBadISBN verifies the one lossy boundary of the conversion.
*/
func TestFromLegacy_RejectsBadISBN(t *testing.T) {
	tests := []struct {
		name   string
		isbn13 string
	}{
		{"non_numeric", "not-an-isbn-13x"},
		{"too_short", "12345"},
		{"hyphenated_not_canonical", "978-0-13-468599-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legacy := catalog.ToLegacy(sampleBook())
			legacy.ISBN13 = tt.isbn13

			_, err := catalog.FromLegacy(legacy)
			assert.Error(t, err)
		})
	}
}

/*
TestSplitAuthors verifies the inverse of the ", " author join.
*/
func TestSplitAuthors(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, catalog.SplitAuthors("A, B"))
	assert.Equal(t, []string{"Solo"}, catalog.SplitAuthors("Solo"))
	assert.Nil(t, catalog.SplitAuthors(""))
	assert.Equal(t, []string{"A", "B"}, catalog.SplitAuthors(" A ,, B "))
}
