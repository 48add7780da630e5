package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/pkg/query"
	"github.com/tomebase/tomebase/pkg/slice"
)

// LegacyBook is the flat book shape retained for callers still on the
// pre-migration contract: string-typed isbn13, comma-joined authors, and
// all rating fields at the top level.
type LegacyBook struct {
	ISBN13        string   `json:"isbn13"`
	Authors       string   `json:"authors"`
	Publication   int      `json:"original_publication_year"`
	OriginalTitle string   `json:"original_title"`
	Title         string   `json:"title"`
	AverageRating *float64 `json:"average_rating"`
	RatingsCount  int      `json:"ratings_count"`
	Ratings1      int      `json:"ratings_1"`
	Ratings2      int      `json:"ratings_2"`
	Ratings3      int      `json:"ratings_3"`
	Ratings4      int      `json:"ratings_4"`
	Ratings5      int      `json:"ratings_5"`
	ImageURL      string   `json:"image_url"`
	SmallImageURL string   `json:"small_image_url"`
}

// ToLegacy flattens a nested book into the legacy shape. It is pure and
// total. The numeric isbn13 is formatted to exactly 13 digits so the
// string form round-trips losslessly, and author names are joined with
// ", " exactly as the create path splits them.
func ToLegacy(book Book) LegacyBook {
	return LegacyBook{
		ISBN13:        fmt.Sprintf("%013d", book.ISBN13),
		Authors:       strings.Join(book.Authors, ", "),
		Publication:   book.Publication,
		OriginalTitle: book.OriginalTitle,
		Title:         book.Title,
		AverageRating: book.Ratings.Average,
		RatingsCount:  book.Ratings.Count,
		Ratings1:      book.Ratings.Rating1,
		Ratings2:      book.Ratings.Rating2,
		Ratings3:      book.Ratings.Rating3,
		Ratings4:      book.Ratings.Rating4,
		Ratings5:      book.Ratings.Rating5,
		ImageURL:      book.Icons.Large,
		SmallImageURL: book.Icons.Small,
	}
}

// FromLegacy lifts a flat legacy record into the nested shape.
//
// The string-to-numeric isbn13 change is the one lossy boundary of the
// conversion: it requires an all-numeric, 13-digit identifier, and
// anything else is rejected. All other fields are copied verbatim, so a
// value converted forward and back is identical.
func FromLegacy(legacy LegacyBook) (Book, error) {
	isbn, err := ParseISBN(legacy.ISBN13)
	if err != nil {
		return Book{}, err
	}
	if ISBN(legacy.ISBN13) != isbn {
		return Book{}, apperr.ValidationError("Invalid ISBN - must be a 13-digit string", apperr.FieldError{
			Field:   FieldISBN13,
			Message: "Legacy isbn13 must already be in canonical 13-digit form",
		})
	}

	numeric, err := strconv.ParseInt(isbn.String(), 10, 64)
	if err != nil {
		return Book{}, apperr.Internal(err)
	}

	return Book{
		ISBN13:        numeric,
		Authors:       SplitAuthors(legacy.Authors),
		Publication:   legacy.Publication,
		OriginalTitle: legacy.OriginalTitle,
		Title:         legacy.Title,
		Ratings: Ratings{
			Average: legacy.AverageRating,
			Count:   legacy.RatingsCount,
			Rating1: legacy.Ratings1,
			Rating2: legacy.Ratings2,
			Rating3: legacy.Ratings3,
			Rating4: legacy.Ratings4,
			Rating5: legacy.Ratings5,
		},
		Icons: Icons{
			Large: legacy.ImageURL,
			Small: legacy.SmallImageURL,
		},
	}, nil
}

// ToLegacyBooks converts a result set at the response boundary.
func ToLegacyBooks(books []*Book) []LegacyBook {
	return slice.Map(books, func(b *Book) LegacyBook {
		return ToLegacy(*b)
	})
}

// SplitAuthors splits a comma-separated author-name string into trimmed,
// non-empty names, preserving order. It is the single inverse of the
// ", " join performed by ToLegacy.
func SplitAuthors(csv string) []string {
	return query.StringSlice(csv)
}
