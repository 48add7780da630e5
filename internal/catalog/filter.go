package catalog

import (
	"net/url"
	"time"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/pkg/convert"
)

// Filter holds the recognized options of a filtered catalog listing. All
// predicates combine with logical AND. Every field carries a permissive
// default, so an unfiltered listing is just DefaultFilter(): the store
// translates the struct into one fixed predicate template where every
// filter is always bound, rather than building SQL text conditionally.
//
// Rating bounds apply to the derived average and derived total count,
// never to raw counters. A book with no rating data (count 0, average
// undefined) passes the rating bounds only while MinRating is 0; it is
// excluded from any MinRating > 0 filter.
type Filter struct {
	Author         string
	Title          string
	MinYear        int
	MaxYear        int
	MinRating      float64
	MaxRating      float64
	MinRatingCount int
	// MaxRatingCount is nil when unbounded.
	MaxRatingCount *int
}

// DefaultFilter returns the permissive bounds that match every book.
func DefaultFilter() Filter {
	return Filter{
		MaxYear:   time.Now().Year(),
		MaxRating: 5,
	}
}

// FilterFromQuery parses listing filters from URL query values. Each
// option is independently defaulted when absent or invalid (negative
// numbers and unparseable strings fall back silently, matching the
// lenient contract of the listing endpoint).
func FilterFromQuery(values url.Values) Filter {
	filter := DefaultFilter()

	filter.Author = values.Get("author")
	filter.Title = values.Get("title")

	if v := convert.ToIntD(values.Get("minYear"), -1); v >= 0 {
		filter.MinYear = v
	}
	if v := convert.ToIntD(values.Get("maxYear"), -1); v >= 0 {
		filter.MaxYear = v
	}
	if v := convert.ToFloat64D(values.Get("minRating"), -1); v >= 0 {
		filter.MinRating = v
	}
	if v := convert.ToFloat64D(values.Get("maxRating"), -1); v >= 0 {
		filter.MaxRating = v
	}
	if v := convert.ToIntD(values.Get("minRatingCount"), -1); v >= 0 {
		filter.MinRatingCount = v
	}
	if v := convert.ToIntD(values.Get("maxRatingCount"), -1); v >= 0 {
		filter.MaxRatingCount = &v
	}

	return filter
}

// Validate rejects bound combinations that can never match anything.
// Parse failures default silently; contradictory explicit bounds are a
// client error worth surfacing before any database call.
func (f Filter) Validate() error {
	validationErr := func(field, msg string) error {
		return apperr.ValidationError("Invalid filter parameters", apperr.FieldError{Field: field, Message: msg})
	}

	if f.MinYear > f.MaxYear {
		return validationErr(FieldFilter, "minYear must not exceed maxYear")
	}
	if f.MinRating > f.MaxRating {
		return validationErr(FieldFilter, "minRating must not exceed maxRating")
	}
	if f.MaxRatingCount != nil && f.MinRatingCount > *f.MaxRatingCount {
		return validationErr(FieldFilter, "minRatingCount must not exceed maxRatingCount")
	}
	return nil
}
