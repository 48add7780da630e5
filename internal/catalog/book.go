package catalog

// Book is the canonical nested representation of a catalog entry. All
// internal query and service logic operates on this shape only; the flat
// legacy shape exists purely at the response boundary (see legacy.go).
type Book struct {
	ISBN13        int64    `json:"isbn13"`
	Authors       []string `json:"authors"`
	Publication   int      `json:"publication"`
	OriginalTitle string   `json:"original_title"`
	Title         string   `json:"title"`
	Ratings       Ratings  `json:"ratings"`
	Icons         Icons    `json:"icons"`
}

// Ratings groups the derived aggregate with the five raw star counters.
//
// Average is nil when the book has no ratings at all. That is distinct
// from 0.00: a nil average means "no rating data", not "rated zero".
type Ratings struct {
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
	Rating1 int      `json:"rating_1"`
	Rating2 int      `json:"rating_2"`
	Rating3 int      `json:"rating_3"`
	Rating4 int      `json:"rating_4"`
	Rating5 int      `json:"rating_5"`
}

// Icons groups the cover image URLs.
type Icons struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

// CreateInput carries the validated parameters of a book creation. The
// service layer builds it from the request body after validation; the
// store persists it atomically across all four tables.
type CreateInput struct {
	ISBN          ISBN
	Title         string
	OriginalTitle string
	Publication   int
	ImageURL      string
	SmallImageURL string
	Authors       []string
	Tally         Tally
}

// Global field names for validation
const (
	FieldISBN13        = "isbn13"
	FieldAuthors       = "authors"
	FieldTitle         = "title"
	FieldOriginalTitle = "original_title"
	FieldPublication   = "original_publication_year"
	FieldImageURL      = "image_url"
	FieldSmallImageURL = "small_image_url"
	FieldRatings       = "ratings"
	FieldYearRange     = "year_range"
	FieldFilter        = "filter"
)
