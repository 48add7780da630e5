package catalog

import "context"

// Repository is the storage contract for the catalog. Read operations
// never lock beyond the database's default read consistency; mutating
// operations each run inside one transaction with rollback on failure.
type Repository interface {
	FindByISBN(ctx context.Context, isbn ISBN) (*Book, error)
	FindByAuthor(ctx context.Context, author string) ([]*Book, error)
	FindByTitle(ctx context.Context, title string) (*Book, error)
	// List returns one page plus, when includeTotal, the count of rows
	// matching every filter but ignoring limit/offset (nil otherwise).
	List(ctx context.Context, f Filter, limit, offset int, includeTotal bool) ([]*Book, *int, error)

	Create(ctx context.Context, input CreateInput) error
	UpdateRatings(ctx context.Context, isbn ISBN, tally Tally) error
	// DeleteByISBN removes one book and its dependents, returning the
	// deleted book as it existed at deletion time.
	DeleteByISBN(ctx context.Context, isbn ISBN) (*Book, error)
	// DeleteByYearRange removes every book whose publication year lies in
	// [startYear, endYear], returning the full deleted set.
	DeleteByYearRange(ctx context.Context, startYear, endYear int) ([]*Book, error)
}
