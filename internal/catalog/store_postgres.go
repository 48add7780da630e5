/*
Package catalog implements the catalog query & mutation engine over the
normalized book schema.

The PostgreSQL store keeps one canonical join shape for every read path:
books outer-joined with book_ratings (so a missing tally never hides a
book), joined through author_books to authors with the names aggregated
into an ordered array. The rating average and count are derived from the
five stored counters on every read; they are never persisted, which makes
aggregate drift structurally impossible.
*/
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/database/schema"
	"github.com/tomebase/tomebase/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalog store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// querier abstracts pool vs. transaction so the read shape can serve
// both plain reads and the select-then-delete paths.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tallyTotalExpr is the derived total-count expression over the
// outer-joined tally row. COALESCE keeps books without a tally at 0.
func tallyTotalExpr() string {
	r := schema.BookRatings
	return fmt.Sprintf("(COALESCE(r.%s,0) + COALESCE(r.%s,0) + COALESCE(r.%s,0) + COALESCE(r.%s,0) + COALESCE(r.%s,0))",
		r.Ratings1, r.Ratings2, r.Ratings3, r.Ratings4, r.Ratings5)
}

// tallyAvgExpr is the derived average expression. It is the exact SQL
// twin of [AggregateTally]: ROUND(weighted / NULLIF(total, 0), 2) with
// numeric half-up rounding, so filters and displayed values agree.
func tallyAvgExpr() string {
	r := schema.BookRatings
	weighted := fmt.Sprintf("(COALESCE(r.%s,0)*1.0 + COALESCE(r.%s,0)*2 + COALESCE(r.%s,0)*3 + COALESCE(r.%s,0)*4 + COALESCE(r.%s,0)*5)",
		r.Ratings1, r.Ratings2, r.Ratings3, r.Ratings4, r.Ratings5)
	return fmt.Sprintf("ROUND(%s / NULLIF(%s, 0), 2)", weighted, tallyTotalExpr())
}

// selectBooksQuery builds the canonical read shape with the given WHERE
// clause and trailing clauses (LIMIT/OFFSET placeholders for listings).
func selectBooksQuery(where, trailing string) string {
	b, r, ab, a := schema.Books, schema.BookRatings, schema.AuthorBooks, schema.Authors
	return fmt.Sprintf(`
		SELECT
			b.%s,
			COALESCE(ARRAY_AGG(a.%s ORDER BY a.%s) FILTER (WHERE a.%s IS NOT NULL), '{}') AS authors,
			b.%s,
			b.%s,
			b.%s,
			COALESCE(r.%s, 0), COALESCE(r.%s, 0), COALESCE(r.%s, 0), COALESCE(r.%s, 0), COALESCE(r.%s, 0),
			b.%s,
			b.%s
		FROM %s b
		LEFT JOIN %s r ON r.%s = b.%s
		LEFT JOIN %s ab ON ab.%s = b.%s
		LEFT JOIN %s a ON a.%s = ab.%s
		WHERE %s
		GROUP BY
			b.%s, b.%s, b.%s, b.%s,
			r.%s, r.%s, r.%s, r.%s, r.%s,
			b.%s, b.%s
		ORDER BY b.%s ASC%s`,
		b.ISBN13,
		a.Name, a.Name, a.Name,
		b.Publication,
		b.OriginalTitle,
		b.Title,
		r.Ratings1, r.Ratings2, r.Ratings3, r.Ratings4, r.Ratings5,
		b.ImageURL,
		b.SmallImageURL,
		b.Table,
		r.Table, r.ISBN13, b.ISBN13,
		ab.Table, ab.ISBN13, b.ISBN13,
		a.Table, a.AuthorID, ab.AuthorID,
		where,
		b.ISBN13, b.Publication, b.OriginalTitle, b.Title,
		r.Ratings1, r.Ratings2, r.Ratings3, r.Ratings4, r.Ratings5,
		b.ImageURL, b.SmallImageURL,
		b.ISBN13, trailing,
	)
}

// authorMatchSubquery matches books having at least one author whose name
// contains the needle, case-insensitively. It runs as an IN subquery so
// the outer ARRAY_AGG still returns the complete author list.
func authorMatchSubquery(arg int) string {
	a, ab := schema.Authors, schema.AuthorBooks
	return fmt.Sprintf(`b.%s IN (
			SELECT ab2.%s
			FROM %s ab2
			JOIN %s a2 ON a2.%s = ab2.%s
			WHERE a2.%s ILIKE '%%' || $%d || '%%'
		)`,
		schema.Books.ISBN13,
		ab.ISBN13, ab.Table,
		a.Table, a.AuthorID, ab.AuthorID,
		a.Name, arg,
	)
}

// scanBook maps one canonical-shape row into the domain model, deriving
// the rating aggregate from the scanned counters.
func scanBook(row pgx.Row) (*Book, error) {
	var (
		rawISBN string
		book    Book
		tally   Tally
	)
	err := row.Scan(
		&rawISBN,
		&book.Authors,
		&book.Publication,
		&book.OriginalTitle,
		&book.Title,
		&tally.Ratings1, &tally.Ratings2, &tally.Ratings3, &tally.Ratings4, &tally.Ratings5,
		&book.Icons.Large,
		&book.Icons.Small,
	)
	if err != nil {
		return nil, err
	}

	book.ISBN13, err = strconv.ParseInt(rawISBN, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("postgres: non-numeric isbn13 %q in books table: %w", rawISBN, err)
	}

	book.Ratings = AggregateTally(tally)
	return &book, nil
}

// collectBooks drains a row set through scanBook.
func collectBooks(rows pgx.Rows) ([]*Book, error) {
	defer rows.Close()

	// Non-nil so an empty page serializes as [] rather than null.
	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}
	return books, dberr.Wrap(rows.Err(), "iterate_books")
}

// FindByISBN retrieves a single book by its canonical 13-digit key.
func (repository *PostgresRepository) FindByISBN(ctx context.Context, isbn ISBN) (*Book, error) {
	query := selectBooksQuery(fmt.Sprintf("b.%s = $1", schema.Books.ISBN13), "")

	book, err := scanBook(repository.pool.QueryRow(ctx, query, isbn.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("ISBN")
		}
		return nil, dberr.Wrap(err, "find_book_by_isbn")
	}
	return book, nil
}

// FindByAuthor retrieves every book with at least one author whose name
// contains the needle (case-insensitive). An empty result is returned as
// an empty slice; the service layer decides how to report it.
func (repository *PostgresRepository) FindByAuthor(ctx context.Context, author string) ([]*Book, error) {
	query := selectBooksQuery(authorMatchSubquery(1), "")

	rows, err := repository.pool.Query(ctx, query, author)
	if err != nil {
		return nil, dberr.Wrap(err, "find_books_by_author")
	}
	return collectBooks(rows)
}

// FindByTitle retrieves the book whose title equals the needle
// case-insensitively. Title uniqueness is not enforced at the schema
// level, so ties break deterministically on the lowest isbn13.
func (repository *PostgresRepository) FindByTitle(ctx context.Context, title string) (*Book, error) {
	query := selectBooksQuery(
		fmt.Sprintf("LOWER(b.%s) = LOWER($1)", schema.Books.Title),
		" LIMIT 1",
	)

	book, err := scanBook(repository.pool.QueryRow(ctx, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "find_book_by_title")
	}
	return book, nil
}

// listPredicate is the fixed predicate template of the filtered listing.
// Every filter is always bound ($1..$8); absent filters carry permissive
// bounds, so the SQL text never changes shape. Books without a tally are
// treated as count 0 / average undefined: the CASE branch admits them
// only while the minimum-rating bound is trivial.
func listPredicate() string {
	total, avg := tallyTotalExpr(), tallyAvgExpr()
	return fmt.Sprintf(`($1 = '' OR %s)
		AND b.%s ILIKE '%%' || $2 || '%%'
		AND b.%s BETWEEN $3 AND $4
		AND (CASE WHEN %s = 0 THEN $5::numeric <= 0 ELSE %s BETWEEN $5 AND $6 END)
		AND %s >= $7
		AND ($8::bigint IS NULL OR %s <= $8)`,
		authorMatchSubquery(1),
		schema.Books.Title,
		schema.Books.Publication,
		total, avg,
		total,
		total,
	)
}

// List returns a filtered, paginated page ordered by ascending isbn13
// (the only ordering that keeps pagination stable across pages), plus
// the total matching-row count when includeTotal is set.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int, includeTotal bool) ([]*Book, *int, error) {
	predicate := listPredicate()

	args := []any{
		filter.Author,
		filter.Title,
		filter.MinYear,
		filter.MaxYear,
		filter.MinRating,
		filter.MaxRating,
		filter.MinRatingCount,
		filter.MaxRatingCount,
	}

	query := selectBooksQuery(predicate, " LIMIT $9 OFFSET $10")
	rows, err := repository.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "list_books")
	}

	books, err := collectBooks(rows)
	if err != nil {
		return nil, nil, err
	}

	if !includeTotal {
		return books, nil, nil
	}

	// The count ignores limit/offset but applies every filter. The author
	// predicate runs as a subquery, so no author join is needed here.
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s b
		LEFT JOIN %s r ON r.%s = b.%s
		WHERE %s`,
		schema.Books.Table,
		schema.BookRatings.Table, schema.BookRatings.ISBN13, schema.Books.ISBN13,
		predicate,
	)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, nil, dberr.Wrap(err, "count_books")
	}

	return books, &total, nil
}
