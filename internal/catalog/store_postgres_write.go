package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/database/schema"
	"github.com/tomebase/tomebase/internal/platform/dberr"
)

/*
Create persists a new book and all its dependent rows atomically.

One transaction covers the books row, the book_ratings tally, the lazy
author lookup-or-create per name, and every author_books link. If any
step fails the whole attempt rolls back: a partial book (a books row
with no authors, or a book without its tally) is never observable. A
duplicate isbn13 surfaces as a CONFLICT classified from the books_pkey
constraint.
*/
func (repository *PostgresRepository) Create(ctx context.Context, input CreateInput) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_tx")
	}
	defer transaction.Rollback(ctx)

	b := schema.Books
	bookQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.Table, strings.Join(b.Columns(), ", "),
	)
	_, err = transaction.Exec(ctx, bookQuery,
		input.ISBN.String(),
		input.Title,
		input.OriginalTitle,
		input.Publication,
		input.ImageURL,
		input.SmallImageURL,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_book")
	}

	r := schema.BookRatings
	tallyQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.Table, r.ISBN13, r.Ratings1, r.Ratings2, r.Ratings3, r.Ratings4, r.Ratings5,
	)
	_, err = transaction.Exec(ctx, tallyQuery,
		input.ISBN.String(),
		input.Tally.Ratings1,
		input.Tally.Ratings2,
		input.Tally.Ratings3,
		input.Tally.Ratings4,
		input.Tally.Ratings5,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_book_ratings")
	}

	ab := schema.AuthorBooks
	linkQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		ab.Table, ab.AuthorID, ab.ISBN13,
	)
	for _, name := range input.Authors {
		authorID, err := lookupOrCreateAuthor(ctx, transaction, name)
		if err != nil {
			return err
		}
		if _, err := transaction.Exec(ctx, linkQuery, authorID, input.ISBN.String()); err != nil {
			return dberr.Wrap(err, "insert_author_book")
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_create_tx")
	}
	return nil
}

/*
lookupOrCreateAuthor resolves an author name to its surrogate key,
creating the row on first appearance.

The lookup-then-insert pattern is inherently racy, so the unique
constraint on the name is the authority: the insert uses ON CONFLICT DO
NOTHING, and when a concurrent writer wins the race the follow-up select
observes "author already exists" and proceeds. No statement in this path
can abort the enclosing transaction on a lost race.
*/
func lookupOrCreateAuthor(ctx context.Context, transaction pgx.Tx, name string) (int, error) {
	a := schema.Authors
	selectQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, a.AuthorID, a.Table, a.Name)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1)
		ON CONFLICT (%s) DO NOTHING
		RETURNING %s`,
		a.Table, a.Name, a.Name, a.AuthorID,
	)

	var authorID int
	err := transaction.QueryRow(ctx, selectQuery, name).Scan(&authorID)
	if err == nil {
		return authorID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, dberr.Wrap(err, "lookup_author")
	}

	err = transaction.QueryRow(ctx, insertQuery, name).Scan(&authorID)
	if err == nil {
		return authorID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, dberr.Wrap(err, "insert_author")
	}

	// A concurrent transaction created the author between our lookup and
	// insert. Fetch the row that won.
	if err := transaction.QueryRow(ctx, selectQuery, name).Scan(&authorID); err != nil {
		return 0, dberr.Wrap(err, "refetch_author")
	}
	return authorID, nil
}

// UpdateRatings replaces the five stored counters for one book. The
// derived aggregate follows automatically on the next read.
func (repository *PostgresRepository) UpdateRatings(ctx context.Context, isbn ISBN, tally Tally) error {
	r := schema.BookRatings
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		r.Table, r.Ratings1, r.Ratings2, r.Ratings3, r.Ratings4, r.Ratings5, r.ISBN13,
	)

	cmd, err := repository.pool.Exec(ctx, query,
		isbn.String(),
		tally.Ratings1, tally.Ratings2, tally.Ratings3, tally.Ratings4, tally.Ratings5,
	)
	if err != nil {
		return dberr.Wrap(err, "update_book_ratings")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("ISBN")
	}
	return nil
}

// DeleteByISBN is the year-range deletion specialized to a single key:
// select the shaped row, then remove dependents and the book in one
// transaction. A nonexistent key reports NOT_FOUND and deletes nothing.
func (repository *PostgresRepository) DeleteByISBN(ctx context.Context, isbn ISBN) (*Book, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_delete_tx")
	}
	defer transaction.Rollback(ctx)

	query := selectBooksQuery(fmt.Sprintf("b.%s = $1", schema.Books.ISBN13), "")
	book, err := scanBook(transaction.QueryRow(ctx, query, isbn.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("ISBN")
		}
		return nil, dberr.Wrap(err, "select_book_for_delete")
	}

	if err := deleteBookSet(ctx, transaction, []string{isbn.String()}); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_delete_tx")
	}
	return book, nil
}

/*
DeleteByYearRange removes every book whose publication year falls in the
inclusive [startYear, endYear] range, returning the deleted set shaped
exactly like a listing result.

The transaction first selects the full matching set, so the caller gets
back the rows as they existed at deletion time. An empty selection
reports NOT_FOUND and leaves the tables untouched (the deferred rollback
discards the read-only transaction). Author rows are shared and are
never deleted here.
*/
func (repository *PostgresRepository) DeleteByYearRange(ctx context.Context, startYear, endYear int) ([]*Book, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_range_delete_tx")
	}
	defer transaction.Rollback(ctx)

	books, err := selectBooksByYearRange(ctx, transaction, startYear, endYear)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperr.NotFound("Books in the specified year range")
	}

	isbns := make([]string, 0, len(books))
	for _, book := range books {
		isbns = append(isbns, fmt.Sprintf("%013d", book.ISBN13))
	}

	if err := deleteBookSet(ctx, transaction, isbns); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_range_delete_tx")
	}
	return books, nil
}

// selectBooksByYearRange runs the canonical read shape over a publication
// year window inside the given transaction.
func selectBooksByYearRange(ctx context.Context, q querier, startYear, endYear int) ([]*Book, error) {
	query := selectBooksQuery(
		fmt.Sprintf("b.%s BETWEEN $1 AND $2", schema.Books.Publication),
		"",
	)
	rows, err := q.Query(ctx, query, startYear, endYear)
	if err != nil {
		return nil, dberr.Wrap(err, "select_books_by_year_range")
	}
	return collectBooks(rows)
}

// deleteBookSet removes the dependents and then the books for an exact
// isbn set, in dependency order: links, tallies, books.
func deleteBookSet(ctx context.Context, transaction pgx.Tx, isbns []string) error {
	statements := []struct {
		action string
		query  string
	}{
		{"delete_author_books", fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", schema.AuthorBooks.Table, schema.AuthorBooks.ISBN13)},
		{"delete_book_ratings", fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", schema.BookRatings.Table, schema.BookRatings.ISBN13)},
		{"delete_books", fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", schema.Books.Table, schema.Books.ISBN13)},
	}

	for _, statement := range statements {
		if _, err := transaction.Exec(ctx, statement.query, isbns); err != nil {
			return dberr.Wrap(err, statement.action)
		}
	}
	return nil
}
