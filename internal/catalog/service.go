package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/validate"
)

// Service orchestrates catalog operations: it validates input before any
// database call, delegates to the repository, and logs mutations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateRequest carries the raw, unvalidated creation parameters as the
// client supplies them: a flat field set with a comma-separated author
// string and the five counters. The derived average and count are never
// accepted from clients; they exist only as computed values.
type CreateRequest struct {
	ISBN13        string
	Authors       string
	Title         string
	OriginalTitle string
	Publication   int
	ImageURL      string
	SmallImageURL string
	Tally         Tally
}

// GetByISBN returns the single book stored under the canonical form of
// the supplied identifier.
func (service *Service) GetByISBN(ctx context.Context, rawISBN string) (*Book, error) {
	isbn, err := ParseISBN(rawISBN)
	if err != nil {
		return nil, err
	}
	return service.repo.FindByISBN(ctx, isbn)
}

// GetByAuthor returns every book matching the author needle. A matched
// set of zero books is reported as NOT_FOUND, not as an empty page.
func (service *Service) GetByAuthor(ctx context.Context, author string) ([]*Book, error) {
	needle := strings.TrimSpace(author)

	validator := &validate.Validator{}
	validator.Required(FieldAuthors, needle).MaxLen(FieldAuthors, needle, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	books, err := service.repo.FindByAuthor(ctx, needle)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperr.NotFound("Books for the given author")
	}
	return books, nil
}

// GetByTitle returns the book whose title matches exactly,
// case-insensitively (ties resolved on the lowest isbn13 by the store).
func (service *Service) GetByTitle(ctx context.Context, title string) (*Book, error) {
	needle := strings.TrimSpace(title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, needle).MaxLen(FieldTitle, needle, 255)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByTitle(ctx, needle)
}

// List returns a filtered page and, when includeTotal, the count of all
// rows matching the filters.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int, includeTotal bool) ([]*Book, *int, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}
	return service.repo.List(ctx, filter, limit, offset, includeTotal)
}

// Create validates and persists a new book with its tally and author
// links in one transaction, then re-reads it through the canonical read
// path so the response carries the derived aggregate.
func (service *Service) Create(ctx context.Context, request CreateRequest) (*Book, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, request.Title).MaxLen(FieldTitle, request.Title, 255)
	validator.MaxLen(FieldOriginalTitle, request.OriginalTitle, 255)
	validator.Required(FieldAuthors, request.Authors)
	validator.Required(FieldImageURL, request.ImageURL)
	validator.Required(FieldSmallImageURL, request.SmallImageURL)
	validator.Range(FieldPublication, request.Publication, 1, time.Now().Year())
	validator.Custom(FieldRatings, hasNegativeCounter(request.Tally), "Rating counters must be non-negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	isbn, err := ParseISBN(request.ISBN13)
	if err != nil {
		return nil, err
	}

	authors := SplitAuthors(request.Authors)
	if len(authors) == 0 {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldAuthors,
			Message: "At least one author name is required",
		})
	}

	input := CreateInput{
		ISBN:          isbn,
		Title:         strings.TrimSpace(request.Title),
		OriginalTitle: strings.TrimSpace(request.OriginalTitle),
		Publication:   request.Publication,
		ImageURL:      request.ImageURL,
		SmallImageURL: request.SmallImageURL,
		Authors:       authors,
		Tally:         request.Tally,
	}

	if err := service.repo.Create(ctx, input); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("isbn13", isbn.String()),
		slog.Int("authors", len(authors)),
	)

	return service.repo.FindByISBN(ctx, isbn)
}

// UpdateRatings replaces the five counters for one book and returns the
// re-read book so the caller sees the fresh derived aggregate.
func (service *Service) UpdateRatings(ctx context.Context, rawISBN string, tally Tally) (*Book, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldRatings, hasNegativeCounter(tally), "Rating counters must be non-negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	isbn, err := ParseISBN(rawISBN)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateRatings(ctx, isbn, tally); err != nil {
		return nil, err
	}

	service.logger.Info("book_ratings_updated", slog.String("isbn13", isbn.String()))
	return service.repo.FindByISBN(ctx, isbn)
}

// DeleteByISBN removes one book and its dependents.
func (service *Service) DeleteByISBN(ctx context.Context, rawISBN string) (*Book, error) {
	isbn, err := ParseISBN(rawISBN)
	if err != nil {
		return nil, err
	}

	book, err := service.repo.DeleteByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("book_deleted", slog.String("isbn13", isbn.String()))
	return book, nil
}

// DeleteByYearRange removes every book published in the inclusive range.
// The bounds are rejected before any query executes: both non-negative,
// start not after end, neither in the future.
func (service *Service) DeleteByYearRange(ctx context.Context, startYear, endYear int) ([]*Book, error) {
	if startYear < 0 || endYear < 0 {
		return nil, apperr.ValidationError("Invalid year values. Years cannot be negative.", apperr.FieldError{
			Field: FieldYearRange, Message: "start_year and end_year must be non-negative",
		})
	}
	if startYear > endYear {
		return nil, apperr.ValidationError("Invalid year range. start_year must be less than or equal to end_year.", apperr.FieldError{
			Field: FieldYearRange, Message: "start_year must not exceed end_year",
		})
	}
	if currentYear := time.Now().Year(); startYear > currentYear || endYear > currentYear {
		return nil, apperr.ValidationError("Invalid year values. Years cannot be in the future.", apperr.FieldError{
			Field: FieldYearRange, Message: "years must not be in the future",
		})
	}

	books, err := service.repo.DeleteByYearRange(ctx, startYear, endYear)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("books_range_deleted",
		slog.Int("start_year", startYear),
		slog.Int("end_year", endYear),
		slog.Int("deleted", len(books)),
	)
	return books, nil
}

// hasNegativeCounter reports whether any raw counter is negative.
func hasNegativeCounter(t Tally) bool {
	return t.Ratings1 < 0 || t.Ratings2 < 0 || t.Ratings3 < 0 || t.Ratings4 < 0 || t.Ratings5 < 0
}
