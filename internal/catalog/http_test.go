// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomebase/tomebase/internal/catalog"
	"github.com/tomebase/tomebase/internal/platform/ctxutil"
	"github.com/tomebase/tomebase/internal/platform/sec"
)

func newTestRouter(repo *stubRepository) *chi.Mux {
	handler := catalog.NewHandler(newTestService(repo))
	router := chi.NewRouter()
	router.Route("/books", handler.RegisterRoutes)
	return router
}

// doRequest executes an HTTP request as an authenticated user with the
// given role, or anonymously when role is empty.
func doRequest(t *testing.T, router http.Handler, method, target, role, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if role != "" {
		claims := &sec.AuthClaims{UserID: "user-1", Username: "tester", Role: role}
		request = request.WithContext(ctxutil.WithAuthUser(context.Background(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

/*
TestHandler_RequiresAuthentication verifies every catalog route is closed.
*/
func TestHandler_RequiresAuthentication(t *testing.T) {
	router := newTestRouter(&stubRepository{})

	recorder := doRequest(t, router, http.MethodGet, "/books/isbn/9780134685991", "", "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	payload := decodeBody(t, recorder)
	assert.Equal(t, "Authentication required", payload["message"])
}

/*
TestHandler_GetBookByISBN verifies the single-book envelope and nested shape.
*/
func TestHandler_GetBookByISBN(t *testing.T) {
	want := sampleBook()
	repo := &stubRepository{
		findByISBN: func(ctx context.Context, isbn catalog.ISBN) (*catalog.Book, error) {
			return &want, nil
		},
	}
	router := newTestRouter(repo)

	recorder := doRequest(t, router, http.MethodGet, "/books/isbn/9780134685991", "member", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)

	book, ok := payload["book"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(9780134685991), book["isbn13"])
	assert.Equal(t, []any{"David Thomas", "Andrew Hunt"}, book["authors"])

	ratings, ok := book["ratings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4.33, ratings["average"])
}

/*
TestHandler_LegacyFormat verifies ?format=legacy returns the flat shape.
*/
func TestHandler_LegacyFormat(t *testing.T) {
	want := sampleBook()
	repo := &stubRepository{
		findByISBN: func(ctx context.Context, isbn catalog.ISBN) (*catalog.Book, error) {
			return &want, nil
		},
	}
	router := newTestRouter(repo)

	recorder := doRequest(t, router, http.MethodGet, "/books/isbn/9780134685991?format=legacy", "member", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)

	book, ok := payload["book"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "9780134685991", book["isbn13"])
	assert.Equal(t, "David Thomas, Andrew Hunt", book["authors"])
	assert.Equal(t, 4.33, book["average_rating"])
	assert.NotContains(t, book, "ratings")
	assert.NotContains(t, book, "icons")
}

/*
TestHandler_ListBooks verifies the paginated envelope.
*/
func TestHandler_ListBooks(t *testing.T) {
	want := sampleBook()
	total := 1
	repo := &stubRepository{
		list: func(ctx context.Context, f catalog.Filter, limit, offset int, includeTotal bool) ([]*catalog.Book, *int, error) {
			return []*catalog.Book{&want}, &total, nil
		},
	}
	router := newTestRouter(repo)

	recorder := doRequest(t, router, http.MethodGet, "/books?limit=10&offset=0", "member", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)

	books, ok := payload["books"].([]any)
	require.True(t, ok)
	assert.Len(t, books, 1)

	meta, ok := payload["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), meta["totalRecords"])
	assert.Equal(t, float64(10), meta["nextPage"])
	assert.Equal(t, false, meta["hasMore"])
}

/*
TestHandler_CreateBook verifies the role gate and the 201 envelope.
*/
func TestHandler_CreateBook(t *testing.T) {
	body := `{
		"isbn13": "9780134685991",
		"authors": "David Thomas, Andrew Hunt",
		"original_publication_year": 2019,
		"original_title": "The Pragmatic Programmer",
		"title": "The Pragmatic Programmer",
		"ratings_1": 0, "ratings_2": 0, "ratings_3": 0, "ratings_4": 2, "ratings_5": 1,
		"image_url": "https://images.example.com/large.jpg",
		"small_image_url": "https://images.example.com/small.jpg"
	}`

	t.Run("member_forbidden", func(t *testing.T) {
		router := newTestRouter(&stubRepository{})

		recorder := doRequest(t, router, http.MethodPost, "/books", "member", body)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("librarian_creates", func(t *testing.T) {
		want := sampleBook()
		repo := &stubRepository{
			create: func(ctx context.Context, input catalog.CreateInput) error {
				assert.Equal(t, catalog.Tally{Ratings4: 2, Ratings5: 1}, input.Tally)
				return nil
			},
			findByISBN: func(ctx context.Context, isbn catalog.ISBN) (*catalog.Book, error) {
				return &want, nil
			},
		}
		router := newTestRouter(repo)

		recorder := doRequest(t, router, http.MethodPost, "/books", "librarian", body)

		require.Equal(t, http.StatusCreated, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Contains(t, payload, "book")
	})

	t.Run("validation_errors_flattened", func(t *testing.T) {
		router := newTestRouter(&stubRepository{})

		recorder := doRequest(t, router, http.MethodPost, "/books", "librarian", `{"isbn13": "123"}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Equal(t, "Validation failed", payload["message"])
		errs, ok := payload["errors"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, errs)
	})
}

/*
TestHandler_DeleteBookByISBN verifies the 204 contract for single deletes.
*/
func TestHandler_DeleteBookByISBN(t *testing.T) {
	want := sampleBook()
	repo := &stubRepository{
		deleteByISBN: func(ctx context.Context, isbn catalog.ISBN) (*catalog.Book, error) {
			return &want, nil
		},
	}
	router := newTestRouter(repo)

	recorder := doRequest(t, router, http.MethodDelete, "/books/isbn/9780134685991", "librarian", "")

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

/*
TestHandler_DeleteBooksByYearRange verifies the admin gate and bulk envelope.
*/
func TestHandler_DeleteBooksByYearRange(t *testing.T) {
	t.Run("librarian_forbidden", func(t *testing.T) {
		router := newTestRouter(&stubRepository{})

		recorder := doRequest(t, router, http.MethodDelete, "/books/range?start_year=2000&end_year=2010", "librarian", "")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin_deletes", func(t *testing.T) {
		want := sampleBook()
		repo := &stubRepository{
			deleteByYearRange: func(ctx context.Context, startYear, endYear int) ([]*catalog.Book, error) {
				return []*catalog.Book{&want}, nil
			},
		}
		router := newTestRouter(repo)

		recorder := doRequest(t, router, http.MethodDelete, "/books/range?start_year=2000&end_year=2010", "admin", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Equal(t, float64(1), payload["deletedCount"])
		books, ok := payload["books"].([]any)
		require.True(t, ok)
		assert.Len(t, books, 1)
	})

	t.Run("missing_year_params_rejected", func(t *testing.T) {
		router := newTestRouter(&stubRepository{})

		recorder := doRequest(t, router, http.MethodDelete, "/books/range?start_year=2000", "admin", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/*
TestHandler_UpdateBookRatings verifies the ratings replacement route.
*/
func TestHandler_UpdateBookRatings(t *testing.T) {
	want := sampleBook()
	repo := &stubRepository{
		updateRatings: func(ctx context.Context, isbn catalog.ISBN, tally catalog.Tally) error {
			assert.Equal(t, catalog.Tally{Ratings1: 1, Ratings5: 9}, tally)
			return nil
		},
		findByISBN: func(ctx context.Context, isbn catalog.ISBN) (*catalog.Book, error) {
			return &want, nil
		},
	}
	router := newTestRouter(repo)

	body := `{"ratings_1": 1, "ratings_2": 0, "ratings_3": 0, "ratings_4": 0, "ratings_5": 9}`
	recorder := doRequest(t, router, http.MethodPut, "/books/9780134685991/ratings", "librarian", body)

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)
	assert.Contains(t, payload, "book")
}
