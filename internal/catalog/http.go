package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tomebase/tomebase/internal/platform/apperr"
	"github.com/tomebase/tomebase/internal/platform/middleware"
	requestutil "github.com/tomebase/tomebase/internal/platform/request"
	"github.com/tomebase/tomebase/internal/platform/respond"
	"github.com/tomebase/tomebase/internal/platform/sec"
	"github.com/tomebase/tomebase/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints. Every route requires an
// authenticated caller; mutations additionally require the librarian
// role, and the bulk delete is admin only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listBooks)
	router.Get("/isbn/{isbn13}", handler.getBookByISBN)
	router.Get("/author/{author}", handler.getBooksByAuthor)
	router.Get("/title/{title}", handler.getBookByTitle)

	router.Group(func(librarianRoute chi.Router) {
		librarianRoute.Use(middleware.RequireRole(sec.RoleLibrarian))

		librarianRoute.Post("/", handler.createBook)
		librarianRoute.Put("/{isbn13}/ratings", handler.updateBookRatings)
		librarianRoute.Delete("/isbn/{isbn13}", handler.deleteBookByISBN)

		// Admin strict only
		librarianRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/range", handler.deleteBooksByYearRange)
	})
}

// createBookRequest is the flat creation payload. Authors arrive as one
// comma-separated string and the five counters are raw tallies; the
// average and count are derived server-side and never accepted as input.
type createBookRequest struct {
	ISBN13        string `json:"isbn13"`
	Authors       string `json:"authors"`
	Publication   int    `json:"original_publication_year"`
	OriginalTitle string `json:"original_title"`
	Title         string `json:"title"`
	Ratings1      int    `json:"ratings_1"`
	Ratings2      int    `json:"ratings_2"`
	Ratings3      int    `json:"ratings_3"`
	Ratings4      int    `json:"ratings_4"`
	Ratings5      int    `json:"ratings_5"`
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := FilterFromQuery(request.URL.Query())

	books, total, err := handler.service.List(request.Context(), filter,
		paginationParams.Limit, paginationParams.Offset, paginationParams.IncludeTotal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(paginationParams.Limit, paginationParams.Offset, total)
	respond.Paginated(writer, renderBooks(request, books), meta)
}

func (handler *Handler) getBookByISBN(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetByISBN(request.Context(), requestutil.Param(request, "isbn13"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Book(writer, renderBook(request, book))
}

func (handler *Handler) getBooksByAuthor(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.GetByAuthor(request.Context(), requestutil.Param(request, "author"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Books(writer, renderBooks(request, books))
}

func (handler *Handler) getBookByTitle(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetByTitle(request.Context(), requestutil.Param(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Book(writer, renderBook(request, book))
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), CreateRequest{
		ISBN13:        input.ISBN13,
		Authors:       input.Authors,
		Title:         input.Title,
		OriginalTitle: input.OriginalTitle,
		Publication:   input.Publication,
		ImageURL:      input.ImageURL,
		SmallImageURL: input.SmallImageURL,
		Tally: Tally{
			Ratings1: input.Ratings1,
			Ratings2: input.Ratings2,
			Ratings3: input.Ratings3,
			Ratings4: input.Ratings4,
			Ratings5: input.Ratings5,
		},
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedBook(writer, renderBook(request, book))
}

func (handler *Handler) updateBookRatings(writer http.ResponseWriter, request *http.Request) {
	var tally Tally
	if err := requestutil.DecodeJSON(request, &tally); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.UpdateRatings(request.Context(), requestutil.Param(request, "isbn13"), tally)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Book(writer, renderBook(request, book))
}

func (handler *Handler) deleteBookByISBN(writer http.ResponseWriter, request *http.Request) {
	if _, err := handler.service.DeleteByISBN(request.Context(), requestutil.Param(request, "isbn13")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteBooksByYearRange(writer http.ResponseWriter, request *http.Request) {
	startYear, err := yearQueryParam(request, "start_year")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	endYear, err := yearQueryParam(request, "end_year")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.DeleteByYearRange(request.Context(), startYear, endYear)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Deleted(writer, len(books), renderBooks(request, books))
}

// yearQueryParam parses a required integer year from the query string.
func yearQueryParam(request *http.Request, name string) (int, error) {
	raw := request.URL.Query().Get(name)
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.ValidationError("Invalid year values. start_year and end_year must be integers.", apperr.FieldError{
			Field:   name,
			Message: "Must be an integer year",
		})
	}
	return year, nil
}

// wantsLegacy reports whether the caller asked for the flat legacy
// representation via ?format=legacy.
func wantsLegacy(request *http.Request) bool {
	return request.URL.Query().Get("format") == "legacy"
}

func renderBook(request *http.Request, book *Book) interface{} {
	if wantsLegacy(request) {
		return ToLegacy(*book)
	}
	return book
}

func renderBooks(request *http.Request, books []*Book) interface{} {
	if wantsLegacy(request) {
		return ToLegacyBooks(books)
	}
	return books
}
