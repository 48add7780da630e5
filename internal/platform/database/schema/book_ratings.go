package schema

// BookRatingsTable represents the 'book_ratings' table.
//
// Only the five raw counters are stored. The average and total count are
// always derived at read time, never persisted.
type BookRatingsTable struct {
	Table    string
	ISBN13   string
	Ratings1 string
	Ratings2 string
	Ratings3 string
	Ratings4 string
	Ratings5 string
}

// BookRatings is the schema definition for book_ratings
var BookRatings = BookRatingsTable{
	Table:    "book_ratings",
	ISBN13:   "isbn13",
	Ratings1: "ratings_1",
	Ratings2: "ratings_2",
	Ratings3: "ratings_3",
	Ratings4: "ratings_4",
	Ratings5: "ratings_5",
}

// BooksPKey is the primary key constraint on books.isbn13, used to
// classify duplicate-ISBN inserts.
const BooksPKey = "books_pkey"
