package schema

// AuthorBooksTable represents the 'author_books' link table
type AuthorBooksTable struct {
	Table    string
	AuthorID string
	ISBN13   string
}

// AuthorBooks is the schema definition for author_books
var AuthorBooks = AuthorBooksTable{
	Table:    "author_books",
	AuthorID: "author_id",
	ISBN13:   "isbn13",
}
