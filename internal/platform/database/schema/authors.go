package schema

// AuthorsTable represents the 'authors' table
type AuthorsTable struct {
	Table    string
	AuthorID string
	Name     string
}

// Authors is the schema definition for authors
var Authors = AuthorsTable{
	Table:    "authors",
	AuthorID: "author_id",
	Name:     "author",
}

// AuthorsNameUnique is the unique constraint on authors.author. The create
// path relies on it as the authority for lazy author deduplication.
const AuthorsNameUnique = "authors_author_key"
