package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table         string
	ISBN13        string
	Title         string
	OriginalTitle string
	Publication   string
	ImageURL      string
	SmallImageURL string
}

// Books is the schema definition for books
var Books = BooksTable{
	Table:         "books",
	ISBN13:        "isbn13",
	Title:         "title",
	OriginalTitle: "original_title",
	Publication:   "original_publication_year",
	ImageURL:      "image_url",
	SmallImageURL: "small_image_url",
}

// Columns lists the table's columns in canonical insert order.
func (t BooksTable) Columns() []string {
	return []string{
		t.ISBN13, t.Title, t.OriginalTitle, t.Publication, t.ImageURL, t.SmallImageURL,
	}
}
