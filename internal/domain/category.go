package domain

// Category is a named group of words backed by one source file.
// Categories are loaded once and treated as immutable afterwards.
type Category struct {
	// ID is the source file's base name without the recognized extension.
	ID string `json:"id"`

	// Words keeps the file order; duplicates are preserved.
	Words []string `json:"words"`
}

// NewCategory creates a Category holding a private copy of words.
func NewCategory(id string, words []string) Category {
	w := make([]string, len(words))
	copy(w, words)
	return Category{ID: id, Words: w}
}

// Len returns the number of words in the category.
func (c Category) Len() int {
	return len(c.Words)
}
