package wordqueue

import (
	"log/slog"

	"github.com/phrazzld/raptrainer/internal/domain"
)

// Cache maps category IDs to their words and remembers discovery order.
// Selection flags are indexed by that order, so it never changes after
// construction.
type Cache struct {
	ids   []string
	words map[string][]string
}

// NewCache builds a Cache from categories in the given order. A repeated ID
// replaces the earlier words but keeps the earlier position.
func NewCache(categories []domain.Category, logger *slog.Logger) *Cache {
	c := &Cache{
		ids:   make([]string, 0, len(categories)),
		words: make(map[string][]string, len(categories)),
	}

	for _, cat := range categories {
		if _, exists := c.words[cat.ID]; exists {
			if logger != nil {
				logger.Warn("duplicate category identifier, keeping last words",
					"category", cat.ID)
			}
		} else {
			c.ids = append(c.ids, cat.ID)
		}
		c.words[cat.ID] = cloneStrings(cat.Words)
	}
	return c
}

// Len returns the number of cached categories.
func (c *Cache) Len() int {
	return len(c.ids)
}

// IDs returns the category IDs in discovery order.
func (c *Cache) IDs() []string {
	return cloneStrings(c.ids)
}

// ID returns the identifier at index i.
func (c *Cache) ID(i int) string {
	return c.ids[i]
}

// Words returns a copy of the words cached for id.
func (c *Cache) Words(id string) ([]string, bool) {
	w, ok := c.words[id]
	if !ok {
		return nil, false
	}
	return cloneStrings(w), true
}

// Categories returns every cached category in discovery order.
func (c *Cache) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, domain.NewCategory(id, c.words[id]))
	}
	return out
}

// appendWords appends the words of id to dst without copying them first.
func (c *Cache) appendWords(dst []string, id string) []string {
	return append(dst, c.words[id]...)
}
