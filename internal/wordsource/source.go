package wordsource

import "github.com/phrazzld/raptrainer/internal/domain"

// Source binds a Loader to the configured category root and themes file so
// the queue engine can (re)load everything without knowing any paths.
type Source struct {
	loader     *Loader
	root       string
	themesPath string
}

// NewSource creates a Source reading categories below root and themes from themesPath.
func NewSource(loader *Loader, root, themesPath string) *Source {
	return &Source{loader: loader, root: root, themesPath: themesPath}
}

// LoadCategories loads every category below the configured root.
func (s *Source) LoadCategories() []domain.Category {
	return s.loader.LoadAll(s.root)
}

// LoadThemes loads the flat themes list.
func (s *Source) LoadThemes() []string {
	return s.loader.LoadFlat(s.themesPath)
}
