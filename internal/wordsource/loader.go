package wordsource

import (
	"bufio"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/phrazzld/raptrainer/internal/domain"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

// DefaultExtension marks category files when no extension is configured.
const DefaultExtension = ".csv"

// maxLineBytes bounds a single line of a word file.
const maxLineBytes = 1 << 20

// Loader parses category and theme files from a read-only filesystem.
// It keeps no cache; every call reads the tree again.
type Loader struct {
	fs        afero.Fs
	extension string
	normalize bool
	logger    *slog.Logger
}

// Option customizes a Loader.
type Option func(*Loader)

// WithExtension sets the file extension that marks category files.
func WithExtension(ext string) Option {
	return func(l *Loader) {
		if ext != "" {
			l.extension = ext
		}
	}
}

// WithNormalization enables Unicode NFC normalization of every word.
func WithNormalization(enabled bool) Option {
	return func(l *Loader) {
		l.normalize = enabled
	}
}

// NewLoader creates a Loader reading from fsys. The filesystem is wrapped
// read-only.
func NewLoader(fsys afero.Fs, logger *slog.Logger, opts ...Option) *Loader {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Loader")
	}

	l := &Loader{
		fs:        afero.NewReadOnlyFs(fsys),
		extension: DefaultExtension,
		logger:    logger.With("component", "word_loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewOSLoader creates a Loader over the host filesystem.
func NewOSLoader(logger *slog.Logger, opts ...Option) *Loader {
	return NewLoader(afero.NewOsFs(), logger, opts...)
}

// Extension returns the extension that marks category files.
func (l *Loader) Extension() string {
	return l.extension
}

// LoadAll walks root recursively and returns one category per file carrying
// the recognized extension, in discovery order. Directory entries are visited
// in lexical order so the result is stable between calls.
func (l *Loader) LoadAll(root string) []domain.Category {
	paths := l.categoryPaths(root)
	l.logger.Debug("discovered category files", "root", root, "count", len(paths))

	categories := make([]domain.Category, 0, len(paths))
	for _, p := range paths {
		id := strings.TrimSuffix(path.Base(p), l.extension)
		categories = append(categories, domain.Category{
			ID:    id,
			Words: l.LoadFlat(p),
		})
	}
	return categories
}

// LoadFlat parses a single word file. An unreadable file logs a warning and
// yields an empty list.
func (l *Loader) LoadFlat(p string) []string {
	words, err := l.readWords(p)
	if err != nil {
		l.logger.Warn("failed to read word file", "path", p, "error", err)
		return []string{}
	}
	l.logger.Debug("read word file", "path", p, "words", len(words))
	return words
}

// categoryPaths lists every category file below dir, depth first. A
// directory is always walked, even one whose name carries the extension.
func (l *Loader) categoryPaths(dir string) []string {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		l.logger.Warn("failed to list word directory", "path", dir, "error", err)
		return nil
	}

	var paths []string
	for _, entry := range entries {
		full := entry.Name()
		if dir != "" {
			full = path.Join(dir, entry.Name())
		}

		switch {
		case entry.IsDir():
			paths = append(paths, l.categoryPaths(full)...)
		case strings.HasSuffix(entry.Name(), l.extension):
			paths = append(paths, full)
		}
	}
	return paths
}

func (l *Loader) readWords(p string) ([]string, error) {
	f, err := l.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()

	words := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		words = append(words, l.splitLine(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return words, nil
}

// splitLine returns the non-empty, trimmed comma-separated tokens of line.
func (l *Loader) splitLine(line string) []string {
	var tokens []string
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if l.normalize {
			tok = norm.NFC.String(tok)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
