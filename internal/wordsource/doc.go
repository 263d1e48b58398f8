// Package wordsource reads category word files from an asset tree.
//
// A category file is plain text holding comma-separated words, optionally
// spread across several lines. Every file ending in the recognized extension
// becomes one category named after the file. Read failures never abort a load:
// the failing file contributes an empty word list and a warning is logged.
package wordsource
