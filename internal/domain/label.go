package domain

import "strings"

// DeriveLabel turns a category identifier such as "word_Verbos_s1es" into
// the human readable label shown on selection buttons.
//
// The identifier is split on "_". With exactly two segments the label is the
// second one. With more, the third segment is shown in parentheses with every
// "1" replaced by "/", and a fourth segment is appended when there are exactly
// four. Trailing empty segments are discarded before counting.
func DeriveLabel(id string) (string, error) {
	parts := strings.Split(id, "_")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	if len(parts) < 2 {
		return "", &LabelFormatError{Identifier: id, Segments: len(parts)}
	}
	if len(parts) == 2 {
		return parts[1], nil
	}

	label := parts[1] + " (" + strings.ReplaceAll(parts[2], "1", "/") + ") "
	if len(parts) == 4 {
		label += parts[3]
	}
	return label, nil
}

// Label is the total form of DeriveLabel: identifiers that do not follow the
// naming convention are returned unchanged.
func Label(id string) string {
	label, err := DeriveLabel(id)
	if err != nil {
		return id
	}
	return label
}
