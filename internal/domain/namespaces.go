package domain

import "strings"

// ParseNamespaces turns user-entered text into a namespace list. Entries may be
// separated by commas or newlines; blanks are dropped, surrounding whitespace is
// trimmed and duplicates keep their first position. The result is never nil so it
// encodes as an empty JSON array ("all namespaces").
func ParseNamespaces(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	namespaces := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		ns := strings.TrimSpace(f)
		if ns == "" {
			continue
		}
		if _, dup := seen[ns]; dup {
			continue
		}
		seen[ns] = struct{}{}
		namespaces = append(namespaces, ns)
	}
	return namespaces
}
