// Package format holds display formatting shared by the TUI and the CLI.
package format

import (
	"regexp"
	"strings"
)

// Components may already be space-separated so that Age is idempotent.
var agePattern = regexp.MustCompile(`^(\d+h)?\s*(\d+m)?\s*(\d+s)?`)

// Age canonicalizes a compact age string such as "2h15m30s" into "2h 15m 30s".
// Only a leading run of hour/minute/second components is considered; anything the
// pattern does not recognise is returned unchanged.
func Age(raw string) string {
	match := agePattern.FindStringSubmatch(raw)
	if match == nil {
		return raw
	}
	parts := make([]string, 0, 3)
	for _, p := range match[1:] {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return raw
	}
	return strings.Join(parts, " ")
}
