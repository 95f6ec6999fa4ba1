// internal/discovery/suggest.go
package discovery

import "strings"

const DefaultSuggestionLimit = 5

// Suggest returns up to limit candidates containing query, case-insensitively,
// in candidate order. A blank query suggests nothing.
func Suggest(query string, candidates []string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c] || !strings.Contains(strings.ToLower(c), q) {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
