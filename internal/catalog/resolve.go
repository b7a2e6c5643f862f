package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps how many nearest matches a NotFoundError carries.
const maxSuggestions = 3

// NotFoundError reports a model id absent from the catalog, together
// with nearest-match suggestions for the user.
type NotFoundError struct {
	ID          string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("model %q not found", e.ID)
	}
	return fmt.Sprintf("model %q not found (did you mean %s?)",
		e.ID, strings.Join(e.Suggestions, ", "))
}

// Resolve looks up a model id in the catalog. On a miss it returns a
// *NotFoundError carrying suggested corrections instead of a bare
// not-found.
func Resolve(models map[string]string, id string) (string, error) {
	if name, ok := models[id]; ok {
		return name, nil
	}
	return "", &NotFoundError{ID: id, Suggestions: Suggest(models, id)}
}

// Suggest returns up to maxSuggestions catalog ids closest to the given
// id by edit distance, nearest first. Ids further than half the input
// length are not considered close enough to suggest.
func Suggest(models map[string]string, id string) []string {
	threshold := len(id)/2 + 1
	lowered := strings.ToLower(id)

	type candidate struct {
		id   string
		dist int
	}
	var candidates []candidate
	for known := range models {
		knownLower := strings.ToLower(known)
		dist := levenshtein.ComputeDistance(lowered, knownLower)
		if dist <= threshold || strings.Contains(knownLower, lowered) {
			candidates = append(candidates, candidate{id: known, dist: dist})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	suggestions := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		suggestions = append(suggestions, c.id)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
