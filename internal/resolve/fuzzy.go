// Package resolve maps human-friendly titles to resource IDs so
// commands can accept "Winter Jacket" where an ID is expected.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Named is a resource with an ID and a display title.
type Named struct {
	ID    int64
	Title string
}

// Match is one ranked candidate.
type Match struct {
	ID    int64
	Title string
	Score int
}

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrEmptyItems = errors.New("no items to match against")
)

// ambiguityCutoff bounds the candidate list shown to the user.
const ambiguityCutoff = 5

// AmbiguousError reports that the query matched several titles equally
// well. Matches lists the strongest candidates, best first.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates:")
		for _, m := range e.Matches {
			_, _ = fmt.Fprintf(&b, "\n  %d: %s", m.ID, m.Title)
		}
	}
	return b.String()
}

// titleSource adapts []Named for fuzzy.FindFrom, folding case so the
// matcher never sees the original capitalization.
type titleSource []Named

func (s titleSource) String(i int) string { return strings.ToLower(s[i].Title) }
func (s titleSource) Len() int            { return len(s) }

// FuzzyMatch resolves query to a single ID. An exact case-insensitive
// title hit always wins; otherwise the fuzzy ranking decides, and a
// score tie between the top two candidates is an *AmbiguousError
// rather than a silent guess.
func FuzzyMatch(query string, items []Named) (int64, error) {
	query = strings.TrimSpace(query)
	switch {
	case query == "":
		return 0, ErrEmptyQuery
	case len(items) == 0:
		return 0, ErrEmptyItems
	}

	for _, item := range items {
		if strings.EqualFold(item.Title, query) {
			return item.ID, nil
		}
	}

	ranked := fuzzy.FindFrom(strings.ToLower(query), titleSource(items))
	switch {
	case len(ranked) == 0:
		return 0, fmt.Errorf("no match found for %q", query)
	case len(ranked) > 1 && ranked[0].Score == ranked[1].Score:
		return 0, &AmbiguousError{Query: query, Matches: topMatches(items, ranked, ambiguityCutoff)}
	}
	return items[ranked[0].Index].ID, nil
}

// FuzzyMatchAll returns up to limit candidates ranked best-first.
func FuzzyMatchAll(query string, items []Named, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 {
		return nil
	}
	ranked := fuzzy.FindFrom(strings.ToLower(query), titleSource(items))
	return topMatches(items, ranked, limit)
}

func topMatches(items []Named, ranked fuzzy.Matches, limit int) []Match {
	if limit <= 0 {
		return nil
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Match, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Match{ID: items[r.Index].ID, Title: items[r.Index].Title, Score: r.Score})
	}
	return out
}
