package affect

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Match is a catalog emotion ranked against a query coordinate.
type Match struct {
	CatalogEmotion
	Distance float64 `json:"distance"`
}

// Distance is the Euclidean distance between two coordinates.
func Distance(a, b Coordinate) float64 {
	de := a.Energy - b.Energy
	dp := a.Pleasantness - b.Pleasantness
	return math.Sqrt(de*de + dp*dp)
}

// Suggest ranks catalog by distance to c and returns the first k. Entries at
// equal distance keep their catalog order. k <= 0 yields an empty result.
func Suggest(c Coordinate, catalog []CatalogEmotion, k int) ([]Match, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 || len(catalog) == 0 {
		return []Match{}, nil
	}

	ranked := make([]Match, len(catalog))
	for i, ce := range catalog {
		ranked[i] = Match{CatalogEmotion: ce, Distance: Distance(c, ce.Coordinate())}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k], nil
}

// Search returns catalog entries whose name contains query, ignoring case,
// in catalog order. A blank query matches nothing. limit <= 0 means no limit.
func Search(query string, catalog []CatalogEmotion, limit int) []CatalogEmotion {
	needle := foldKey(query)
	if needle == "" {
		return []CatalogEmotion{}
	}

	out := []CatalogEmotion{}
	for _, ce := range catalog {
		if !strings.Contains(foldKey(ce.Emotion), needle) {
			continue
		}
		out = append(out, ce)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// SuggestIn classifies c and ranks only the catalog of its quadrant.
func (s *Space) SuggestIn(c Coordinate, k int) (Quadrant, []Match, error) {
	q, err := Classify(c)
	if err != nil {
		return "", nil, err
	}
	matches, err := Suggest(c, s.byQuadrant[q], k)
	if err != nil {
		return "", nil, err
	}
	return q, matches, nil
}

// Suggested is the single best match within the quadrant of c. It is the
// label shown when the user has not picked a word.
func (s *Space) Suggested(c Coordinate) (Match, error) {
	_, matches, err := s.SuggestIn(c, 1)
	if err != nil {
		return Match{}, err
	}
	if len(matches) == 0 {
		return Match{}, fmt.Errorf("%w: empty catalog", ErrUnknownEmotion)
	}
	return matches[0], nil
}

// Selection is the label and quadrant a check-in is saved with.
type Selection struct {
	Coordinate Coordinate `json:"coordinate"`
	Emotion    string     `json:"emotion"`
	Quadrant   Quadrant   `json:"quadrant"`
	Suggested  bool       `json:"suggested"`
}

// Resolve decides what a check-in records. An explicit selection wins and
// brings its own quadrant; otherwise the suggested emotion drives both the
// label and the quadrant.
func (s *Space) Resolve(c Coordinate, selected string) (Selection, error) {
	if err := c.Validate(); err != nil {
		return Selection{}, err
	}
	if strings.TrimSpace(selected) != "" {
		ce, ok := s.Lookup(selected)
		if !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, selected)
		}
		return Selection{Coordinate: c, Emotion: ce.Emotion, Quadrant: ce.Quadrant}, nil
	}

	best, err := s.Suggested(c)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Coordinate: c, Emotion: best.Emotion, Quadrant: best.Quadrant, Suggested: true}, nil
}
