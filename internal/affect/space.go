package affect

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

var (
	// ErrOutOfRange is returned for coordinates outside [0,100] on either axis.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrUnknownQuadrant is returned when a quadrant tag is not recognised.
	ErrUnknownQuadrant = errors.New("unknown quadrant")
	// ErrUnknownEmotion is returned when a selected word is not in the catalog.
	ErrUnknownEmotion = errors.New("unknown emotion")
)

const (
	// Origin separates the quadrants on both axes.
	Origin = 50.0
	// Max is the upper bound of both axes.
	Max = 100.0

	gridColumns = 5
	gridStep    = 10.0
)

// Coordinate is a point in affective space.
type Coordinate struct {
	Energy       float64 `json:"energy"`
	Pleasantness float64 `json:"pleasantness"`
}

// Validate rejects coordinates outside [0,100]×[0,100].
func (c Coordinate) Validate() error {
	if !inRange(c.Energy) || !inRange(c.Pleasantness) {
		return fmt.Errorf("%w: energy=%v pleasantness=%v", ErrOutOfRange, c.Energy, c.Pleasantness)
	}
	return nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= Max
}

// Quadrant is one of the four named regions of affective space.
type Quadrant string

const (
	HighPleasant   Quadrant = "high-pleasant"
	HighUnpleasant Quadrant = "high-unpleasant"
	LowUnpleasant  Quadrant = "low-unpleasant"
	LowPleasant    Quadrant = "low-pleasant"
)

// Quadrants lists every quadrant in precedence order. The order is also the
// tie-break used when picking a dominant quadrant.
func Quadrants() []Quadrant {
	return []Quadrant{HighPleasant, HighUnpleasant, LowUnpleasant, LowPleasant}
}

// ParseQuadrant accepts the tag form ("high-pleasant") and a few loose aliases.
func ParseQuadrant(s string) (Quadrant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high-pleasant", "hp", "yellow":
		return HighPleasant, nil
	case "high-unpleasant", "hu", "red":
		return HighUnpleasant, nil
	case "low-unpleasant", "lu", "blue":
		return LowUnpleasant, nil
	case "low-pleasant", "lp", "green":
		return LowPleasant, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuadrant, s)
}

// Pleasant reports whether the quadrant lies on the pleasant half.
func (q Quadrant) Pleasant() bool {
	return q == HighPleasant || q == LowPleasant
}

// HighEnergy reports whether the quadrant lies on the high-energy half.
func (q Quadrant) HighEnergy() bool {
	return q == HighPleasant || q == HighUnpleasant
}

// Rank is the position of q in Quadrants(), or -1.
func (q Quadrant) Rank() int {
	for i, candidate := range Quadrants() {
		if candidate == q {
			return i
		}
	}
	return -1
}

// Colors holds display tokens for a quadrant.
type Colors struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
}

// QuadrantInfo is the static display metadata of a quadrant together with
// the ordered words that seed its part of the catalog.
type QuadrantInfo struct {
	Quadrant    Quadrant `json:"quadrant"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Color       Colors   `json:"color"`
	Emotions    []string `json:"emotions"`
}

// energyFloor and pleasantnessCeil give the sub-range covered by the quadrant.
func (qi QuadrantInfo) energyFloor() float64 {
	if qi.Quadrant.HighEnergy() {
		return Origin
	}
	return 0
}

func (qi QuadrantInfo) pleasantnessCeil() float64 {
	if qi.Quadrant.Pleasant() {
		return Max
	}
	return Origin
}

// CatalogEmotion is a static reference point used for distance ranking.
type CatalogEmotion struct {
	Emotion      string   `json:"emotion"`
	Quadrant     Quadrant `json:"quadrant"`
	Energy       float64  `json:"energy"`
	Pleasantness float64  `json:"pleasantness"`
}

// Coordinate returns the position of the catalog entry.
func (e CatalogEmotion) Coordinate() Coordinate {
	return Coordinate{Energy: e.Energy, Pleasantness: e.Pleasantness}
}

// Space is the immutable affective model: quadrant metadata plus the catalog
// built from it. Build it once and share it by pointer.
type Space struct {
	quadrants  []QuadrantInfo
	catalog    []CatalogEmotion
	byQuadrant map[Quadrant][]CatalogEmotion
	byName     map[string]CatalogEmotion
}

var (
	defaultOnce  sync.Once
	defaultSpace *Space
)

// Default returns the shared space built from the standard quadrant table.
func Default() *Space {
	defaultOnce.Do(func() {
		defaultSpace = NewSpace(StandardQuadrants())
	})
	return defaultSpace
}

// NewSpace lays out each quadrant's words on a 5-column grid inside the
// quadrant's sub-range: column i%5 steps energy up from the low edge and row
// i/5 steps pleasantness down from the top edge, both by 10 with a 5 offset.
func NewSpace(quadrants []QuadrantInfo) *Space {
	s := &Space{
		quadrants:  make([]QuadrantInfo, len(quadrants)),
		byQuadrant: make(map[Quadrant][]CatalogEmotion, len(quadrants)),
		byName:     make(map[string]CatalogEmotion),
	}
	copy(s.quadrants, quadrants)

	for _, qi := range s.quadrants {
		eLo, pHi := qi.energyFloor(), qi.pleasantnessCeil()
		entries := make([]CatalogEmotion, 0, len(qi.Emotions))
		for i, word := range qi.Emotions {
			col := float64(i % gridColumns)
			row := float64(i / gridColumns)
			ce := CatalogEmotion{
				Emotion:      word,
				Quadrant:     qi.Quadrant,
				Energy:       eLo + gridStep/2 + gridStep*col,
				Pleasantness: pHi - gridStep/2 - gridStep*row,
			}
			entries = append(entries, ce)
			key := foldKey(word)
			if _, dup := s.byName[key]; !dup {
				s.byName[key] = ce
			}
		}
		s.byQuadrant[qi.Quadrant] = entries
		s.catalog = append(s.catalog, entries...)
	}
	return s
}

// Catalog returns a copy of the full catalog in catalog order.
func (s *Space) Catalog() []CatalogEmotion {
	out := make([]CatalogEmotion, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// QuadrantCatalog returns a copy of the catalog entries of one quadrant.
func (s *Space) QuadrantCatalog(q Quadrant) []CatalogEmotion {
	src := s.byQuadrant[q]
	out := make([]CatalogEmotion, len(src))
	copy(out, src)
	return out
}

// Info returns the metadata of q.
func (s *Space) Info(q Quadrant) (QuadrantInfo, bool) {
	for _, qi := range s.quadrants {
		if qi.Quadrant == q {
			return qi, true
		}
	}
	return QuadrantInfo{}, false
}

// Quadrants returns the metadata table in precedence order.
func (s *Space) Quadrants() []QuadrantInfo {
	out := make([]QuadrantInfo, len(s.quadrants))
	copy(out, s.quadrants)
	return out
}

// Lookup finds a catalog emotion by name, ignoring case.
func (s *Space) Lookup(name string) (CatalogEmotion, bool) {
	ce, ok := s.byName[foldKey(name)]
	return ce, ok
}
