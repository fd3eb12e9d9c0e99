package affect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Classification
// ============================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		want Quadrant
	}{
		{"high pleasant", Coordinate{80, 85}, HighPleasant},
		{"high unpleasant", Coordinate{90, 10}, HighUnpleasant},
		{"low unpleasant", Coordinate{10, 10}, LowUnpleasant},
		{"low pleasant", Coordinate{20, 70}, LowPleasant},
		{"origin", Coordinate{50, 50}, HighPleasant},
		{"energy boundary pleasant", Coordinate{50, 80}, HighPleasant},
		{"energy boundary unpleasant", Coordinate{50, 49.9}, HighUnpleasant},
		{"pleasantness boundary high", Coordinate{75, 50}, HighPleasant},
		{"pleasantness boundary low", Coordinate{49.9, 50}, LowPleasant},
		{"corner zero", Coordinate{0, 0}, LowUnpleasant},
		{"corner max", Coordinate{100, 100}, HighPleasant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyBoundaryIsStable(t *testing.T) {
	for _, c := range []Coordinate{{50, 50}, {50, 0}, {0, 50}, {100, 50}, {50, 100}} {
		first, err := Classify(c)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, _ := Classify(c)
			assert.Equal(t, first, again)
		}
	}
}

func TestClassifyRejectsOutOfRange(t *testing.T) {
	for _, c := range []Coordinate{{-1, 50}, {50, 100.01}, {math.NaN(), 10}, {101, 101}} {
		_, err := Classify(c)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

// ============================================================
// Catalog
// ============================================================

func TestCatalogLayout(t *testing.T) {
	s := NewSpace(StandardQuadrants())
	for _, qi := range s.Quadrants() {
		assert.GreaterOrEqual(t, len(qi.Emotions), 20, qi.Quadrant)
		assert.LessOrEqual(t, len(qi.Emotions), 25, qi.Quadrant)
		for _, ce := range s.QuadrantCatalog(qi.Quadrant) {
			got, err := Classify(ce.Coordinate())
			require.NoError(t, err)
			assert.Equal(t, qi.Quadrant, got, "%s sits outside its quadrant", ce.Emotion)
		}
	}

	joyful, ok := s.Lookup("joyful")
	require.True(t, ok)
	assert.Equal(t, CatalogEmotion{Emotion: "Joyful", Quadrant: HighPleasant, Energy: 75, Pleasantness: 85}, joyful)

	drained, ok := s.Lookup("Drained")
	require.True(t, ok)
	assert.Equal(t, 5.0, drained.Energy)
	assert.Equal(t, 45.0, drained.Pleasantness)
}

func TestCatalogIsCopied(t *testing.T) {
	s := Default()
	cat := s.Catalog()
	cat[0].Emotion = "mutated"
	assert.NotEqual(t, "mutated", s.Catalog()[0].Emotion)
	assert.Same(t, s, Default())
}

func TestParseQuadrant(t *testing.T) {
	q, err := ParseQuadrant(" Low-Pleasant ")
	require.NoError(t, err)
	assert.Equal(t, LowPleasant, q)

	_, err = ParseQuadrant("sideways")
	assert.ErrorIs(t, err, ErrUnknownQuadrant)
}

// ============================================================
// Matching
// ============================================================

func TestSuggestScenarioA(t *testing.T) {
	s := Default()
	c := Coordinate{Energy: 80, Pleasantness: 85}

	q, err := Classify(c)
	require.NoError(t, err)
	assert.Equal(t, HighPleasant, q)

	matches, err := Suggest(c, s.QuadrantCatalog(q), 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Joyful", matches[0].Emotion)
	assert.Equal(t, 5.0, matches[0].Distance)
}

func TestSuggestOrderingAndLength(t *testing.T) {
	cat := Default().Catalog()
	c := Coordinate{Energy: 33, Pleasantness: 61}

	for _, k := range []int{1, 4, 5, 6, 8, len(cat), len(cat) + 10} {
		matches, err := Suggest(c, cat, k)
		require.NoError(t, err)
		assert.Len(t, matches, min(k, len(cat)))
		for i := 1; i < len(matches); i++ {
			assert.LessOrEqual(t, matches[i-1].Distance, matches[i].Distance)
		}
	}

	matches, err := Suggest(c, cat, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSuggestTiesKeepCatalogOrder(t *testing.T) {
	cat := []CatalogEmotion{
		{Emotion: "b", Energy: 60, Pleasantness: 50},
		{Emotion: "a", Energy: 40, Pleasantness: 50},
		{Emotion: "c", Energy: 50, Pleasantness: 60},
		{Emotion: "far", Energy: 0, Pleasantness: 0},
		{Emotion: "d", Energy: 50, Pleasantness: 40},
	}
	matches, err := Suggest(Coordinate{50, 50}, cat, 5)
	require.NoError(t, err)

	var names []string
	for _, m := range matches {
		names = append(names, m.Emotion)
	}
	assert.Equal(t, []string{"b", "a", "c", "d", "far"}, names)
}

func TestSuggestRejectsInvalidCoordinate(t *testing.T) {
	_, err := Suggest(Coordinate{Energy: 120}, Default().Catalog(), 4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSearch(t *testing.T) {
	cat := Default().Catalog()

	got := Search("ful", cat, 0)
	var names []string
	for _, ce := range got {
		names = append(names, ce.Emotion)
	}
	assert.Equal(t, []string{"Cheerful", "Hopeful", "Joyful", "Playful", "Grateful", "Peaceful", "Fulfilled", "Restful", "Thoughtful"}, names)

	assert.Len(t, Search("FUL", cat, 3), 3)
	assert.Equal(t, "Cheerful", Search("FUL", cat, 3)[0].Emotion)
	assert.Empty(t, Search("", cat, 5))
	assert.Empty(t, Search("   ", cat, 5))
	assert.Empty(t, Search("zzz", cat, 5))
}

// ============================================================
// Resolution
// ============================================================

func TestResolveUsesSuggestionWithoutSelection(t *testing.T) {
	sel, err := Default().Resolve(Coordinate{80, 85}, "")
	require.NoError(t, err)
	assert.True(t, sel.Suggested)
	assert.Equal(t, "Joyful", sel.Emotion)
	assert.Equal(t, HighPleasant, sel.Quadrant)
}

func TestResolveExplicitSelectionWins(t *testing.T) {
	sel, err := Default().Resolve(Coordinate{80, 85}, "calm")
	require.NoError(t, err)
	assert.False(t, sel.Suggested)
	assert.Equal(t, "Calm", sel.Emotion)
	assert.Equal(t, LowPleasant, sel.Quadrant)

	_, err = Default().Resolve(Coordinate{80, 85}, "flabbergasted")
	assert.ErrorIs(t, err, ErrUnknownEmotion)
}
