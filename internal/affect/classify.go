package affect

// Classify maps a coordinate to its quadrant. Both thresholds are inclusive
// on the high/pleasant side, so exactly 50 counts as high energy and as
// pleasant. Out-of-range coordinates are rejected, never clamped.
func Classify(c Coordinate) (Quadrant, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return classify(c), nil
}

func classify(c Coordinate) Quadrant {
	switch {
	case c.Energy >= Origin && c.Pleasantness >= Origin:
		return HighPleasant
	case c.Energy >= Origin:
		return HighUnpleasant
	case c.Pleasantness < Origin:
		return LowUnpleasant
	default:
		return LowPleasant
	}
}
