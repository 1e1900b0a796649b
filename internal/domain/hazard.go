package domain

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxResults is the number of asteroids returned by a selection.
const MaxResults = 3

// SelectTopHazardous returns up to limit hazardous objects from the feed,
// largest average diameter first. The result is never nil.
func SelectTopHazardous(feed FeedResponse, limit int) []Asteroid {
	bodies := FlattenFeed(feed)

	out := make([]Asteroid, 0, len(bodies))
	for _, b := range bodies {
		if !b.Hazardous {
			continue
		}
		out = append(out, ToAsteroid(b))
	}

	slices.SortStableFunc(out, func(a, b Asteroid) int {
		return cmp.Compare(b.Diameter, a.Diameter)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FlattenFeed concatenates the per-date groups in ascending date order,
// keeping each group's own order.
func FlattenFeed(feed FeedResponse) []RawBody {
	var n int
	for _, group := range feed.NearEarthObjects {
		n += len(group)
	}

	bodies := make([]RawBody, 0, n)
	for _, date := range slices.Sorted(maps.Keys(feed.NearEarthObjects)) {
		bodies = append(bodies, feed.NearEarthObjects[date]...)
	}
	return bodies
}

// ToAsteroid derives a result record from a raw feed object using its first
// close approach, if any.
func ToAsteroid(b RawBody) Asteroid {
	a := Asteroid{
		Name:     b.Name,
		Diameter: AverageDiameter(b.EstimatedDiameter.Kilometers),
	}
	if len(b.CloseApproaches) == 0 {
		return a
	}

	first := b.CloseApproaches[0]
	a.Speed = parseFloatOrZero(first.RelativeVelocity.KilometersPerHour)
	a.Date = first.Date
	a.Planet = first.OrbitingBody
	return a
}

// AverageDiameter is the mean of the estimated min and max diameters.
func AverageDiameter(d DiameterRange) float64 {
	return (d.Min + d.Max) / 2
}

// parseFloatOrZero parses a plain decimal string as float64, returning 0 on
// failure or for non-finite values, which cannot be encoded as JSON.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if !isDecimal(s) {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// isDecimal reports whether s is an optionally signed decimal number with an
// optional exponent. Hex floats, underscores and inf/nan spellings fail.
func isDecimal(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}
	digits := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.':
		case r == 'e' || r == 'E':
			return digits && i > 0 && isExponent(s[i+1:])
		default:
			return false
		}
	}
	return digits
}

func isExponent(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
