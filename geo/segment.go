package geo

import (
	m "math"
)

type Side string

const (
	SideLeft    Side = "left"
	SideRight   Side = "right"
	SideOnRoute Side = "on_route"
)

// flatten maps a position into a local flat frame centered on the segment,
// x east and y north, with longitude scaled by the cosine of the mean
// latitude. Good enough over segment-scale distances and much cheaper than
// spherical projection.
func flatten(p Position, meanLatRad float64) (x float64, y float64) {
	return p.Lon() * m.Cos(meanLatRad), p.Lat()
}

// ProjectOntoSegment projects p onto the segment a->b. t is the interpolation
// fraction within the segment, clamped to [0,1]. The returned distance is the
// great circle distance in meters from p to the projected position. A
// degenerate segment (a == b) projects to a with t=0.
func ProjectOntoSegment(p Position, a Position, b Position) (t float64, distanceM float64) {
	meanLat := (a.LatRad() + b.LatRad()) / 2

	ax, ay := flatten(a, meanLat)
	bx, by := flatten(b, meanLat)
	px, py := flatten(p, meanLat)

	abx := bx - ax
	aby := by - ay
	apx := px - ax
	apy := py - ay

	denom := abx*abx + aby*aby
	if denom == 0 {
		return 0, p.DistanceTo(a)
	}

	t = (apx*abx + apy*aby) / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	projected := NewPosition(a.Lat()+t*(b.Lat()-a.Lat()), a.Lon()+t*(b.Lon()-a.Lon()))
	return t, p.DistanceTo(projected)
}

// SideOfLine reports which side of the directed segment a->b the position p
// falls on. The sign convention is fixed for the deployment region, which is
// entirely in the southern hemisphere: a positive cross product of (b-a) and
// (p-a) in the flattened frame means right of the direction of travel. Do not
// flip this to the textbook orientation.
func SideOfLine(p Position, a Position, b Position) Side {
	meanLat := (a.LatRad() + b.LatRad()) / 2

	ax, ay := flatten(a, meanLat)
	bx, by := flatten(b, meanLat)
	px, py := flatten(p, meanLat)

	cross := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	if cross > 0 {
		return SideRight
	}
	return SideLeft
}
