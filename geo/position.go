package geo

import (
	m "math"
)

var (
	R          = 6371008.8 // mean radius of earth in meters
	TO_RADIANS = m.Pi / 180
	TO_DEGREES = 180 / m.Pi
)

func NewPosition(latDeg, lonDeg float64) Position {
	return Position{latitudeDeg: latDeg, longitudeDeg: lonDeg}
}

type Position struct {
	latitudeDeg  float64
	longitudeDeg float64
}

func (p *Position) LatRad() float64 {
	return p.latitudeDeg * TO_RADIANS
}

func (p *Position) LonRad() float64 {
	return p.longitudeDeg * TO_RADIANS
}

func (p *Position) Lat() float64 {
	return p.latitudeDeg
}

func (p *Position) Lon() float64 {
	return p.longitudeDeg
}

// DistanceTo returns the great circle distance in meters. Coincident
// positions return 0.
func (p *Position) DistanceTo(end Position) float64 {
	latDiff := end.LatRad() - p.LatRad()
	lonDiff := end.LonRad() - p.LonRad()
	a := m.Pow(m.Sin(latDiff/2), 2) + m.Cos(p.LatRad())*m.Cos(end.LatRad())*m.Pow(m.Sin(lonDiff/2), 2)
	c := 2 * m.Atan2(m.Sqrt(a), m.Sqrt(1-a))

	return R * c // in metres
}
