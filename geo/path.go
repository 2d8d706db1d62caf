package geo

import (
	"github.com/twpayne/go-polyline"
)

// Path is an ordered sequence of positions along a travelled route.
// Immutable once built.
type Path []Position

// DecodePolyline decodes a Google encoded polyline into a Path. A malformed
// encoding yields an empty path rather than an error; callers treat a path
// with fewer than two vertices as an unusable route.
func DecodePolyline(encoded string) Path {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return Path{}
	}
	path := make(Path, len(coords))
	for i, c := range coords {
		path[i] = NewPosition(c[0], c[1])
	}
	return path
}

// EncodePolyline is the inverse of DecodePolyline.
func EncodePolyline(path Path) string {
	coords := make([][]float64, len(path))
	for i := range path {
		coords[i] = []float64{path[i].Lat(), path[i].Lon()}
	}
	return string(polyline.EncodeCoords(coords))
}

// CumulativeDistances returns the distance in km from the first vertex to
// each vertex of the path. Entry 0 is always 0 and the values never decrease.
// A single vertex path returns [0], an empty path returns an empty table.
func (p Path) CumulativeDistances() []float64 {
	if len(p) == 0 {
		return []float64{}
	}
	cum := make([]float64, len(p))
	for i := 1; i < len(p); i++ {
		cum[i] = cum[i-1] + p[i-1].DistanceTo(p[i])/1000
	}
	return cum
}

// TotalKm is the length of the path in km.
func (p Path) TotalKm() float64 {
	cum := p.CumulativeDistances()
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1]
}
