package route

import (
	"math"

	"outbacknav.dev/tripd/geo"
)

var (
	ON_ROUTE_THRESHOLD = 15.0 // meters, under this a point is considered on the road itself
)

// SnapResult locates an arbitrary position against a travelled path: the
// distance along the route in km, the perpendicular offset in meters, the
// winning segment and the interpolation fraction within it, and which side
// of the direction of travel the point sits on.
type SnapResult struct {
	Km           float64  `json:"km"`
	DistanceM    float64  `json:"distance_m"`
	Side         geo.Side `json:"side"`
	SegmentIndex int      `json:"segment_index"`
	T            float64  `json:"t"`
}

// SnapToPolyline projects point onto every segment of path and keeps the
// segment with the minimum perpendicular distance. cumKm must be the
// cumulative distance table of path. Runs in O(len(path)) per query, which is
// fine for corridor scale paths. Callers must guard len(path) < 2; a
// degenerate path snaps to km 0 at a very large distance.
func SnapToPolyline(point geo.Position, path geo.Path, cumKm []float64) SnapResult {
	best := SnapResult{DistanceM: math.MaxFloat64, Side: geo.SideOnRoute}
	if len(path) < 2 || len(cumKm) != len(path) {
		return best
	}

	for i := 0; i < len(path)-1; i++ {
		t, d := geo.ProjectOntoSegment(point, path[i], path[i+1])
		if d < best.DistanceM {
			best.DistanceM = d
			best.SegmentIndex = i
			best.T = t
		}
	}

	i := best.SegmentIndex
	best.Km = cumKm[i] + best.T*(cumKm[i+1]-cumKm[i])

	if best.DistanceM < ON_ROUTE_THRESHOLD {
		// within road width, calling it left or right is just jitter
		best.Side = geo.SideOnRoute
	} else {
		best.Side = geo.SideOfLine(point, path[i], path[i+1])
	}

	return best
}
