package route

import (
	"fmt"
	"math"
	"testing"

	"github.com/bradleyjkemp/cupaloy"

	"outbacknav.dev/tripd/geo"
)

func testPath() (geo.Path, []float64) {
	path := geo.Path{
		geo.NewPosition(-31.0, 151),
		geo.NewPosition(-30.9, 151),
		geo.NewPosition(-30.8, 151),
	}
	return path, path.CumulativeDistances()
}

func TestSnapBounds(t *testing.T) {
	path, cumKm := testPath()
	totalKm := cumKm[len(cumKm)-1]

	queries := []geo.Position{
		geo.NewPosition(-31.05, 151),     // before the start
		geo.NewPosition(-30.95, 151.001), // alongside the first segment
		geo.NewPosition(-30.8, 151),      // exactly the last vertex
		geo.NewPosition(-30.5, 152),      // far off route
	}
	for _, q := range queries {
		snap := SnapToPolyline(q, path, cumKm)
		if snap.DistanceM < 0 {
			t.Errorf("negative snap distance %f", snap.DistanceM)
		}
		if snap.Km < 0 || snap.Km > totalKm {
			t.Errorf("km %f outside [0, %f]", snap.Km, totalKm)
		}
		if snap.T < 0 || snap.T > 1 {
			t.Errorf("t %f outside [0, 1]", snap.T)
		}
	}
}

func TestSnapAlongRoute(t *testing.T) {
	path, cumKm := testPath()

	// halfway along the first segment, about 95 m east
	snap := SnapToPolyline(geo.NewPosition(-30.95, 151.001), path, cumKm)
	cupaloy.SnapshotT(t, fmt.Sprintf("segment=%d t=%.6f km=%.4f distance=%.3f m side=%s",
		snap.SegmentIndex, snap.T, snap.Km, snap.DistanceM, snap.Side))
}

func TestSnapOnRouteThreshold(t *testing.T) {
	path, cumKm := testPath()

	inside := SnapToPolyline(geo.NewPosition(-30.95, 151.0001), path, cumKm)
	outside := SnapToPolyline(geo.NewPosition(-30.95, 150.999), path, cumKm)
	cupaloy.SnapshotT(t,
		fmt.Sprintf("inside the jitter threshold: distance=%.3f m side=%s", inside.DistanceM, inside.Side),
		fmt.Sprintf("outside the jitter threshold: distance=%.3f m side=%s", outside.DistanceM, outside.Side),
	)
}

func TestSnapDegeneratePath(t *testing.T) {
	snap := SnapToPolyline(geo.NewPosition(-31, 151), geo.Path{}, []float64{})
	if snap.DistanceM != math.MaxFloat64 {
		t.Errorf("empty path: got distance %f, want MaxFloat64", snap.DistanceM)
	}
	if snap.Km != 0 {
		t.Errorf("empty path: got km %f, want 0", snap.Km)
	}

	single := geo.Path{geo.NewPosition(-31, 151)}
	snap = SnapToPolyline(geo.NewPosition(-31, 151), single, single.CumulativeDistances())
	if snap.DistanceM != math.MaxFloat64 {
		t.Errorf("single vertex path: got distance %f, want MaxFloat64", snap.DistanceM)
	}
}
