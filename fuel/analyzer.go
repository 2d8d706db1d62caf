package fuel

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"outbacknav.dev/tripd/geo"
	"outbacknav.dev/tripd/poi"
	"outbacknav.dev/tripd/route"
)

var (
	SNAP_MAX_DISTANCE = 2000.0 // meters, candidates further off the route are not "on" it
	DEDUP_DISTANCE_KM = 0.5    // consecutive stations closer than this are the same forecourt
	MIN_EDGE_LEG_KM   = 0.1    // start/end legs shorter than this are dropped
)

// AnalyzeFuel decodes the route geometry and produces the full pre-trip fuel
// assessment. An unusable route (decode failure or fewer than two vertices)
// yields the sentinel analysis with a single critical no_fuel_on_route
// warning at km 0, never an error.
func AnalyzeFuel(encodedPath string, candidates []poi.Candidate, profile Profile, routeKey string) Analysis {
	return AnalyzePath(geo.DecodePolyline(encodedPath), candidates, profile, routeKey)
}

// AnalyzePath is AnalyzeFuel for callers that decode and hold the route
// themselves, which the tick loop does to avoid re-decoding per query.
func AnalyzePath(path geo.Path, candidates []poi.Candidate, profile Profile, routeKey string) Analysis {
	analysis := Analysis{
		Profile:    profile,
		Stations:   []Station{},
		Legs:       []Leg{},
		Warnings:   []Warning{},
		ComputedAt: time.Now(),
		RouteKey:   routeKey,
	}

	if len(path) < 2 {
		analysis.Warnings = append(analysis.Warnings, noFuelWarning())
		return analysis
	}

	cumKm := path.CumulativeDistances()
	totalKm := cumKm[len(cumKm)-1]

	analysis.Stations = collectStations(path, cumKm, candidates, profile)
	analysis.Legs = buildLegs(analysis.Stations, totalKm)
	flagLegs(analysis.Legs, profile)
	analysis.Warnings = generateWarnings(analysis.Legs, profile)
	analysis.TotalFuelStops = len(analysis.Stations)

	for _, leg := range analysis.Legs {
		if leg.DistanceKm > analysis.MaxGapKm {
			analysis.MaxGapKm = leg.DistanceKm
		}
		if leg.GapExceedsRange {
			analysis.HasCriticalGaps = true
		}
	}

	return analysis
}

// collectStations filters candidates down to the ones usable for the
// profile's fuel type, snaps them onto the path, discards anything too far
// off the route, and de-duplicates stations sharing a forecourt.
func collectStations(path geo.Path, cumKm []float64, candidates []poi.Candidate, profile Profile) []Station {
	wantedCategory := poi.CategoryFuel
	if profile.FuelType.IsElectric() {
		wantedCategory = poi.CategoryCharging
	}

	stations := []Station{}
	for _, c := range candidates {
		if c.Category != wantedCategory {
			continue
		}
		if !carriesFuelType(c, profile.FuelType) {
			continue
		}

		snap := route.SnapToPolyline(geo.NewPosition(c.Lat, c.Lng), path, cumKm)
		if snap.DistanceM > SNAP_MAX_DISTANCE {
			continue
		}

		stations = append(stations, Station{
			PlaceID:       c.ID,
			Name:          c.Name,
			Lat:           c.Lat,
			Lng:           c.Lng,
			Category:      c.Category,
			KmAlongRoute:  snap.Km,
			SnapDistanceM: snap.DistanceM,
			Side:          snap.Side,
			Brand:         c.Brand,
			Hours:         c.Hours,
			HasDiesel:     c.HasDiesel,
			HasUnleaded:   c.HasUnleaded,
		})
	}

	slices.SortFunc(stations, func(a, b Station) int {
		return cmp.Compare(a.KmAlongRoute, b.KmAlongRoute)
	})

	return dedupStations(stations)
}

// carriesFuelType drops a candidate only when the relevant attribute is
// explicitly false. Candidate data is frequently incomplete, so unknown
// attributes pass through.
func carriesFuelType(c poi.Candidate, fuelType FuelType) bool {
	switch fuelType {
	case FuelTypeDiesel:
		return c.HasDiesel == nil || *c.HasDiesel
	case FuelTypeUnleaded, FuelTypePremium:
		return c.HasUnleaded == nil || *c.HasUnleaded
	}
	return true
}

// dedupStations walks the km sorted list and, whenever two consecutive
// stations sit within DEDUP_DISTANCE_KM of each other along the route, keeps
// the one with the smaller perpendicular offset. Duplicate map entries for
// one physical forecourt show up constantly in cached data.
func dedupStations(stations []Station) []Station {
	deduped := []Station{}
	for _, s := range stations {
		if len(deduped) > 0 {
			last := &deduped[len(deduped)-1]
			if s.KmAlongRoute-last.KmAlongRoute < DEDUP_DISTANCE_KM {
				if s.SnapDistanceM < last.SnapDistanceM {
					*last = s
				}
				continue
			}
		}
		deduped = append(deduped, s)
	}
	return deduped
}

func buildLegs(stations []Station, totalKm float64) []Leg {
	legs := []Leg{}
	appendLeg := func(from *Station, to *Station, distanceKm float64) {
		legs = append(legs, Leg{
			Idx:         len(legs),
			FromStation: from,
			ToStation:   to,
			DistanceKm:  distanceKm,
		})
	}

	if len(stations) == 0 {
		appendLeg(nil, nil, totalKm)
		return legs
	}

	if stations[0].KmAlongRoute >= MIN_EDGE_LEG_KM {
		appendLeg(nil, copyStation(stations[0]), stations[0].KmAlongRoute)
	}
	for i := 0; i < len(stations)-1; i++ {
		appendLeg(copyStation(stations[i]), copyStation(stations[i+1]), stations[i+1].KmAlongRoute-stations[i].KmAlongRoute)
	}
	last := stations[len(stations)-1]
	if totalKm-last.KmAlongRoute >= MIN_EDGE_LEG_KM {
		appendLeg(copyStation(last), nil, totalKm-last.KmAlongRoute)
	}

	return legs
}

func flagLegs(legs []Leg, profile Profile) {
	for i := range legs {
		legs[i].GapExceedsRange = legs[i].DistanceKm > profile.TankRangeKm
		legs[i].GapExceedsWarn = legs[i].DistanceKm > profile.TankRangeKm-profile.ReserveWarnKm
	}
}

func generateWarnings(legs []Leg, profile Profile) []Warning {
	warnings := []Warning{}

	noStations := len(legs) == 1 && legs[0].FromStation == nil && legs[0].ToStation == nil
	if noStations {
		warnings = append(warnings, noFuelWarning())
		return warnings
	}

	for i := range legs {
		leg := legs[i]
		fromKm := legStartKm(leg)
		fromName := stationLabel(leg.FromStation, "Start")
		toName := stationLabel(leg.ToStation, "End")

		if leg.GapExceedsRange {
			warnings = append(warnings, Warning{
				Type:     WarningGap,
				Severity: SeverityCritical,
				Message:  fmt.Sprintf("%.0f km between %s and %s exceeds your %.0f km tank range", leg.DistanceKm, fromName, toName, profile.TankRangeKm),
				AtKm:     fromKm,
				Station:  copyStationPtr(leg.FromStation),
				GapKm:    leg.DistanceKm,
			})
		} else if leg.GapExceedsWarn {
			severity := SeverityInfo
			if profile.TankRangeKm-leg.DistanceKm < profile.ReserveCriticalKm {
				severity = SeverityWarn
			}
			warnings = append(warnings, Warning{
				Type:     WarningLongStretch,
				Severity: severity,
				Message:  fmt.Sprintf("Long stretch of %.0f km between %s and %s, only %.0f km of range to spare", leg.DistanceKm, fromName, toName, profile.TankRangeKm-leg.DistanceKm),
				AtKm:     fromKm,
				Station:  copyStationPtr(leg.FromStation),
				GapKm:    leg.DistanceKm,
			})
		}

		finalLeg := leg.Idx == len(legs)-1
		if leg.FromStation != nil && leg.DistanceKm > profile.ReserveWarnKm && (finalLeg || leg.DistanceKm > profile.TankRangeKm-profile.ReserveWarnKm) {
			warnings = append(warnings, Warning{
				Type:     WarningLastChance,
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("%s is your last fuel before a %.0f km stretch, fill up here", stationLabel(leg.FromStation, "Start"), leg.DistanceKm),
				AtKm:     leg.FromStation.KmAlongRoute,
				Station:  copyStationPtr(leg.FromStation),
				GapKm:    leg.DistanceKm,
			})
		}
	}

	// critical first, then earliest along the route
	slices.SortStableFunc(warnings, func(a, b Warning) int {
		if d := severityRank[b.Severity] - severityRank[a.Severity]; d != 0 {
			return d
		}
		return cmp.Compare(a.AtKm, b.AtKm)
	})

	return warnings
}

func noFuelWarning() Warning {
	return Warning{
		Type:     WarningNoFuelOnRoute,
		Severity: SeverityCritical,
		Message:  "No usable fuel stops found along this route",
		AtKm:     0,
	}
}

func legStartKm(leg Leg) float64 {
	if leg.FromStation != nil {
		return leg.FromStation.KmAlongRoute
	}
	return 0
}

func stationLabel(s *Station, fallback string) string {
	if s == nil {
		return fallback
	}
	if s.Name != "" {
		return s.Name
	}
	if s.Brand != "" {
		return s.Brand
	}
	return "Unnamed station"
}

func copyStation(s Station) *Station {
	c := s
	return &c
}

func copyStationPtr(s *Station) *Station {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
