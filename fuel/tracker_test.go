package fuel

import (
	"math"
	"testing"
)

func trackerProfile() Profile {
	return Profile{
		FuelType:          FuelTypeDiesel,
		TankRangeKm:       100,
		ReserveWarnKm:     20,
		ReserveCriticalKm: 10,
	}
}

func TestPressureBounds(t *testing.T) {
	profile := trackerProfile()
	for since := 0.0; since <= 200; since += 7 {
		for next := 0.0; next <= 200; next += 11 {
			n := next
			p := ComputePressure(since, &n, profile)
			if p < 0 || p > 1 {
				t.Fatalf("pressure %f out of range for since=%f next=%f", p, since, next)
			}
		}
		p := ComputePressure(since, nil, profile)
		if p < 0 || p > 1 {
			t.Fatalf("pressure %f out of range for since=%f next=nil", p, since)
		}
	}
}

func TestPressureBandJoins(t *testing.T) {
	profile := trackerProfile()

	// margin exactly at the critical reserve: both ramps should meet at 0.8
	next := 20.0
	if p := ComputePressure(70, &next, profile); math.Abs(p-0.8) > 1e-9 {
		t.Errorf("critical band join: got %f, want 0.8", p)
	}
	// margin exactly at the warn reserve with a 60% consumed tank: 0.3
	if p := ComputePressure(60, &next, profile); math.Abs(p-0.3) > 1e-9 {
		t.Errorf("warn band join: got %f, want 0.3", p)
	}
	// stepping across the joins must not jump
	for _, since := range []float64{60, 70} {
		lo, hi := next-0.001, next+0.001
		pLo := ComputePressure(since, &lo, profile)
		pHi := ComputePressure(since, &hi, profile)
		if math.Abs(pHi-pLo) > 0.01 {
			t.Errorf("discontinuity near since=%f: %f vs %f", since, pLo, pHi)
		}
	}
}

func TestPressureMonotonic(t *testing.T) {
	profile := trackerProfile()
	next := 15.0
	prev := -1.0
	for since := 0.0; since <= 85; since += 0.5 {
		p := ComputePressure(since, &next, profile)
		if p < prev {
			t.Fatalf("pressure dropped from %f to %f at since=%f", prev, p, since)
		}
		prev = p
	}
	if math.Abs(prev-1.0) > 1e-9 {
		t.Errorf("pressure at zero margin: got %f, want 1.0", prev)
	}
}

func TestPressureUnreachableStation(t *testing.T) {
	profile := trackerProfile()
	next := 60.0
	if p := ComputePressure(50, &next, profile); p != 1.0 {
		t.Errorf("unreachable next station: got %f, want 1.0", p)
	}
}

func TestPressureNoStationAhead(t *testing.T) {
	profile := trackerProfile()
	if p := ComputePressure(40, nil, profile); math.Abs(p-0.4) > 1e-9 {
		t.Errorf("no station ahead: got %f, want 0.4", p)
	}
	if p := ComputePressure(150, nil, profile); p != 1.0 {
		t.Errorf("past the tank with no station ahead: got %f, want 1.0", p)
	}
}

func trackerAnalysis() Analysis {
	return Analysis{
		Stations: []Station{
			{PlaceID: "a", KmAlongRoute: 10},
			{PlaceID: "b", KmAlongRoute: 50},
			{PlaceID: "c", KmAlongRoute: 90},
		},
	}
}

func TestTrackingStationScan(t *testing.T) {
	profile := trackerProfile()
	state := ComputeFuelTracking(trackerAnalysis(), 60, profile)

	if state.LastPassedStation == nil || state.LastPassedStation.PlaceID != "b" {
		t.Fatalf("last passed: got %+v, want b", state.LastPassedStation)
	}
	if state.NextStation == nil || state.NextStation.PlaceID != "c" {
		t.Fatalf("next: got %+v, want c", state.NextStation)
	}
	if state.KmSinceLastFuel != 10 {
		t.Errorf("km since last: got %f, want 10", state.KmSinceLastFuel)
	}
	if state.KmToNextFuel == nil || *state.KmToNextFuel != 30 {
		t.Errorf("km to next: got %v, want 30", state.KmToNextFuel)
	}
	// 30 km to the next station is beyond the 20 km warn reserve
	if !state.IsWarn {
		t.Error("expected warn state")
	}
	if state.IsCritical {
		t.Error("unexpected critical state")
	}
}

func TestTrackingBeforeFirstStation(t *testing.T) {
	state := ComputeFuelTracking(trackerAnalysis(), 5, trackerProfile())

	if state.LastPassedStation != nil {
		t.Errorf("last passed before any station: got %+v", state.LastPassedStation)
	}
	if state.KmSinceLastFuel != 5 {
		t.Errorf("km since last: got %f, want trip distance 5", state.KmSinceLastFuel)
	}
	if state.NextStation == nil || state.NextStation.PlaceID != "a" {
		t.Errorf("next: got %+v, want a", state.NextStation)
	}
}

func TestTrackingPastLastStation(t *testing.T) {
	state := ComputeFuelTracking(trackerAnalysis(), 95, trackerProfile())

	if state.NextStation != nil || state.KmToNextFuel != nil {
		t.Error("no station ahead past km 90")
	}
	if state.LastPassedStation == nil || state.LastPassedStation.PlaceID != "c" {
		t.Errorf("last passed: got %+v, want c", state.LastPassedStation)
	}
	if math.Abs(state.FuelPressure-0.05) > 1e-9 {
		t.Errorf("pressure: got %f, want 0.05", state.FuelPressure)
	}
}

func TestTrackingActiveWarningWindow(t *testing.T) {
	analysis := trackerAnalysis()
	analysis.Warnings = []Warning{
		{Type: WarningGap, Severity: SeverityCritical, AtKm: 100, GapKm: 120},
	}
	profile := trackerProfile()

	for _, tc := range []struct {
		currentKm float64
		active    bool
	}{
		{40, false},  // warning is more than 5 km ahead
		{95, true},   // 5 km ahead, edge of the window
		{100, true},  // right at the anchor
		{149, true},  // still within 50 km behind
		{151, false}, // dropped off behind
	} {
		state := ComputeFuelTracking(analysis, tc.currentKm, profile)
		if got := state.ActiveWarning != nil; got != tc.active {
			t.Errorf("at km %f: active=%v, want %v", tc.currentKm, got, tc.active)
		}
	}
}

func TestTrackingActiveWarningIsCopied(t *testing.T) {
	analysis := trackerAnalysis()
	analysis.Warnings = []Warning{
		{Type: WarningGap, Severity: SeverityCritical, AtKm: 60, Station: &Station{PlaceID: "b", KmAlongRoute: 50}},
	}
	state := ComputeFuelTracking(analysis, 60, trackerProfile())

	if state.ActiveWarning == nil {
		t.Fatal("expected an active warning")
	}
	if state.ActiveWarning == &analysis.Warnings[0] || state.ActiveWarning.Station == analysis.Warnings[0].Station {
		t.Error("active warning shares memory with the analysis")
	}
}

func TestTrackingNoStations(t *testing.T) {
	profile := trackerProfile()
	analysis := Analysis{Warnings: []Warning{noFuelWarning()}}

	state := ComputeFuelTracking(analysis, 12, profile)
	if state.FuelPressure != 0.5 {
		t.Errorf("pressure inside the warn reserve: got %f, want 0.5", state.FuelPressure)
	}
	if !state.IsWarn {
		t.Error("expected warn with no fuel on route")
	}
	if !state.IsCritical {
		t.Error("past the critical reserve with no fuel should be critical")
	}
	if state.ActiveWarning == nil || state.ActiveWarning.Type != WarningNoFuelOnRoute {
		t.Errorf("active warning: got %+v, want no_fuel_on_route", state.ActiveWarning)
	}

	state = ComputeFuelTracking(analysis, 25, profile)
	if state.FuelPressure != 1.0 {
		t.Errorf("pressure past the warn reserve: got %f, want 1.0", state.FuelPressure)
	}
}
