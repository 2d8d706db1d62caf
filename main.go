package main

import (
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"

	"outbacknav.dev/tripd/cli"
	"outbacknav.dev/tripd/fatigue"
	"outbacknav.dev/tripd/fuel"
	"outbacknav.dev/tripd/geo"
	"outbacknav.dev/tripd/params"
	"outbacknav.dev/tripd/poi"
	"outbacknav.dev/tripd/route"
	ms "outbacknav.dev/tripd/settings"
	"outbacknav.dev/tripd/utils"
)

func main() {
	cli.Handle()
	params.EnsureParamDirectories()
	ms.Settings.LoadWithRetries(3)

	state := State{}
	loadFatigue(&state)

	for {
		time.Sleep(ms.Settings.TickInterval())
		tick(&state)
	}
}

func tick(state *State) {
	now := time.Now()
	dt := float64(0)
	if !state.LastTick.IsZero() {
		dt = now.Sub(state.LastTick).Seconds()
	}
	state.LastTick = now

	refreshRoute(state)

	position, ok := readPosition()
	if !ok {
		return
	}

	updateFatigue(state, position, dt, now)

	if len(state.Path) < 2 {
		return
	}

	snap := route.SnapToPolyline(geo.NewPosition(position.Latitude, position.Longitude), state.Path, state.CumKm)
	state.Tracking = fuel.ComputeFuelTracking(state.Analysis, snap.Km, state.Profile)
	putJson(params.FUEL_TRACKING, state.Tracking)

	slog.Debug("tick",
		"km", snap.Km,
		"offRoute", snap.DistanceM,
		"pressure", state.Tracking.FuelPressure,
		"fatigue", state.Fatigue.WarningLevel,
	)
}

// refreshRoute re-analyzes when the route source swapped in a new route.
// The analysis is superseded wholesale, never patched.
func refreshRoute(state *State) {
	data, err := params.GetParam(params.ACTIVE_ROUTE)
	if err != nil {
		return
	}
	activeRoute := ActiveRoute{}
	if err := json.Unmarshal(data, &activeRoute); err != nil {
		utils.Logde(errors.Wrap(err, "could not unmarshal active route"))
		return
	}
	if activeRoute.RouteKey == state.RouteKey {
		return
	}

	state.RouteKey = activeRoute.RouteKey
	state.Path = geo.DecodePolyline(activeRoute.EncodedPath)
	state.CumKm = state.Path.CumulativeDistances()
	state.Profile = loadProfile()
	state.Analysis = fuel.AnalyzePath(state.Path, loadCandidates(), state.Profile, activeRoute.RouteKey)
	putJson(params.FUEL_ANALYSIS, state.Analysis)

	slog.Info("route analyzed",
		"routeKey", state.RouteKey,
		"stations", state.Analysis.TotalFuelStops,
		"maxGapKm", state.Analysis.MaxGapKm,
		"criticalGaps", state.Analysis.HasCriticalGaps,
	)
}

func updateFatigue(state *State, position GpsPosition, dt float64, now time.Time) {
	prev := state.Fatigue
	state.Fatigue = fatigue.Update(prev, position.SpeedMps, dt, now)
	if fatigue.Escalated(prev, state.Fatigue) {
		slog.Warn("fatigue escalated", "level", state.Fatigue.WarningLevel,
			"sinceRestMin", state.Fatigue.TimeSinceLastRestS/60)
	}
	putJson(params.FATIGUE_STATE, state.Fatigue)
}

func readPosition() (GpsPosition, bool) {
	data, err := params.GetParam(params.LAST_GPS_POSITION)
	if err != nil {
		return GpsPosition{}, false
	}
	position := GpsPosition{SpeedMps: math.NaN()}
	if err := json.Unmarshal(data, &position); err != nil {
		utils.Logde(errors.Wrap(err, "could not unmarshal gps position"))
		return GpsPosition{}, false
	}
	return position, true
}

func loadProfile() fuel.Profile {
	profile := fuel.Profile{}
	data, err := params.GetParam(params.VEHICLE_PROFILE)
	if err != nil {
		slog.Warn("no vehicle profile set, using zero profile")
		return profile
	}
	utils.Logwe(errors.Wrap(json.Unmarshal(data, &profile), "could not unmarshal vehicle profile"))
	if !profile.Valid() {
		// fail open, the analyzer still runs but its warnings are unreliable
		slog.Warn("vehicle profile violates critical < warn < tank range",
			"tankRangeKm", profile.TankRangeKm,
			"reserveWarnKm", profile.ReserveWarnKm,
			"reserveCriticalKm", profile.ReserveCriticalKm,
		)
	}
	return profile
}

func loadCandidates() []poi.Candidate {
	if ms.Settings.CandidatesFile != "" {
		candidates, err := poi.LoadCandidates(ms.Settings.CandidatesFile)
		if err == nil {
			return candidates
		}
		utils.Logwe(err)
	}
	data, err := params.GetParam(params.FUEL_CANDIDATES)
	if err != nil {
		slog.Warn("no cached fuel candidates available")
		return []poi.Candidate{}
	}
	candidates, err := poi.UnmarshalCandidates(data)
	if err != nil {
		utils.Logwe(err)
		return []poi.Candidate{}
	}
	return candidates
}

// loadFatigue restores the fatigue reducer state across daemon restarts so a
// mid-trip crash does not forget hours behind the wheel.
func loadFatigue(state *State) {
	data, err := params.GetParam(params.FATIGUE_STATE)
	if err != nil {
		return
	}
	utils.Logde(errors.Wrap(json.Unmarshal(data, &state.Fatigue), "could not restore fatigue state"))
}

func putJson(path string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		utils.Loge(errors.Wrap(err, "could not marshal param"))
		return
	}
	utils.Logwe(params.PutParam(path, data))
}
