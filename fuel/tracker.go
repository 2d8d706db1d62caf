package fuel

import (
	"math"
)

var (
	ACTIVE_WARNING_BEHIND_KM = 50.0 // how far behind the vehicle a warning stays relevant
	ACTIVE_WARNING_AHEAD_KM  = 5.0  // how far ahead a warning becomes relevant
)

// ComputeFuelTracking derives the live snapshot for the current distance
// along the route. Stateless given its inputs; callers keep the previous
// value only for UI diffing.
func ComputeFuelTracking(analysis Analysis, currentKm float64, profile Profile) TrackingState {
	state := TrackingState{}

	if len(analysis.Stations) == 0 {
		state.KmSinceLastFuel = currentKm
		state.FuelPressure = 0.5
		if currentKm > profile.ReserveWarnKm {
			state.FuelPressure = 1.0
		}
		state.IsWarn = state.FuelPressure >= 0.3
		state.IsCritical = currentKm > profile.ReserveCriticalKm
		for i := range analysis.Warnings {
			if analysis.Warnings[i].Type == WarningNoFuelOnRoute {
				state.ActiveWarning = copyWarning(analysis.Warnings[i])
				break
			}
		}
		return state
	}

	for i := range analysis.Stations {
		s := analysis.Stations[i]
		if s.KmAlongRoute <= currentKm {
			state.LastPassedStation = copyStation(s)
		} else if state.NextStation == nil {
			state.NextStation = copyStation(s)
		}
	}

	if state.LastPassedStation != nil {
		state.KmSinceLastFuel = currentKm - state.LastPassedStation.KmAlongRoute
	} else {
		state.KmSinceLastFuel = currentKm
	}
	if state.NextStation != nil {
		toNext := state.NextStation.KmAlongRoute - currentKm
		state.KmToNextFuel = &toNext
	}

	state.FuelPressure = ComputePressure(state.KmSinceLastFuel, state.KmToNextFuel, profile)
	state.IsWarn = state.FuelPressure >= 0.3 ||
		(state.KmToNextFuel != nil && *state.KmToNextFuel > profile.ReserveWarnKm)
	state.IsCritical = state.FuelPressure >= 0.7 ||
		state.KmSinceLastFuel > profile.TankRangeKm-profile.ReserveCriticalKm

	state.ActiveWarning = activeWarning(analysis.Warnings, currentKm)

	return state
}

// ComputePressure maps the distance since the last fuel stop and the
// distance to the next one onto a [0,1] urgency scalar. The curve is
// continuous and monotonically increasing as the margin shrinks; the UI
// animates this value, so the bands must join without jumps.
func ComputePressure(kmSinceLast float64, kmToNext *float64, profile Profile) float64 {
	if profile.TankRangeKm <= 0 {
		return 1
	}

	if kmToNext == nil {
		// no more stations ahead, pressure is just tank consumption
		return clamp01(kmSinceLast / profile.TankRangeKm)
	}

	if kmSinceLast+*kmToNext > profile.TankRangeKm {
		// point of no return already passed, the next station is unreachable
		return 1
	}

	marginFrac := ((profile.TankRangeKm - kmSinceLast) - *kmToNext) / profile.TankRangeKm
	criticalFrac := profile.ReserveCriticalKm / profile.TankRangeKm
	warnFrac := profile.ReserveWarnKm / profile.TankRangeKm

	var pressure float64
	switch {
	case marginFrac < criticalFrac:
		// ramp 0.8 -> 1.0 as the remaining margin shrinks to nothing
		pressure = 1.0 - (marginFrac/criticalFrac)*0.2
	case marginFrac < warnFrac:
		// ramp 0.3 -> 0.8 across the warn band
		pressure = 0.8 - ((marginFrac-criticalFrac)/(warnFrac-criticalFrac))*0.5
	default:
		consumedFrac := kmSinceLast / profile.TankRangeKm
		pressure = math.Min(0.3, consumedFrac*0.5)
	}

	return clamp01(pressure)
}

// activeWarning surfaces the highest severity warning whose anchor falls in
// the window behind and just ahead of the vehicle. Warnings are already
// sorted severity first, so the first hit wins.
func activeWarning(warnings []Warning, currentKm float64) *Warning {
	for i := range warnings {
		w := warnings[i]
		if w.AtKm >= currentKm-ACTIVE_WARNING_BEHIND_KM && w.AtKm <= currentKm+ACTIVE_WARNING_AHEAD_KM {
			return copyWarning(w)
		}
	}
	return nil
}

func copyWarning(w Warning) *Warning {
	c := w
	c.Station = copyStationPtr(w.Station)
	return &c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
