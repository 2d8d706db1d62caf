package fatigue

import (
	"math"
	"time"
)

var (
	MOVING_SPEED         = 1.39    // m/s, 5 km/h, below this the vehicle counts as stopped
	REST_DETECT_DELAY_S  = 120.0   // stopped this long before a rest episode starts
	QUALIFYING_REST_S    = 900.0   // 15 min, the only rest that resets the fatigue clock
	SUGGESTED_AFTER_S    = 5400.0  // 90 min
	RECOMMENDED_AFTER_S  = 7200.0  // 2 h
	URGENT_AFTER_S       = 9000.0  // 2.5 h
	URGENT_TOTAL_DRIVE_S = 36000.0 // 10 h, urgent regardless of recent rest
)

type Level string

const (
	LevelNone        Level = "none"
	LevelSuggested   Level = "suggested"
	LevelRecommended Level = "recommended"
	LevelUrgent      Level = "urgent"
)

var levelRank = map[Level]int{
	LevelNone:        0,
	LevelSuggested:   1,
	LevelRecommended: 2,
	LevelUrgent:      3,
}

// State is threaded explicitly through successive Update calls by the
// caller. The engine never stores it, so per-trip reset, persistence, and
// synthetic-tick testing are all in the caller's hands.
type State struct {
	TripStartedAt        time.Time `json:"trip_started_at"`
	TotalDriveTimeS      float64   `json:"total_drive_time_s"`
	TotalRestTimeS       float64   `json:"total_rest_time_s"`
	LastRestAt           time.Time `json:"last_rest_at"`
	TimeSinceLastRestS   float64   `json:"time_since_last_rest_s"`
	IsResting            bool      `json:"is_resting"`
	CurrentRestDurationS float64   `json:"current_rest_duration_s"`
	WarningLevel         Level     `json:"warning_level"`
}

func NewState(now time.Time) State {
	return State{TripStartedAt: now, WarningLevel: LevelNone}
}

// Update is a pure reducer over one speed sample. dtS <= 0 is a no-op
// returning prev unchanged. An unknown speed (NaN) counts as stopped.
//
// A stop only becomes a rest episode after REST_DETECT_DELAY_S, and only a
// rest episode that reached QUALIFYING_REST_S resets the fatigue clock when
// driving resumes; shorter episodes are discarded and the clock runs on
// uninterrupted.
func Update(prev State, speedMps float64, dtS float64, now time.Time) State {
	if dtS <= 0 {
		return prev
	}

	next := prev
	if next.TripStartedAt.IsZero() {
		next.TripStartedAt = now
	}
	if next.WarningLevel == "" {
		next.WarningLevel = LevelNone
	}

	moving := !math.IsNaN(speedMps) && speedMps > MOVING_SPEED
	if moving {
		if prev.IsResting && prev.CurrentRestDurationS >= QUALIFYING_REST_S {
			next.TimeSinceLastRestS = 0
			next.LastRestAt = now
		} else {
			next.TimeSinceLastRestS += dtS
		}
		next.IsResting = false
		next.CurrentRestDurationS = 0
		next.TotalDriveTimeS += dtS
	} else {
		next.CurrentRestDurationS += dtS
		next.TimeSinceLastRestS += dtS
		if next.CurrentRestDurationS >= REST_DETECT_DELAY_S {
			next.IsResting = true
			next.TotalRestTimeS += dtS
		}
	}

	next.WarningLevel = levelFor(next.TimeSinceLastRestS, next.TotalDriveTimeS)

	return next
}

// levelFor recomputes the warning level from scratch; it is a pure function
// of the counters, not a ratchet.
func levelFor(timeSinceLastRestS float64, totalDriveTimeS float64) Level {
	if timeSinceLastRestS >= URGENT_AFTER_S || totalDriveTimeS >= URGENT_TOTAL_DRIVE_S {
		return LevelUrgent
	}
	if timeSinceLastRestS >= RECOMMENDED_AFTER_S {
		return LevelRecommended
	}
	if timeSinceLastRestS >= SUGGESTED_AFTER_S {
		return LevelSuggested
	}
	return LevelNone
}

// Escalated reports whether next reached a strictly more severe level than
// prev. Callers use it to fire a single alert on each escalation instead of
// repeating one every tick a level is sustained.
func Escalated(prev State, next State) bool {
	return levelRank[next.WarningLevel] > levelRank[prev.WarningLevel]
}
