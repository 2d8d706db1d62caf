package fuel

import (
	"time"

	"outbacknav.dev/tripd/geo"
)

type FuelType string

const (
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeUnleaded FuelType = "unleaded"
	FuelTypePremium  FuelType = "premium"
	FuelTypeEV       FuelType = "ev"
)

func (f FuelType) IsElectric() bool {
	return f == FuelTypeEV
}

// Profile is the persisted vehicle setting, passed by value into every
// analysis call. Callers are expected to keep
// ReserveCriticalKm < ReserveWarnKm < TankRangeKm; the engine does not
// enforce it and a violated profile produces nonsensical but non-crashing
// warnings.
type Profile struct {
	FuelType          FuelType `json:"fuel_type"`
	TankRangeKm       float64  `json:"tank_range_km"`
	ReserveWarnKm     float64  `json:"reserve_warn_km"`
	ReserveCriticalKm float64  `json:"reserve_critical_km"`
}

func (p Profile) Valid() bool {
	return p.ReserveCriticalKm < p.ReserveWarnKm && p.ReserveWarnKm < p.TankRangeKm
}

// Station is a candidate that survived filtering and de-duplication,
// confirmed relevant to the active fuel type and located along the route.
type Station struct {
	PlaceID       string   `json:"place_id"`
	Name          string   `json:"name"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	Category      string   `json:"category"`
	KmAlongRoute  float64  `json:"km_along_route"`
	SnapDistanceM float64  `json:"snap_distance_m"`
	Side          geo.Side `json:"side"`
	Brand         string   `json:"brand,omitempty"`
	Hours         string   `json:"hours,omitempty"`
	HasDiesel     *bool    `json:"has_diesel,omitempty"`
	HasUnleaded   *bool    `json:"has_unleaded,omitempty"`
}

// Leg is a contiguous stretch of route between two consecutive stations.
// FromStation and ToStation are nil only for the first and last leg, when
// the route starts before or ends after the nearest station.
type Leg struct {
	Idx             int      `json:"idx"`
	FromStation     *Station `json:"from_station"`
	ToStation       *Station `json:"to_station"`
	DistanceKm      float64  `json:"distance_km"`
	GapExceedsRange bool     `json:"gap_exceeds_range"`
	GapExceedsWarn  bool     `json:"gap_exceeds_warn"`
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarn:     1,
	SeverityCritical: 2,
}

type WarningType string

const (
	WarningNoFuelOnRoute WarningType = "no_fuel_on_route"
	WarningGap           WarningType = "gap"
	WarningLongStretch   WarningType = "long_stretch"
	WarningLastChance    WarningType = "last_chance"
)

// Warning is a value object. Station, when set, is a copy of the anchoring
// station rather than a reference into the analysis.
type Warning struct {
	Type     WarningType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	AtKm     float64     `json:"at_km"`
	Station  *Station    `json:"station,omitempty"`
	GapKm    float64     `json:"gap_km,omitempty"`
}

// Analysis is the aggregate pre-trip result. It is created once per
// route/profile combination and superseded wholesale on change, never
// patched, so it is safe to share between readers.
type Analysis struct {
	Profile         Profile   `json:"profile"`
	Stations        []Station `json:"stations"`
	Legs            []Leg     `json:"legs"`
	Warnings        []Warning `json:"warnings"`
	MaxGapKm        float64   `json:"max_gap_km"`
	TotalFuelStops  int       `json:"total_fuel_stops"`
	HasCriticalGaps bool      `json:"has_critical_gaps"`
	ComputedAt      time.Time `json:"computed_at"`
	RouteKey        string    `json:"route_key"`
}

// TrackingState is the live snapshot derived from an Analysis and the
// current distance along the route. It has no memory of its own; it is
// recomputed from scratch every tick.
type TrackingState struct {
	LastPassedStation *Station `json:"last_passed_station"`
	KmSinceLastFuel   float64  `json:"km_since_last_fuel"`
	KmToNextFuel      *float64 `json:"km_to_next_fuel"`
	FuelPressure      float64  `json:"fuel_pressure"`
	NextStation       *Station `json:"next_station"`
	IsWarn            bool     `json:"is_warn"`
	IsCritical        bool     `json:"is_critical"`
	ActiveWarning     *Warning `json:"active_warning"`
}
