package main

import (
	"time"

	"outbacknav.dev/tripd/fatigue"
	"outbacknav.dev/tripd/fuel"
	"outbacknav.dev/tripd/geo"
)

// GpsPosition is the shape of the LastGPSPosition param written by the
// position source. Speed may be NaN when the fix has no velocity.
type GpsPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SpeedMps  float64 `json:"speed_mps"`
	Accuracy  float64 `json:"accuracy"`
	Heading   float64 `json:"heading"`
	Timestamp float64 `json:"timestamp"`
}

// ActiveRoute is the shape of the ActiveRoute param written by the route
// source. RouteKey is an opaque tag; a change of key means a new route.
type ActiveRoute struct {
	EncodedPath string `json:"encoded_path"`
	RouteKey    string `json:"route_key"`
}

// State is the daemon's view of the active trip. The engine packages stay
// pure; everything mutable lives here and is fed back in tick by tick.
type State struct {
	Path     geo.Path
	CumKm    []float64
	RouteKey string
	Profile  fuel.Profile
	Analysis fuel.Analysis
	Tracking fuel.TrackingState
	Fatigue  fatigue.State
	LastTick time.Time
}
