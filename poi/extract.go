package poi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

type ExtractSettings struct {
	MinLat     float64
	MinLon     float64
	MaxLat     float64
	MaxLon     float64
	InputFile  string
	OutputFile string
}

// Extract scans an OpenStreetMap pbf extract for fuel stations and charging
// stations inside the bounding box and writes them out as a cached candidate
// file. This is the offline packaging step; the engine itself only ever sees
// the resulting file.
func Extract(s ExtractSettings) error {
	slog.Info("Scanning for fuel candidates", "input", s.InputFile)
	file, err := os.Open(s.InputFile)
	if err != nil {
		return errors.Wrap(err, "could not open pbf file")
	}
	defer file.Close()

	// The third parameter is the number of parallel decoders to use.
	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	scanner.SkipRelations = true
	defer scanner.Close()

	candidates := []Candidate{}
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			candidate, ok := candidateFromTags(fmt.Sprintf("node/%d", o.ID), o.Lat, o.Lon, o.TagMap())
			if ok && inBounds(candidate, s) {
				candidates = append(candidates, candidate)
			}
		case *osm.Way:
			if len(o.Nodes) == 0 {
				continue
			}
			// stations mapped as building outlines collapse to the outline centroid
			lat := float64(0)
			lon := float64(0)
			for _, n := range o.Nodes {
				lat += n.Lat
				lon += n.Lon
			}
			lat /= float64(len(o.Nodes))
			lon /= float64(len(o.Nodes))
			candidate, ok := candidateFromTags(fmt.Sprintf("way/%d", o.ID), lat, lon, o.TagMap())
			if ok && inBounds(candidate, s) {
				candidates = append(candidates, candidate)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "could not scan pbf file")
	}

	slog.Info("Writing candidates", "count", len(candidates), "output", s.OutputFile)
	return SaveCandidates(s.OutputFile, candidates)
}

func candidateFromTags(id string, lat float64, lon float64, tags map[string]string) (Candidate, bool) {
	var category string
	switch tags["amenity"] {
	case "fuel":
		category = CategoryFuel
	case "charging_station":
		category = CategoryCharging
	default:
		return Candidate{}, false
	}

	name := tags["name"]
	if name == "" {
		name = tags["brand"]
	}

	return Candidate{
		ID:          id,
		Name:        name,
		Lat:         lat,
		Lng:         lon,
		Category:    category,
		Brand:       tags["brand"],
		Hours:       tags["opening_hours"],
		HasDiesel:   triState(tags["fuel:diesel"]),
		HasUnleaded: triState(tags["fuel:octane_95"]),
	}, true
}

func inBounds(c Candidate, s ExtractSettings) bool {
	return c.Lat >= s.MinLat && c.Lat <= s.MaxLat && c.Lng >= s.MinLon && c.Lng <= s.MaxLon
}

func triState(v string) *bool {
	switch v {
	case "yes":
		t := true
		return &t
	case "no":
		f := false
		return &f
	}
	return nil
}
