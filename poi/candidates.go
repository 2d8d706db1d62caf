package poi

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Candidate categories the engine cares about. Anything else in a cached
// candidate set is passed through unread.
const (
	CategoryFuel     = "fuel"
	CategoryCharging = "charging_station"
)

// Candidate is a cached point of interest supplied by the upstream corridor
// fetch. The fuel attributes are tri-state: nil means the data source did not
// say, and absent data is treated permissively downstream.
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand,omitempty"`
	Hours       string  `json:"hours,omitempty"`
	HasDiesel   *bool   `json:"has_diesel,omitempty"`
	HasUnleaded *bool   `json:"has_unleaded,omitempty"`
}

func LoadCandidates(path string) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read candidates file")
	}
	return UnmarshalCandidates(data)
}

func UnmarshalCandidates(data []byte) ([]Candidate, error) {
	candidates := []Candidate{}
	err := json.Unmarshal(data, &candidates)
	if err != nil {
		return nil, errors.Wrap(err, "could not unmarshal candidates")
	}
	return candidates, nil
}

func SaveCandidates(path string, candidates []Candidate) error {
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal candidates")
	}
	err = os.WriteFile(path, data, 0o644)
	return errors.Wrap(err, "could not write candidates file")
}
