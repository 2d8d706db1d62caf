package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"outbacknav.dev/tripd/fuel"
	"outbacknav.dev/tripd/params"
	"outbacknav.dev/tripd/poi"
)

func analyze(routeFile string, candidatesFile string, routeKey string) error {
	encoded, err := os.ReadFile(routeFile)
	if err != nil {
		return errors.Wrap(err, "could not read route file")
	}

	var candidates []poi.Candidate
	if candidatesFile != "" {
		candidates, err = poi.LoadCandidates(candidatesFile)
	} else {
		var data []byte
		data, err = params.GetParam(params.FUEL_CANDIDATES)
		if err == nil {
			candidates, err = poi.UnmarshalCandidates(data)
		} else {
			err = errors.Wrap(err, "no candidates file given and no FuelCandidates param")
		}
	}
	if err != nil {
		return err
	}

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	analysis := fuel.AnalyzeFuel(strings.TrimSpace(string(encoded)), candidates, profile, routeKey)
	fmt.Println(RenderAnalysis(analysis))
	return nil
}

func loadProfile() (fuel.Profile, error) {
	profile := fuel.Profile{}
	data, err := params.GetParam(params.VEHICLE_PROFILE)
	if err != nil {
		return profile, errors.Wrap(err, "no vehicle profile set, run 'tripd profile' first")
	}
	err = json.Unmarshal(data, &profile)
	if err != nil {
		return profile, errors.Wrap(err, "could not unmarshal vehicle profile")
	}
	return profile, nil
}
