package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"

	"outbacknav.dev/tripd/fuel"
	"outbacknav.dev/tripd/params"
)

func setupProfile() error {
	fuelPrompt := promptui.Select{
		Label: "Fuel type",
		Items: []string{"diesel", "unleaded", "premium", "ev"},
	}
	_, fuelType, err := fuelPrompt.Run()
	if err != nil {
		return errors.Wrap(err, "prompt failed")
	}

	tankRange, err := promptKm("Tank range in km", "800")
	if err != nil {
		return err
	}
	reserveWarn, err := promptKm("Warn when remaining range drops below km", "150")
	if err != nil {
		return err
	}
	reserveCritical, err := promptKm("Critical when remaining range drops below km", "50")
	if err != nil {
		return err
	}

	profile := fuel.Profile{
		FuelType:          fuel.FuelType(fuelType),
		TankRangeKm:       tankRange,
		ReserveWarnKm:     reserveWarn,
		ReserveCriticalKm: reserveCritical,
	}
	if !profile.Valid() {
		fmt.Println("warning: expected critical < warn < tank range, fuel warnings will be unreliable")
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal profile")
	}
	params.EnsureParamDirectories()
	err = params.PutParam(params.VEHICLE_PROFILE, data)
	if err != nil {
		return err
	}

	fmt.Println("vehicle profile saved")
	return nil
}

func promptKm(label string, defaultValue string) (float64, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
		Validate: func(input string) error {
			v, err := strconv.ParseFloat(input, 64)
			if err != nil || v <= 0 {
				return errors.New("enter a positive number")
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return 0, errors.Wrap(err, "prompt failed")
	}
	return strconv.ParseFloat(value, 64)
}
