package params

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/gofrs/flock"
)

var (
	ParamsPath string = GetBasePath()
)

// Params
var (
	LAST_GPS_POSITION = ParamPath("LastGPSPosition")
	VEHICLE_PROFILE   = ParamPath("VehicleProfile")
	ACTIVE_ROUTE      = ParamPath("ActiveRoute")
	FUEL_CANDIDATES   = ParamPath("FuelCandidates")
	FUEL_ANALYSIS     = ParamPath("FuelAnalysis")
	FUEL_TRACKING     = ParamPath("FuelTracking")
	FATIGUE_STATE     = ParamPath("FatigueState")
	TRIPD_SETTINGS    = ParamPath("TripdSettings")
)

// GetBasePath prefers the TRIPD_PARAMS environment variable so tests and
// packaged installs can relocate the store; everything else lands next to
// the binary the way a head unit deployment expects.
func GetBasePath() string {
	if base := os.Getenv("TRIPD_PARAMS"); base != "" {
		return filepath.Join(base, "d")
	}
	return filepath.Join("params", "d")
}

// Exists returns whether the given file or directory exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, "could not check param file stats")
}

func EnsureParamDirectories() {
	err := os.MkdirAll(ParamsPath, 0o775)
	if err != nil {
		slog.Warn("could not make params directory", "error", err, "directory", ParamsPath)
	}
}

func GetParams() ([]string, error) {
	files, err := os.ReadDir(ParamsPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read params directory")
	}

	paramFiles := []string{}
	for _, file := range files {
		name := file.Name()
		if file.Type().IsRegular() && name[0] != '.' {
			paramFiles = append(paramFiles, name)
		}
	}
	sort.Strings(paramFiles)

	return paramFiles, nil
}

func ParamPath(name string) string {
	return filepath.Join(ParamsPath, name)
}

func GetParam(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// PutParam atomically replaces the param at path: write to a temp file in
// the same directory, fsync, take the directory lock, rename over the old
// value, fsync the directory. Readers either see the old value or the new
// one, never a torn write.
func PutParam(path string, data []byte) error {
	dir := filepath.Dir(path)
	file, err := os.CreateTemp(dir, ".tmp_value_"+filepath.Base(path))
	if err != nil {
		return errors.Wrap(err, "could not create temp param file")
	}
	tmpName := file.Name()
	defer os.Remove(tmpName)

	_, err = file.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write data to temp param file")
	}

	err = file.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync temp param file")
	}

	err = file.Close()
	if err != nil {
		return errors.Wrap(err, "could not close temp param file")
	}

	return withDirLock(dir, func() error {
		err := os.Rename(tmpName, path)
		if err != nil {
			return errors.Wrap(err, "could not move temp param file to persistent location")
		}
		return syncDir(dir)
	})
}

func RemoveParam(path string) error {
	dir := filepath.Dir(path)
	return withDirLock(dir, func() error {
		os.Remove(path)
		return syncDir(dir)
	})
}

// withDirLock runs fn while holding the params directory lock. A stale lock
// left behind by a crashed writer gets force removed after enough retries.
func withDirLock(dir string, fn func() error) error {
	lockDir := filepath.Dir(dir)
	lockPath := filepath.Join(lockDir, ".lock")
	fileLock := flock.New(lockPath)

	retries := 0
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return errors.Wrap(err, "could not try locking params directory")
		}
		if locked {
			break
		}
		retries += 1
		if retries > 30 {
			if err := os.Remove(lockPath); err != nil {
				slog.Debug("failed to force delete params lock", "error", err)
			}
		}
		if retries > 50 {
			return errors.New("could not obtain lock")
		}
		// if we didn't obtain the lock let's try again after a short delay
		time.Sleep(1 * time.Millisecond)
	}
	defer func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Error("could not unlock params directory", "error", err)
		}
	}()
	defer func() {
		if err := os.Remove(lockPath); err != nil {
			slog.Error("could not remove params lock file", "error", err)
		}
	}()

	return fn()
}

func syncDir(dir string) error {
	directory, err := os.Open(dir)
	if err != nil {
		return errors.Wrap(err, "could not open params directory")
	}
	defer directory.Close()

	err = directory.Sync()
	return errors.Wrap(err, "could not fsync params directory")
}
