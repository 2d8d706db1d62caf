package settings

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"outbacknav.dev/tripd/params"
	"outbacknav.dev/tripd/utils"
)

var (
	Settings = TripdSettings{}
)

type TripdSettings struct {
	LogLevel       string  `json:"log_level"`
	TickIntervalS  float64 `json:"tick_interval_s"`
	CandidatesFile string  `json:"candidates_file"`
}

func (s *TripdSettings) Default() {
	s.LogLevel = "error"
	s.TickIntervalS = 1
	s.CandidatesFile = ""
}

func (s *TripdSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.TRIPD_SETTINGS)
	if err != nil {
		utils.Loge(err)
		return false
	}

	err = json.Unmarshal(data, s)
	if err != nil {
		utils.Loge(err)
		return false
	}

	s.setLogLevel()

	return true
}

func (s *TripdSettings) LoadWithRetries(tries int) {
	for range tries {
		if s.Load() {
			break
		}
		time.Sleep(1 * time.Second)
	}
	s.Save()
}

func (s *TripdSettings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		utils.Loge(err)
		return
	}
	err = params.PutParam(params.TRIPD_SETTINGS, data)
	if err != nil {
		utils.Loge(err)
		return
	}
}

func (s *TripdSettings) TickInterval() time.Duration {
	if s.TickIntervalS <= 0 {
		return LOOP_DELAY
	}
	return time.Duration(s.TickIntervalS * float64(time.Second))
}

func (s *TripdSettings) setLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}
