package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"outbacknav.dev/tripd/fatigue"
	"outbacknav.dev/tripd/fuel"
	"outbacknav.dev/tripd/params"
	"outbacknav.dev/tripd/settings"
)

type TickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Every(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type watchModel struct {
	pressure      progress.Model
	tracking      fuel.TrackingState
	fatigue       fatigue.State
	speedKph      float64
	trackingValid bool
	fatigueValid  bool
	speedValid    bool
}

func newWatchModel() watchModel {
	return watchModel{
		pressure: progress.New(progress.WithGradient("#22cc66", "#cc2222")),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tickEvery()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, _ := docStyle.GetFrameSize()
		m.pressure.Width = msg.Width - h
	case TickMsg:
		if data, err := params.GetParam(params.FUEL_TRACKING); err == nil {
			m.trackingValid = json.Unmarshal(data, &m.tracking) == nil
		}
		if data, err := params.GetParam(params.FATIGUE_STATE); err == nil {
			m.fatigueValid = json.Unmarshal(data, &m.fatigue) == nil
		}
		if data, err := params.GetParam(params.LAST_GPS_POSITION); err == nil {
			position := struct {
				SpeedMps float64 `json:"speed_mps"`
			}{SpeedMps: math.NaN()}
			m.speedValid = json.Unmarshal(data, &position) == nil && !math.IsNaN(position.SpeedMps)
			m.speedKph = position.SpeedMps * settings.MS_TO_KPH
		}
		return m, tickEvery()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	if m.speedValid {
		b.WriteString(fmt.Sprintf("speed: %.0f km/h\n\n", m.speedKph))
	}

	b.WriteString(titleStyle.Render("Fuel") + "\n")
	if m.trackingValid {
		b.WriteString(m.pressure.ViewAs(m.tracking.FuelPressure) + "\n")
		b.WriteString(fmt.Sprintf("since last fuel: %.1f km\n", m.tracking.KmSinceLastFuel))
		if m.tracking.KmToNextFuel != nil {
			b.WriteString(fmt.Sprintf("next fuel in: %.1f km\n", *m.tracking.KmToNextFuel))
		} else {
			b.WriteString("next fuel in: no stations ahead\n")
		}
		if m.tracking.NextStation != nil {
			b.WriteString(fmt.Sprintf("next station: %s\n", m.tracking.NextStation.Name))
		}
		if m.tracking.ActiveWarning != nil {
			w := m.tracking.ActiveWarning
			b.WriteString(severityStyle(w.Severity).Render(w.Message) + "\n")
		}
	} else {
		b.WriteString(faintStyle.Render("waiting for tripd output") + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Fatigue") + "\n")
	if m.fatigueValid {
		style := infoStyle
		switch m.fatigue.WarningLevel {
		case fatigue.LevelUrgent:
			style = criticalStyle
		case fatigue.LevelRecommended, fatigue.LevelSuggested:
			style = warnStyle
		}
		b.WriteString(fmt.Sprintf("level: %s\n", style.Render(string(m.fatigue.WarningLevel))))
		b.WriteString(fmt.Sprintf("driving: %.0f min  since rest: %.0f min  resting: %t\n",
			m.fatigue.TotalDriveTimeS/60, m.fatigue.TimeSinceLastRestS/60, m.fatigue.IsResting))
	} else {
		b.WriteString(faintStyle.Render("waiting for tripd output") + "\n")
	}

	b.WriteString("\n" + faintStyle.Render("q to quit"))

	return docStyle.Render(b.String())
}

func watch() error {
	_, err := tea.NewProgram(newWatchModel()).Run()
	return err
}
