package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"outbacknav.dev/tripd/fuel"
)

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

func severityStyle(severity fuel.Severity) lipgloss.Style {
	switch severity {
	case fuel.SeverityCritical:
		return criticalStyle
	case fuel.SeverityWarn:
		return warnStyle
	}
	return infoStyle
}

func RenderAnalysis(a fuel.Analysis) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Fuel analysis for route %s", a.RouteKey)) + "\n")
	b.WriteString(fmt.Sprintf("fuel type: %s  tank range: %.0f km  stops: %d  max gap: %.1f km\n",
		a.Profile.FuelType, a.Profile.TankRangeKm, a.TotalFuelStops, a.MaxGapKm))
	if a.HasCriticalGaps {
		b.WriteString(criticalStyle.Render("route has gaps beyond tank range") + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Stations") + "\n")
	if len(a.Stations) == 0 {
		b.WriteString(faintStyle.Render("none") + "\n")
	}
	for _, s := range a.Stations {
		name := s.Name
		if name == "" {
			name = s.PlaceID
		}
		b.WriteString(fmt.Sprintf("km %7.1f  %-30s %s, %.0f m off route\n", s.KmAlongRoute, name, s.Side, s.SnapDistanceM))
	}

	b.WriteString("\n" + titleStyle.Render("Warnings") + "\n")
	if len(a.Warnings) == 0 {
		b.WriteString(faintStyle.Render("none") + "\n")
	}
	for _, w := range a.Warnings {
		b.WriteString(severityStyle(w.Severity).Render(fmt.Sprintf("[%s]", w.Severity)))
		b.WriteString(fmt.Sprintf(" km %.1f: %s\n", w.AtKm, w.Message))
	}

	return docStyle.Render(b.String())
}
