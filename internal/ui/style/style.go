// Package style holds the colors and icons shared by every terminal surface.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/cagesync/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Plus    = "+"
	Minus   = "-"
	Dot     = "●"
	Circle  = "○"
)

// Status returns the icon and color used to display a bundle status.
func Status(s domain.Status) (string, lipgloss.Color) {
	switch s {
	case domain.StatusClean:
		return Check, Green
	case domain.StatusNeedsInspection:
		return Warning, Yellow
	case domain.StatusStale:
		return Circle, Iris
	default:
		return Dot, Slate
	}
}

// Action returns the icon and color used to display a report entry.
func Action(entry domain.ReportEntry) (string, lipgloss.Color) {
	if entry.Failed() {
		return Cross, Red
	}
	switch entry.Action {
	case domain.ActionCreate:
		return Plus, Green
	case domain.ActionDelete:
		return Minus, Red
	case domain.ActionFlag:
		return Warning, Yellow
	case domain.ActionReset, domain.ActionRebuild:
		return Check, Iris
	default:
		return Dot, Slate
	}
}
