package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/tally/internal/model"
)

// Styles is the palette for one theme. The bw theme sets no colors and
// relies on weight, underline and reverse video instead.
type Styles struct {
	Theme     model.Theme
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Section   lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	New       lipgloss.Style
	Muted     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	Overlay   lipgloss.Style
	Counter   lipgloss.Style
	Footer    lipgloss.Style
	// Progress bar gradient; empty for bw.
	ProgressFrom string
	ProgressTo   string
}

func StylesFor(theme model.Theme) Styles {
	if theme == model.ThemeBW {
		return Styles{
			Theme:     model.ThemeBW,
			Header:    lipgloss.NewStyle().Bold(true),
			Tab:       lipgloss.NewStyle().Padding(0, 1),
			ActiveTab: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
			Section:   lipgloss.NewStyle().Bold(true).Underline(true),
			Item:      lipgloss.NewStyle(),
			Selected:  lipgloss.NewStyle().Reverse(true),
			New:       lipgloss.NewStyle().Bold(true),
			Muted:     lipgloss.NewStyle().Faint(true),
			Status:    lipgloss.NewStyle(),
			Error:     lipgloss.NewStyle().Bold(true).Underline(true),
			Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
			Overlay:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 3).Align(lipgloss.Center),
			Counter:   lipgloss.NewStyle().Bold(true),
			Footer:    lipgloss.NewStyle().Faint(true),
		}
	}
	return Styles{
		Theme:        model.ThemeColor,
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Tab:          lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8")),
		ActiveTab:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("63")),
		Section:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Item:         lipgloss.NewStyle(),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		New:          lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
		Overlay:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(1, 3).Align(lipgloss.Center),
		Counter:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Footer:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ProgressFrom: "#5A56E0",
		ProgressTo:   "#EE6FF8",
	}
}
