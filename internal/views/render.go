package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/tally/internal/model"
)

type TabData struct {
	Label  string
	Active bool
}

type AppData struct {
	Title         string
	Tabs          []TabData
	Body          string
	Overlay       string
	Side          string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Width         int
}

func RenderApp(data AppData, st Styles) string {
	tabs := make([]string, 0, len(data.Tabs))
	for _, tab := range data.Tabs {
		if tab.Active {
			tabs = append(tabs, st.ActiveTab.Render(tab.Label))
		} else {
			tabs = append(tabs, st.Tab.Render(tab.Label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, st.Header.Render(data.Title), "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	width := data.Width
	if width <= 0 || width > 72 {
		width = 72
	}
	body := data.Body
	if data.Overlay != "" {
		body = lipgloss.Place(width, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, data.Overlay)
	}
	main := st.Panel.Width(width).Render(body)
	if data.Side != "" {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, st.Panel.Render(data.Side))
	}

	lines := []string{header, main}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, st.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, st.Status.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a goal description. The bw theme uses the
// colorless glamour style.
func RenderMarkdown(md string, theme model.Theme, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if theme == model.ThemeBW {
		style = "notty"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
