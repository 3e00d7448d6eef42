package views

import (
	"fmt"
	"strings"
)

type GoalRowData struct {
	Index    int
	Name     string
	Count    string
	Attempt  string
	Selected bool
	IsNew    bool
}

type GoalsScreenData struct {
	CurrentTitle string
	HeldTitle    string
	Current      []GoalRowData
	Held         []GoalRowData
	EmptyTitle   string
	EmptyHint    string
	FormView     string
}

type GoalScreenData struct {
	Name         string
	Attempt      string
	Counter      string
	RepeatsWord  string
	ProgressView string
	Description  string
	HeldLabel    string
	Position     string
	FormView     string
	ConfirmView  string
}

type CompletionData struct {
	Title string
	Body  string
	Name  string
	Hint  string
}

type HistoryScreenData struct {
	Title       string
	TableView   string
	Empty       bool
	EmptyTitle  string
	EmptyHint   string
	FormView    string
	ConfirmView string
}

type OptionData struct {
	Label    string
	Active   bool
	Selected bool
}

type SettingsScreenData struct {
	LanguageTitle string
	Languages     []OptionData
	ThemeTitle    string
	Themes        []OptionData
}

type FieldData struct {
	Label string
	View  string
	Error string
}

type FormData struct {
	Title  string
	Fields []FieldData
	Hint   string
}

type ConfirmData struct {
	Title   string
	Message string
	Hint    string
}

type HelpPanelData struct {
	Screen   string
	HelpView string
}

type PaletteData struct {
	InputView string
	Hint      string
}

func RenderGoalsScreen(data GoalsScreenData, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Section.Render(data.CurrentTitle) + "\n")
	if len(data.Current) == 0 {
		b.WriteString(st.Item.Render(data.EmptyTitle) + "\n")
		b.WriteString(st.Muted.Render(data.EmptyHint) + "\n")
	}
	for _, row := range data.Current {
		b.WriteString(renderGoalRow(row, st) + "\n")
	}
	if len(data.Held) > 0 {
		b.WriteString("\n" + st.Section.Render(data.HeldTitle) + "\n")
		for _, row := range data.Held {
			b.WriteString(renderGoalRow(row, st) + "\n")
		}
	}
	if data.FormView != "" {
		b.WriteString("\n" + data.FormView)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderGoalRow(row GoalRowData, st Styles) string {
	cursor := "  "
	if row.Selected {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%d. %-35s %8s  %s", cursor, row.Index, row.Name, row.Count, row.Attempt)
	switch {
	case row.Selected:
		return st.Selected.Render(line)
	case row.IsNew:
		return st.New.Render(line)
	default:
		return st.Item.Render(line)
	}
}

func RenderGoalScreen(data GoalScreenData, st Styles) string {
	var b strings.Builder
	title := data.Name
	if data.Position != "" {
		title = fmt.Sprintf("%s  %s", title, st.Muted.Render(data.Position))
	}
	b.WriteString(st.Section.Render(title) + "\n")
	if data.Attempt != "" {
		b.WriteString(st.Muted.Render(data.Attempt) + "\n")
	}
	if data.HeldLabel != "" {
		b.WriteString(st.Muted.Render("["+data.HeldLabel+"]") + "\n")
	}
	b.WriteString("\n" + st.Counter.Render(data.Counter) + " " + data.RepeatsWord + "\n")
	b.WriteString(data.ProgressView + "\n")
	if data.Description != "" {
		b.WriteString("\n" + data.Description + "\n")
	}
	if data.FormView != "" {
		b.WriteString("\n" + data.FormView + "\n")
	}
	if data.ConfirmView != "" {
		b.WriteString("\n" + data.ConfirmView + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCompletion(data CompletionData, st Styles) string {
	lines := []string{
		st.Counter.Render(data.Title),
		"",
		data.Body,
		st.Header.Render(data.Name),
		"",
		st.Muted.Render(data.Hint),
	}
	return st.Overlay.Render(strings.Join(lines, "\n"))
}

func RenderHistoryScreen(data HistoryScreenData, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Section.Render(data.Title) + "\n")
	if data.Empty {
		b.WriteString(st.Item.Render(data.EmptyTitle) + "\n")
		b.WriteString(st.Muted.Render(data.EmptyHint))
		return b.String()
	}
	b.WriteString(data.TableView)
	if data.FormView != "" {
		b.WriteString("\n\n" + data.FormView)
	}
	if data.ConfirmView != "" {
		b.WriteString("\n\n" + data.ConfirmView)
	}
	return b.String()
}

func RenderSettingsScreen(data SettingsScreenData, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Section.Render(data.LanguageTitle) + "\n")
	renderOptions(&b, data.Languages, st)
	b.WriteString("\n" + st.Section.Render(data.ThemeTitle) + "\n")
	renderOptions(&b, data.Themes, st)
	return strings.TrimRight(b.String(), "\n")
}

func renderOptions(b *strings.Builder, opts []OptionData, st Styles) {
	for _, opt := range opts {
		mark := "( )"
		if opt.Active {
			mark = "(*)"
		}
		line := fmt.Sprintf("  %s %s", mark, opt.Label)
		if opt.Selected {
			b.WriteString(st.Selected.Render(line) + "\n")
			continue
		}
		b.WriteString(st.Item.Render(line) + "\n")
	}
}

func RenderForm(data FormData, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Header.Render(data.Title) + "\n")
	for _, f := range data.Fields {
		b.WriteString(st.Muted.Render(f.Label) + "\n")
		b.WriteString(f.View + "\n")
		if f.Error != "" {
			b.WriteString(st.Error.Render(f.Error) + "\n")
		}
	}
	if data.Hint != "" {
		b.WriteString(st.Footer.Render(data.Hint))
	}
	return st.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func RenderConfirm(data ConfirmData, st Styles) string {
	lines := []string{st.Header.Render(data.Title), data.Message}
	if data.Hint != "" {
		lines = append(lines, st.Footer.Render(data.Hint))
	}
	return st.Panel.Render(strings.Join(lines, "\n"))
}

func RenderHelpPanel(data HelpPanelData, st Styles) string {
	return st.Header.Render("help: "+data.Screen) + "\n" + data.HelpView
}

func RenderPalette(data PaletteData, st Styles) string {
	out := data.InputView
	if data.Hint != "" {
		out += "\n" + st.Footer.Render(data.Hint)
	}
	return out
}
