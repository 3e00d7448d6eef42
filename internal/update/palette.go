package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/commands"
	"github.com/sandeepkv93/tally/internal/i18n"
	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
	case "enter":
		m.palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) openPalette() {
	m.palette = paletteState{Active: true}
	m.commandInput.SetValue("")
	m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.palette = paletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.syncSession()
	return m
}

// paletteHandlers binds commands to the store. Indexes are 1-based
// positions on the goals screen, or in history for restart.
func (m *Model) paletteHandlers() commands.Handlers {
	target := func(index int) (model.Goal, error) {
		rows := m.goalRows()
		if index < 1 || index > len(rows) {
			return model.Goal{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: #%d", m.t("goalNotFound"), index)}
		}
		return rows[index-1], nil
	}
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			g, err := m.store.Create(a.Name, "", a.Repeats)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: errorText(err, m.t)}
			}
			m.scheduleHighlight(g.ID)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("addGoal"), g.Name)}, nil
		},
		Hold: func(a commands.TargetArgs) (commands.Result, error) {
			g, err := target(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if g.IsHeldOver {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is already held over", g.Name)}
			}
			m.store.HoldOver(g.ID)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("holdOver"), g.Name)}, nil
		},
		Continue: func(a commands.TargetArgs) (commands.Result, error) {
			g, err := target(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if !g.IsHeldOver {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is not held over", g.Name)}
			}
			m.store.Continue(g.ID)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("continue"), g.Name)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			g, err := target(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			m.store.Delete(g.ID)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("delete"), g.Name)}, nil
		},
		Restart: func(a commands.RestartArgs) (commands.Result, error) {
			history := m.historyGoals()
			if a.Index < 1 || a.Index > len(history) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: #%d", m.t("goalNotFound"), a.Index)}
			}
			done := history[a.Index-1]
			repeats := a.Repeats
			if repeats == 0 {
				repeats = done.TotalRepeats
			}
			g, err := m.store.Restart(done.ID, repeats, done.Description)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: errorText(err, m.t)}
			}
			m.scheduleHighlight(g.ID)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("startAgain"), g.Name)}, nil
		},
		Lang: func(a commands.LangArgs) (commands.Result, error) {
			if !i18n.Supported(a.Code) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported language %q", a.Code)}
			}
			m.store.SetLanguage(a.Code)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("language"), m.store.Language())}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			m.store.SetTheme(a.Theme)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.t("theme"), a.Theme)}, nil
		},
	}
}

func (m Model) renderCommandPalette() string {
	if !m.palette.Active {
		return ""
	}
	return views.RenderPalette(views.PaletteData{
		InputView: m.commandInput.View(),
		Hint:      "add <n> <name> | hold <#> | continue <#> | delete <#> | restart <#> [n] | lang <en|ru> | theme <color|bw>",
	}, m.styles())
}
