package update

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/views"
)

type formKind string

const (
	formNone    formKind = ""
	formAdd     formKind = "add"
	formEdit    formKind = "edit"
	formRestart formKind = "restart"
)

type formField int

const (
	fieldName formField = iota
	fieldRepeats
	fieldKeep
	fieldDescription
)

// goalForm backs the add, change-parameters and start-again dialogs.
type goalForm struct {
	kind   formKind
	goalID string
	// minRepeats is the lowest accepted total; 0 means any positive count.
	minRepeats          int
	name                textinput.Model
	repeats             textinput.Model
	description         textarea.Model
	keepDescription     bool
	originalDescription string
	focus               formField
	nameErr             string
	repeatsErr          string
}

func (f goalForm) Active() bool {
	return f.kind != formNone
}

func newFormInputs(t func(string) string) goalForm {
	name := textinput.New()
	name.Placeholder = t("goalName")
	name.CharLimit = model.MaxNameLength
	name.Width = 36

	repeats := textinput.New()
	repeats.Placeholder = "10"
	repeats.CharLimit = 6
	repeats.Width = 8

	desc := textarea.New()
	desc.Placeholder = t("descriptionPlaceholder")
	desc.ShowLineNumbers = false
	desc.SetWidth(40)
	desc.SetHeight(3)

	return goalForm{name: name, repeats: repeats, description: desc}
}

func newAddForm(t func(string) string) goalForm {
	f := newFormInputs(t)
	f.kind = formAdd
	return f.focusOn(fieldName)
}

// newEditForm opens the change-parameters dialog. The total must stay
// above the progress already made.
func newEditForm(g model.Goal, t func(string) string) goalForm {
	f := newFormInputs(t)
	f.kind = formEdit
	f.goalID = g.ID
	f.minRepeats = g.CurrentRepeats + 1
	f.name.SetValue(g.Name)
	f.repeats.SetValue(strconv.Itoa(g.TotalRepeats))
	f.description.SetValue(g.Description)
	return f.focusOn(fieldName)
}

func newRestartForm(g model.Goal, t func(string) string) goalForm {
	f := newFormInputs(t)
	f.kind = formRestart
	f.goalID = g.ID
	f.keepDescription = true
	f.originalDescription = g.Description
	f.repeats.SetValue(strconv.Itoa(g.TotalRepeats))
	f.description.SetValue(g.Description)
	return f.focusOn(fieldRepeats)
}

func (f goalForm) fields() []formField {
	if f.kind == formRestart {
		out := []formField{fieldRepeats, fieldKeep}
		if !f.keepDescription {
			out = append(out, fieldDescription)
		}
		return out
	}
	return []formField{fieldName, fieldRepeats, fieldDescription}
}

func (f goalForm) focusOn(field formField) goalForm {
	f.focus = field
	f.name.Blur()
	f.repeats.Blur()
	f.description.Blur()
	switch field {
	case fieldName:
		f.name.Focus()
	case fieldRepeats:
		f.repeats.Focus()
	case fieldDescription:
		f.description.Focus()
	}
	return f
}

func (f goalForm) step(delta int) goalForm {
	fields := f.fields()
	idx := 0
	for i, field := range fields {
		if field == f.focus {
			idx = i
		}
	}
	return f.focusOn(fields[model.Wrap(idx+delta, len(fields))])
}

// updateFocused routes a key to the focused widget and re-validates the
// edited field.
func (f goalForm) updateFocused(msg tea.KeyMsg, t func(string) string) (goalForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
		f.nameErr = errorText(model.ValidateName(f.name.Value()), t)
	case fieldRepeats:
		f.repeats, cmd = f.repeats.Update(msg)
		f.repeats.SetValue(model.SanitizeNumeric(f.repeats.Value()))
		_, err := model.ParseRepeats(f.repeats.Value(), f.minRepeats)
		f.repeatsErr = errorText(err, t)
	case fieldKeep:
		if msg.String() == " " {
			f.keepDescription = !f.keepDescription
		}
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}

// values validates the whole form. Field errors are stored on the form.
func (f goalForm) values(t func(string) string) (goalForm, string, int, string, bool) {
	name := f.name.Value()
	if f.kind != formRestart {
		f.nameErr = errorText(model.ValidateName(name), t)
	}
	repeats, err := model.ParseRepeats(f.repeats.Value(), f.minRepeats)
	f.repeatsErr = errorText(err, t)
	desc := f.description.Value()
	if f.kind == formRestart && f.keepDescription {
		desc = f.originalDescription
	}
	return f, name, repeats, desc, f.nameErr == "" && f.repeatsErr == ""
}

func errorText(err error, t func(string) string) string {
	if err == nil {
		return ""
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Message(t)
	}
	return err.Error()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = goalForm{}
		return m, nil
	case "tab":
		m.form = m.form.step(1)
		return m, nil
	case "shift+tab":
		m.form = m.form.step(-1)
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.form.focus != fieldDescription {
			return m.submitForm()
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.updateFocused(msg, m.t)
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	f, name, repeats, desc, ok := m.form.values(m.t)
	m.form = f
	if !ok {
		return m, nil
	}
	switch f.kind {
	case formAdd:
		g, err := m.store.Create(name, desc, repeats)
		if err != nil {
			m.form.nameErr = errorText(err, m.t)
			return m, nil
		}
		m.scheduleHighlight(g.ID)
		m.cursor = model.IndexByID(m.goalRows(), g.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", m.t("addGoal"), g.Name)}
	case formEdit:
		if err := m.store.Edit(f.goalID, name, desc, repeats); err != nil {
			m.form.repeatsErr = errorText(err, m.t)
			return m, nil
		}
		m.Status = StatusBar{Text: m.t("saved")}
	case formRestart:
		g, err := m.store.Restart(f.goalID, repeats, desc)
		if err != nil {
			m.Status = StatusBar{Text: m.t("goalNotFound"), IsError: true}
			m.form = goalForm{}
			return m, nil
		}
		m.scheduleHighlight(g.ID)
		m.Screen = ScreenGoals
		m.cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", m.t("startAgain"), g.Name)}
	}
	m.form = goalForm{}
	return m, nil
}

func (m Model) renderForm() string {
	f := m.form
	data := views.FormData{Hint: "tab: next | enter: " + m.t("save") + " | esc: " + m.t("cancel")}
	switch f.kind {
	case formAdd:
		data.Title = m.t("addGoal")
	case formEdit:
		data.Title = m.t("changeParameters")
	case formRestart:
		data.Title = m.t("startAgain")
	}
	for _, field := range f.fields() {
		switch field {
		case fieldName:
			data.Fields = append(data.Fields, views.FieldData{Label: m.t("goalName"), View: f.name.View(), Error: f.nameErr})
		case fieldRepeats:
			data.Fields = append(data.Fields, views.FieldData{Label: m.t("repeats"), View: f.repeats.View(), Error: f.repeatsErr})
		case fieldKeep:
			mark := "[ ]"
			if f.keepDescription {
				mark = "[x]"
			}
			if f.focus == fieldKeep {
				mark = ">" + mark
			}
			data.Fields = append(data.Fields, views.FieldData{Label: m.t("keepDescription"), View: mark})
		case fieldDescription:
			data.Fields = append(data.Fields, views.FieldData{Label: m.t("goalDescription"), View: f.description.View()})
		}
	}
	return views.RenderForm(data, m.styles())
}

func (m Model) renderConfirm() string {
	return views.RenderConfirm(views.ConfirmData{
		Title:   m.t("deleteGoalConfirmTitle"),
		Message: m.t("deleteGoalConfirmMessage"),
		Hint:    "y/enter: " + m.t("confirm") + " | n/esc: " + m.t("cancel"),
	}, m.styles())
}

// handleConfirmKey resolves the delete confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		c := m.confirm
		m.confirm = confirmState{}
		if m.Screen == ScreenGoal && m.session != nil && !c.Completed {
			m.session.Delete()
			m.leaveGoal()
			return m, nil
		}
		m.store.Delete(c.GoalID)
	case "n", "esc":
		m.confirm = confirmState{}
	}
	return m, nil
}
