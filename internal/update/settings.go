package update

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tally/internal/i18n"
	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/views"
)

var settingsThemes = []model.Theme{model.ThemeColor, model.ThemeBW}

// settingsCount is the number of selectable rows: languages then themes.
func settingsCount() int {
	return len(i18n.Available()) + len(settingsThemes)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.settingsCursor < settingsCount()-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.Keys.Select):
		langs := i18n.Available()
		if m.settingsCursor < len(langs) {
			m.store.SetLanguage(langs[m.settingsCursor].Code)
			return m, nil
		}
		m.store.SetTheme(settingsThemes[m.settingsCursor-len(langs)])
	}
	return m, nil
}

func (m Model) renderSettingsScreen() string {
	data := views.SettingsScreenData{
		LanguageTitle: m.t("language"),
		ThemeTitle:    m.t("theme"),
	}
	langs := i18n.Available()
	for i, lang := range langs {
		data.Languages = append(data.Languages, views.OptionData{
			Label:    lang.Name,
			Active:   m.store.Language() == lang.Code,
			Selected: m.settingsCursor == i,
		})
	}
	for i, theme := range settingsThemes {
		label := m.t("colorTheme")
		if theme == model.ThemeBW {
			label = m.t("bwTheme")
		}
		data.Themes = append(data.Themes, views.OptionData{
			Label:    label,
			Active:   m.store.Theme() == theme,
			Selected: m.settingsCursor == len(langs)+i,
		})
	}
	return views.RenderSettingsScreen(data, m.styles())
}
