package update

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/tally/internal/i18n"
	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/scheduler"
	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/storage"
	"github.com/sandeepkv93/tally/internal/store"
	"github.com/sandeepkv93/tally/internal/views"
)

type Screen string

const (
	ScreenGoals    Screen = "goals"
	ScreenGoal     Screen = "goal"
	ScreenHistory  Screen = "history"
	ScreenSettings Screen = "settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Model struct {
	Screen      Screen
	Status      StatusBar
	Keys        KeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	store   *store.Store
	catalog *i18n.Catalog
	engine  *scheduler.Engine
	cfg     RuntimeConfig
	logger  *log.Logger

	// goals screen cursor over current then held-over rows
	cursor         int
	settingsCursor int
	session        *session.Session
	showDesc       bool

	form    goalForm
	confirm confirmState
	palette paletteState

	commandInput textinput.Model
	helpModel    help.Model
	progressBar  progress.Model
	historyTable table.Model
	descViewport viewport.Model
	progressFor  model.Theme
	width        int
	height       int
}

type confirmState struct {
	Active    bool
	GoalID    string
	Completed bool
}

type paletteState struct {
	Active bool
	Input  string
}

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TaskDueMsg struct {
	Task scheduler.Task
}

// FileChangedMsg reports an external write to the persisted state.
type FileChangedMsg struct{}

type Deps struct {
	Store     *store.Store
	Catalog   *i18n.Catalog
	Scheduler *scheduler.Engine
	Config    RuntimeConfig
	Logger    *log.Logger
}

// NewModel builds the TUI model. A nil store is replaced by an in-memory
// one so the model is usable on its own.
func NewModel(deps Deps) Model {
	if deps.Catalog == nil {
		deps.Catalog = i18n.NewCatalog(model.DefaultLanguage)
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Store == nil {
		deps.Store = store.New(store.Options{
			Persister: storage.NewMemoryStore(),
			Language:  deps.Catalog,
			Logger:    deps.Logger,
		})
	}
	if deps.Config.DismissSeconds == 0 && deps.Config.SchedulerBuffer == 0 {
		deps.Config = DefaultRuntimeConfig()
	}
	m := Model{
		Screen:  ScreenGoals,
		Keys:    DefaultKeyMap(),
		store:   deps.Store,
		catalog: deps.Catalog,
		engine:  deps.Scheduler,
		cfg:     deps.Config,
		logger:  deps.Logger,
		width:   72,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add 10 push-ups"
	m.commandInput.CharLimit = 120

	m.helpModel = help.New()
	m.helpModel.ShowAll = true

	m.historyTable = table.New(
		table.WithColumns(historyColumns(m.t)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.descViewport = viewport.New(60, 8)
	m.rebuildProgress()
}

// rebuildProgress recreates the progress bar when the theme changes.
func (m *Model) rebuildProgress() {
	st := views.StylesFor(m.store.Theme())
	if st.ProgressFrom != "" {
		m.progressBar = progress.New(progress.WithGradient(st.ProgressFrom, st.ProgressTo), progress.WithWidth(40))
	} else {
		m.progressBar = progress.New(progress.WithSolidFill(""), progress.WithWidth(40))
		m.progressBar.EmptyColor = ""
	}
	m.progressFor = st.Theme
}

// syncBubbleData refreshes the widgets that mirror store state.
func (m *Model) syncBubbleData() {
	if m.progressFor != m.store.Theme() {
		m.rebuildProgress()
	}
	m.historyTable.SetColumns(historyColumns(m.t))
	m.historyTable.SetRows(m.historyRows())
	if n := len(m.historyTable.Rows()); n > 0 && m.historyTable.Cursor() >= n {
		m.historyTable.SetCursor(n - 1)
	}
	if rows := len(m.goalRows()); m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) t(key string) string {
	return m.catalog.Translate(key)
}

func (m Model) styles() views.Styles {
	return views.StylesFor(m.store.Theme())
}

// goalRows is the goals screen order: current goals then held-over ones.
func (m Model) goalRows() []model.Goal {
	rows := m.store.CurrentGoals()
	return append(rows, m.store.HeldOverGoals()...)
}

func (m Model) historyGoals() []model.Goal {
	goals := m.store.CompletedGoals()
	model.SortByCompletion(goals)
	return goals
}

func (m Model) selectedGoal() (model.Goal, bool) {
	rows := m.goalRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.Goal{}, false
	}
	return rows[m.cursor], true
}

func (m Model) selectedCompleted() (model.Goal, bool) {
	goals := m.historyGoals()
	i := m.historyTable.Cursor()
	if i < 0 || i >= len(goals) {
		return model.Goal{}, false
	}
	return goals[i], true
}

// Session exposes the open goal session; nil outside the goal screen.
func (m Model) Session() *session.Session {
	return m.session
}

func (m Model) Store() *store.Store {
	return m.store
}
