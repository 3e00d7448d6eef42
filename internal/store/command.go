package store

import "github.com/sandeepkv93/tally/internal/model"

type Kind string

const (
	KindAdd         Kind = "add"
	KindUpdate      Kind = "update"
	KindDelete      Kind = "delete"
	KindComplete    Kind = "complete"
	KindHoldOver    Kind = "hold_over"
	KindContinue    Kind = "continue"
	KindReorder     Kind = "reorder"
	KindSetLanguage Kind = "set_language"
	KindSetTheme    Kind = "set_theme"
	KindClearNew    Kind = "clear_new"
	KindEdit        Kind = "edit"
)

// Command is one state transition request. Which payload fields are read
// depends on Kind.
type Command struct {
	Kind Kind

	Goal  model.Goal
	ID    string
	Order []string

	Name        string
	Description string
	Repeats     int

	Language string
	Theme    model.Theme
}

func AddCommand(goal model.Goal) Command {
	return Command{Kind: KindAdd, Goal: goal}
}

func UpdateCommand(goal model.Goal) Command {
	return Command{Kind: KindUpdate, Goal: goal, ID: goal.ID}
}

func DeleteCommand(id string) Command {
	return Command{Kind: KindDelete, ID: id}
}

func CompleteCommand(id string) Command {
	return Command{Kind: KindComplete, ID: id}
}

func HoldOverCommand(id string) Command {
	return Command{Kind: KindHoldOver, ID: id}
}

func ContinueCommand(id string) Command {
	return Command{Kind: KindContinue, ID: id}
}

// ReorderCommand carries the desired order of the current goals by id.
func ReorderCommand(ids ...string) Command {
	order := make([]string, len(ids))
	copy(order, ids)
	return Command{Kind: KindReorder, Order: order}
}

func SetLanguageCommand(code string) Command {
	return Command{Kind: KindSetLanguage, Language: code}
}

func SetThemeCommand(theme model.Theme) Command {
	return Command{Kind: KindSetTheme, Theme: theme}
}

func ClearNewCommand(id string) Command {
	return Command{Kind: KindClearNew, ID: id}
}

func EditCommand(id, name, description string, totalRepeats int) Command {
	return Command{Kind: KindEdit, ID: id, Name: name, Description: description, Repeats: totalRepeats}
}
