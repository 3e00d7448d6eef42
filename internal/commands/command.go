package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tally/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeHold     Type = "hold"
	TypeContinue Type = "continue"
	TypeDelete   Type = "delete"
	TypeRestart  Type = "restart"
	TypeLang     Type = "lang"
	TypeTheme    Type = "theme"
)

var aliases = map[string]Type{
	"new":    TypeAdd,
	"rm":     TypeDelete,
	"resume": TypeContinue,
	"again":  TypeRestart,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Repeats int
	Name    string
}

// TargetArgs addresses a goal by its 1-based position on screen.
type TargetArgs struct {
	Index int
}

// RestartArgs addresses a history entry. Zero Repeats reuses the
// completed goal's target.
type RestartArgs struct {
	Index   int
	Repeats int
}

type LangArgs struct {
	Code string
}

type ThemeArgs struct {
	Theme model.Theme
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Restart  *RestartArgs
	Lang     *LangArgs
	ThemeArg *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeHold, TypeContinue, TypeDelete:
		return parseTarget(input, typ, args)
	case TypeRestart:
		return parseRestart(input, args)
	case TypeLang:
		return parseLang(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires repeats and a name"}
	}
	repeats, err := strconv.Atoi(args[0])
	if err != nil || repeats <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("repeats must be a positive number: %s", args[0])}
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Repeats: repeats, Name: name}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a goal number", typ)}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Index: idx}}, nil
}

func parseRestart(raw string, args []string) (Command, error) {
	if len(args) == 0 || len(args) > 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "restart requires a history number and optional repeats"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	out := RestartArgs{Index: idx}
	if len(args) == 2 {
		repeats, convErr := strconv.Atoi(args[1])
		if convErr != nil || repeats <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("repeats must be a positive number: %s", args[1])}
		}
		out.Repeats = repeats
	}
	return Command{Type: TypeRestart, Raw: raw, Restart: &out}, nil
}

func parseLang(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "lang requires a language code"}
	}
	return Command{Type: TypeLang, Raw: raw, Lang: &LangArgs{Code: strings.ToLower(args[0])}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires color or bw"}
	}
	theme := model.Theme(strings.ToLower(args[0]))
	if !theme.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
	}
	return Command{Type: TypeTheme, Raw: raw, ThemeArg: &ThemeArgs{Theme: theme}}, nil
}

func parseIndex(arg string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || idx < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("goal number must be 1 or more: %s", arg)}
	}
	return idx, nil
}
