package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Hold     func(TargetArgs) (Result, error)
	Continue func(TargetArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Restart  func(RestartArgs) (Result, error)
	Lang     func(LangArgs) (Result, error)
	Theme    func(ThemeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeHold:
		if handlers.Hold == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Hold(*cmd.Target)
	case TypeContinue:
		if handlers.Continue == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Continue(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Target)
	case TypeRestart:
		if handlers.Restart == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Restart(*cmd.Restart)
	case TypeLang:
		if handlers.Lang == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Lang(*cmd.Lang)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.ThemeArg)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
