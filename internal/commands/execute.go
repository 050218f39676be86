package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(TaskArgs) (Result, error)
	Undo   func(TaskArgs) (Result, error)
	Remove func(TaskArgs) (Result, error)
	Start  func(TaskArgs) (Result, error)
	Pause  func() (Result, error)
	Reset  func() (Result, error)
	Show   func(ShowArgs) (Result, error)
	Name   func(NameArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone, TypeUndo, TypeRemove, TypeStart:
		fn := map[Type]func(TaskArgs) (Result, error){
			TypeDone:   handlers.Done,
			TypeUndo:   handlers.Undo,
			TypeRemove: handlers.Remove,
			TypeStart:  handlers.Start,
		}[cmd.Type]
		if fn == nil {
			return Result{}, missing(cmd.Type)
		}
		return fn(*cmd.Task)
	case TypePause:
		if handlers.Pause == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Pause()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	case TypeName:
		if handlers.Name == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Name(*cmd.Name)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
