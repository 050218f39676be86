package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeUndo   Type = "undo"
	TypeRemove Type = "rm"
	TypeStart  Type = "start"
	TypePause  Type = "pause"
	TypeReset  Type = "reset"
	TypeShow   Type = "show"
	TypeName   Type = "name"
)

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
	Category string
	Minutes  float64
	Name     string
}

// TaskArgs points at one task. Category is empty when the command relies on
// the list currently shown.
type TaskArgs struct {
	Category string
	Target   string
}

type ShowArgs struct {
	View string
}

type NameArgs struct {
	Name string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Task *TaskArgs
	Show *ShowArgs
	Name *NameArgs
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

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeUndo, TypeRemove, TypeStart:
		return parseTask(input, Type(head), args)
	case "delete", "del":
		return parseTask(input, TypeRemove, args)
	case TypePause, TypeReset:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeName:
		return parseName(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "<category> <minutes> <name...>".
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires category, minutes and name"}
	}
	minutes, err := strconv.ParseFloat(args[1], 64)
	if err != nil || minutes <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", args[1])}
	}
	name := strings.TrimSpace(strings.Join(args[2:], " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{
		Category: strings.ToLower(args[0]),
		Minutes:  minutes,
		Name:     name,
	}}, nil
}

// parseTask reads "[category] <n|id>".
func parseTask(raw string, typ Type, args []string) (Command, error) {
	switch len(args) {
	case 1:
		return Command{Type: typ, Raw: raw, Task: &TaskArgs{Target: args[0]}}, nil
	case 2:
		return Command{Type: typ, Raw: raw, Task: &TaskArgs{Category: strings.ToLower(args[0]), Target: args[1]}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires [category] <n|id>", typ)}
	}
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a view"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: strings.ToLower(args[0])}}, nil
}

func parseName(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "name requires a display name"}
	}
	return Command{Type: TypeName, Raw: raw, Name: &NameArgs{Name: name}}, nil
}
