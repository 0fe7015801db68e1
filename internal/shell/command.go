package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npratt/agentshell/internal/events"
)

// Command parsing errors.
var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("missing argument")
)

// Command names accepted by ParseCommand.
const (
	CmdCycle    = "cycle"
	CmdRun      = "run"
	CmdClear    = "clear"
	CmdValidate = "validate"
	CmdSnapshot = "snapshot"
	CmdPurge    = "purge"
	CmdScreen   = "screen"
	CmdShow     = "show"
)

var commandAliases = map[string]string{
	"toolchain": CmdRun,
	"store":     CmdSnapshot,
	"goto":      CmdScreen,
}

// Command is one parsed trigger line.
type Command struct {
	Name string
	Arg  string
}

func (c Command) String() string {
	if c.Arg == "" {
		return c.Name
	}
	return c.Name + " " + c.Arg
}

// ParseCommand parses a single line such as "cycle plan" or "run".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	name := strings.ToLower(fields[0])
	if alias, ok := commandAliases[name]; ok {
		name = alias
	}
	cmd := Command{Name: name}
	if len(fields) > 1 {
		cmd.Arg = strings.Join(fields[1:], " ")
	}

	switch name {
	case CmdCycle, CmdScreen:
		if cmd.Arg == "" {
			return Command{}, fmt.Errorf("%w: %s requires an argument", ErrMissingArg, name)
		}
	case CmdRun, CmdClear, CmdValidate, CmdSnapshot, CmdPurge, CmdShow:
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return cmd, nil
}

// Execute applies cmd to the session and returns a one-line result.
// Failures are also emitted as error events.
func (s *Session) Execute(cmd Command) (string, error) {
	out, err := s.execute(cmd)
	if err != nil {
		s.emit(&events.ErrorEvent{
			BaseEvent: s.base(events.EventError),
			Message:   err.Error(),
			Command:   cmd.String(),
		})
	}
	return out, err
}

func (s *Session) execute(cmd Command) (string, error) {
	switch cmd.Name {
	case CmdCycle:
		status, err := s.CycleStep(cmd.Arg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", cmd.Arg, status), nil

	case CmdRun:
		batch := s.RunToolchain()
		return fmt.Sprintf("toolchain run: %d entries logged", len(batch)), nil

	case CmdClear:
		return fmt.Sprintf("execution log cleared (%d entries)", s.ClearLogs()), nil

	case CmdValidate:
		return "validation: " + s.RunValidation(), nil

	case CmdSnapshot:
		n, gb := s.StoreSnapshot()
		return fmt.Sprintf("snapshots: %d, memory: %s", n, viewmodel.FormatGB(gb)), nil

	case CmdPurge:
		return fmt.Sprintf("datavault purged (%d snapshots removed)", s.Purge()), nil

	case CmdScreen:
		target, err := ParseScreen(cmd.Arg)
		if err != nil {
			return "", err
		}
		s.SetScreen(target)
		return "screen: " + target.Label(), nil

	case CmdShow:
		target := s.Screen()
		if cmd.Arg != "" {
			var err error
			if target, err = ParseScreen(cmd.Arg); err != nil {
				return "", err
			}
		}
		return Describe(s.Snapshot(), target, s.FormatTime), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
}

// RunScript parses and executes each line in order, stopping at the first
// failure. Blank lines and lines starting with '#' are skipped.
func (s *Session) RunScript(lines []string) ([]string, error) {
	var out []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		cmd, err := ParseCommand(trimmed)
		if err != nil {
			return out, fmt.Errorf("line %d: %w", i+1, err)
		}
		res, err := s.Execute(cmd)
		if err != nil {
			return out, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, res)
	}
	return out, nil
}
