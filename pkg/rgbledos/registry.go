// Package rgbledos exposes the LED controller as commands of an operator shell.
package rgbledos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/shlex"
	"github.com/sierrasoftworks/humane-errors-go"
)

// ErrUnknownCommand is returned by Dispatch for lines that match no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// Handler runs a command. args holds the tokens following the command name.
// Handlers report problems to out and never fail the shell.
type Handler func(ctx context.Context, out io.Writer, args []string)

// Command is a registered shell command.
type Command struct {
	Module      string
	Name        string
	Description string
	Handler     Handler
}

// Registry maps "<module> <command>" to handlers.
type Registry struct {
	commands map[string]map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]map[string]Command)}
}

// Register adds a command, replacing any previous registration with the same name.
func (r *Registry) Register(module, name string, handler Handler, description string) {
	if r.commands[module] == nil {
		r.commands[module] = make(map[string]Command)
	}
	r.commands[module][name] = Command{
		Module:      module,
		Name:        name,
		Description: description,
		Handler:     handler,
	}
}

// Lookup returns the command registered as module/name.
func (r *Registry) Lookup(module, name string) (Command, bool) {
	cmd, ok := r.commands[module][name]
	return cmd, ok
}

// Commands returns all registered commands sorted by module and name.
func (r *Registry) Commands() []Command {
	var cmds []Command
	for _, byName := range r.commands {
		for _, cmd := range byName {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool {
		if cmds[i].Module != cmds[j].Module {
			return cmds[i].Module < cmds[j].Module
		}
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// Dispatch tokenizes a typed line and runs the matching command.
// Blank lines are ignored.
func (r *Registry) Dispatch(ctx context.Context, out io.Writer, line string) error {
	argv, err := shlex.Split(line)
	if err != nil {
		return humane.Wrap(err, "failed to parse command line",
			"check that all quotes in the command are closed",
		)
	}
	if len(argv) == 0 {
		return nil
	}

	return r.Execute(ctx, out, argv)
}

// Execute runs the command named by argv[0] (module) and argv[1] (command).
func (r *Registry) Execute(ctx context.Context, out io.Writer, argv []string) error {
	if len(argv) < 2 {
		fmt.Fprintf(out, "Unknown command: %s\n", strings.Join(argv, " "))
		fmt.Fprintln(out, "Run 'help' for a list of commands")
		return ErrUnknownCommand
	}

	cmd, ok := r.Lookup(argv[0], argv[1])
	if !ok {
		fmt.Fprintf(out, "Unknown command: %s %s\n", argv[0], argv[1])
		fmt.Fprintf(out, "Run '%s help' for a list of commands\n", argv[0])
		return ErrUnknownCommand
	}

	cmd.Handler(ctx, out, argv[2:])
	return nil
}

// PrintCommands writes a summary of every registered command.
func (r *Registry) PrintCommands(out io.Writer) {
	for _, cmd := range r.Commands() {
		fmt.Fprintf(out, "  %-24s %s\n", cmd.Module+" "+cmd.Name, cmd.Description)
	}
}
