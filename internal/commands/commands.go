// Package commands dispatches the program's subcommands, each with its own flag set.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnknown is returned for a subcommand that was never registered.
var ErrUnknown = errors.New("unknown command")

// Command is a subcommand. Run is called after FlagSet.Parse succeeds and receives the
// remaining positional arguments.
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func(ctx context.Context, args []string) error
}

// Registry holds subcommands by name. Default names the command used when the first
// argument is missing or is a flag.
type Registry struct {
	Default string
	cmds    map[string]*Command
}

// NewRegistry returns an empty registry that falls back to the command named def.
func NewRegistry(def string) *Registry {
	return &Registry{Default: def, cmds: make(map[string]*Command)}
}

// Register adds a subcommand, replacing any earlier one with the same name.
func (r *Registry) Register(c *Command) {
	r.cmds[c.Name] = c
}

// Lookup returns the subcommand registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.cmds[name]
	return c, ok
}

// Execute runs the subcommand named by args[0] with the rest as its arguments.
func (r *Registry) Execute(ctx context.Context, args []string) error {
	name := r.Default
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	if name == "" {
		return fmt.Errorf("missing subcommand")
	}
	cmd, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if err := cmd.FlagSet.Parse(args); err != nil {
		return err
	}
	return cmd.Run(ctx, cmd.FlagSet.Args())
}

// Usage writes one line per subcommand, sorted by name.
func (r *Registry) Usage(w io.Writer) {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "commands:")
	for _, n := range names {
		mark := ""
		if n == r.Default {
			mark = " (default)"
		}
		fmt.Fprintf(w, "  %-10s %s%s\n", n, r.cmds[n].Summary, mark)
	}
}
