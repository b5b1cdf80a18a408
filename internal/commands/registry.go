package commands

import (
	"cmp"
	"fmt"
	"slices"
)

// Registry maps command names and aliases to commands. Commands register
// from init, so lookups need no locking.
type Registry struct {
	cmds map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds a command under its name and aliases. A name or alias
// may only be taken once.
func (r *Registry) Register(c Command) error {
	names := append([]string{c.Name()}, c.Aliases()...)
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("command %q: empty name", c.Name())
		}
		if prev, ok := r.cmds[name]; ok || slices.Contains(names[:i], name) {
			if prev == nil {
				prev = c
			}
			return fmt.Errorf("%s: name taken by %s", name, prev.Name())
		}
	}
	for _, name := range names {
		r.cmds[name] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns each command once, sorted by name.
func (r *Registry) All() []Command {
	var all []Command
	for name, cmd := range r.cmds {
		if name == cmd.Name() {
			all = append(all, cmd)
		}
	}
	slices.SortFunc(all, func(a, b Command) int { return cmp.Compare(a.Name(), b.Name()) })
	return all
}

// DefaultRegistry holds the built-in commands.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
