package shell

import (
	"fmt"
	"sort"
	"sync"
)

// Command is a backslash command of the shell.
type Command struct {
	Name        string
	Usage       string
	Description string
	Run         func(s *Session, args []string) error
}

// Registry manages command registration and lookup.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command. The name must be non-empty and unused.
func (r *Registry) Register(cmd *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("command %s already registered", cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	return nil
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetAll returns every command sorted by name.
func (r *Registry) GetAll() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		all = append(all, cmd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Commands holds the built-in shell commands.
var Commands = NewRegistry()

func mustRegister(cmd *Command) {
	if err := Commands.Register(cmd); err != nil {
		panic(err)
	}
}
