// Package keymap maps key strings to named commands per focus context.
package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SequenceTimeout bounds the gap between the keys of a sequence like "g g".
const SequenceTimeout = 500 * time.Millisecond

// Binding maps a key to a command within a context. Key may be a
// space-separated sequence.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Command is a named action. Handler may be nil for commands a plugin
// handles itself.
type Command struct {
	ID      string
	Name    string
	Context string
	Handler func() tea.Cmd
}

// Registry holds bindings, user overrides and command handlers.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]Command
	bindings  []Binding
	overrides map[string]string // key -> command, applies to every context

	pending     string
	pendingTime time.Time
	now         func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]Command),
		overrides: make(map[string]string),
		now:       time.Now,
	}
}

// RegisterCommand adds or replaces a command.
func (r *Registry) RegisterCommand(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[c.ID] = c
}

// GetCommand looks up a command by ID.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[id]
	return c, ok
}

// Bind adds a binding.
func (r *Registry) Bind(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
}

// SetUserOverride rebinds key to command in every context where command
// is bound.
func (r *Registry) SetUserOverride(key, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = command
}

// BindingsForContext returns the bindings active in context, including
// user overrides, in registration order.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	inContext := make(map[string]bool)
	for _, b := range r.bindings {
		if b.Context != context {
			continue
		}
		inContext[b.Command] = true
		if cmd, ok := r.overrides[b.Key]; ok && cmd != b.Command {
			continue
		}
		out = append(out, b)
	}
	for key, cmd := range r.overrides {
		if inContext[cmd] {
			out = append(out, Binding{Key: key, Command: cmd, Context: context})
		}
	}
	return out
}

// KeysFor returns the keys bound to command in context.
func (r *Registry) KeysFor(command, context string) []string {
	var keys []string
	for _, b := range r.BindingsForContext(context) {
		if b.Command == command {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// Resolve returns the command bound to msg in context, or "" if none.
// The first key of a sequence is remembered and yields "".
func (r *Registry) Resolve(msg tea.KeyMsg, context string) string {
	key := msg.String()
	bindings := r.BindingsForContext(context)
	if context != "global" {
		bindings = append(bindings, r.BindingsForContext("global")...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.pending != "" && now.Sub(r.pendingTime) <= SequenceTimeout {
		seq := r.pending + " " + key
		r.pending = ""
		for _, b := range bindings {
			if b.Key == seq {
				return b.Command
			}
		}
	}
	r.pending = ""

	for _, b := range bindings {
		if b.Key == key {
			return b.Command
		}
	}
	for _, b := range bindings {
		if strings.HasPrefix(b.Key, key+" ") {
			r.pending = key
			r.pendingTime = now
			break
		}
	}
	return ""
}

// Handle resolves msg and runs the command's handler when it has one.
func (r *Registry) Handle(msg tea.KeyMsg, context string) tea.Cmd {
	id := r.Resolve(msg, context)
	if id == "" {
		return nil
	}
	c, ok := r.GetCommand(id)
	if !ok || c.Handler == nil {
		return nil
	}
	return c.Handler()
}
