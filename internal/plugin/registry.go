package plugin

import (
	"fmt"
	"sync"
)

// Registry holds plugins in registration order.
type Registry struct {
	mu      sync.RWMutex
	ctx     *Context
	plugins []Plugin
	failed  map[string]error
}

// NewRegistry creates a registry whose plugins share ctx.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{ctx: ctx, failed: make(map[string]error)}
}

// Context returns the shared plugin context.
func (r *Registry) Context() *Context { return r.ctx }

// Register initializes p and adds it. A plugin whose Init fails is recorded
// and skipped; the error is also returned.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.ID() == p.ID() {
			return fmt.Errorf("plugin %q already registered", p.ID())
		}
	}
	if err := p.Init(r.ctx); err != nil {
		r.failed[p.ID()] = err
		if r.ctx != nil && r.ctx.Logger != nil {
			r.ctx.Logger.Warn("plugin init failed", "plugin", p.ID(), "err", err)
		}
		return fmt.Errorf("init %s: %w", p.ID(), err)
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins. The slice is shared so callers
// can replace a plugin after Update.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plugins
}

// Get returns the plugin with id.
func (r *Registry) Get(id string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plugins {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Failed returns plugins that could not be initialized.
func (r *Registry) Failed() map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]error, len(r.failed))
	for k, v := range r.failed {
		out[k] = v
	}
	return out
}

// StopAll stops every plugin in reverse order.
func (r *Registry) StopAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.plugins) - 1; i >= 0; i-- {
		r.plugins[i].Stop()
	}
}
