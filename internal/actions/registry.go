package actions

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/solace/internal/storage"
)

// Registry holds every known action descriptor by command word.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]*Descriptor
}

// NewRegistry builds a registry from stored descriptors. A descriptor
// without a name takes its asset id.
func NewRegistry(store storage.Storer[*Descriptor]) (*Registry, error) {
	r := &Registry{actions: make(map[string]*Descriptor)}

	el := errors.NewErrorList()
	for id, d := range store.GetAll() {
		if d.Name == "" {
			d.Name = id
		}
		el.Add(r.Register(d))
	}
	el.Add(r.checkCombos())

	if err := el.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a validated descriptor.
func (r *Registry) Register(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("action name is required")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("action %q: %w", d.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(d.Name)
	if _, ok := r.actions[name]; ok {
		return fmt.Errorf("duplicate action %q", d.Name)
	}
	r.actions[name] = d
	return nil
}

func (r *Registry) checkCombos() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	el := errors.NewErrorList()
	for name, d := range r.actions {
		if d.Combo == nil {
			continue
		}
		if _, ok := r.actions[strings.ToLower(d.Combo.After)]; !ok {
			el.Add(fmt.Errorf("action %q: combo follows unknown action %q", name, d.Combo.After))
		}
	}
	return el.Err()
}

// Get returns the named descriptor, or nil.
func (r *Registry) Get(name string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.actions[strings.ToLower(name)]
}

// Names returns every registered command word, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CommandsFor returns a command for every action the player has learned,
// keyed by command word.
func (r *Registry) CommandsFor(p Player, x *Executor) map[string]*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make(map[string]*Command)
	for name, d := range r.actions {
		if p.HasAction(d.Name) {
			cmds[name] = x.NewCommand(d, p)
		}
	}
	return cmds
}
