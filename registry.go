// registry.go — the process-wide name → Definition registry
//
// The registry lives for the owning Session's lifetime and is mutated only by
// successful registration or proof commitment. The pipeline assumes one
// sequential caller; the RWMutex is the single-writer guard that makes the
// assumption enforceable when a concurrent host embeds it. The kernel
// never receives the registry itself — only the read-only DefSource view from
// View(), so all mutation stays inside the orchestration layer.
package latte

import "sync"

// Registry maps definition names to their current Definition. Redefinition
// is not an error at this level: Register reports it and overwrites.
type Registry struct {
	mu   sync.RWMutex
	defs map[Sym]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Sym]Definition)}
}

// Register inserts or overwrites the definition under its own name and
// reports whether an existing entry was replaced.
func (r *Registry) Register(d Definition) (redefined bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := d.Core().Name
	_, redefined = r.defs[name]
	r.defs[name] = d
	return redefined
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name Sym) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name Sym) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[name]
	return ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Names returns the registered names, in no particular order.
func (r *Registry) Names() []Sym {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Sym, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}
	return out
}

// commitProof performs the Declared → Proved transition for the theorem
// registered under name, under the write lock. It is the only way a proof
// field changes. Reports false when name is not a registered theorem.
func (r *Registry) commitProof(name Sym, term S) (*TheoremDef, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	thm, ok := r.defs[name].(*TheoremDef)
	if !ok {
		return nil, false
	}
	thm.attachProof(term)
	return thm, true
}

// View returns the read-only snapshot view handed to the kernel. Reads go
// through the registry's lock; the view cannot mutate.
func (r *Registry) View() DefSource { return registryView{r} }

type registryView struct{ r *Registry }

func (v registryView) Registered(name Sym) bool { return v.r.Has(name) }

func (v registryView) Fetch(name Sym) (Definition, bool) { return v.r.Lookup(name) }
