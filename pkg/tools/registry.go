package tools

import (
	"sort"
	"sync"
)

// Registry tracks the currently synthesized tool set by name, with grouping
// by object and kind. The server publishes from it and diffs it across
// registry rebuilds to retire vanished tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Replace swaps the registered tool set wholesale and returns the names
// that vanished relative to the previous set.
func (r *Registry) Replace(tools []*Tool) (removed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]*Tool, len(tools))
	for _, tool := range tools {
		next[tool.Name] = tool
	}
	for name := range r.tools {
		if _, kept := next[name]; !kept {
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	r.tools = next
	return removed
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns the registered tools sorted by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByObject returns the tools operating on one object, sorted by name.
func (r *Registry) ByObject(plural string) []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Tool
	for _, tool := range r.tools {
		if tool.Object == plural {
			out = append(out, tool)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByKind returns the tools of one kind, sorted by name.
func (r *Registry) ByKind(kind Kind) []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Tool
	for _, tool := range r.tools {
		if tool.Kind == kind {
			out = append(out, tool)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
