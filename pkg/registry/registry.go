// Package registry assembles and serves the compiled object contract set.
// A rebuild always constructs a fresh immutable snapshot and swaps it in
// atomically, so readers never observe a partially rebuilt registry.
package registry

import (
	"sort"
	"strings"
	"time"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"
)

// Snapshot is one immutable generation of the registry: contracts keyed by
// canonical plural name plus an alias index over every known name form.
type Snapshot struct {
	contracts map[string]*schema.ObjectContract
	aliases   map[string]string
	builtAt   time.Time
	fallback  bool
}

func newSnapshot(fallback bool) *Snapshot {
	return &Snapshot{
		contracts: make(map[string]*schema.ObjectContract),
		aliases:   make(map[string]string),
		builtAt:   time.Now(),
		fallback:  fallback,
	}
}

// register adds a contract under its plural key. The first registration for
// a plural key wins; later duplicates are silently dropped, which guarantees
// metadata-sourced contracts take precedence over fallback stand-ins when
// both attempt registration in one pass.
func (s *Snapshot) register(c *schema.ObjectContract) {
	if c == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(c.NamePlural))
	if key == "" {
		return
	}
	if _, taken := s.contracts[key]; taken {
		return
	}
	s.contracts[key] = c
	for _, name := range c.KnownNames() {
		alias := strings.ToLower(strings.TrimSpace(name))
		if _, taken := s.aliases[alias]; !taken {
			s.aliases[alias] = key
		}
	}
}

// Resolve finds a contract by any known alias, case-insensitive. Nil means
// the object is unsupported.
func (s *Snapshot) Resolve(name string) *schema.ObjectContract {
	if s == nil {
		return nil
	}
	key, ok := s.aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return s.contracts[key]
}

// PluralKeys lists the canonical plural keys in sorted order.
func (s *Snapshot) PluralKeys() []string {
	keys := make([]string, 0, len(s.contracts))
	for key := range s.contracts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Contracts lists all contracts sorted by plural key.
func (s *Snapshot) Contracts() []*schema.ObjectContract {
	out := make([]*schema.ObjectContract, 0, len(s.contracts))
	for _, key := range s.PluralKeys() {
		out = append(out, s.contracts[key])
	}
	return out
}

// Len reports the number of registered contracts.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.contracts)
}

// FromFallback reports whether this snapshot was built from the hardcoded
// fallback set rather than metadata.
func (s *Snapshot) FromFallback() bool {
	return s != nil && s.fallback
}

// BuiltAt reports when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
