// Registry is the name-to-adapter lookup from spec.md §4.D: every
// canonical engine name and every alias resolves case-insensitively to one
// adapter, and listing unique adapters filters by platform and dedupes by
// adapter identity.
//
// Grounded on pkg/commands/runtime_socket.go's socket-vs-libpod selection,
// generalized from "pick one of two container backends" to "pick one of
// nineteen engine adapters by name or alias".
package engine

import (
	"runtime"
	"sort"
	"strings"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// Registry maps every canonical engine name and alias to its Adapter.
type Registry struct {
	byAlias map[string]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byAlias: map[string]Adapter{}}
}

// Register binds an adapter under its canonical name and every alias
// given. Lookup is case-insensitive.
func (r *Registry) Register(adapter Adapter, aliases ...string) {
	names := append([]string{adapter.Name()}, aliases...)
	for _, n := range names {
		r.byAlias[strings.ToLower(n)] = adapter
	}
}

// Lookup resolves a canonical name or alias to its adapter.
func (r *Registry) Lookup(name string) (Adapter, error) {
	adapter, ok := r.byAlias[strings.ToLower(name)]
	if !ok {
		return nil, spinerr.New(spinerr.InvalidInput, "unknown engine: "+name)
	}
	return adapter, nil
}

// List returns every distinct adapter registered, supported on the
// current platform, sorted by canonical name. "Distinct" dedupes over
// adapter identity, not alias count, so a two-alias engine is listed once.
func (r *Registry) List() []Adapter {
	seen := map[Adapter]bool{}
	out := make([]Adapter, 0, len(r.byAlias))
	for _, adapter := range r.byAlias {
		if seen[adapter] {
			continue
		}
		if !supportsPlatform(adapter, runtime.GOOS) {
			continue
		}
		seen[adapter] = true
		out = append(out, adapter)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func supportsPlatform(adapter Adapter, goos string) bool {
	platforms := adapter.SupportedPlatforms()
	if len(platforms) == 0 {
		return true
	}
	for _, p := range platforms {
		if p == goos {
			return true
		}
	}
	return false
}
