package engine

import (
	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/process"
)

// BuildRegistry constructs a Registry populated with every engine named in
// the Glossary: one ServerAdapter per wire-protocol Profile, plus the two
// file-embedded adapters (sqlite, duckdb).
func BuildRegistry(sup *process.Supervisor, layout *paths.Layout) *Registry {
	r := NewRegistry()
	for _, profile := range Profiles() {
		adapter := NewServerAdapter(profile, sup, layout)
		r.Register(adapter, profile.Aliases...)
	}
	r.Register(NewSQLiteAdapter())
	r.Register(NewDuckDBAdapter())
	return r
}
