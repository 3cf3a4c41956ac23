// Package embedded is the embedded-file registry from spec.md §4.F: one
// JSON record per file-embedded engine (sqlite, duckdb), separate from
// the container catalogue, tracking registered file paths and ignored
// scan folders.
//
// Grounded on pkg/config/app_config.go's load/write pattern, but using
// stdlib encoding/json (not jesseduffield/yaml) because spec.md §6 fixes
// the on-disk schema literally as JSON:
// {version:1, entries:[…], ignoreFolders:{path:true}}.
package embedded

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// CurrentVersion is the schema version this reader/writer emits. A
// forward-compatible reader tolerates unknown fields and refuses to open
// a higher version than it understands (spec.md §9).
const CurrentVersion = 1

// Entry is one registered file-embedded database (spec.md §3's registry
// entry shape: name, filePath, created, and an optional lastVerified
// stamped whenever a relocation/verify pass confirms the file is still
// where the registry thinks it is).
type Entry struct {
	Name         string `json:"name"`
	FilePath     string `json:"filePath"`
	Created      string `json:"created"`
	LastVerified string `json:"lastVerified,omitempty"`
}

type document struct {
	Version       int             `json:"version"`
	Entries       []Entry         `json:"entries"`
	IgnoreFolders map[string]bool `json:"ignoreFolders"`
}

// Registry manages one engine's embedded-file registry file.
type Registry struct {
	layout *paths.Layout
	engine string
	mu     sync.Mutex
}

// NewRegistry builds a registry bound to one engine's registry file.
func NewRegistry(layout *paths.Layout, engineName string) *Registry {
	return &Registry{layout: layout, engine: engineName}
}

// Add registers a new entry; fails with AlreadyExists if the path is
// already registered.
func (r *Registry) Add(entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	for _, e := range doc.Entries {
		if e.FilePath == entry.FilePath {
			return spinerr.New(spinerr.AlreadyExists, "path already registered: "+entry.FilePath)
		}
	}
	if entry.Created == "" {
		entry.Created = model.NowString()
	}
	doc.Entries = append(doc.Entries, entry)
	return r.save(doc)
}

// Get looks up an entry by name.
func (r *Registry) Get(name string) (Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range doc.Entries {
		if e.Name == name {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Update merges a patch onto an existing entry by name. LastVerified is
// the field a relocation/verify pass stamps once it confirms FilePath
// still points at a real file.
func (r *Registry) Update(name string, patch Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return Entry{}, err
	}
	for i, e := range doc.Entries {
		if e.Name == name {
			if patch.FilePath != "" {
				e.FilePath = patch.FilePath
			}
			if patch.LastVerified != "" {
				e.LastVerified = patch.LastVerified
			}
			doc.Entries[i] = e
			if err := r.save(doc); err != nil {
				return Entry{}, err
			}
			return e, nil
		}
	}
	return Entry{}, spinerr.New(spinerr.NotFound, "registry entry not found: "+name)
}

// Remove deletes an entry by name, unconditionally (present or not).
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}
	out := doc.Entries[:0]
	for _, e := range doc.Entries {
		if e.Name != name {
			out = append(out, e)
		}
	}
	doc.Entries = out
	return r.save(doc)
}

// IsPathRegistered reports whether absPath already has an entry.
func (r *Registry) IsPathRegistered(absPath string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return false, err
	}
	for _, e := range doc.Entries {
		if e.FilePath == absPath {
			return true, nil
		}
	}
	return false, nil
}

// List returns every registered entry, sorted by name.
func (r *Registry) List() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	out := append([]Entry(nil), doc.Entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddIgnoreFolder marks path as excluded from future scans.
func (r *Registry) AddIgnoreFolder(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}
	if doc.IgnoreFolders == nil {
		doc.IgnoreFolders = map[string]bool{}
	}
	doc.IgnoreFolders[path] = true
	return r.save(doc)
}

// RemoveIgnoreFolder un-marks path.
func (r *Registry) RemoveIgnoreFolder(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}
	delete(doc.IgnoreFolders, path)
	return r.save(doc)
}

// IsFolderIgnored reports whether path is in the ignore set.
func (r *Registry) IsFolderIgnored(path string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return false, err
	}
	return doc.IgnoreFolders[path], nil
}

// Orphans reports entries whose filePath no longer exists on disk. This
// is report-only: the registry entry is never removed automatically
// (spec.md §4.F); the caller decides whether to call Remove.
func (r *Registry) Orphans() ([]Entry, error) {
	entries, err := r.List()
	if err != nil {
		return nil, err
	}
	var orphans []Entry
	for _, e := range entries {
		if _, err := os.Stat(e.FilePath); os.IsNotExist(err) {
			orphans = append(orphans, e)
		}
	}
	return orphans, nil
}

func (r *Registry) load() (*document, error) {
	path := r.layout.EmbeddedRegistryPath(r.engine)
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &document{Version: CurrentVersion, Entries: nil, IgnoreFolders: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, spinerr.Wrap(spinerr.IOError, "read embedded registry", err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, spinerr.Wrap(spinerr.CorruptArtifact, "parse embedded registry", err)
	}
	if doc.Version > CurrentVersion {
		return nil, spinerr.New(spinerr.CorruptArtifact, "embedded registry version is newer than supported")
	}
	if doc.IgnoreFolders == nil {
		doc.IgnoreFolders = map[string]bool{}
	}
	return &doc, nil
}

func (r *Registry) save(doc *document) error {
	doc.Version = CurrentVersion
	path := r.layout.EmbeddedRegistryPath(r.engine)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return spinerr.Wrap(spinerr.IOError, "create registry directory", err)
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return spinerr.Wrap(spinerr.IOError, "marshal embedded registry", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".registry-*.json.tmp")
	if err != nil {
		return spinerr.Wrap(spinerr.IOError, "create temp registry file", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return spinerr.Wrap(spinerr.IOError, "write temp registry file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return spinerr.Wrap(spinerr.IOError, "close temp registry file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return spinerr.Wrap(spinerr.IOError, "rename registry into place", err)
	}
	return nil
}

var candidateExtensions = regexp.MustCompile(`(?i)\.(sqlite3?|db)$`)

var sanitizeRegexp = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

var dashRunRegexp = regexp.MustCompile(`-{2,}`)

// DeriveName implements the scan protocol's name-derivation rule
// (spec.md §4.F): strip the matched extension, replace non-[A-Za-z0-9_-]
// runs with a single "-", collapse any resulting run of "-" (including
// one abutting a literal dash already in the name) down to one, and
// prepend "db-" if the result doesn't start with a letter.
func DeriveName(fileName string) string {
	base := candidateExtensions.ReplaceAllString(fileName, "")
	base = sanitizeRegexp.ReplaceAllString(base, "-")
	base = dashRunRegexp.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" || !isLetter(base[0]) {
		base = "db-" + base
	}
	return base
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// MatchesCandidateExtension reports whether fileName has one of the scan
// protocol's recognized extensions (.sqlite, .sqlite3, .db), case-insensitive.
func MatchesCandidateExtension(fileName string) bool {
	return candidateExtensions.MatchString(fileName)
}
