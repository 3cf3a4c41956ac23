// Package containers is the container manager from spec.md §4.E: create,
// list, get_config, update_config, rename, delete — all backed by one
// per-engine YAML catalogue file and serialized through a single-writer
// discipline, since this is a single-process tool (spec.md §5).
//
// Grounded on pkg/config/app_config.go's LoadConfig/WriteConfig
// (read-whole-file, yaml.Unmarshal/Marshal, atomic write) generalized
// from "one user config file" to "one catalogue file per engine".
package containers

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	yaml "github.com/jesseduffield/yaml"

	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// catalogue is the on-disk shape of one engine's containers.yml.
type catalogue struct {
	Containers map[string]model.Config `yaml:"containers"`
}

// Manager is the container lifecycle manager. One Manager instance is
// shared process-wide; mutex serializes writers per spec.md §5's
// single-writer discipline.
type Manager struct {
	layout   *paths.Layout
	registry *engine.Registry
	mu       sync.Mutex
}

// NewManager builds a container manager bound to the path layout and
// engine registry.
func NewManager(layout *paths.Layout, registry *engine.Registry) *Manager {
	return &Manager{layout: layout, registry: registry}
}

// CreateOptions configures Create.
type CreateOptions struct {
	Version  string
	Port     int
	Database string
}

// Create validates the name, asserts (engine,name) uniqueness, materializes
// the container directory tree, and persists a new record with status
// "created".
func (m *Manager) Create(name, engineName string, opts CreateOptions) (model.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := paths.ValidateName(name); err != nil {
		return model.Config{}, err
	}
	if _, err := m.registry.Lookup(engineName); err != nil {
		return model.Config{}, spinerr.New(spinerr.InvalidInput, "unknown engine: "+engineName)
	}

	cat, err := m.load(engineName)
	if err != nil {
		return model.Config{}, err
	}
	if _, exists := cat.Containers[name]; exists {
		return model.Config{}, spinerr.New(spinerr.AlreadyExists, "container already exists: "+name)
	}

	if err := m.layout.EnsureContainerTree(name, engineName); err != nil {
		return model.Config{}, err
	}

	now := model.NowString()
	cfg := model.Config{
		Name:     name,
		Engine:   engineName,
		Version:  opts.Version,
		Port:     opts.Port,
		Database: opts.Database,
		Status:   model.StatusCreated,
		Created:  now,
		Modified: now,
	}
	cat.Containers[name] = cfg
	if err := m.save(engineName, cat); err != nil {
		return model.Config{}, err
	}
	return cfg.Clone(), nil
}

// List returns every configuration for an engine, augmenting each with a
// live status computed by consulting the adapter; it never mutates the
// stored records (spec.md §4.E).
func (m *Manager) List(engineName string) ([]model.Config, error) {
	m.mu.Lock()
	cat, err := m.load(engineName)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	adapter, err := m.registry.Lookup(engineName)
	if err != nil {
		return nil, err
	}

	out := make([]model.Config, 0, len(cat.Containers))
	for _, cfg := range cat.Containers {
		live := cfg.Clone()
		if status, err := adapter.Status(context.Background(), live); err == nil {
			if status.Running {
				live.Status = model.StatusRunning
			} else if !model.IsFileEmbedded(engineName) {
				live.Status = model.StatusStopped
			}
		}
		out = append(out, live)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetConfig returns the persisted record for name, without re-probing
// liveness (spec.md §9's open question: get_config is the persisted-value
// call site).
func (m *Manager) GetConfig(name, engineName string) (model.Config, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, err := m.load(engineName)
	if err != nil {
		return model.Config{}, false, err
	}
	cfg, ok := cat.Containers[name]
	return cfg.Clone(), ok, nil
}

// Patch is the explicit field allow-list spec.md §4.E names: a generic
// deep-merge library (spindb drops the teacher's imdario/mergo for
// exactly this reason — see DESIGN.md) has no clean job against a
// five-field allow-list, so this is a small explicit switch instead.
type Patch struct {
	Port       *int
	Status     *model.Status
	Database   *string
	ClonedFrom *string
	Databases  []string
}

// UpdateConfig merges the allowed fields from patch onto the persisted
// record and writes it back atomically. Changes to name/engine are not
// representable in Patch and so cannot be requested through this API.
func (m *Manager) UpdateConfig(name, engineName string, patch Patch) (model.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cat, err := m.load(engineName)
	if err != nil {
		return model.Config{}, err
	}
	cfg, ok := cat.Containers[name]
	if !ok {
		return model.Config{}, spinerr.New(spinerr.NotFound, "container not found: "+name)
	}

	if patch.Port != nil {
		cfg.Port = *patch.Port
	}
	if patch.Status != nil {
		cfg.Status = *patch.Status
	}
	if patch.Database != nil {
		cfg.Database = *patch.Database
	}
	if patch.ClonedFrom != nil {
		cfg.ClonedFrom = *patch.ClonedFrom
	}
	if patch.Databases != nil {
		cfg.Databases = append([]string(nil), patch.Databases...)
	}
	cfg.Modified = model.NowString()

	cat.Containers[name] = cfg
	if err := m.save(engineName, cat); err != nil {
		return model.Config{}, err
	}
	return cfg.Clone(), nil
}

// Rename requires the container to be stopped, then updates the
// catalogue key and renames the directory tree. Path-bearing artifacts
// (log path, PID path) are recomputed on demand from name and need no
// rewrite, per spec.md §4.E.
func (m *Manager) Rename(oldName, newName, engineName string) (model.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := paths.ValidateName(newName); err != nil {
		return model.Config{}, err
	}

	cat, err := m.load(engineName)
	if err != nil {
		return model.Config{}, err
	}
	cfg, ok := cat.Containers[oldName]
	if !ok {
		return model.Config{}, spinerr.New(spinerr.NotFound, "container not found: "+oldName)
	}
	if _, exists := cat.Containers[newName]; exists {
		return model.Config{}, spinerr.New(spinerr.AlreadyExists, "container already exists: "+newName)
	}
	if cfg.Status == model.StatusRunning {
		return model.Config{}, spinerr.New(spinerr.AlreadyRunning, "container must be stopped before rename: "+oldName)
	}

	oldPath, err := m.layout.ContainerPath(oldName, engineName)
	if err != nil {
		return model.Config{}, err
	}
	newPath, err := m.layout.ContainerPath(newName, engineName)
	if err != nil {
		return model.Config{}, err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return model.Config{}, spinerr.Wrap(spinerr.IOError, "rename container directory", err)
	}

	delete(cat.Containers, oldName)
	cfg.Name = newName
	cfg.Modified = model.NowString()
	cat.Containers[newName] = cfg
	if err := m.save(engineName, cat); err != nil {
		return model.Config{}, err
	}
	return cfg.Clone(), nil
}

// Delete refuses to remove a running container unless force is set; it
// stops the container via the adapter, then removes the catalogue record
// and the directory tree. stop on an already-stopped container succeeds
// silently (spec.md §7), so delete does not special-case that.
func (m *Manager) Delete(name, engineName string, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cat, err := m.load(engineName)
	if err != nil {
		return err
	}
	cfg, ok := cat.Containers[name]
	if !ok {
		return nil // delete on missing succeeds silently, per spec.md §7
	}
	if cfg.Status == model.StatusRunning && !force {
		return spinerr.New(spinerr.AlreadyRunning, "container is running; use force to delete: "+name)
	}

	adapter, err := m.registry.Lookup(engineName)
	if err == nil {
		_ = adapter.Stop(context.Background(), cfg)
	}

	containerPath, err := m.layout.ContainerPath(name, engineName)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(containerPath); err != nil {
		return spinerr.Wrap(spinerr.IOError, "remove container directory", err)
	}

	delete(cat.Containers, name)
	return m.save(engineName, cat)
}

func (m *Manager) load(engineName string) (*catalogue, error) {
	path := m.layout.CataloguePath(engineName)
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &catalogue{Containers: map[string]model.Config{}}, nil
	}
	if err != nil {
		return nil, spinerr.Wrap(spinerr.IOError, "read catalogue", err)
	}
	var cat catalogue
	if err := yaml.Unmarshal(b, &cat); err != nil {
		return nil, spinerr.Wrap(spinerr.CorruptArtifact, "parse catalogue", err)
	}
	if cat.Containers == nil {
		cat.Containers = map[string]model.Config{}
	}
	return &cat, nil
}

// save writes the catalogue atomically: marshal to a temp file in the
// same directory, then rename over the target, so a crash mid-write never
// leaves a half-written catalogue (spec.md §4.E, §8 property 4).
func (m *Manager) save(engineName string, cat *catalogue) error {
	path := m.layout.CataloguePath(engineName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return spinerr.Wrap(spinerr.IOError, "create engine directory", err)
	}

	b, err := yaml.Marshal(cat)
	if err != nil {
		return spinerr.Wrap(spinerr.IOError, "marshal catalogue", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".containers-*.yml.tmp")
	if err != nil {
		return spinerr.Wrap(spinerr.IOError, "create temp catalogue file", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return spinerr.Wrap(spinerr.IOError, "write temp catalogue file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return spinerr.Wrap(spinerr.IOError, "close temp catalogue file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return spinerr.Wrap(spinerr.IOError, "rename catalogue into place", err)
	}
	return nil
}
