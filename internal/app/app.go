// Package app is spindb's composition root: it wires the path layout,
// process supervisor, engine registry, and every manager together the
// way pkg/app/app.go wires the teacher's OSCommand/DockerCommand/Gui.
package app

import (
	"github.com/sirupsen/logrus"

	"github.com/robertjbass/spindb/internal/backup"
	"github.com/robertjbass/spindb/internal/containers"
	"github.com/robertjbass/spindb/internal/credentials"
	"github.com/robertjbass/spindb/internal/embedded"
	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/logging"
	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/process"
)

// Options configures App construction.
type Options struct {
	Root    string // "" = paths.DefaultRoot()
	Debug   bool
	Version string
}

// App bundles every collaborator the command surface needs, built once
// at process startup.
type App struct {
	Log         *logrus.Entry
	Layout      *paths.Layout
	Supervisor  *process.Supervisor
	Registry    *engine.Registry
	Containers  *containers.Manager
	Credentials *credentials.Manager
	Backup      *backup.Orchestrator
}

// New builds a fully wired App.
func New(opts Options) (*App, error) {
	root := opts.Root
	if root == "" {
		root = paths.DefaultRoot()
	}
	log := logging.New(logging.Options{Root: root, Debug: opts.Debug, Version: opts.Version})

	layout, err := paths.New(root)
	if err != nil {
		return nil, err
	}

	supervisor := process.New(log)
	registry := engine.BuildRegistry(supervisor, layout)
	containerManager := containers.NewManager(layout, registry)
	credentialManager := credentials.NewManager(layout)
	backupOrchestrator := backup.New()

	return &App{
		Log:         log,
		Layout:      layout,
		Supervisor:  supervisor,
		Registry:    registry,
		Containers:  containerManager,
		Credentials: credentialManager,
		Backup:      backupOrchestrator,
	}, nil
}

// EmbeddedRegistry builds (on demand, not eagerly, since it's per-engine)
// the embedded-file registry for one file-embedded engine.
func (a *App) EmbeddedRegistry(engineName string) *embedded.Registry {
	return embedded.NewRegistry(a.Layout, engineName)
}
