// Package backup is the thin backup/restore orchestrator from spec.md
// §4.I: select the adapter, compose the output path from the per-engine
// format table, route through adapter.Backup/Restore, and package the
// result. Cloning composes backup(source) -> restore(target) through a
// temp file unconditionally removed on exit.
//
// Grounded on pkg/commands/docker.go's thin command-composition helpers
// (build args, invoke, wrap result) generalized to the backup/restore
// pair.
package backup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// Orchestrator composes backup/restore/clone on top of an Adapter.
type Orchestrator struct{}

// New builds a backup orchestrator.
func New() *Orchestrator {
	return &Orchestrator{}
}

// Backup composes <outDir>/<name><ext> from the adapter's per-engine
// format table and routes to adapter.Backup.
func (o *Orchestrator) Backup(ctx context.Context, adapter engine.Adapter, cfg model.Config, outDir string, opts engine.BackupOptions) (engine.BackupResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return engine.BackupResult{}, spinerr.Wrap(spinerr.IOError, "create output directory", err)
	}
	ext := adapter.BackupExtension(opts.Format)
	outPath := filepath.Join(outDir, cfg.Name+ext)
	return adapter.Backup(ctx, cfg, outPath, opts)
}

// Restore consults adapter.DetectBackupFormat first when the caller
// didn't force a format, then dispatches to adapter.Restore.
func (o *Orchestrator) Restore(ctx context.Context, adapter engine.Adapter, cfg model.Config, inPath string, opts engine.RestoreOptions) (engine.RestoreResult, error) {
	if opts.Format == "" {
		detected, err := adapter.DetectBackupFormat(inPath)
		if err == nil {
			opts.Format = detected.Format
		}
	}
	return adapter.Restore(ctx, cfg, inPath, opts)
}

// Clone orchestrates backup(source) -> restore(target) through a temp
// file that is unconditionally removed on exit, including on failure.
func (o *Orchestrator) Clone(ctx context.Context, adapter engine.Adapter, source, target model.Config, opts engine.BackupOptions) (engine.RestoreResult, error) {
	tmpDir := os.TempDir()
	ext := adapter.BackupExtension(opts.Format)
	tmpPath := filepath.Join(tmpDir, "spindb-clone-"+uuid.NewString()+ext)
	defer os.Remove(tmpPath)

	backupResult, err := adapter.Backup(ctx, source, tmpPath, opts)
	if err != nil {
		return engine.RestoreResult{}, spinerr.Wrap(spinerr.IOError, "clone: backup source", err)
	}

	restoreOpts := engine.RestoreOptions{Database: target.Database, Format: backupResult.Format}
	restoreResult, err := adapter.Restore(ctx, target, tmpPath, restoreOpts)
	if err != nil {
		return engine.RestoreResult{}, spinerr.Wrap(spinerr.IOError, "clone: restore into target", err)
	}
	return restoreResult, nil
}
