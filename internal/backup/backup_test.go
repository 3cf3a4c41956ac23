package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
)

// recordingAdapter is a minimal engine.Adapter stub that records the
// outPath/inPath it was invoked with, so the orchestrator's path
// composition can be checked without a real engine binary.
type recordingAdapter struct {
	engine.Adapter
	backupOutPath    string
	restoreInPath    string
	detectedFormat   engine.DetectedFormat
	detectErr        error
	backupFormat     string
}

func (r *recordingAdapter) BackupExtension(format string) string {
	if format == "" {
		format = "sql"
	}
	return "." + format
}

func (r *recordingAdapter) Backup(ctx context.Context, cfg model.Config, outPath string, opts engine.BackupOptions) (engine.BackupResult, error) {
	r.backupOutPath = outPath
	if err := os.WriteFile(outPath, nil, 0o644); err != nil {
		return engine.BackupResult{}, err
	}
	return engine.BackupResult{Path: outPath, Format: r.backupFormat}, nil
}

func (r *recordingAdapter) DetectBackupFormat(path string) (engine.DetectedFormat, error) {
	return r.detectedFormat, r.detectErr
}

func (r *recordingAdapter) Restore(ctx context.Context, cfg model.Config, inPath string, opts engine.RestoreOptions) (engine.RestoreResult, error) {
	r.restoreInPath = inPath
	return engine.RestoreResult{Format: opts.Format}, nil
}

func TestBackupComposesOutputPath(t *testing.T) {
	dir := t.TempDir()
	adapter := &recordingAdapter{}
	orchestrator := New()

	cfg := model.Config{Name: "mydb"}
	result, err := orchestrator.Backup(context.Background(), adapter, cfg, dir, engine.BackupOptions{Format: "custom"})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mydb.custom"), result.Path)
	assert.Equal(t, filepath.Join(dir, "mydb.custom"), adapter.backupOutPath)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRestoreDetectsFormatWhenUnspecified(t *testing.T) {
	adapter := &recordingAdapter{detectedFormat: engine.DetectedFormat{Format: "plain"}}
	orchestrator := New()

	result, err := orchestrator.Restore(context.Background(), adapter, model.Config{Name: "mydb"}, "/tmp/mydb.sql", engine.RestoreOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "plain", result.Format)
}

func TestRestoreKeepsForcedFormat(t *testing.T) {
	adapter := &recordingAdapter{detectedFormat: engine.DetectedFormat{Format: "plain"}}
	orchestrator := New()

	result, err := orchestrator.Restore(context.Background(), adapter, model.Config{Name: "mydb"}, "/tmp/mydb.sql", engine.RestoreOptions{Format: "custom"})
	assert.NoError(t, err)
	assert.Equal(t, "custom", result.Format)
}

func TestCloneRemovesTempFileEvenOnSuccess(t *testing.T) {
	adapter := &recordingAdapter{backupFormat: "custom"}
	orchestrator := New()

	source := model.Config{Name: "source"}
	target := model.Config{Name: "target"}

	_, err := orchestrator.Clone(context.Background(), adapter, source, target, engine.BackupOptions{})
	assert.NoError(t, err)

	assert.Equal(t, adapter.backupOutPath, adapter.restoreInPath)
	_, statErr := os.Stat(adapter.backupOutPath)
	assert.True(t, os.IsNotExist(statErr))
}
