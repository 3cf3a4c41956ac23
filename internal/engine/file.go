// FileAdapter is the shared base for file-embedded engines (SQLite,
// DuckDB): no server process, so start/stop/create_database are no-ops
// and status reflects "does the file exist", per spec.md §4.D.
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// FileEngine is the small extension point FileAdapter needs from a
// concrete file-embedded engine: how to create an empty database file and
// how to run a query/script against it.
type FileEngine interface {
	CreateEmptyFile(path string) error
	RunScriptOnFile(ctx context.Context, path string, input ScriptInput) error
	ExecuteQueryOnFile(ctx context.Context, path string, query string, opts QueryOptions) (QueryResult, error)
	DumpFile(ctx context.Context, path, outPath, format string) (BackupResult, error)
	RestoreFile(ctx context.Context, inPath, targetPath, format string) error
}

// FileAdapter implements Adapter for file-embedded engines by delegating
// the data-bearing operations to a FileEngine and handling the shared
// "it's a file, not a process" bookkeeping itself.
type FileAdapter struct {
	EngineName  string
	Scheme      string
	FormatExt   map[string]string
	DefaultFmt  string
	InstallHintText string
	Impl        FileEngine
}

func (a *FileAdapter) Name() string                         { return a.EngineName }
func (a *FileAdapter) IsFileEmbedded() bool                  { return true }
func (a *FileAdapter) SupportedPlatforms() []string          { return nil }
func (a *FileAdapter) InstallHint() string                   { return a.InstallHintText }
func (a *FileAdapter) VerifyBinary() bool                    { return true }
func (a *FileAdapter) BackupExtension(format string) string {
	if format == "" {
		format = a.DefaultFmt
	}
	if ext, ok := a.FormatExt[format]; ok {
		return ext
	}
	return ".bak"
}

func (a *FileAdapter) EnsureBinaries(ctx context.Context, version string, progress ProgressSink) (string, error) {
	return "", nil
}

func (a *FileAdapter) InitDataDir(ctx context.Context, cfg model.Config, opts InitOptions) (string, error) {
	if _, err := os.Stat(cfg.Database); err == nil {
		return "", spinerr.New(spinerr.AlreadyExists, "file already exists: "+cfg.Database)
	}
	if err := a.Impl.CreateEmptyFile(cfg.Database); err != nil {
		return "", spinerr.Wrap(spinerr.IOError, "create file", err)
	}
	return cfg.Database, nil
}

func (a *FileAdapter) Start(ctx context.Context, cfg model.Config, progress ProgressSink) (StartResult, error) {
	return StartResult{Port: 0, ConnectionString: a.GetConnectionString(cfg, "")}, nil
}

func (a *FileAdapter) Stop(ctx context.Context, cfg model.Config) error { return nil }

func (a *FileAdapter) Status(ctx context.Context, cfg model.Config) (StatusResult, error) {
	if _, err := os.Stat(cfg.Database); err != nil {
		return StatusResult{Running: false, Message: "missing"}, nil
	}
	return StatusResult{Running: true, Message: "file exists"}, nil
}

func (a *FileAdapter) GetConnectionString(cfg model.Config, database string) string {
	path := cfg.Database
	if database != "" {
		path = database
	}
	return fmt.Sprintf("%s://%s", a.Scheme, path)
}

func (a *FileAdapter) CreateDatabase(ctx context.Context, cfg model.Config, name string) error {
	return nil
}

// DropDatabase removes the file (a file that is already gone is not an
// error). It does not touch the embedded-file registry: the entry for the
// file stays in place.
func (a *FileAdapter) DropDatabase(ctx context.Context, cfg model.Config, name string) error {
	path := cfg.Database
	if name != "" {
		path = name
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return spinerr.Wrap(spinerr.IOError, "remove file", err)
	}
	return nil
}

func (a *FileAdapter) RunScript(ctx context.Context, cfg model.Config, input ScriptInput) error {
	return a.Impl.RunScriptOnFile(ctx, cfg.Database, input)
}

func (a *FileAdapter) ExecuteQuery(ctx context.Context, cfg model.Config, query string, opts QueryOptions) (QueryResult, error) {
	return a.Impl.ExecuteQueryOnFile(ctx, cfg.Database, query, opts)
}

func (a *FileAdapter) Backup(ctx context.Context, cfg model.Config, outPath string, opts BackupOptions) (BackupResult, error) {
	format := opts.Format
	if format == "" {
		format = a.DefaultFmt
	}
	return a.Impl.DumpFile(ctx, cfg.Database, outPath, format)
}

func (a *FileAdapter) DetectBackupFormat(path string) (DetectedFormat, error) {
	return DetectFormatByPrefix(path)
}

func (a *FileAdapter) Restore(ctx context.Context, cfg model.Config, inPath string, opts RestoreOptions) (RestoreResult, error) {
	format := opts.Format
	if format == "" {
		detected, err := a.DetectBackupFormat(inPath)
		if err == nil {
			format = detected.Format
		}
	}
	if err := a.Impl.RestoreFile(ctx, inPath, cfg.Database, format); err != nil {
		return RestoreResult{}, err
	}
	return RestoreResult{Format: format}, nil
}

func (a *FileAdapter) DumpFromConnectionString(ctx context.Context, conn, outPath string) (string, error) {
	return "", spinerr.New(spinerr.Unsupported, a.EngineName+" has no network connection string to dump from")
}

func (a *FileAdapter) CreateUser(ctx context.Context, cfg model.Config, opts CreateUserOptions) (Credential, error) {
	return Credential{}, spinerr.New(spinerr.Unsupported, a.EngineName+" does not support create_user")
}

func (a *FileAdapter) FetchAvailableVersions(ctx context.Context) (map[string][]string, error) {
	return nil, spinerr.New(spinerr.Unsupported, "fetch_available_versions not applicable to file-embedded engines")
}
