// Package engine is the polymorphic adapter contract from spec.md §4.D:
// one capability set implemented per database engine variant, selected and
// dispatched to through a name-and-alias registry.
//
// Grounded on pkg/commands/runtime.go's ContainerRuntime interface
// (Docker/Podman/Apple Container implementations of one capability set),
// generalized from "container backend" to "database engine".
package engine

import (
	"context"

	"github.com/robertjbass/spindb/internal/model"
)

// ProgressSink receives free-form progress messages during long-running
// operations (ensure_binaries, start, backup); the real renderer lives in
// the excluded command surface, so this is deliberately just a func type.
type ProgressSink func(message string)

// ScriptInput is exactly one of File or SQL, per spec.md §4.D's
// run_script contract.
type ScriptInput struct {
	File     string
	SQL      string
	Database string
}

// QueryOptions configures execute_query.
type QueryOptions struct {
	Database string
	Timeout  int // seconds, 0 = adapter default
}

// QueryResult is the tabular result of execute_query.
type QueryResult struct {
	Columns  []string
	Rows     [][]string
	RowCount int
}

// StartResult is what start returns on success.
type StartResult struct {
	Port             int
	ConnectionString string
}

// StatusResult is what status returns; read-only.
type StatusResult struct {
	Running bool
	Message string
}

// BackupOptions configures backup.
type BackupOptions struct {
	Database string
	Format   string // "" = adapter default format
}

// BackupResult is what backup returns.
type BackupResult struct {
	Path   string
	Format string
	Size   int64
}

// DetectedFormat is what detect_backup_format returns.
type DetectedFormat struct {
	Format         string
	Description    string
	RestoreCommand string
}

// RestoreOptions configures restore.
type RestoreOptions struct {
	Database string
	Format   string // "" = infer via DetectBackupFormat
}

// RestoreResult is what restore returns.
type RestoreResult struct {
	Format string
}

// CreateUserOptions configures create_user.
type CreateUserOptions struct {
	Username string
	Password string
	Database string
}

// Credential is the bundle create_user returns; it mirrors the on-disk
// shape the credential manager persists (spec.md §3's Credential record).
type Credential struct {
	Kind        string // "password" or "apikey"
	Username    string
	Password    string
	Host        string
	Port        int
	Database    string
	URL         string
	APIKeyName  string
	APIKey      string
	APIURL      string
}

// InitOptions is an engine-specific option bag for init_data_dir.
type InitOptions map[string]string

// Adapter is the capability set every engine implements (spec.md §4.D).
// Implementations return Unsupported from any operation they don't
// support on the current platform or for this engine.
type Adapter interface {
	// Name is the canonical engine name (not an alias).
	Name() string
	// IsFileEmbedded reports whether this adapter manages a file rather
	// than a server process.
	IsFileEmbedded() bool
	// SupportedPlatforms lists GOOS values this adapter runs on; empty
	// means all platforms.
	SupportedPlatforms() []string

	EnsureBinaries(ctx context.Context, version string, progress ProgressSink) (string, error)
	VerifyBinary() bool
	InitDataDir(ctx context.Context, cfg model.Config, opts InitOptions) (string, error)
	Start(ctx context.Context, cfg model.Config, progress ProgressSink) (StartResult, error)
	Stop(ctx context.Context, cfg model.Config) error
	Status(ctx context.Context, cfg model.Config) (StatusResult, error)
	GetConnectionString(cfg model.Config, database string) string
	CreateDatabase(ctx context.Context, cfg model.Config, name string) error
	DropDatabase(ctx context.Context, cfg model.Config, name string) error
	RunScript(ctx context.Context, cfg model.Config, input ScriptInput) error
	ExecuteQuery(ctx context.Context, cfg model.Config, query string, opts QueryOptions) (QueryResult, error)
	Backup(ctx context.Context, cfg model.Config, outPath string, opts BackupOptions) (BackupResult, error)
	DetectBackupFormat(path string) (DetectedFormat, error)
	Restore(ctx context.Context, cfg model.Config, inPath string, opts RestoreOptions) (RestoreResult, error)
	DumpFromConnectionString(ctx context.Context, conn, outPath string) (string, error)
	CreateUser(ctx context.Context, cfg model.Config, opts CreateUserOptions) (Credential, error)
	FetchAvailableVersions(ctx context.Context) (map[string][]string, error)

	// BackupExtension is the per-engine format table entry the backup
	// orchestrator (spec.md §4.I) uses to compose <name><ext>.
	BackupExtension(format string) string
	// InstallHint is the string surfaced to the user alongside
	// BinaryMissing errors, per spec.md §7.
	InstallHint() string
}
