// ServerAdapter is the shared implementation for every wire-protocol
// server engine in the Glossary (PostgreSQL, MySQL, MariaDB, MongoDB,
// FerretDB, Redis, Valkey, ClickHouse, Qdrant, Meilisearch, CouchDB,
// CockroachDB, SurrealDB, QuestDB, TypeDB, TigerBeetle, Weaviate): one
// piece of logic parameterized by a Profile, per spec.md §9's "small
// shared base for common helpers" design note.
package engine

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/ports"
	"github.com/robertjbass/spindb/internal/process"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// ServerAdapter implements Adapter generically over a Profile.
type ServerAdapter struct {
	Profile    Profile
	Supervisor *process.Supervisor
	Layout     *paths.Layout
}

// NewServerAdapter builds a ServerAdapter bound to a profile and the
// shared process supervisor / path layout collaborators.
func NewServerAdapter(profile Profile, sup *process.Supervisor, layout *paths.Layout) *ServerAdapter {
	return &ServerAdapter{Profile: profile, Supervisor: sup, Layout: layout}
}

func (a *ServerAdapter) Name() string                { return a.Profile.EngineName }
func (a *ServerAdapter) IsFileEmbedded() bool         { return false }
func (a *ServerAdapter) SupportedPlatforms() []string { return a.Profile.Platforms }
func (a *ServerAdapter) InstallHint() string          { return a.Profile.InstallHint }
func (a *ServerAdapter) BackupExtension(format string) string { return a.Profile.Extension(format) }

func (a *ServerAdapter) EnsureBinaries(ctx context.Context, version string, progress ProgressSink) (string, error) {
	if progress != nil {
		progress("locating " + a.Profile.ServerBinary)
	}
	bin, err := lookPath(a.Profile.ServerBinary)
	if err != nil {
		return "", spinerr.New(spinerr.BinaryMissing, a.Profile.ServerBinary+" not found: "+a.Profile.InstallHint)
	}
	return bin, nil
}

func (a *ServerAdapter) VerifyBinary() bool {
	_, err := lookPath(a.Profile.ServerBinary)
	return err == nil
}

func (a *ServerAdapter) placeholders(cfg model.Config, extra map[string]string) map[string]string {
	dataDir, _ := a.Layout.DataDir(cfg.Name, cfg.Engine)
	logPath, _ := a.Layout.LogPath(cfg.Name, cfg.Engine)
	pidPath, _ := a.Layout.PidPath(cfg.Name, cfg.Engine)
	values := map[string]string{
		"dataDir":  dataDir,
		"logFile":  logPath,
		"pidFile":  pidPath,
		"port":     strconv.Itoa(cfg.Port),
		"database": cfg.Database,
		"version":  cfg.Version,
		"host":     "127.0.0.1",
	}
	for k, v := range extra {
		values[k] = v
	}
	return values
}

func (a *ServerAdapter) InitDataDir(ctx context.Context, cfg model.Config, opts InitOptions) (string, error) {
	dataDir, err := a.Layout.DataDir(cfg.Name, cfg.Engine)
	if err != nil {
		return "", err
	}

	entries, _ := os.ReadDir(dataDir)
	if len(entries) > 0 {
		return "", spinerr.New(spinerr.AlreadyExists, "data directory already initialized: "+dataDir)
	}
	preexisted := dirExists(dataDir)

	if a.Profile.InitBinary == "" {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return "", spinerr.Wrap(spinerr.IOError, "create data dir", err)
		}
		return dataDir, nil
	}

	bin, err := lookPath(a.Profile.InitBinary)
	if err != nil {
		return "", spinerr.New(spinerr.BinaryMissing, a.Profile.InitBinary+" not found: "+a.Profile.InstallHint)
	}

	values := a.placeholders(cfg, nil)
	for k, v := range opts {
		values[k] = v
	}
	args := ResolveArgs(a.Profile.InitArgs, values)

	_, err = a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 120 * time.Second})
	if err != nil {
		if !preexisted {
			_ = os.RemoveAll(dataDir)
		}
		return "", spinerr.Wrap(spinerr.SpawnError, "init data dir", err)
	}
	return dataDir, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (a *ServerAdapter) Start(ctx context.Context, cfg model.Config, progress ProgressSink) (StartResult, error) {
	bin, err := lookPath(a.Profile.ServerBinary)
	if err != nil {
		return StartResult{}, spinerr.New(spinerr.BinaryMissing, a.Profile.ServerBinary+" not found: "+a.Profile.InstallHint)
	}

	if cfg.Port != 0 {
		if free, err := ports.IsAvailable(cfg.Port); err == nil && !free {
			return StartResult{}, spinerr.New(spinerr.PortInUse, fmt.Sprintf("port %d in use", cfg.Port))
		}
	}

	values := a.placeholders(cfg, nil)
	args := ResolveArgs(a.Profile.StartArgs, values)

	if progress != nil {
		progress(fmt.Sprintf("starting %s on port %d", a.Profile.EngineName, cfg.Port))
	}

	child, err := a.Supervisor.SpawnDetached(bin, args, process.SpawnOptions{ShellWrap: needsShellWrap(a.Profile.ServerBinary)})
	if err != nil {
		if ports.IsPortInUseError(err) {
			return StartResult{}, spinerr.New(spinerr.PortInUse, fmt.Sprintf("port %d in use", cfg.Port))
		}
		return StartResult{}, err
	}

	pidPath, _ := a.Layout.PidPath(cfg.Name, cfg.Engine)
	if err := process.WritePidFile(pidPath, child.Pid); err != nil {
		return StartResult{}, spinerr.Wrap(spinerr.IOError, "write pid file", err)
	}

	timeout := time.Duration(a.Profile.ReadyTimeoutS) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ready := a.Supervisor.PollReadiness(ctx, func() error { return a.probeReady(cfg) }, 500*time.Millisecond, timeout)
	if !ready {
		if free, ferr := ports.IsAvailable(cfg.Port); ferr == nil && !free && !a.Supervisor.IsRunning(pidPath) {
			return StartResult{}, spinerr.New(spinerr.PortInUse, fmt.Sprintf("port %d in use", cfg.Port))
		}
		return StartResult{}, spinerr.New(spinerr.NotReady, fmt.Sprintf("%s did not become ready within %s", a.Profile.EngineName, timeout))
	}

	return StartResult{Port: cfg.Port, ConnectionString: a.GetConnectionString(cfg, cfg.Database)}, nil
}

func (a *ServerAdapter) probeReady(cfg model.Config) error {
	switch a.Profile.Readiness {
	case ReadinessExec:
		bin, err := lookPath(a.Profile.ReadyBinary)
		if err != nil {
			return err
		}
		args := ResolveArgs(a.Profile.ReadyArgs, a.placeholders(cfg, nil))
		_, err = a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 5 * time.Second})
		return err
	default:
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.Port), 2*time.Second)
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

func (a *ServerAdapter) Stop(ctx context.Context, cfg model.Config) error {
	pidPath, _ := a.Layout.PidPath(cfg.Name, cfg.Engine)
	if !a.Supervisor.IsRunning(pidPath) {
		_ = os.Remove(pidPath)
		return nil // idempotent, per spec.md §7
	}
	pid, err := process.ReadPidFile(pidPath)
	if err != nil {
		_ = os.Remove(pidPath)
		return nil
	}
	if err := a.Supervisor.Stop(pid); err != nil {
		return spinerr.Wrap(spinerr.IOError, "stop "+a.Profile.EngineName, err)
	}
	a.Supervisor.WaitStopped(pidPath, 30*time.Second, a.settleDelay())
	_ = os.Remove(pidPath)
	return nil
}

// settleDelay models the engine-tunable post-stop settle per spec.md §9:
// larger for memory-mapped storage engines where file handles release
// asynchronously (notably on Windows).
func (a *ServerAdapter) settleDelay() time.Duration {
	switch a.Profile.Family {
	case "mongo-wire", "http":
		return 3 * time.Second
	default:
		return 500 * time.Millisecond
	}
}

func (a *ServerAdapter) Status(ctx context.Context, cfg model.Config) (StatusResult, error) {
	pidPath, _ := a.Layout.PidPath(cfg.Name, cfg.Engine)
	running := a.Supervisor.IsRunning(pidPath)
	msg := "stopped"
	if running {
		msg = "running"
	}
	return StatusResult{Running: running, Message: msg}, nil
}

func (a *ServerAdapter) GetConnectionString(cfg model.Config, database string) string {
	if database == "" {
		database = cfg.Database
	}
	switch a.Profile.Family {
	case "pg-wire":
		return fmt.Sprintf("%s://%s@127.0.0.1:%d/%s", a.Profile.ConnScheme, engineUser(a.Profile.EngineName), cfg.Port, database)
	case "mysql-wire":
		return fmt.Sprintf("%s://%s@127.0.0.1:%d/%s", a.Profile.ConnScheme, engineUser(a.Profile.EngineName), cfg.Port, database)
	case "mongo-wire":
		return fmt.Sprintf("%s://127.0.0.1:%d/%s", a.Profile.ConnScheme, cfg.Port, database)
	case "redis-wire":
		return fmt.Sprintf("%s://127.0.0.1:%d/0", a.Profile.ConnScheme, cfg.Port)
	case "ws":
		return fmt.Sprintf("%s://127.0.0.1:%d/rpc", a.Profile.ConnScheme, cfg.Port)
	default: // http
		if database != "" {
			return fmt.Sprintf("%s://127.0.0.1:%d/%s", a.Profile.ConnScheme, cfg.Port, database)
		}
		return fmt.Sprintf("%s://127.0.0.1:%d", a.Profile.ConnScheme, cfg.Port)
	}
}

func engineUser(name string) string {
	switch name {
	case "mysql", "mariadb":
		return "root"
	default:
		return "postgres"
	}
}

func (a *ServerAdapter) CreateDatabase(ctx context.Context, cfg model.Config, name string) error {
	if !a.Profile.CreateDatabaseSupported {
		return spinerr.New(spinerr.Unsupported, a.Profile.EngineName+" does not support create_database")
	}
	bin, err := lookPath(a.Profile.CreateDatabaseBinary)
	if err != nil {
		return spinerr.New(spinerr.BinaryMissing, a.Profile.CreateDatabaseBinary+" not found")
	}
	values := a.placeholders(cfg, map[string]string{"name": name})
	args := ResolveArgs(a.Profile.CreateDatabaseArgs, values)
	_, err = a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 30 * time.Second})
	return err
}

func (a *ServerAdapter) DropDatabase(ctx context.Context, cfg model.Config, name string) error {
	return spinerr.New(spinerr.Unsupported, a.Profile.EngineName+" does not support drop_database")
}

func (a *ServerAdapter) RunScript(ctx context.Context, cfg model.Config, input ScriptInput) error {
	if (input.File == "") == (input.SQL == "") {
		return spinerr.New(spinerr.InvalidInput, "run_script requires exactly one of file or sql")
	}
	bin, err := lookPath(a.Profile.ScriptBinary)
	if err != nil {
		return spinerr.New(spinerr.BinaryMissing, a.Profile.ScriptBinary+" not found")
	}

	database := input.Database
	if database == "" {
		database = cfg.Database
	}
	values := a.placeholders(cfg, map[string]string{"database": database})

	if input.File != "" {
		values["file"] = input.File
		args := ResolveArgs(a.Profile.ScriptArgs, values)
		_, err := a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 60 * time.Second})
		if err != nil {
			return spinerr.Wrap(spinerr.ScriptError, "run_script", err)
		}
		return nil
	}

	args := ResolveArgs(a.Profile.ScriptStdinArgs, values)
	_, err = a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 60 * time.Second, Stdin: input.SQL})
	if err != nil {
		return spinerr.Wrap(spinerr.ScriptError, "run_script", err)
	}
	return nil
}

func (a *ServerAdapter) ExecuteQuery(ctx context.Context, cfg model.Config, query string, opts QueryOptions) (QueryResult, error) {
	bin, err := lookPath(a.Profile.QueryBinary)
	if err != nil {
		return QueryResult{}, spinerr.New(spinerr.BinaryMissing, a.Profile.QueryBinary+" not found")
	}
	database := opts.Database
	if database == "" {
		database = cfg.Database
	}
	values := a.placeholders(cfg, map[string]string{"database": database, "query": query})
	args := ResolveArgs(a.Profile.QueryArgs, values)

	timeout := time.Duration(opts.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	res, err := a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: timeout})
	if err != nil {
		return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "execute_query", err)
	}
	return parseTabularOutput(res.Stdout), nil
}

// parseTabularOutput parses the simple tab/pipe/comma-delimited output
// native CLIs emit in their "unaligned"/"batch" modes (psql -A -F,
// mysql -B, etc.) into columns/rows. Profiles that have such a mode ask
// for it in their QueryArgs; any other output is split the same way,
// line by line.
func parseTabularOutput(output string) QueryResult {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return QueryResult{}
	}
	split := func(line string) []string {
		for _, sep := range []string{"\t", "|", ","} {
			if strings.Contains(line, sep) {
				return strings.Split(line, sep)
			}
		}
		return []string{line}
	}
	columns := split(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		rows = append(rows, split(line))
	}
	return QueryResult{Columns: columns, Rows: rows, RowCount: len(rows)}
}

func (a *ServerAdapter) Backup(ctx context.Context, cfg model.Config, outPath string, opts BackupOptions) (BackupResult, error) {
	bin, err := lookPath(a.Profile.DumpBinary)
	if err != nil {
		return BackupResult{}, spinerr.New(spinerr.BinaryMissing, a.Profile.DumpBinary+" not found")
	}
	database := opts.Database
	if database == "" {
		database = cfg.Database
	}
	format := opts.Format
	if format == "" {
		format = a.Profile.DefaultFormat
	}

	values := a.placeholders(cfg, map[string]string{"database": database, "outPath": outPath, "format": format})
	args := ResolveArgs(a.Profile.DumpArgs, values)

	f, err := os.Create(outPath)
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "create backup file", err)
	}
	defer f.Close()

	res, err := a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 120 * time.Second})
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "backup", err)
	}
	// Dumper output is streamed to stdout and written to the file here
	// rather than letting the dumper write the file directly, to avoid
	// shell redirection/quoting entirely (spec.md §4.D).
	if _, err := f.WriteString(res.Stdout); err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "write backup file", err)
	}

	info, err := f.Stat()
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "stat backup file", err)
	}
	return BackupResult{Path: outPath, Format: format, Size: info.Size()}, nil
}

func (a *ServerAdapter) DetectBackupFormat(path string) (DetectedFormat, error) {
	return DetectFormatByPrefix(path)
}

func (a *ServerAdapter) Restore(ctx context.Context, cfg model.Config, inPath string, opts RestoreOptions) (RestoreResult, error) {
	bin, err := lookPath(a.Profile.RestoreBinary)
	if err != nil {
		return RestoreResult{}, spinerr.New(spinerr.BinaryMissing, a.Profile.RestoreBinary+" not found")
	}
	format := opts.Format
	if format == "" {
		detected, err := a.DetectBackupFormat(inPath)
		if err == nil {
			format = detected.Format
		}
	}
	database := opts.Database
	if database == "" {
		database = cfg.Database
	}
	values := a.placeholders(cfg, map[string]string{"database": database, "inPath": inPath, "format": format})
	args := ResolveArgs(a.Profile.RestoreArgs, values)

	_, err = a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 120 * time.Second})
	if err != nil {
		return RestoreResult{}, spinerr.Wrap(spinerr.IOError, "restore", err)
	}
	return RestoreResult{Format: format}, nil
}

func (a *ServerAdapter) DumpFromConnectionString(ctx context.Context, conn, outPath string) (string, error) {
	return "", spinerr.New(spinerr.Unsupported, "dump_from_connection_string not implemented for "+a.Profile.EngineName)
}

func (a *ServerAdapter) CreateUser(ctx context.Context, cfg model.Config, opts CreateUserOptions) (Credential, error) {
	if !a.Profile.CreateUserSupported {
		return Credential{}, spinerr.New(spinerr.Unsupported, a.Profile.EngineName+" does not support create_user")
	}
	if err := ValidateUsername(opts.Username); err != nil {
		return Credential{}, spinerr.New(spinerr.InvalidInput, "invalid username: "+opts.Username)
	}
	bin, err := lookPath(a.Profile.CreateUserBinary)
	if err != nil {
		return Credential{}, spinerr.New(spinerr.BinaryMissing, a.Profile.CreateUserBinary+" not found")
	}
	database := opts.Database
	if database == "" {
		database = cfg.Database
	}
	values := a.placeholders(cfg, map[string]string{"username": opts.Username, "password": opts.Password, "database": database})
	args := ResolveArgs(a.Profile.CreateUserArgs, values)

	if _, err := a.Supervisor.Spawn(bin, args, process.SpawnOptions{Timeout: 30 * time.Second}); err != nil {
		return Credential{}, spinerr.Wrap(spinerr.SpawnError, "create_user", err)
	}

	return Credential{
		Kind:     "password",
		Username: opts.Username,
		Password: opts.Password,
		Host:     "127.0.0.1",
		Port:     cfg.Port,
		Database: database,
		URL:      a.GetConnectionString(cfg, database),
	}, nil
}

func (a *ServerAdapter) FetchAvailableVersions(ctx context.Context) (map[string][]string, error) {
	return nil, spinerr.New(spinerr.Unsupported, "fetch_available_versions requires network access and is the excluded version-index fetcher's job")
}

func needsShellWrap(bin string) bool {
	return strings.HasSuffix(bin, ".bat") || strings.HasSuffix(bin, ".cmd")
}

func lookPath(bin string) (string, error) {
	if bin == "" {
		return "", spinerr.New(spinerr.BinaryMissing, "no binary configured")
	}
	return execLookPath(bin)
}
