package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/model"
)

type stubAdapter struct {
	name      string
	platforms []string
}

func (s *stubAdapter) Name() string                { return s.name }
func (s *stubAdapter) IsFileEmbedded() bool         { return false }
func (s *stubAdapter) SupportedPlatforms() []string { return s.platforms }
func (s *stubAdapter) EnsureBinaries(ctx context.Context, version string, progress ProgressSink) (string, error) {
	return "", nil
}
func (s *stubAdapter) VerifyBinary() bool { return true }
func (s *stubAdapter) InitDataDir(ctx context.Context, cfg model.Config, opts InitOptions) (string, error) {
	return "", nil
}
func (s *stubAdapter) Start(ctx context.Context, cfg model.Config, progress ProgressSink) (StartResult, error) {
	return StartResult{}, nil
}
func (s *stubAdapter) Stop(ctx context.Context, cfg model.Config) error { return nil }
func (s *stubAdapter) Status(ctx context.Context, cfg model.Config) (StatusResult, error) {
	return StatusResult{}, nil
}
func (s *stubAdapter) GetConnectionString(cfg model.Config, database string) string { return "" }
func (s *stubAdapter) CreateDatabase(ctx context.Context, cfg model.Config, name string) error {
	return nil
}
func (s *stubAdapter) DropDatabase(ctx context.Context, cfg model.Config, name string) error {
	return nil
}
func (s *stubAdapter) RunScript(ctx context.Context, cfg model.Config, input ScriptInput) error {
	return nil
}
func (s *stubAdapter) ExecuteQuery(ctx context.Context, cfg model.Config, query string, opts QueryOptions) (QueryResult, error) {
	return QueryResult{}, nil
}
func (s *stubAdapter) Backup(ctx context.Context, cfg model.Config, outPath string, opts BackupOptions) (BackupResult, error) {
	return BackupResult{}, nil
}
func (s *stubAdapter) DetectBackupFormat(path string) (DetectedFormat, error) {
	return DetectedFormat{}, nil
}
func (s *stubAdapter) Restore(ctx context.Context, cfg model.Config, inPath string, opts RestoreOptions) (RestoreResult, error) {
	return RestoreResult{}, nil
}
func (s *stubAdapter) DumpFromConnectionString(ctx context.Context, conn, outPath string) (string, error) {
	return "", nil
}
func (s *stubAdapter) CreateUser(ctx context.Context, cfg model.Config, opts CreateUserOptions) (Credential, error) {
	return Credential{}, nil
}
func (s *stubAdapter) FetchAvailableVersions(ctx context.Context) (map[string][]string, error) {
	return nil, nil
}
func (s *stubAdapter) BackupExtension(format string) string { return "" }
func (s *stubAdapter) InstallHint() string                  { return "" }

func TestRegistryLookupIsCaseInsensitiveAcrossAliases(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "mariadb"}, "mysql-compat")

	adapter, err := r.Lookup("MariaDB")
	assert.NoError(t, err)
	assert.Equal(t, "mariadb", adapter.Name())

	adapter, err = r.Lookup("MYSQL-COMPAT")
	assert.NoError(t, err)
	assert.Equal(t, "mariadb", adapter.Name())
}

func TestRegistryLookupUnknownEngine(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("nosuchengine")
	assert.Error(t, err)
}

func TestRegistryListDedupesAliasesAndFiltersPlatform(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "mysql"}, "mariadb-compat")
	r.Register(&stubAdapter{name: "windows-only", platforms: []string{"windows"}})
	r.Register(&stubAdapter{name: "all-platforms"})

	list := r.List()

	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name())
	}
	assert.Contains(t, names, "mysql")
	assert.Contains(t, names, "all-platforms")
	assert.NotContains(t, names, "windows-only")

	// "mysql" appears exactly once despite the extra alias.
	count := 0
	for _, n := range names {
		if n == "mysql" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
