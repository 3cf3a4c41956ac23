package containers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/paths"
)

// fakeAdapter is a minimal engine.Adapter stub so the container manager can
// be tested without shelling out to any real database binary.
type fakeAdapter struct {
	name    string
	running bool
}

func (f *fakeAdapter) Name() string                   { return f.name }
func (f *fakeAdapter) IsFileEmbedded() bool            { return false }
func (f *fakeAdapter) SupportedPlatforms() []string    { return nil }
func (f *fakeAdapter) EnsureBinaries(ctx context.Context, version string, progress engine.ProgressSink) (string, error) {
	return version, nil
}
func (f *fakeAdapter) VerifyBinary() bool { return true }
func (f *fakeAdapter) InitDataDir(ctx context.Context, cfg model.Config, opts engine.InitOptions) (string, error) {
	return "", nil
}
func (f *fakeAdapter) Start(ctx context.Context, cfg model.Config, progress engine.ProgressSink) (engine.StartResult, error) {
	f.running = true
	return engine.StartResult{Port: cfg.Port}, nil
}
func (f *fakeAdapter) Stop(ctx context.Context, cfg model.Config) error {
	f.running = false
	return nil
}
func (f *fakeAdapter) Status(ctx context.Context, cfg model.Config) (engine.StatusResult, error) {
	return engine.StatusResult{Running: f.running}, nil
}
func (f *fakeAdapter) GetConnectionString(cfg model.Config, database string) string { return "" }
func (f *fakeAdapter) CreateDatabase(ctx context.Context, cfg model.Config, name string) error {
	return nil
}
func (f *fakeAdapter) DropDatabase(ctx context.Context, cfg model.Config, name string) error {
	return nil
}
func (f *fakeAdapter) RunScript(ctx context.Context, cfg model.Config, input engine.ScriptInput) error {
	return nil
}
func (f *fakeAdapter) ExecuteQuery(ctx context.Context, cfg model.Config, query string, opts engine.QueryOptions) (engine.QueryResult, error) {
	return engine.QueryResult{}, nil
}
func (f *fakeAdapter) Backup(ctx context.Context, cfg model.Config, outPath string, opts engine.BackupOptions) (engine.BackupResult, error) {
	return engine.BackupResult{}, nil
}
func (f *fakeAdapter) DetectBackupFormat(path string) (engine.DetectedFormat, error) {
	return engine.DetectedFormat{}, nil
}
func (f *fakeAdapter) Restore(ctx context.Context, cfg model.Config, inPath string, opts engine.RestoreOptions) (engine.RestoreResult, error) {
	return engine.RestoreResult{}, nil
}
func (f *fakeAdapter) DumpFromConnectionString(ctx context.Context, conn, outPath string) (string, error) {
	return "", nil
}
func (f *fakeAdapter) CreateUser(ctx context.Context, cfg model.Config, opts engine.CreateUserOptions) (engine.Credential, error) {
	return engine.Credential{}, nil
}
func (f *fakeAdapter) FetchAvailableVersions(ctx context.Context) (map[string][]string, error) {
	return nil, nil
}
func (f *fakeAdapter) BackupExtension(format string) string { return ".bak" }
func (f *fakeAdapter) InstallHint() string                  { return "install it" }

func newTestManager(t *testing.T) (*Manager, *fakeAdapter) {
	t.Helper()
	root := t.TempDir()
	layout, err := paths.New(root)
	assert.NoError(t, err)

	reg := engine.NewRegistry()
	adapter := &fakeAdapter{name: "postgres"}
	reg.Register(adapter)

	return NewManager(layout, reg), adapter
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Create("mydb", "postgres", CreateOptions{Port: 5432})
	assert.NoError(t, err)

	_, err = m.Create("mydb", "postgres", CreateOptions{Port: 5433})
	assert.Error(t, err)
}

func TestCreateRejectsUnknownEngine(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Create("mydb", "nosuchengine", CreateOptions{})
	assert.Error(t, err)
}

func TestCreateRejectsInvalidName(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Create("1bad", "postgres", CreateOptions{})
	assert.Error(t, err)
}

func TestUpdateConfigAppliesOnlyPatchedFields(t *testing.T) {
	m, _ := newTestManager(t)
	created, err := m.Create("mydb", "postgres", CreateOptions{Port: 5432, Database: "app"})
	assert.NoError(t, err)

	newPort := 5555
	updated, err := m.UpdateConfig("mydb", "postgres", Patch{Port: &newPort})
	assert.NoError(t, err)
	assert.Equal(t, newPort, updated.Port)
	assert.Equal(t, created.Database, updated.Database)
	assert.NotEqual(t, created.Modified, updated.Modified)
}

func TestUpdateConfigMissingContainer(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.UpdateConfig("ghost", "postgres", Patch{})
	assert.Error(t, err)
}

func TestRenameMovesRecordAndDirectory(t *testing.T) {
	m, _ := newTestManager(t)
	created, err := m.Create("mydb", "postgres", CreateOptions{Port: 5432})
	assert.NoError(t, err)

	renamed, err := m.Rename("mydb", "mydb2", "postgres")
	assert.NoError(t, err)
	assert.Equal(t, "mydb2", renamed.Name)
	assert.Equal(t, created.Port, renamed.Port)

	_, ok, err := m.GetConfig("mydb", "postgres")
	assert.NoError(t, err)
	assert.False(t, ok)

	found, ok, err := m.GetConfig("mydb2", "postgres")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, created.Port, found.Port)
}

func TestRenameRejectsRunningContainer(t *testing.T) {
	m, adapter := newTestManager(t)
	_, err := m.Create("mydb", "postgres", CreateOptions{Port: 5432})
	assert.NoError(t, err)

	running := model.StatusRunning
	_, err = m.UpdateConfig("mydb", "postgres", Patch{Status: &running})
	assert.NoError(t, err)
	adapter.running = true

	_, err = m.Rename("mydb", "mydb2", "postgres")
	assert.Error(t, err)
}

func TestDeleteMissingSucceedsSilently(t *testing.T) {
	m, _ := newTestManager(t)
	err := m.Delete("ghost", "postgres", false)
	assert.NoError(t, err)
}

func TestDeleteRunningRequiresForce(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Create("mydb", "postgres", CreateOptions{Port: 5432})
	assert.NoError(t, err)

	running := model.StatusRunning
	_, err = m.UpdateConfig("mydb", "postgres", Patch{Status: &running})
	assert.NoError(t, err)

	err = m.Delete("mydb", "postgres", false)
	assert.Error(t, err)

	err = m.Delete("mydb", "postgres", true)
	assert.NoError(t, err)

	_, ok, err := m.GetConfig("mydb", "postgres")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestListReprobesLiveStatusWithoutMutatingRecord(t *testing.T) {
	m, adapter := newTestManager(t)
	_, err := m.Create("mydb", "postgres", CreateOptions{Port: 5432})
	assert.NoError(t, err)

	adapter.running = true
	list, err := m.List("postgres")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, model.StatusRunning, list[0].Status)

	stored, ok, err := m.GetConfig("mydb", "postgres")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.StatusCreated, stored.Status)
}
