package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/spinerr"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	root := t.TempDir()
	layout, err := paths.New(root)
	assert.NoError(t, err)
	return NewRegistry(layout, "sqlite")
}

func TestAddAndGet(t *testing.T) {
	r := newTestRegistry(t)
	err := r.Add(Entry{Name: "mydb", FilePath: "/tmp/mydb.sqlite3"})
	assert.NoError(t, err)

	entry, ok, err := r.Get("mydb")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/mydb.sqlite3", entry.FilePath)
}

func TestAddRejectsDuplicatePath(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Add(Entry{Name: "a", FilePath: "/tmp/a.sqlite3"}))

	err := r.Add(Entry{Name: "b", FilePath: "/tmp/a.sqlite3"})
	assert.Error(t, err)
	assert.True(t, spinerr.Is(err, spinerr.AlreadyExists))
}

func TestRemoveIsUnconditional(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Remove("never-registered"))

	assert.NoError(t, r.Add(Entry{Name: "mydb", FilePath: "/tmp/mydb.sqlite3"}))
	assert.NoError(t, r.Remove("mydb"))

	_, ok, err := r.Get("mydb")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestListSortedByName(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Add(Entry{Name: "zeta", FilePath: "/tmp/z.sqlite3"}))
	assert.NoError(t, r.Add(Entry{Name: "alpha", FilePath: "/tmp/a.sqlite3"}))

	entries, err := r.List()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "zeta", entries[1].Name)
}

func TestIgnoreFolders(t *testing.T) {
	r := newTestRegistry(t)
	ignored, err := r.IsFolderIgnored("/tmp/skip")
	assert.NoError(t, err)
	assert.False(t, ignored)

	assert.NoError(t, r.AddIgnoreFolder("/tmp/skip"))
	ignored, err = r.IsFolderIgnored("/tmp/skip")
	assert.NoError(t, err)
	assert.True(t, ignored)

	assert.NoError(t, r.RemoveIgnoreFolder("/tmp/skip"))
	ignored, err = r.IsFolderIgnored("/tmp/skip")
	assert.NoError(t, err)
	assert.False(t, ignored)
}

func TestOrphansReportsMissingFilesWithoutRemoving(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Add(Entry{Name: "gone", FilePath: "/tmp/definitely-not-there.sqlite3"}))

	orphans, err := r.Orphans()
	assert.NoError(t, err)
	assert.Len(t, orphans, 1)
	assert.Equal(t, "gone", orphans[0].Name)

	_, ok, err := r.Get("gone")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestAddStampsCreatedWhenUnset(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Add(Entry{Name: "mydb", FilePath: "/tmp/mydb.sqlite3"}))

	entry, ok, err := r.Get("mydb")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, entry.Created)
	assert.Empty(t, entry.LastVerified)
}

func TestUpdateSetsLastVerified(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Add(Entry{Name: "mydb", FilePath: "/tmp/mydb.sqlite3", Created: "2026-01-01T00:00:00Z"}))

	updated, err := r.Update("mydb", Entry{LastVerified: "2026-02-02T00:00:00Z"})
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-02T00:00:00Z", updated.LastVerified)
	assert.Equal(t, "/tmp/mydb.sqlite3", updated.FilePath)
	assert.Equal(t, "2026-01-01T00:00:00Z", updated.Created)
}

func TestDeriveName(t *testing.T) {
	cases := map[string]string{
		"mydb.sqlite3":    "mydb",
		"mydb.sqlite":     "mydb",
		"my db (copy).db": "my-db-copy",
		"1db.sqlite3":     "db-1db",
		"weird!!name.db":  "weird-name",
		"a -b.db":         "a-b",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, DeriveName(input), input)
	}
}

func TestMatchesCandidateExtension(t *testing.T) {
	assert.True(t, MatchesCandidateExtension("a.sqlite3"))
	assert.True(t, MatchesCandidateExtension("a.sqlite"))
	assert.True(t, MatchesCandidateExtension("a.DB"))
	assert.False(t, MatchesCandidateExtension("a.txt"))
}
