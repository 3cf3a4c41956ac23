package credentials

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/paths"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	root := t.TempDir()
	layout, err := paths.New(root)
	assert.NoError(t, err)
	return NewManager(layout)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("app_user"))
	assert.NoError(t, ValidateUsername("a"))
	assert.Error(t, ValidateUsername("1bad"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("has space"))
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(GeneratePasswordOptions{})
	assert.NoError(t, err)
	assert.Len(t, pw, 20)

	pw, err = GeneratePassword(GeneratePasswordOptions{Length: 8, AlphanumericOnly: true})
	assert.NoError(t, err)
	assert.Len(t, pw, 8)
	for _, r := range pw {
		assert.NotContains(t, symbolAlphabet[len(alphanumericAlphabet):], string(r))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newTestManager(t)

	bundle := Bundle{
		Kind:       "password",
		Username:   "app_user",
		DBUser:     "app_user",
		DBPassword: `p=w` + "\n" + `"q\\`,
		DBHost:     "127.0.0.1",
		DBPort:     5432,
		DBName:     "app",
		DBURL:      "postgresql://app_user@127.0.0.1:5432/app",
	}
	path, err := m.Save("mydb", "postgres", bundle)
	assert.NoError(t, err)

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, ok, err := m.Load("mydb", "postgres", "app_user")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, bundle.DBPassword, loaded.DBPassword)
	assert.Equal(t, bundle.DBUser, loaded.DBUser)
	assert.Equal(t, bundle.DBURL, loaded.DBURL)
	assert.Equal(t, bundle.DBHost, loaded.DBHost)
	assert.Equal(t, bundle.DBPort, loaded.DBPort)
	assert.Equal(t, bundle.DBName, loaded.DBName)
}

func TestLoadMissingReturnsNotOk(t *testing.T) {
	m := newTestManager(t)
	_, ok, err := m.Load("mydb", "postgres", "nobody")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveRejectsInvalidUsername(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Save("mydb", "postgres", Bundle{Username: "1bad"})
	assert.Error(t, err)
}

func TestListAndExists(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Save("mydb", "postgres", Bundle{Kind: "password", Username: "alice", DBUser: "alice", DBPassword: "x", DBURL: "u"})
	assert.NoError(t, err)
	_, err = m.Save("mydb", "postgres", Bundle{Kind: "password", Username: "bob", DBUser: "bob", DBPassword: "y", DBURL: "u"})
	assert.NoError(t, err)

	usernames, err := m.List("mydb", "postgres")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, usernames)

	exists, err := m.Exists("mydb", "postgres", "alice")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = m.Exists("mydb", "postgres", "carol")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestDefaultUsername(t *testing.T) {
	assert.Equal(t, "search_key", DefaultUsername("meilisearch"))
	assert.Equal(t, "api_key", DefaultUsername("qdrant"))
	assert.Equal(t, "default", DefaultUsername("postgres"))
}
