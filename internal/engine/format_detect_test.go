package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backup")
	assert.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestDetectFormatByPrefix(t *testing.T) {
	cases := []struct {
		name     string
		content  []byte
		expected string
	}{
		{"postgres custom dump", []byte("PGDMP\x01\x02"), "custom"},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, "gzip"},
		{"sqlite", []byte("SQLite format 3\x00rest of header"), "sqlite"},
		{"sql comment header", []byte("-- dump generated by spindb\nSELECT 1;"), "sql"},
		{"plain text fallback", []byte("INSERT INTO t VALUES (1);\n"), "sql"},
	}

	for _, c := range cases {
		path := writeTempFile(t, c.content)
		detected, err := DetectFormatByPrefix(path)
		assert.NoError(t, err)
		assert.Equal(t, c.expected, detected.Format, c.name)
	}
}

func TestDetectFormatByPrefixBinaryFallback(t *testing.T) {
	content := make([]byte, 32)
	for i := range content {
		content[i] = byte(i)
	}
	path := writeTempFile(t, content)

	detected, err := DetectFormatByPrefix(path)
	assert.NoError(t, err)
	assert.Equal(t, "binary", detected.Format)
}

func TestDetectFormatByPrefixMissingFile(t *testing.T) {
	_, err := DetectFormatByPrefix(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
