package engine

import (
	"bytes"
	"os"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// magicDetector inspects a small file prefix to recognize a backup
// format, per spec.md §4.D's detect_backup_format.
type magicDetector struct {
	prefix      []byte
	format      string
	description string
	restore     string
}

var detectors = []magicDetector{
	{prefix: []byte("PGDMP"), format: "custom", description: "PostgreSQL custom-format dump", restore: "pg_restore"},
	{prefix: []byte{0x1f, 0x8b}, format: "gzip", description: "gzip-compressed dump", restore: "gunzip | restore"},
	{prefix: []byte("SQLite format 3\x00"), format: "sqlite", description: "SQLite database file", restore: "copy file into place"},
	{prefix: []byte("-- "), format: "sql", description: "plain SQL script", restore: "run_script"},
}

// DetectFormatByPrefix reads a small prefix of path and classifies it
// against the known magic-byte table, falling back to "sql" for anything
// textual and "binary" otherwise.
func DetectFormatByPrefix(path string) (DetectedFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return DetectedFormat{}, spinerr.Wrap(spinerr.IOError, "open backup file", err)
	}
	defer f.Close()

	buf := make([]byte, 32)
	n, _ := f.Read(buf)
	buf = buf[:n]

	for _, d := range detectors {
		if bytes.HasPrefix(buf, d.prefix) {
			return DetectedFormat{Format: d.format, Description: d.description, RestoreCommand: d.restore}, nil
		}
	}
	if isMostlyText(buf) {
		return DetectedFormat{Format: "sql", Description: "plain SQL script (assumed)", RestoreCommand: "run_script"}, nil
	}
	return DetectedFormat{Format: "binary", Description: "unrecognized binary dump format", RestoreCommand: ""}, nil
}

func isMostlyText(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	printable := 0
	for _, b := range buf {
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b < 0x7f) {
			printable++
		}
	}
	return float64(printable)/float64(len(buf)) > 0.9
}
