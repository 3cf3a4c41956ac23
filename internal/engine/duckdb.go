package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// duckdbEngine is the FileEngine implementation backing the "duckdb"
// adapter. No duckdb Go driver is available in the reference stack, so
// this shells out to the duckdb CLI the same way ServerAdapter shells out
// to every wire-protocol engine's client binary.
type duckdbEngine struct{}

func (duckdbEngine) CreateEmptyFile(path string) error {
	cmd := exec.Command("duckdb", path, "-c", "SELECT 1;")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("duckdb init failed: %s: %w", string(out), err)
	}
	return nil
}

func (duckdbEngine) RunScriptOnFile(ctx context.Context, path string, input ScriptInput) error {
	var cmd *exec.Cmd
	if input.File != "" {
		cmd = exec.CommandContext(ctx, "duckdb", path, "-f", input.File)
	} else {
		cmd = exec.CommandContext(ctx, "duckdb", path)
		cmd.Stdin = strings.NewReader(input.SQL)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return spinerr.Wrap(spinerr.ScriptError, "duckdb script: "+string(out), err)
	}
	return nil
}

func (duckdbEngine) ExecuteQueryOnFile(ctx context.Context, path string, query string, opts QueryOptions) (QueryResult, error) {
	cmd := exec.CommandContext(ctx, "duckdb", "-csv", path, "-c", query)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "duckdb query: "+stderr.String(), err)
	}
	return parseCSVOutput(stdout.String()), nil
}

func parseCSVOutput(output string) QueryResult {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return QueryResult{}
	}
	result := QueryResult{Columns: strings.Split(lines[0], ",")}
	for _, line := range lines[1:] {
		result.Rows = append(result.Rows, strings.Split(line, ","))
		result.RowCount++
	}
	return result
}

func (duckdbEngine) DumpFile(ctx context.Context, path, outPath, format string) (BackupResult, error) {
	if format == "" {
		format = "sql"
	}

	out, err := os.Create(outPath)
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "create dump file", err)
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, "duckdb", path, "-c", "EXPORT DATABASE AS SQL")
	cmd.Stdout = out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "duckdb dump: "+stderr.String(), err)
	}

	info, err := out.Stat()
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "stat dump file", err)
	}
	return BackupResult{Path: outPath, Format: format, Size: info.Size()}, nil
}

func (duckdbEngine) RestoreFile(ctx context.Context, inPath, targetPath, format string) error {
	cmd := exec.CommandContext(ctx, "duckdb", targetPath, "-f", inPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return spinerr.Wrap(spinerr.CorruptArtifact, "duckdb restore: "+string(out), err)
	}
	return nil
}

// NewDuckDBAdapter builds the FileAdapter for DuckDB, per spec.md
// Glossary.
func NewDuckDBAdapter() Adapter {
	return &FileAdapter{
		EngineName: "duckdb",
		Scheme:     "duckdb",
		FormatExt: map[string]string{
			"sql": ".sql",
			"csv": ".csv",
		},
		DefaultFmt:      "sql",
		InstallHintText: "install the duckdb CLI: https://duckdb.org/docs/installation",
		Impl:            duckdbEngine{},
	}
}
