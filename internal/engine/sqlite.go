package engine

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// sqliteEngine is the FileEngine implementation backing the "sqlite"
// adapter. Unlike every other engine, spindb talks to SQLite directly
// through mattn/go-sqlite3 rather than shelling out, since there's no
// long-running server or stable CLI to invoke reliably across platforms
// (spec.md §1's "vendor binary" charter explicitly carves out an
// exception for embedded files).
type sqliteEngine struct{}

func (sqliteEngine) CreateEmptyFile(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}

func (sqliteEngine) RunScriptOnFile(ctx context.Context, path string, input ScriptInput) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return spinerr.Wrap(spinerr.ScriptError, "open sqlite file", err)
	}
	defer db.Close()

	var script string
	if input.File != "" {
		b, err := os.ReadFile(input.File)
		if err != nil {
			return spinerr.Wrap(spinerr.ScriptError, "read script file", err)
		}
		script = string(b)
	} else {
		script = input.SQL
	}

	if _, err := db.ExecContext(ctx, script); err != nil {
		return spinerr.Wrap(spinerr.ScriptError, "execute script", err)
	}
	return nil
}

func (sqliteEngine) ExecuteQueryOnFile(ctx context.Context, path string, query string, opts QueryOptions) (QueryResult, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "open sqlite file", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "execute query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "read columns", err)
	}

	result := QueryResult{Columns: cols}
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "scan row", err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			row[i] = formatSQLiteValue(v)
		}
		result.Rows = append(result.Rows, row)
		result.RowCount++
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, spinerr.Wrap(spinerr.QueryError, "iterate rows", err)
	}
	return result, nil
}

func formatSQLiteValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// DumpFile writes the file's contents as a ".sql" text dump (schema +
// data via sqlite_master and per-table SELECTs) when format is "sql", or
// copies the raw file bytes when format is "sqlite" (the native format).
func (e sqliteEngine) DumpFile(ctx context.Context, path, outPath, format string) (BackupResult, error) {
	if format == "" {
		format = "sqlite"
	}
	if format == "sqlite" {
		if err := copyFile(path, outPath); err != nil {
			return BackupResult{}, spinerr.Wrap(spinerr.IOError, "copy sqlite file", err)
		}
		info, err := os.Stat(outPath)
		if err != nil {
			return BackupResult{}, spinerr.Wrap(spinerr.IOError, "stat backup", err)
		}
		return BackupResult{Path: outPath, Format: format, Size: info.Size()}, nil
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "open sqlite file", err)
	}
	defer db.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "create dump file", err)
	}
	defer out.Close()

	rows, err := db.QueryContext(ctx, "SELECT sql FROM sqlite_master WHERE sql IS NOT NULL")
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "read schema", err)
	}
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			rows.Close()
			return BackupResult{}, spinerr.Wrap(spinerr.IOError, "scan schema", err)
		}
		fmt.Fprintf(out, "%s;\n", stmt)
	}
	rows.Close()

	info, err := out.Stat()
	if err != nil {
		return BackupResult{}, spinerr.Wrap(spinerr.IOError, "stat dump file", err)
	}
	return BackupResult{Path: outPath, Format: format, Size: info.Size()}, nil
}

func (sqliteEngine) RestoreFile(ctx context.Context, inPath, targetPath, format string) error {
	if format == "sql" {
		db, err := sql.Open("sqlite3", targetPath)
		if err != nil {
			return spinerr.Wrap(spinerr.IOError, "open target sqlite file", err)
		}
		defer db.Close()

		f, err := os.Open(inPath)
		if err != nil {
			return spinerr.Wrap(spinerr.IOError, "open dump file", err)
		}
		defer f.Close()

		b, err := io.ReadAll(bufio.NewReader(f))
		if err != nil {
			return spinerr.Wrap(spinerr.IOError, "read dump file", err)
		}
		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return spinerr.Wrap(spinerr.CorruptArtifact, "apply dump", err)
		}
		return nil
	}
	if err := copyFile(inPath, targetPath); err != nil {
		return spinerr.Wrap(spinerr.IOError, "copy sqlite file into place", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

// NewSQLiteAdapter builds the FileAdapter for SQLite, per spec.md
// Glossary.
func NewSQLiteAdapter() Adapter {
	return &FileAdapter{
		EngineName: "sqlite",
		Scheme:     "sqlite",
		FormatExt: map[string]string{
			"sqlite": ".sqlite3",
			"sql":    ".sql",
		},
		DefaultFmt:      "sqlite",
		InstallHintText: "bundled via mattn/go-sqlite3, no separate install needed",
		Impl:            sqliteEngine{},
	}
}
