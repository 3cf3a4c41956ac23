package engine

// ReadinessKind selects how ServerAdapter polls for readiness after start.
type ReadinessKind string

const (
	ReadinessTCP  ReadinessKind = "tcp"
	ReadinessExec ReadinessKind = "exec"
)

// Profile is the data-driven description of one server-backed engine
// (spec.md §9: "no inheritance hierarchy is needed beyond the interface
// and a small shared base for common helpers" — Profile is that base's
// data, ServerAdapter is the shared logic operating on it).
type Profile struct {
	EngineName  string
	Aliases     []string
	Family      string // "pg-wire", "mysql-wire", "mongo-wire", "redis-wire", "http", "ws", "tb-wire"
	Platforms   []string
	DefaultPort int
	ConnScheme  string

	ServerBinary string
	InitBinary   string
	InitArgs     []string // placeholders: {{dataDir}} {{version}} {{port}}

	StartArgs []string // placeholders: {{dataDir}} {{port}} {{pidFile}} {{logFile}} {{database}}

	Readiness     ReadinessKind
	ReadyBinary   string
	ReadyArgs     []string // placeholders: {{port}} {{host}}
	ReadyTimeoutS int

	ScriptBinary    string
	ScriptArgs      []string // used when running a file; {{port}} {{database}} {{file}}
	ScriptStdinArgs []string // used when piping sql on stdin; {{port}} {{database}}

	QueryBinary string
	QueryArgs   []string // {{port}} {{database}} {{query}}

	DumpBinary string
	DumpArgs   []string // {{port}} {{database}} {{outPath}}

	RestoreBinary string
	RestoreArgs   []string // {{port}} {{database}} {{inPath}}

	CreateUserSupported bool
	CreateUserBinary    string
	CreateUserArgs      []string // {{port}} {{username}} {{password}} {{database}}

	CreateDatabaseSupported bool
	CreateDatabaseBinary    string
	CreateDatabaseArgs      []string // {{port}} {{name}}

	DefaultFormat string
	FormatExt     map[string]string // format -> extension, including leading dot

	InstallHint string
}

// Extension implements the per-engine format table spec.md §4.I needs.
func (p Profile) Extension(format string) string {
	if format == "" {
		format = p.DefaultFormat
	}
	if ext, ok := p.FormatExt[format]; ok {
		return ext
	}
	return ".bak"
}
