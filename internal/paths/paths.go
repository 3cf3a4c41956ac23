// Package paths computes every on-disk location spindb derives from its
// root directory (spec.md §4.A, §6). It never performs I/O beyond mkdir on
// demand, and never lets a container name escape the root — name is
// validated before any concatenation.
//
// Grounded on pkg/config/app_config.go's configDirForVendor/findOrCreateConfigDir
// (xdg-based root resolution with an environment override).
package paths

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/OpenPeeDeeP/xdg"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// NameRegexp is the container naming rule fixed by spec.md §3.
var NameRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,62}$`)

// ValidateName returns an InvalidInput error unless name matches NameRegexp.
func ValidateName(name string) error {
	if !NameRegexp.MatchString(name) {
		return spinerr.New(spinerr.InvalidInput, "invalid container name: "+name)
	}
	return nil
}

// Layout resolves every derived path from the spindb root directory.
type Layout struct {
	root string
}

// New builds a Layout rooted at the given directory (created if absent).
func New(root string) (*Layout, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, spinerr.Wrap(spinerr.IOError, "create root directory", err)
	}
	return &Layout{root: root}, nil
}

// DefaultRoot resolves the spindb root the way the teacher resolves its
// config directory: an explicit environment override first, else the
// platform xdg config home for the "spindb" application, falling back to
// $HOME/.spindb per spec.md §6.
func DefaultRoot() string {
	if env := os.Getenv("SPINDB_HOME"); env != "" {
		return env
	}
	dirs := xdg.New("", "spindb")
	if home := dirs.ConfigHome(); home != "" {
		return home
	}
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".spindb")
	}
	return ".spindb"
}

// Root returns the layout's root directory.
func (l *Layout) Root() string { return l.root }

// EngineContainersPath is <root>/<engine>, the per-engine subtree root.
func (l *Layout) EngineContainersPath(engine string) string {
	return filepath.Join(l.root, engine)
}

// CataloguePath is the single catalogue file for an engine family, holding
// every container record in that namespace (spec.md §3).
func (l *Layout) CataloguePath(engine string) string {
	return filepath.Join(l.EngineContainersPath(engine), "containers.yml")
}

// ContainerPath is <root>/<engine>/<name>, the per-container directory.
func (l *Layout) ContainerPath(name, engine string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.EngineContainersPath(engine), name), nil
}

// DataDir is <root>/<engine>/<name>/data.
func (l *Layout) DataDir(name, engine string) (string, error) {
	base, err := l.ContainerPath(name, engine)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "data"), nil
}

// LogPath is <root>/<engine>/<name>/log/<engine>.log.
func (l *Layout) LogPath(name, engine string) (string, error) {
	base, err := l.ContainerPath(name, engine)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "log", engine+".log"), nil
}

// PidPath is <root>/<engine>/<name>/<engine>.pid per spec.md §6.
func (l *Layout) PidPath(name, engine string) (string, error) {
	base, err := l.ContainerPath(name, engine)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, engine+".pid"), nil
}

// CredentialsDir is <root>/<engine>/<name>/credentials.
func (l *Layout) CredentialsDir(name, engine string) (string, error) {
	base, err := l.ContainerPath(name, engine)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "credentials"), nil
}

// EmbeddedRegistryPath is <root>/<engine>-registry.json per spec.md §6.
func (l *Layout) EmbeddedRegistryPath(engine string) string {
	return filepath.Join(l.root, engine+"-registry.json")
}

// NullDevice returns the platform's null device path.
func NullDevice() string {
	if os.PathSeparator == '\\' {
		return "NUL"
	}
	return "/dev/null"
}

// EnsureContainerTree creates the data/log/credentials/pid-dir tree for a
// container at create time (spec.md §3 Lifecycle).
func (l *Layout) EnsureContainerTree(name, engine string) error {
	dataDir, err := l.DataDir(name, engine)
	if err != nil {
		return err
	}
	logPath, err := l.LogPath(name, engine)
	if err != nil {
		return err
	}
	credDir, err := l.CredentialsDir(name, engine)
	if err != nil {
		return err
	}
	for _, dir := range []string{dataDir, filepath.Dir(logPath), credDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return spinerr.Wrap(spinerr.IOError, "create container directory tree", err)
		}
	}
	return nil
}
