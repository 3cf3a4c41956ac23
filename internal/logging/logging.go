// Package logging builds the single *logrus.Entry threaded through every
// spindb collaborator, the way pkg/log does for lazydocker.
package logging

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options controls how the root logger is constructed.
type Options struct {
	// Root is the spindb root directory (see internal/paths); the
	// development log file is written inside it.
	Root string
	// Debug forces the development (text, debug-level, file-backed) logger
	// even when SPINDB_DEBUG is unset.
	Debug bool
	Version string
}

// New returns the root log entry for the process. Debug mode mirrors the
// teacher's development logger (text formatter, file-backed, DebugLevel);
// production mode logs structured JSON to stderr.
func New(opts Options) *logrus.Entry {
	debug := opts.Debug || os.Getenv("SPINDB_DEBUG") == "1"

	var log *logrus.Logger
	if debug {
		log = newDevelopmentLogger(opts.Root)
	} else {
		log = newProductionLogger()
	}

	return log.WithFields(logrus.Fields{
		"debug":   debug,
		"version": opts.Version,
	})
}

func newDevelopmentLogger(root string) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(levelFromEnv())

	if root != "" {
		if err := os.MkdirAll(root, 0o755); err == nil {
			path := filepath.Join(root, "spindb.log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				log.SetOutput(f)
			}
		}
	}
	return log
}

func newProductionLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	log.Formatter = &logrus.JSONFormatter{}
	return log
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("SPINDB_LOG_LEVEL"))
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}
