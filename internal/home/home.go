package home

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	// DefaultDirName is the default name for the skanbot home directory.
	DefaultDirName = ".skanbot"

	// InboxDirName is the subdirectory watched for incoming scans.
	InboxDirName = "inbox"

	// TempDirName is the subdirectory for preprocessed image variants.
	TempDirName = "tmp"

	// ExportsDirName is the subdirectory for cache exports.
	ExportsDirName = "exports"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// GarbageFileName is the learned garbage dictionary file name.
	GarbageFileName = "garbage.json"

	// CacheFileName is the answer cache database file name.
	CacheFileName = "cache.db"
)

// Dir represents the skanbot home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.skanbot).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// InboxPath returns the directory watched for new scans.
func (d *Dir) InboxPath() string {
	return filepath.Join(d.path, InboxDirName)
}

// TempPath returns the directory for preprocessed image variants.
func (d *Dir) TempPath() string {
	return filepath.Join(d.path, TempDirName)
}

// ExportsPath returns the directory for cache export files.
func (d *Dir) ExportsPath() string {
	return filepath.Join(d.path, ExportsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// GarbagePath returns the path to the garbage dictionary file.
func (d *Dir) GarbagePath() string {
	return filepath.Join(d.path, GarbageFileName)
}

// CachePath returns the path to the answer cache database.
func (d *Dir) CachePath() string {
	return filepath.Join(d.path, CacheFileName)
}

// TempImagePath returns a unique path for one preprocessed variant of an
// image. The extension is kept so external tools can sniff the format.
func (d *Dir) TempImagePath(ext string) string {
	return filepath.Join(d.TempPath(), uuid.NewString()+ext)
}

// ExportPath returns the path for a named cache export file.
func (d *Dir) ExportPath(name string) string {
	return filepath.Join(d.ExportsPath(), name)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.InboxPath(), d.TempPath(), d.ExportsPath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
