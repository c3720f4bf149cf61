// Package session manages named, directory-backed scan sessions. A session
// maps a user-chosen name to a directory under the sessions root; scan
// artifacts produced while the session is active accumulate inside it.
package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/redeyescan/redeye/internal/errors"
)

const (
	dirPerm = 0750

	// ArtifactPrefix starts every scan artifact file name.
	ArtifactPrefix = "scan_"

	// Artifact extensions: human-readable and machine-parseable output.
	PlainExt      = ".nmap"
	StructuredExt = ".xml"
	ReportExt     = ".html"
)

// timestampLayout names artifacts so lexicographic order is chronological.
const timestampLayout = "2006-01-02_15-04-05"

// Session is a handle to an active session. Sessions are addressed by
// name; the directory is derived from the store root.
type Session struct {
	Name string
	Dir  string
}

// Store manages session directories under a single root.
type Store struct {
	Root string
}

// NewStore returns a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Create validates the name and creates the session directory if it does
// not already exist. Creating an existing session is not an error; the
// existing directory is reused.
func (s *Store) Create(name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrEmptyInput("Session name")
	}

	dir := filepath.Join(s.Root, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.WrapToolError(errors.CodeDirectoryCreate, "Failed to create session directory", "", err)
	}

	return &Session{Name: name, Dir: dir}, nil
}

// ListArtifacts returns the file names in the session directory that end
// with the given suffix, sorted lexicographically. An absent directory or
// no matches yields an empty slice, never an error.
func (s *Store) ListArtifacts(name, suffix string) []string {
	entries, err := os.ReadDir(filepath.Join(s.Root, name))
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files
}

// ArtifactPath joins a file name produced by ListArtifacts back into an
// absolute-enough path inside the session directory.
func (s *Store) ArtifactPath(name, file string) string {
	return filepath.Join(s.Root, name, file)
}

// ArtifactBase returns the extension-less base path for a new scan
// artifact pair recorded at the given time.
func (sess *Session) ArtifactBase(now time.Time) string {
	return filepath.Join(sess.Dir, ArtifactPrefix+now.Format(timestampLayout))
}
