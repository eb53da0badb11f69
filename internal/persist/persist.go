// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/tunnelcfg/internal/log"
)

const (
	backupInfix = ".bak_"
	stampLayout = "20060102150405"

	// maxCollisions bounds the _N suffixes tried when two backups of the same
	// file land in the same second.
	maxCollisions = 100
)

var (
	// ErrIO marks any failure to read or write a document or backup.
	ErrIO = errors.New("i/o error")

	// ErrNoBackup is returned by Gate.Commit before a backup exists.
	ErrNoBackup = errors.New("no backup taken for this session")
)

// now is swapped in tests.
var now = time.Now

// Error carries the failed operation and path. It matches ErrIO and the
// underlying cause with errors.Is.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// BackupName returns the backup path for src taken at t.
func BackupName(src string, t time.Time) string {
	return src + backupInfix + t.Format(stampLayout)
}

// Backup copies src byte for byte to a sibling backup file with the same
// permissions and returns its path. An existing file is never overwritten.
func Backup(src string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", &Error{Op: "backup", Path: src, Err: err}
	}
	if info.IsDir() {
		return "", &Error{Op: "backup", Path: src, Err: fmt.Errorf("is a directory")}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", &Error{Op: "backup", Path: src, Err: err}
	}

	base := BackupName(src, now())
	perm := info.Mode().Perm()

	for i := 0; i < maxCollisions; i++ {
		dst := base
		if i > 0 {
			dst = fmt.Sprintf("%s_%d", base, i)
		}

		f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", &Error{Op: "backup", Path: dst, Err: err}
		}

		if err := writeAndClose(f, data, perm); err != nil {
			_ = os.Remove(dst)
			return "", &Error{Op: "backup", Path: dst, Err: err}
		}

		log.Debugf("backup written: src=%s dst=%s bytes=%d", src, dst, len(data))
		return dst, nil
	}

	return "", &Error{Op: "backup", Path: base, Err: fs.ErrExist}
}

// Commit replaces path with data. The bytes go to a temp file in the same
// directory which is then renamed over path, so a failed write leaves the
// original in place. The original permissions are kept.
func Commit(data []byte, path string) error {
	perm := os.FileMode(0o644) //nolint:mnd
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return &Error{Op: "commit", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data, perm); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Op: "commit", Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Op: "commit", Path: path, Err: err}
	}

	log.Debugf("committed: path=%s bytes=%d", path, len(data))
	return nil
}

func writeAndClose(f *os.File, data []byte, perm os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// OpenFile and CreateTemp are subject to umask.
	return os.Chmod(f.Name(), perm)
}

// Gate enforces backup-before-commit for one editing session.
type Gate struct {
	path   string
	backup string
}

// NewGate returns a gate for the document at path. No I/O happens until
// Begin.
func NewGate(path string) *Gate {
	return &Gate{path: path}
}

// Path returns the guarded document path.
func (g *Gate) Path() string {
	return g.path
}

// Begin takes the session backup. Later calls return the same backup path
// without copying again.
func (g *Gate) Begin() (string, error) {
	if g.backup != "" {
		return g.backup, nil
	}

	dst, err := Backup(g.path)
	if err != nil {
		return "", err
	}
	g.backup = dst
	return dst, nil
}

// BackupPath returns the session backup, or "" before Begin succeeds.
func (g *Gate) BackupPath() string {
	return g.backup
}

// Commit writes data over the guarded document. It refuses to run before
// Begin has succeeded.
func (g *Gate) Commit(data []byte) error {
	if g.backup == "" {
		return fmt.Errorf("commit %s: %w", g.path, ErrNoBackup)
	}
	return Commit(data, g.path)
}
