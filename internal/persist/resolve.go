// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoMatch is returned by Resolve when no backup fits the spec.
var ErrNoMatch = errors.New("no matching backup")

// Resolve picks one of backups, which must be newest first as returned by
// ListBackups. The spec can be:
//
//	empty   - the newest backup.
//	~N, -N  - the Nth backup counting back from the newest (0 is newest).
//	file    - an existing backup file, named directly.
//	stamp   - the newest backup whose timestamp starts with the given digits.
func Resolve(backups []Artifact, spec string) (Artifact, error) {
	spec = strings.TrimSpace(spec)

	switch {
	case spec == "":
		return resolveIndex(0, backups)

	case strings.HasPrefix(spec, "~"), strings.HasPrefix(spec, "-"), spec == "0":
		n, err := strconv.Atoi(strings.TrimLeft(spec, "~-"))
		if err != nil {
			return Artifact{}, fmt.Errorf("invalid backup index: %s", spec)
		}
		return resolveIndex(n, backups)

	case isFilePath(spec):
		return resolveFile(spec, backups)

	default:
		return resolveStamp(spec, backups)
	}
}

func resolveIndex(n int, backups []Artifact) (Artifact, error) {
	if n < 0 || n > len(backups)-1 {
		return Artifact{}, fmt.Errorf("%w: index %d out of range for %d backups", ErrNoMatch, n, len(backups))
	}
	return backups[n], nil
}

// resolveFile accepts any existing file. A file that is not one of backups is
// still allowed so older copies moved elsewhere can be compared.
func resolveFile(spec string, backups []Artifact) (Artifact, error) {
	path, err := filepath.Abs(spec)
	if err != nil {
		return Artifact{}, err
	}
	for _, a := range backups {
		if a.Path == path {
			return a, nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, &Error{Op: "stat backup", Path: path, Err: err}
	}
	return Artifact{Path: path, Taken: info.ModTime(), Size: info.Size(), Mode: info.Mode().Perm()}, nil
}

func resolveStamp(spec string, backups []Artifact) (Artifact, error) {
	for _, a := range backups {
		base := filepath.Base(a.Path)
		i := strings.LastIndex(base, backupInfix)
		if i >= 0 && strings.HasPrefix(base[i+len(backupInfix):], spec) {
			return a, nil
		}
	}
	return Artifact{}, fmt.Errorf("%w: no backup taken at %s", ErrNoMatch, spec)
}

func isFilePath(s string) bool {
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
