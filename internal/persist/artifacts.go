// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Artifact is a backup file found next to a document.
type Artifact struct {
	Path  string      `json:"path" yaml:"path"`
	Taken time.Time   `json:"taken" yaml:"taken"`
	Size  int64       `json:"size" yaml:"size"`
	Mode  os.FileMode `json:"mode" yaml:"mode"`
}

// ListBackups returns the backups of path, newest first. Files whose suffix
// does not carry a valid timestamp are ignored.
func ListBackups(path string) ([]Artifact, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + backupInfix

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Op: "list backups", Path: dir, Err: err}
	}

	var out []Artifact
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}

		taken, ok := parseStamp(strings.TrimPrefix(name, prefix))
		if !ok {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}

		out = append(out, Artifact{
			Path:  filepath.Join(dir, name),
			Taken: taken,
			Size:  info.Size(),
			Mode:  info.Mode().Perm(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Taken.Equal(out[j].Taken) {
			return out[i].Taken.After(out[j].Taken)
		}
		return out[i].Path > out[j].Path
	})
	return out, nil
}

// Latest returns the newest backup of path.
func Latest(path string) (Artifact, bool, error) {
	all, err := ListBackups(path)
	if err != nil || len(all) == 0 {
		return Artifact{}, false, err
	}
	return all[0], true, nil
}

// parseStamp reads the timestamp from a backup suffix, allowing the _N
// collision counter after it.
func parseStamp(suffix string) (time.Time, bool) {
	if len(suffix) < len(stampLayout) {
		return time.Time{}, false
	}

	rest := suffix[len(stampLayout):]
	if rest != "" {
		if !strings.HasPrefix(rest, "_") || strings.Trim(rest[1:], "0123456789") != "" || len(rest) == 1 {
			return time.Time{}, false
		}
	}

	t, err := time.ParseInLocation(stampLayout, suffix[:len(stampLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
