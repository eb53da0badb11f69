// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoDocument is returned when no document path was given anywhere.
var ErrNoDocument = errors.New("no document given; pass a path, --file or set TUNNELCFG_FILE")

// ResolveDocument turns a document spec into an absolute path to an existing
// regular file. A leading ~ is expanded to the home directory.
func ResolveDocument(spec string) (string, error) {
	if spec == "" {
		return "", ErrNoDocument
	}

	if strings.HasPrefix(spec, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		spec = filepath.Join(home, spec[1:])
	}

	path, err := filepath.Abs(spec)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	return path, nil
}
