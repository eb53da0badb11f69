// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/differ"
	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/persist"
)

// ErrNoTerminal is returned by interactive commands run without a terminal.
var ErrNoTerminal = errors.New("an interactive terminal is required")

// ErrNoBackups is returned by diff when there is nothing to compare with.
var ErrNoBackups = errors.New("no backups found")

// diffCommandAction compares the settings section of a backup with the
// current document. The newest backup is used unless --backup or --pick
// says otherwise.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "diff"

	path, _, err := documentArgs(cmd, 0)
	if err != nil {
		return err
	}

	backup, ok, err := pickBackup(cmd, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoBackups, path)
	}
	log.Debugf("diffing against %s", backup.Path)

	before, err := loadBackup(backup.Path, path)
	if err != nil {
		return err
	}
	after, err := loadDocument(path)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "--- %s\n+++ %s\n", filepath.Base(backup.Path), filepath.Base(path))
	_, err = differ.Diff(before.Entries(), after.Entries(), w, cmd.Bool("color"))
	return err
}

func pickBackup(cmd *cli.Command, path string) (persist.Artifact, bool, error) {
	spec := cmd.String("backup")
	if spec == "" && !cmd.Bool("pick") {
		return persist.Latest(path)
	}

	artifacts, err := persist.ListBackups(path)
	if err != nil {
		return persist.Artifact{}, false, err
	}

	if cmd.Bool("pick") {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return persist.Artifact{}, false, ErrNoTerminal
		}
		a, ok := differ.SelectBackup(artifacts)
		return a, ok, nil
	}

	a, err := persist.Resolve(artifacts, spec)
	if err != nil {
		return persist.Artifact{}, false, err
	}
	return a, true, nil
}

// loadBackup parses a backup in the format of the document it was taken of.
func loadBackup(backup, original string) (document.Document, error) {
	data, err := os.ReadFile(backup)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return document.Parse(data, document.FormatFor(original), config.Layout())
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "show changes since a backup",
		UsageText: "tunnelcfg diff [document] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewFileFlag("diff"),
			&cli.StringFlag{
				Name:    "backup",
				Aliases: []string{"b"},
				Usage:   "backup to compare with: ~N, a timestamp prefix or a file",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
				Value:   preferredBool("color"),
			},
			&cli.BoolFlag{
				Name:    "pick",
				Aliases: []string{"p"},
				Usage:   "choose the backup interactively",
				Value:   false,
			},
		},
		Action: diffCommandAction,
	}
}
