// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/output"
	"github.com/tfctl/tunnelcfg/internal/persist"
)

var backupColumns = []output.Column{
	{Key: "name", Title: "BACKUP"},
	{Key: "taken", Title: "TAKEN"},
	{Key: "age", Title: "AGE"},
	{Key: "size", Title: "SIZE"},
}

type backupRow struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Taken string `json:"taken"`
	Age   string `json:"age"`
	Size  string `json:"size"`
	Bytes int64  `json:"bytes"`
}

// backupsCommandAction lists the backups next to the document, newest first.
func backupsCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "backups"

	path, _, err := documentArgs(cmd, 0)
	if err != nil {
		return err
	}

	artifacts, err := persist.ListBackups(path)
	if err != nil {
		return err
	}

	rows := make([]backupRow, 0, len(artifacts))
	for _, a := range artifacts {
		rows = append(rows, backupRow{
			Name:  filepath.Base(a.Path),
			Path:  a.Path,
			Taken: a.Taken.Format(time.DateTime),
			Age:   humanize.Time(a.Taken),
			Size:  humanize.Bytes(uint64(a.Size)),
			Bytes: a.Size,
		})
	}

	opts := outputOptions(cmd)
	if len(rows) == 0 && opts.Format == "text" {
		opts.Header = "No backups of " + filepath.Base(path) + "."
	}

	return output.SliceDiceSpit(rows, backupColumns, opts, stdout(cmd))
}

func backupsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "backups",
		Usage:     "list backups of the document",
		UsageText: "tunnelcfg backups [document] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewGlobalFlags("backups"),
		Action: backupsCommandAction,
	}
}
