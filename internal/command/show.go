// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/output"
)

var settingColumns = []output.Column{
	{Key: "key", Title: "KEY"},
	{Key: "value", Title: "VALUE"},
}

// showCommandAction lists every entry of the settings section.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "show"

	path, _, err := documentArgs(cmd, 0)
	if err != nil {
		return err
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	return output.SliceDiceSpit(doc.Entries(), settingColumns, outputOptions(cmd), stdout(cmd))
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show the settings section",
		UsageText: "tunnelcfg show [document] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewGlobalFlags("show"),
		Action: showCommandAction,
	}
}
