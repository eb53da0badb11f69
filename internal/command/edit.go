// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/shell"
)

// editCommandAction opens the interactive editor on the document.
func editCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "edit"

	path, _, err := documentArgs(cmd, 0)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	// The editor reports dropped tunnel segments in its own status line.
	s, err := newSession(path, cliNotifier(cmd))
	if err != nil {
		return err
	}

	return shell.Run(s)
}

func editCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit the document interactively",
		UsageText: "tunnelcfg edit [document]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{NewFileFlag("edit")},
		Action: editCommandAction,
	}
}
