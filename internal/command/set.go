// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
)

// setCommandAction writes one setting and saves the document. The basic
// settings are validated on save as they are in the editor.
func setCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "set"

	path, args, err := documentArgs(cmd, 2)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, path)
	if err != nil {
		return err
	}

	if err := s.Set(args[0], args[1]); err != nil {
		return reported(err)
	}
	if err := s.Save(s.Basic()); err != nil {
		return reported(err)
	}

	return nil
}

func setCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "write one setting",
		UsageText: "tunnelcfg set [document] KEY VALUE",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{NewFileFlag("set")},
		Action: setCommandAction,
	}
}
