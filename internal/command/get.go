// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/settings"
)

// ErrNoKey is returned by get for a key the section does not hold.
var ErrNoKey = errors.New("no such setting")

func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "get"

	path, args, err := documentArgs(cmd, 1)
	if err != nil {
		return err
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	value, ok := settings.NewStore(doc).Get(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoKey, args[0])
	}

	fmt.Fprintln(stdout(cmd), value)
	return nil
}

func getCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print one setting",
		UsageText: "tunnelcfg get [document] KEY",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{NewFileFlag("get")},
		Action: getCommandAction,
	}
}
