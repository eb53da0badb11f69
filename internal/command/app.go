// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the subcommand and
	// also represents the namespace key to be used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load() //nolint
	cfg.Namespace = ns
	config.Config.Namespace = ns

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	return newApp(meta), nil
}

func newApp(meta meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "tunnelcfg",
		Usage: "SSH tunnel settings editor",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tunnelcfg version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		backupsCommandBuilder(meta),
		diffCommandBuilder(meta),
		editCommandBuilder(meta),
		getCommandBuilder(meta),
		setCommandBuilder(meta),
		showCommandBuilder(meta),
		tunnelsCommandBuilder(meta),
		validateCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sortFlags(app.Commands)

	return app
}

// BoolFlagNames returns every spelling ("--yes", "-y") of the boolean flags
// in the command tree. Such flags never take the following argument as a
// value.
func BoolFlagNames() map[string]bool {
	names := map[string]bool{"--help": true, "-h": true}

	var walk func(cmd *cli.Command)
	walk = func(cmd *cli.Command) {
		for _, f := range cmd.Flags {
			if _, ok := f.(*cli.BoolFlag); !ok {
				continue
			}
			for _, n := range f.Names() {
				if len(n) == 1 {
					names["-"+n] = true
				} else {
					names["--"+n] = true
				}
			}
		}
		for _, sub := range cmd.Commands {
			walk(sub)
		}
	}
	walk(newApp(meta.Meta{}))

	return names
}

func sortFlags(cmds []*cli.Command) {
	for _, cmd := range cmds {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
		sortFlags(cmd.Commands)
	}
}
