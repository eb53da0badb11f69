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
	"github.com/tfctl/tunnelcfg/internal/output"
	"github.com/tfctl/tunnelcfg/internal/session"
	"github.com/tfctl/tunnelcfg/internal/settings"
	"github.com/tfctl/tunnelcfg/internal/tunnel"
	"github.com/tfctl/tunnelcfg/internal/validate"
)

// ErrPosition is returned for a tunnel position that is not a number.
var ErrPosition = errors.New("invalid tunnel position")

var tunnelColumns = []output.Column{
	{Key: "pos", Title: "#"},
	{Key: "remoteHost", Title: "REMOTE HOST"},
	{Key: "remotePort", Title: "REMOTE PORT"},
	{Key: "localHost", Title: "LOCAL HOST"},
	{Key: "localPort", Title: "LOCAL PORT"},
}

type tunnelRow struct {
	Pos        int    `json:"pos"`
	RemoteHost string `json:"remoteHost"`
	RemotePort int    `json:"remotePort"`
	LocalHost  string `json:"localHost"`
	LocalPort  int    `json:"localPort"`
}

func tunnelsListAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "tunnels"

	path, _, err := documentArgs(cmd, 0)
	if err != nil {
		return err
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	raw, _ := settings.NewStore(doc).Get(settings.KeyTunnels)
	records, skipped := tunnel.DecodeReport(raw)
	for _, s := range skipped {
		log.Warnf("ignoring tunnel %s", s)
	}

	rows := make([]tunnelRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, tunnelRow{
			Pos:        i,
			RemoteHost: r.RemoteHost,
			RemotePort: r.RemotePort,
			LocalHost:  r.LocalHost,
			LocalPort:  r.LocalPort,
		})
	}

	return output.SliceDiceSpit(rows, tunnelColumns, outputOptions(cmd), stdout(cmd))
}

func tunnelsAddAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	path, args, err := documentArgs(cmd, 4)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, path)
	if err != nil {
		return err
	}

	f := session.TunnelFields{
		RemoteHost: args[0],
		RemotePort: args[1],
		LocalHost:  args[2],
		LocalPort:  args[3],
	}
	if err := s.AddTunnel(f); err != nil {
		return reported(err)
	}

	return save(s)
}

func tunnelsUpdateAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	path, args, err := documentArgs(cmd, 1)
	if err != nil {
		return err
	}

	pos, err := position(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd, path)
	if err != nil {
		return err
	}

	f, err := s.Select(pos)
	if err != nil {
		return reported(err)
	}
	for name, field := range map[string]*string{
		"remote-host": &f.RemoteHost,
		"remote-port": &f.RemotePort,
		"local-host":  &f.LocalHost,
		"local-port":  &f.LocalPort,
	} {
		if cmd.IsSet(name) {
			*field = cmd.String(name)
		}
	}

	if err := s.UpdateTunnel(f); err != nil {
		return reported(err)
	}

	return save(s)
}

func tunnelsRemoveAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	path, args, err := documentArgs(cmd, 1)
	if err != nil {
		return err
	}

	pos, err := position(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd, path)
	if err != nil {
		return err
	}

	if err := s.RemoveTunnel(pos); err != nil {
		if errors.Is(err, session.ErrDeclined) {
			fmt.Fprintln(stdout(cmd), "Nothing removed.")
			return nil
		}
		return reported(err)
	}

	return save(s)
}

// save commits the session with the basic settings it already holds.
func save(s *session.Session) error {
	if err := s.Save(s.Basic()); err != nil {
		return reported(err)
	}
	return nil
}

func position(arg string) (int, error) {
	pos, ok := validate.ParseInt(arg)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrPosition, arg)
	}
	return pos, nil
}

func tunnelsCommandBuilder(meta meta.Meta) *cli.Command {
	metadata := map[string]any{
		"meta": meta,
	}

	fieldFlag := func(name, usage string) *cli.StringFlag {
		return &cli.StringFlag{Name: name, Usage: usage}
	}

	return &cli.Command{
		Name:      "tunnels",
		Usage:     "list and edit the tunnel list",
		UsageText: "tunnelcfg tunnels list|add|update|remove",
		Metadata:  metadata,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "list tunnels",
				UsageText: "tunnelcfg tunnels list [document] [options]",
				Metadata:  metadata,
				Flags:     NewGlobalFlags("tunnels"),
				Action:    tunnelsListAction,
			},
			{
				Name:      "add",
				Usage:     "append a tunnel",
				UsageText: "tunnelcfg tunnels add [document] REMOTE_HOST REMOTE_PORT LOCAL_HOST LOCAL_PORT",
				Metadata:  metadata,
				Flags:     []cli.Flag{NewFileFlag("tunnels")},
				Action:    tunnelsAddAction,
			},
			{
				Name:      "update",
				Usage:     "change fields of the tunnel at a position",
				UsageText: "tunnelcfg tunnels update [document] POS [options]",
				Metadata:  metadata,
				Flags: []cli.Flag{
					NewFileFlag("tunnels"),
					fieldFlag("remote-host", "new remote host"),
					fieldFlag("remote-port", "new remote port"),
					fieldFlag("local-host", "new local host"),
					fieldFlag("local-port", "new local port"),
				},
				Action: tunnelsUpdateAction,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "remove the tunnel at a position",
				UsageText: "tunnelcfg tunnels remove [document] POS [options]",
				Metadata:  metadata,
				Flags:     []cli.Flag{NewFileFlag("tunnels"), yesFlag},
				Action:    tunnelsRemoveAction,
			},
		},
	}
}
