// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/session"
	"github.com/tfctl/tunnelcfg/internal/settings"
	"github.com/tfctl/tunnelcfg/internal/tunnel"
	"github.com/tfctl/tunnelcfg/internal/validate"
)

// ErrInvalid is returned by validate when the document has problems.
var ErrInvalid = errors.New("document has problems")

// validateCommandAction checks the basic settings and reports tunnel segments
// that would be dropped on load. Nothing is written.
func validateCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "validate"

	path, _, err := documentArgs(cmd, 0)
	if err != nil {
		return err
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	if !doc.HasSection() {
		return reportProblems(cmd, []string{session.Describe(document.ErrNoSection)})
	}

	store := settings.NewStore(doc)
	var problems []string

	b := store.ReadBasic()
	if err := validate.BasicSettings(b.SSHPort, b.MaxTunnels, b.HeartbeatMs); err != nil {
		problems = append(problems, session.Describe(err))
	}

	raw, _ := store.Get(settings.KeyTunnels)
	records, skipped := tunnel.DecodeReport(raw)
	for _, s := range skipped {
		problems = append(problems, fmt.Sprintf("Tunnel %s would be dropped.", s))
	}

	if len(problems) > 0 {
		return reportProblems(cmd, problems)
	}

	fmt.Fprintf(stdout(cmd), "%s is valid (%d tunnels).\n", path, len(records))
	return nil
}

func reportProblems(cmd *cli.Command, problems []string) error {
	for _, p := range problems {
		fmt.Fprintln(stderr(cmd), p)
	}
	return reported(fmt.Errorf("%w: %d found", ErrInvalid, len(problems)))
}

func validateCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check the document without changing it",
		UsageText: "tunnelcfg validate [document]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{NewFileFlag("validate")},
		Action: validateCommandAction,
	}
}
