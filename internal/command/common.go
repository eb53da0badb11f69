// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/meta"
	"github.com/tfctl/tunnelcfg/internal/output"
	"github.com/tfctl/tunnelcfg/internal/session"
	"github.com/tfctl/tunnelcfg/internal/util"
)

// ErrReported marks errors that were already shown to the user.
var ErrReported = errors.New("reported")

// ErrUsage is returned when a command gets the wrong number of arguments.
var ErrUsage = errors.New("wrong number of arguments")

// stdin is swapped by tests.
var stdin io.Reader = os.Stdin

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// reported wraps err so main does not print it a second time.
func reported(err error) error {
	return fmt.Errorf("%w: %w", ErrReported, err)
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// documentArgs splits the positional arguments into the document path and
// the want arguments the command itself takes. An extra leading argument is
// the document, otherwise --file and its sources are used.
func documentArgs(cmd *cli.Command, want int) (string, []string, error) {
	args := cmd.Args().Slice()

	spec := cmd.String("file")
	switch len(args) {
	case want:
	case want + 1:
		spec, args = args[0], args[1:]
	default:
		return "", nil, fmt.Errorf("%w: usage: %s", ErrUsage, cmd.UsageText)
	}

	path, err := util.ResolveDocument(spec)
	if err != nil {
		return "", nil, err
	}
	log.Debugf("document resolved: path=%s", path)

	return path, args, nil
}

// loadDocument reads a document without taking a backup. Read-only commands
// use it instead of a session.
func loadDocument(path string) (document.Document, error) {
	return document.Load(path, config.Layout())
}

// openSession starts an editing session on path with notifications going to
// the command's writers.
// openSession opens path for editing and reports any tunnel segments that
// will be dropped when it is saved.
func openSession(cmd *cli.Command, path string) (*session.Session, error) {
	n := cliNotifier(cmd)
	s, err := newSession(path, n)
	if err != nil {
		return nil, err
	}
	for _, sk := range s.Skipped() {
		n.Notify(session.Info, fmt.Sprintf("Ignoring tunnel %s; it will be dropped on save.", sk))
	}
	return s, nil
}

func newSession(path string, n session.Notifier) (*session.Session, error) {
	return session.Open(path, session.Options{
		Layout:   config.Layout(),
		Notifier: n,
	})
}

// cliNotifier prints info to stdout and errors to stderr. Confirmations are
// granted by --yes, otherwise asked on an interactive terminal and refused
// when there is none.
func cliNotifier(cmd *cli.Command) session.Notifier {
	return session.NotifierFunc(func(kind session.Kind, message string) bool {
		switch kind {
		case session.Info:
			fmt.Fprintln(stdout(cmd), message)
		case session.Error:
			fmt.Fprintln(stderr(cmd), "Error:", message)
		case session.Confirm:
			if cmd.Bool("yes") {
				return true
			}
			if f, ok := stdin.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
				log.Debugf("confirmation refused, stdin is not a terminal: %s", message)
				return false
			}
			return prompt(stdin, stdout(cmd), message)
		}
		return false
	})
}

// prompt asks a y/N question.
func prompt(r io.Reader, w io.Writer, message string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", message)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// outputOptions collects the rendering flags.
func outputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	}
}
