// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/tunnelcfg/internal/command"
	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// expandSet replaces an @name argument with the argument set stored under
// <command>.<name> in the preferences file.
func expandSet(args []string, lookup func(key string) []string) []string {
	if len(args) < 3 {
		return args
	}

	for i := 2; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") {
			continue
		}

		var expanded []string
		for _, entry := range lookup(args[1] + "." + args[i][1:]) {
			expanded = append(expanded, strings.Fields(entry)...)
		}
		log.Debugf("set %s expanded: %v", args[i], expanded)

		out := make([]string, 0, len(args)-1+len(expanded))
		out = append(out, args[:i]...)
		out = append(out, expanded...)
		return append(out, args[i+1:]...)
	}

	return args
}

// deduplicateFlags keeps only the last occurrence of each flag so that
// values from an expanded set can be overridden on the command line. A flag
// not in boolFlags takes the following non-flag argument as its value.
func deduplicateFlags(args []string, boolFlags map[string]bool) []string {
	if len(args) <= 2 {
		return args
	}

	type span struct {
		name       string
		start, end int
	}

	var spans []span
	last := map[string]int{}
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			continue
		}

		name, end := a, i+1
		if eq := strings.Index(a, "="); eq >= 0 {
			name = a[:eq]
		} else if !boolFlags[a] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			end = i + 2
		}

		spans = append(spans, span{name, i, end})
		last[name] = len(spans) - 1
		i = end - 1
	}

	drop := make([]bool, len(args))
	for idx, s := range spans {
		if last[s.name] == idx {
			continue
		}
		for j := s.start; j < s.end; j++ {
			drop[j] = true
		}
	}

	out := make([]string, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		// Session errors were already shown through the notifier.
		if !errors.Is(err, command.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	args = expandSet(args, func(key string) []string {
		set, _ := config.GetStringSlice(key)
		return set
	})
	args = deduplicateFlags(args, command.BoolFlagNames())
	log.Debugf("args after set processing: args=%v", args)

	return initAndRunApp(args)
}
