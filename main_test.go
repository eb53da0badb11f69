// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tfctl/tunnelcfg/internal/command"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"tunnelcfg", "show"},
			expected: []string{"tunnelcfg", "show"},
		},
		{
			name:     "no duplicates",
			args:     []string{"tunnelcfg", "show", "--output", "text", "--titles"},
			expected: []string{"tunnelcfg", "show", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"tunnelcfg", "show", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"tunnelcfg", "show", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"tunnelcfg", "show", "--titles", "--color", "--titles"},
			expected: []string{"tunnelcfg", "show", "--color", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"tunnelcfg", "show", "--output=json", "--titles", "--output=text"},
			expected: []string{"tunnelcfg", "show", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"tunnelcfg", "show", "--output=json", "--output", "text"},
			expected: []string{"tunnelcfg", "show", "--output", "text"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"tunnelcfg", "show", "app.config", "--output", "json", "--output", "text"},
			expected: []string{"tunnelcfg", "show", "app.config", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"tunnelcfg", "show", "-o", "json", "-o", "text"},
			expected: []string{"tunnelcfg", "show", "-o", "text"},
		},
		{
			name:     "subcommand untouched",
			args:     []string{"tunnelcfg", "tunnels", "list", "-o", "json", "-o", "yaml"},
			expected: []string{"tunnelcfg", "tunnels", "list", "-o", "yaml"},
		},
		{
			name:     "arguments after -- untouched",
			args:     []string{"tunnelcfg", "set", "--", "-x", "-x"},
			expected: []string{"tunnelcfg", "set", "--", "-x", "-x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args, nil))
		})
	}
}

func TestDeduplicateFlagsKeepsArgumentAfterBoolFlag(t *testing.T) {
	boolFlags := command.BoolFlagNames()

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "repeated --yes keeps document and position",
			args:     []string{"tunnelcfg", "tunnels", "remove", "--yes", "app.config", "0", "--yes"},
			expected: []string{"tunnelcfg", "tunnels", "remove", "app.config", "0", "--yes"},
		},
		{
			name:     "repeated --titles keeps document",
			args:     []string{"tunnelcfg", "show", "--titles", "app.config", "--titles"},
			expected: []string{"tunnelcfg", "show", "app.config", "--titles"},
		},
		{
			name:     "short bool alias",
			args:     []string{"tunnelcfg", "show", "-c", "app.config", "-o", "json", "-c"},
			expected: []string{"tunnelcfg", "show", "app.config", "-o", "json", "-c"},
		},
		{
			name:     "value flag still takes its value",
			args:     []string{"tunnelcfg", "diff", "--backup", "~1", "app.config", "--backup", "~0"},
			expected: []string{"tunnelcfg", "diff", "app.config", "--backup", "~0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args, boolFlags))
		})
	}
}

func TestExpandSet(t *testing.T) {
	sets := map[string][]string{
		"show.wide":  {"--titles", "--output text", "--padding 4"},
		"tunnels.js": {"--output json"},
	}
	lookup := func(key string) []string { return sets[key] }

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no set",
			args:     []string{"tunnelcfg", "show", "--titles"},
			expected: []string{"tunnelcfg", "show", "--titles"},
		},
		{
			name:     "set expanded in place",
			args:     []string{"tunnelcfg", "show", "app.config", "@wide", "--color"},
			expected: []string{"tunnelcfg", "show", "app.config", "--titles", "--output", "text", "--padding", "4", "--color"},
		},
		{
			name:     "unknown set removed",
			args:     []string{"tunnelcfg", "show", "@nope"},
			expected: []string{"tunnelcfg", "show"},
		},
		{
			name:     "namespaced by command",
			args:     []string{"tunnelcfg", "tunnels", "@js", "list"},
			expected: []string{"tunnelcfg", "tunnels", "--output", "json", "list"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandSet(tt.args, lookup))
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"tunnelcfg", "--help"}, handleNakedCommand([]string{"tunnelcfg"}))
	assert.Equal(t, []string{"tunnelcfg", "show"}, handleNakedCommand([]string{"tunnelcfg", "show"}))
}

func TestHandleVersion(t *testing.T) {
	assert.False(t, handleVersion([]string{"tunnelcfg", "show"}))
	assert.True(t, handleVersion([]string{"tunnelcfg", "--version"}))
}
