// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/persist"
)

func TestDiffIdentical(t *testing.T) {
	entries := []document.Entry{{Key: "SshPort", Value: "22"}}

	var buf bytes.Buffer
	changed, err := Diff(entries, entries, &buf, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "The settings are identical.\n", buf.String())
}

func TestDiffChanged(t *testing.T) {
	before := []document.Entry{
		{Key: "SshPort", Value: "22"},
		{Key: "Tunnels", Value: "a:1:b:2,c:3:d:4"},
	}
	after := []document.Entry{
		{Key: "SshPort", Value: "2222"},
		{Key: "Tunnels", Value: "a:1:b:2,c:3:d:5"},
		{Key: "SshUser", Value: "ops"},
	}

	var buf bytes.Buffer
	changed, err := Diff(before, after, &buf, false)
	require.NoError(t, err)
	assert.True(t, changed)

	out := buf.String()
	assert.Contains(t, out, `"2222"`)
	assert.Contains(t, out, `"c:3:d:5"`)
	assert.Contains(t, out, `"SshUser"`)
}

func TestToTree(t *testing.T) {
	tree := toTree([]document.Entry{
		{Key: "Tunnels", Value: ",a:1:b:2,,"},
		{Key: "SshPort", Value: "22"},
		{Key: "SshPort", Value: "23"},
	})
	assert.Equal(t, map[string]interface{}{
		"Tunnels": []interface{}{"a:1:b:2"},
		"SshPort": "22",
	}, tree)
}

func TestSelectBackupModel(t *testing.T) {
	items := []persist.Artifact{
		{Path: "a.bak_20260101000000", Taken: time.Now().Add(-time.Hour), Size: 2048},
		{Path: "a.bak_20251231000000", Taken: time.Now().Add(-48 * time.Hour), Size: 1024},
	}

	var m tea.Model = model{items: items}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.(model).cursor)

	view := m.View()
	assert.Contains(t, view, "2.0 kB")
	assert.Contains(t, view, "> ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.(model).chosen)
	assert.NotNil(t, cmd)

	_, ok := SelectBackup(nil)
	assert.False(t, ok)
}
