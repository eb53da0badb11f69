// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/persist"
	"github.com/tfctl/tunnelcfg/internal/validate"
)

const fixture = `<?xml version="1.0" encoding="utf-8"?>
<configuration>
  <appSettings>
    <add key="SshHost" value="gw.example.com"/>
    <add key="SshPort" value="22"/>
    <add key="SshUser" value="ops"/>
    <add key="MaxTunnels" value="5"/>
    <add key="HeartbeatIntervalMs" value="30000"/>
    <add key="Tunnels" value="10.0.0.1:3389:127.0.0.1:3389,10.0.0.2:22:127.0.0.1:2222"/>
  </appSettings>
</configuration>
`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	t.Setenv("TUNNELCFG_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("TUNNELCFG_FILE", "")
	config.Config = config.Type{}

	path := filepath.Join(t.TempDir(), "app.config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the app with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	args = append([]string{"tunnelcfg"}, args...)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(context.Background(), args)
	return out.String(), errOut.String(), err
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGet(t *testing.T) {
	path := writeDoc(t, fixture)

	out, _, err := run(t, "get", path, "SshUser")
	require.NoError(t, err)
	assert.Equal(t, "ops\n", out)

	_, _, err = run(t, "get", path, "Nope")
	assert.ErrorIs(t, err, ErrNoKey)

	_, _, err = run(t, "get", path)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestGetFromFileFlagAndEnv(t *testing.T) {
	path := writeDoc(t, fixture)

	out, _, err := run(t, "get", "--file", path, "SshHost")
	require.NoError(t, err)
	assert.Equal(t, "gw.example.com\n", out)

	t.Setenv("TUNNELCFG_FILE", path)
	out, _, err = run(t, "get", "SshPort")
	require.NoError(t, err)
	assert.Equal(t, "22\n", out)
}

func TestShowJSON(t *testing.T) {
	path := writeDoc(t, fixture)

	out, _, err := run(t, "show", path, "--output", "json", "--filter", "key=SshUser")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "ops", rows[0]["value"])
}

func TestShowRejectsUnknownOutput(t *testing.T) {
	path := writeDoc(t, fixture)

	_, _, err := run(t, "show", path, "--output", "raw")
	assert.Error(t, err)
}

func TestSetSavesWithBackup(t *testing.T) {
	path := writeDoc(t, fixture)

	out, _, err := run(t, "set", path, "SshUser", "deploy")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	assert.Contains(t, readDoc(t, path), `<add key="SshUser" value="deploy"/>`)

	backups, err := persist.ListBackups(path)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, fixture, readDoc(t, backups[0].Path))
}

func TestSetReportsDroppedTunnels(t *testing.T) {
	doc := strings.Replace(fixture, "10.0.0.1:3389:127.0.0.1:3389,", "broken,", 1)
	path := writeDoc(t, doc)

	out, _, err := run(t, "set", path, "SshUser", "deploy")
	require.NoError(t, err)
	assert.Contains(t, out, `Ignoring tunnel segment 0 "broken"`)
	assert.Contains(t, out, "Saved")
	assert.NotContains(t, readDoc(t, path), "broken")
}

func TestSetRejectsBadSetting(t *testing.T) {
	path := writeDoc(t, fixture)

	_, errOut, err := run(t, "set", path, "SshPort", "twenty-two")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReported)
	assert.ErrorIs(t, err, validate.ErrNonNumericSetting)
	assert.Contains(t, errOut, "Invalid sshPort")
	assert.Equal(t, fixture, readDoc(t, path))
}

func TestTunnelsList(t *testing.T) {
	path := writeDoc(t, fixture)

	out, _, err := run(t, "tunnels", "list", path, "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "remoteHost: 10.0.0.2")
	assert.Contains(t, out, "localPort: 2222")
}

func TestTunnelsAddUpdateRemove(t *testing.T) {
	path := writeDoc(t, fixture)

	_, _, err := run(t, "tunnels", "add", path, "10.0.0.3", "80", "127.0.0.1", "8080")
	require.NoError(t, err)
	assert.Contains(t, readDoc(t, path), "10.0.0.2:22:127.0.0.1:2222,10.0.0.3:80:127.0.0.1:8080")

	_, _, err = run(t, "tunnels", "update", "--local-port", "9090", path, "2")
	require.NoError(t, err)
	assert.Contains(t, readDoc(t, path), "10.0.0.3:80:127.0.0.1:9090")

	_, _, err = run(t, "tunnels", "remove", "--yes", path, "0")
	require.NoError(t, err)
	assert.Contains(t, readDoc(t, path), `value="10.0.0.2:22:127.0.0.1:2222,10.0.0.3:80:127.0.0.1:9090"`)
}

func TestTunnelsAddRejectsBadPort(t *testing.T) {
	path := writeDoc(t, fixture)

	_, errOut, err := run(t, "tunnels", "add", path, "10.0.0.3", "http", "127.0.0.1", "8080")
	assert.ErrorIs(t, err, validate.ErrNonNumericPort)
	assert.Contains(t, errOut, "Invalid remotePort")
	assert.Equal(t, fixture, readDoc(t, path))
}

func TestTunnelsRemovePrompts(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		removed bool
	}{
		{"yes", "y\n", true},
		{"no", "n\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDoc(t, fixture)

			orig := stdin
			stdin = strings.NewReader(tt.answer)
			t.Cleanup(func() { stdin = orig })

			out, _, err := run(t, "tunnels", "remove", path, "1")
			require.NoError(t, err)
			assert.Contains(t, out, "Remove tunnel 1")

			doc := readDoc(t, path)
			if tt.removed {
				assert.NotContains(t, doc, "10.0.0.2")
			} else {
				assert.Contains(t, out, "Nothing removed.")
				assert.Equal(t, fixture, doc)
			}
		})
	}
}

func TestTunnelsBadPosition(t *testing.T) {
	path := writeDoc(t, fixture)

	_, _, err := run(t, "tunnels", "remove", "--yes", path, "first")
	assert.ErrorIs(t, err, ErrPosition)

	_, errOut, err := run(t, "tunnels", "remove", "--yes", path, "7")
	assert.ErrorIs(t, err, ErrReported)
	assert.Contains(t, errOut, "No tunnel at that position.")
}

func TestValidate(t *testing.T) {
	path := writeDoc(t, fixture)

	out, _, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 tunnels)")

	bad := strings.Replace(fixture, `value="22"`, `value="x"`, 1)
	bad = strings.Replace(bad, "10.0.0.1:3389:127.0.0.1:3389,", "broken,", 1)
	path = writeDoc(t, bad)

	_, errOut, err := run(t, "validate", path)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, errOut, "Invalid sshPort")
	assert.Contains(t, errOut, `"broken"`)
	assert.Equal(t, bad, readDoc(t, path))
}

func TestBackupsAndDiff(t *testing.T) {
	path := writeDoc(t, fixture)

	_, _, err := run(t, "diff", path)
	assert.ErrorIs(t, err, ErrNoBackups)

	_, _, err = run(t, "set", path, "MaxTunnels", "9")
	require.NoError(t, err)

	out, _, err := run(t, "backups", path, "--output", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0]["name"].(string), "app.config.bak_"))

	out, _, err = run(t, "diff", path)
	require.NoError(t, err)
	assert.Contains(t, out, "MaxTunnels")
	assert.Contains(t, out, "9")
	assert.NotContains(t, out, "identical")
}

func TestCompletion(t *testing.T) {
	writeDoc(t, fixture)

	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _tunnelcfg tunnelcfg")
}

func TestOutputValidator(t *testing.T) {
	assert.NoError(t, OutputValidator("yaml"))
	assert.Error(t, OutputValidator("raw"))
	assert.NoError(t, PaddingValidator(2))
	assert.Error(t, PaddingValidator(-1))
}

func TestPrompt(t *testing.T) {
	var w bytes.Buffer
	assert.True(t, prompt(strings.NewReader("YES\n"), &w, "Go?"))
	assert.Equal(t, "Go? [y/N]: ", w.String())
	assert.False(t, prompt(strings.NewReader("\n"), &w, "Go?"))
}

func TestDiffAgainstNamedBackup(t *testing.T) {
	path := writeDoc(t, fixture)

	older := persist.BackupName(path, time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local))
	require.NoError(t, os.WriteFile(older, []byte(strings.Replace(fixture, `value="ops"`, `value="root"`, 1)), 0o644))

	out, _, err := run(t, "diff", path, "--backup", "2020")
	require.NoError(t, err)
	assert.Contains(t, out, "root")
	assert.Contains(t, out, filepath.Base(older))

	_, _, err = run(t, "diff", path, "--backup", "~4")
	assert.ErrorIs(t, err, persist.ErrNoMatch)
}

func TestBoolFlagNames(t *testing.T) {
	names := BoolFlagNames()

	for _, n := range []string{"--yes", "-y", "--titles", "-t", "--color", "-c", "--pick", "-p", "--version", "-v"} {
		assert.True(t, names[n], n)
	}
	for _, n := range []string{"--file", "-F", "--output", "--backup", "--padding"} {
		assert.False(t, names[n], n)
	}
}

func TestDiffIdenticalReportsOnce(t *testing.T) {
	path := writeDoc(t, fixture)

	backup := persist.BackupName(path, time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local))
	require.NoError(t, os.WriteFile(backup, []byte(fixture), 0o644))

	out, _, err := run(t, "diff", path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "The settings are identical."))
	assert.NotContains(t, out, "No changes.")
}

func TestGlobalFlagDefaultsFromPreferences(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "tunnelcfg.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("titles: true\npadding: 5\ncolor: maybe\n"), 0o600))
	t.Setenv("TUNNELCFG_CFG_FILE", cfg)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	values := map[string]any{}
	for _, f := range NewGlobalFlags("show") {
		switch f := f.(type) {
		case *cli.BoolFlag:
			values[f.Name] = f.Value
		case *cli.IntFlag:
			values[f.Name] = f.Value
		}
	}

	assert.Equal(t, true, values["titles"])
	assert.Equal(t, 5, values["padding"])
	assert.Equal(t, false, values["color"])
}
