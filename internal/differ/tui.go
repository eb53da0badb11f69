// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/tunnelcfg/internal/persist"
)

// SelectBackup lets the user pick one of items. It returns false if the user
// quit without choosing.
func SelectBackup(items []persist.Artifact) (persist.Artifact, bool) {
	if len(items) == 0 {
		return persist.Artifact{}, false
	}

	p := tea.NewProgram(model{items: items})
	m, err := p.Run()
	if err != nil {
		return persist.Artifact{}, false
	}

	final := m.(model)
	if !final.chosen {
		return persist.Artifact{}, false
	}
	return items[final.cursor], true
}

type model struct {
	items  []persist.Artifact
	cursor int
	chosen bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.chosen = false
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("Select a backup to compare against:\n\n")
	for i, a := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s  %8s  %s\n", cursor, a.Taken.Format("2006-01-02 15:04:05"), humanize.Bytes(uint64(a.Size)), humanize.Time(a.Taken))
	}
	b.WriteString("\nENTER: compare, Q/ESCAPE: quit\n")
	return b.String()
}
