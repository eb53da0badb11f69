// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/tunnelcfg/internal/session"
	"github.com/tfctl/tunnelcfg/internal/settings"
)

// Form field indexes. Focus 0 is the tunnel list.
const (
	fieldSSHHost = iota
	fieldSSHPort
	fieldSSHUser
	fieldMaxTunnels
	fieldHeartbeat
	fieldRemoteHost
	fieldRemotePort
	fieldLocalHost
	fieldLocalPort
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"SSH host", "SSH port", "SSH user", "Max tunnels", "Heartbeat (ms)",
	"Remote host", "Remote port", "Local host", "Local port",
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	labelStyle    = lipgloss.NewStyle().Width(16)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingRemove
	pendingQuit
)

// Run starts the editor on s and blocks until the user quits.
func Run(s *session.Session) error {
	_, err := tea.NewProgram(newModel(s), tea.WithAltScreen()).Run()
	return err
}

type model struct {
	s       *session.Session
	n       *notifier
	inputs  []textinput.Model
	focus   int // -1 is the tunnel list
	cursor  int
	pending pendingKind
	dirty   bool
}

func newModel(s *session.Session) model {
	n := &notifier{}
	s.SetNotifier(n)

	m := model{s: s, n: n, focus: -1}
	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 256
		m.inputs[i] = ti
	}

	b := s.Basic()
	m.inputs[fieldSSHHost].SetValue(b.SSHHost)
	m.inputs[fieldSSHPort].SetValue(b.SSHPort)
	m.inputs[fieldSSHUser].SetValue(b.SSHUser)
	m.inputs[fieldMaxTunnels].SetValue(b.MaxTunnels)
	m.inputs[fieldHeartbeat].SetValue(b.HeartbeatMs)

	if skipped := s.Skipped(); len(skipped) > 0 {
		n.Notify(session.Error, fmt.Sprintf("%d malformed tunnel entries were dropped on load", len(skipped)))
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) basic() settings.Basic {
	return settings.Basic{
		SSHHost:     m.inputs[fieldSSHHost].Value(),
		SSHPort:     m.inputs[fieldSSHPort].Value(),
		SSHUser:     m.inputs[fieldSSHUser].Value(),
		MaxTunnels:  m.inputs[fieldMaxTunnels].Value(),
		HeartbeatMs: m.inputs[fieldHeartbeat].Value(),
	}
}

func (m model) tunnelFields() session.TunnelFields {
	return session.TunnelFields{
		RemoteHost: m.inputs[fieldRemoteHost].Value(),
		RemotePort: m.inputs[fieldRemotePort].Value(),
		LocalHost:  m.inputs[fieldLocalHost].Value(),
		LocalPort:  m.inputs[fieldLocalPort].Value(),
	}
}

func (m *model) setTunnelFields(f session.TunnelFields) {
	m.inputs[fieldRemoteHost].SetValue(f.RemoteHost)
	m.inputs[fieldRemotePort].SetValue(f.RemotePort)
	m.inputs[fieldLocalHost].SetValue(f.LocalHost)
	m.inputs[fieldLocalPort].SetValue(f.LocalPort)
}

func (m *model) setFocus(i int) {
	if m.focus >= 0 {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if m.focus >= 0 {
		m.inputs[m.focus].Focus()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.pending != pendingNone {
		return m.answer(key.String() == "y" || key.String() == "Y")
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus+2)%(fieldCount+1) - 1)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus+fieldCount+1)%(fieldCount+1) - 1)
		return m, nil
	case "esc":
		m.setFocus(-1)
		return m, nil
	case "ctrl+s":
		m.save()
		return m, nil
	case "ctrl+n":
		m.add()
		return m, nil
	case "ctrl+u":
		m.update()
		return m, nil
	}

	if m.focus >= 0 {
		before := m.inputs[m.focus].Value()
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		// Tunnel fields are a scratch buffer until add or update.
		if m.focus <= fieldHeartbeat && m.inputs[m.focus].Value() != before {
			m.dirty = true
		}
		return m, cmd
	}

	n := len(m.s.Tunnels())
	switch key.String() {
	case "q":
		if m.dirty {
			m.pending = pendingQuit
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter":
		if f, err := m.s.Select(m.cursor); err == nil {
			m.n.clear()
			m.setTunnelFields(f)
		}
	case "a":
		m.add()
	case "u":
		m.update()
	case "d", "delete":
		if n > 0 {
			m.pending = pendingRemove
		}
	case "s":
		m.save()
	}
	return m, nil
}

// answer resolves a y/n prompt.
func (m model) answer(yes bool) (tea.Model, tea.Cmd) {
	kind := m.pending
	m.pending = pendingNone
	if !yes {
		m.n.clear()
		return m, nil
	}

	switch kind {
	case pendingQuit:
		return m, tea.Quit
	case pendingRemove:
		m.n.armed = true
		err := m.s.RemoveTunnel(m.cursor)
		m.n.armed = false
		if err == nil {
			m.dirty = true
			m.n.Notify(session.Info, "Tunnel removed.")
			if m.cursor >= len(m.s.Tunnels()) && m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m *model) add() {
	if err := m.s.AddTunnel(m.tunnelFields()); err != nil {
		return
	}
	m.dirty = true
	m.cursor = len(m.s.Tunnels()) - 1
	m.n.Notify(session.Info, "Tunnel added.")
}

func (m *model) update() {
	if err := m.s.UpdateTunnel(m.tunnelFields()); err != nil {
		return
	}
	m.dirty = true
	m.n.Notify(session.Info, "Tunnel updated.")
}

func (m *model) save() {
	if err := m.s.Save(m.basic()); err != nil {
		return
	}
	m.dirty = false
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tunnelcfg  "+m.s.Path()) + "\n\n")

	for i := fieldSSHHost; i <= fieldHeartbeat; i++ {
		b.WriteString(m.fieldLine(i))
	}

	b.WriteString("\n" + titleStyle.Render("Tunnels") + "\n")
	tunnels := m.s.Tunnels()
	if len(tunnels) == 0 {
		b.WriteString(helpStyle.Render("  (none)") + "\n")
	}
	sel, hasSel := m.s.Selected()
	for i, r := range tunnels {
		cursor := " "
		if m.focus == -1 && i == m.cursor {
			cursor = ">"
		}
		mark := " "
		if hasSel && sel == i {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s %2d  %s:%d -> %s:%d", cursor, mark, i, r.RemoteHost, r.RemotePort, r.LocalHost, r.LocalPort)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	for i := fieldRemoteHost; i <= fieldLocalPort; i++ {
		b.WriteString(m.fieldLine(i))
	}

	b.WriteString("\n" + m.statusLine() + "\n")
	b.WriteString(helpStyle.Render("TAB: next field  ESC: list  ENTER: edit  a/^N: add  u/^U: update  d: remove  s/^S: save  q: quit") + "\n")
	return b.String()
}

func (m model) fieldLine(i int) string {
	cursor := "  "
	if m.focus == i {
		cursor = "> "
	}
	return cursor + labelStyle.Render(fieldLabels[i]) + m.inputs[i].View() + "\n"
}

func (m model) statusLine() string {
	switch m.pending {
	case pendingRemove:
		return errorStyle.Render(fmt.Sprintf("Remove tunnel %d? (y/n)", m.cursor))
	case pendingQuit:
		return errorStyle.Render("Discard unsaved changes and quit? (y/n)")
	}

	if m.n.message == "" {
		return ""
	}
	if m.n.kind == session.Error {
		return errorStyle.Render(m.n.message)
	}
	return infoStyle.Render(m.n.message)
}
