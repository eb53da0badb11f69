// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/persist"
	"github.com/tfctl/tunnelcfg/internal/settings"
	"github.com/tfctl/tunnelcfg/internal/tunnel"
	"github.com/tfctl/tunnelcfg/internal/validate"
)

// ErrNoSelection is returned by UpdateTunnel when no tunnel is selected.
var ErrNoSelection = errors.New("no tunnel selected")

// ErrDeclined is returned when the user answers no to a confirmation.
var ErrDeclined = errors.New("declined")

// Options tune Open.
type Options struct {
	Layout   document.Layout
	Notifier Notifier
}

// TunnelFields is a tunnel as typed into an editor.
type TunnelFields struct {
	RemoteHost string `json:"remoteHost" yaml:"remoteHost"`
	RemotePort string `json:"remotePort" yaml:"remotePort"`
	LocalHost  string `json:"localHost" yaml:"localHost"`
	LocalPort  string `json:"localPort" yaml:"localPort"`
}

// FieldsOf renders r for editing.
func FieldsOf(r tunnel.Record) TunnelFields {
	return TunnelFields{
		RemoteHost: r.RemoteHost,
		RemotePort: strconv.Itoa(r.RemotePort),
		LocalHost:  r.LocalHost,
		LocalPort:  strconv.Itoa(r.LocalPort),
	}
}

// Record validates f and converts it.
func (f TunnelFields) Record() (tunnel.Record, error) {
	return tunnel.FromFields(f.RemoteHost, f.RemotePort, f.LocalHost, f.LocalPort)
}

// Session owns everything one edit of one document needs. It is not safe for
// concurrent use.
type Session struct {
	path    string
	doc     document.Document
	store   *settings.Store
	tunnels *tunnel.Collection
	skipped []tunnel.Skipped
	gate    *persist.Gate
	notify  Notifier
}

// Open loads the document at path, takes the session backup and decodes the
// tunnel list. A failed backup is fatal: no session is returned.
func Open(path string, opts Options) (*Session, error) {
	n := opts.Notifier
	if n == nil {
		n = quiet{}
	}

	doc, err := document.Load(path, opts.Layout)
	if err != nil {
		return nil, err
	}

	gate := persist.NewGate(path)
	backup, err := gate.Begin()
	if err != nil {
		return nil, fmt.Errorf("refusing to edit without a backup: %w", err)
	}
	log.Infof("backup of %s written to %s", path, backup)

	store := settings.NewStore(doc)
	raw, _ := store.Get(settings.KeyTunnels)
	records, skipped := tunnel.DecodeReport(raw)
	for _, s := range skipped {
		log.Warnf("ignoring tunnel %s", s)
	}

	return &Session{
		path:    path,
		doc:     doc,
		store:   store,
		tunnels: tunnel.NewCollection(records),
		skipped: skipped,
		gate:    gate,
		notify:  n,
	}, nil
}

// Path returns the document path.
func (s *Session) Path() string { return s.path }

// BackupPath returns the backup taken when the session opened.
func (s *Session) BackupPath() string { return s.gate.BackupPath() }

// Store exposes the settings section.
func (s *Session) Store() *settings.Store { return s.store }

// Tunnels returns the current tunnel list.
func (s *Session) Tunnels() []tunnel.Record { return s.tunnels.All() }

// Skipped returns the tunnel segments dropped when the document was loaded.
func (s *Session) Skipped() []tunnel.Skipped { return s.skipped }

// Basic returns the basic settings currently in the document.
func (s *Session) Basic() settings.Basic { return s.store.ReadBasic() }

// SetNotifier replaces the notifier.
func (s *Session) SetNotifier(n Notifier) {
	if n == nil {
		n = quiet{}
	}
	s.notify = n
}

// Selected returns the position being edited, if any.
func (s *Session) Selected() (int, bool) { return s.tunnels.Selected() }

// ClearSelection drops the selection.
func (s *Session) ClearSelection() { s.tunnels.ClearSelection() }

// Select marks pos for editing and returns its fields.
func (s *Session) Select(pos int) (TunnelFields, error) {
	if err := s.tunnels.Select(pos); err != nil {
		return TunnelFields{}, s.fail(err)
	}
	r, _ := s.tunnels.At(pos)
	return FieldsOf(r), nil
}

// AddTunnel validates f and appends it.
func (s *Session) AddTunnel(f TunnelFields) error {
	r, err := f.Record()
	if err != nil {
		return s.fail(err)
	}
	s.tunnels.Append(r)
	log.Debugf("tunnel added: %s", r)
	return nil
}

// UpdateTunnel validates f and replaces the selected tunnel with it.
func (s *Session) UpdateTunnel(f TunnelFields) error {
	pos, ok := s.tunnels.Selected()
	if !ok {
		return s.fail(ErrNoSelection)
	}
	return s.ReplaceTunnel(pos, f)
}

// ReplaceTunnel validates f and writes it at pos.
func (s *Session) ReplaceTunnel(pos int, f TunnelFields) error {
	r, err := f.Record()
	if err != nil {
		return s.fail(err)
	}
	if err := s.tunnels.ReplaceAt(pos, r); err != nil {
		return s.fail(err)
	}
	log.Debugf("tunnel %d updated: %s", pos, r)
	return nil
}

// RemoveTunnel asks for confirmation and removes the tunnel at pos.
func (s *Session) RemoveTunnel(pos int) error {
	r, err := s.tunnels.At(pos)
	if err != nil {
		return s.fail(err)
	}
	if !s.notify.Notify(Confirm, fmt.Sprintf("Remove tunnel %d (%s)?", pos, r)) {
		return ErrDeclined
	}
	if err := s.tunnels.RemoveAt(pos); err != nil {
		return s.fail(err)
	}
	log.Debugf("tunnel %d removed: %s", pos, r)
	return nil
}

// Set writes a raw setting. The Tunnels key is routed through the codec so
// the in-memory list stays authoritative.
func (s *Session) Set(key, value string) error {
	if key == settings.KeyTunnels {
		records, skipped := tunnel.DecodeReport(value)
		if len(skipped) > 0 {
			return s.fail(fmt.Errorf("invalid tunnel %s", skipped[0]))
		}
		s.tunnels = tunnel.NewCollection(records)
		return nil
	}
	if err := s.store.Set(key, value); err != nil {
		return s.fail(err)
	}
	return nil
}

// Save validates b, writes it and the encoded tunnel list into the document
// and commits the document to disk. On failure nothing already in memory is
// lost and Save may be retried.
func (s *Session) Save(b settings.Basic) error {
	if err := validate.BasicSettings(b.SSHPort, b.MaxTunnels, b.HeartbeatMs); err != nil {
		return s.fail(err)
	}

	if err := s.store.WriteBasic(b); err != nil {
		return s.fail(err)
	}
	if err := s.store.Set(settings.KeyTunnels, tunnel.Encode(s.tunnels.All())); err != nil {
		return s.fail(err)
	}

	data, err := s.doc.Marshal()
	if err != nil {
		return s.fail(fmt.Errorf("failed to serialize document: %w", err))
	}
	if err := s.gate.Commit(data); err != nil {
		return s.fail(err)
	}

	s.notify.Notify(Info, fmt.Sprintf("Saved %s (backup: %s)", s.path, s.gate.BackupPath()))
	return nil
}

// Validate checks the basic settings currently in the document without
// writing anything. Dropped tunnel segments are reported by Skipped.
func (s *Session) Validate() error {
	b := s.store.ReadBasic()
	return validate.BasicSettings(b.SSHPort, b.MaxTunnels, b.HeartbeatMs)
}

// fail reports err through the notifier and returns it.
func (s *Session) fail(err error) error {
	s.notify.Notify(Error, Describe(err))
	return err
}

// Describe turns core errors into messages fit for an operator.
func Describe(err error) string {
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe) && errors.Is(err, validate.ErrMissingField):
		return "Please fill in all tunnel fields."
	case errors.As(err, &fe) && errors.Is(err, validate.ErrNonNumericPort):
		return fmt.Sprintf("Invalid %s: ports must be whole numbers.", fe.Field)
	case errors.As(err, &fe) && errors.Is(err, validate.ErrNonNumericSetting):
		return fmt.Sprintf("Invalid %s: must be a whole number.", fe.Field)
	case errors.Is(err, tunnel.ErrOutOfRange):
		return "No tunnel at that position."
	case errors.Is(err, ErrNoSelection):
		return "Select a tunnel to update first."
	case errors.Is(err, document.ErrNoSection):
		return "The document has no settings section."
	case errors.Is(err, persist.ErrIO):
		return fmt.Sprintf("Could not write the document: %v", err)
	default:
		return err.Error()
	}
}
