// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"

	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/log"
)

// Well-known keys of the settings section.
const (
	KeySSHHost     = "SshHost"
	KeySSHPort     = "SshPort"
	KeySSHUser     = "SshUser"
	KeyMaxTunnels  = "MaxTunnels"
	KeyHeartbeatMs = "HeartbeatIntervalMs"
	KeyTunnels     = "Tunnels"
)

// Store is a typed accessor over the settings section of a host document.
// Values are stored verbatim; validation belongs to the caller.
type Store struct {
	doc document.Document
}

// NewStore wraps doc.
func NewStore(doc document.Document) *Store {
	return &Store{doc: doc}
}

// Get returns the value for key. Absence is not an error.
func (s *Store) Get(key string) (string, bool) {
	return s.doc.Lookup(key)
}

// GetOr returns the value for key or fallback when absent.
func (s *Store) GetOr(key, fallback string) string {
	if v, ok := s.doc.Lookup(key); ok {
		return v
	}
	return fallback
}

// Set creates the entry for key or overwrites its value. It fails with
// document.ErrNoSection when the document has no settings section.
func (s *Store) Set(key, value string) error {
	if err := s.doc.Assign(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	log.Tracef("set %s=%q", key, value)
	return nil
}

// Entries returns the section in document order.
func (s *Store) Entries() []document.Entry {
	return s.doc.Entries()
}

// Document returns the underlying host document.
func (s *Store) Document() document.Document {
	return s.doc
}

// Basic holds the editable scalar settings as entered by the operator.
// Numeric fields stay strings until validated.
type Basic struct {
	SSHHost     string `json:"sshHost" yaml:"sshHost"`
	SSHPort     string `json:"sshPort" yaml:"sshPort"`
	SSHUser     string `json:"sshUser" yaml:"sshUser"`
	MaxTunnels  string `json:"maxTunnels" yaml:"maxTunnels"`
	HeartbeatMs string `json:"heartbeatIntervalMs" yaml:"heartbeatIntervalMs"`
}

// ReadBasic snapshots the basic settings. Absent keys read as "".
func (s *Store) ReadBasic() Basic {
	return Basic{
		SSHHost:     s.GetOr(KeySSHHost, ""),
		SSHPort:     s.GetOr(KeySSHPort, ""),
		SSHUser:     s.GetOr(KeySSHUser, ""),
		MaxTunnels:  s.GetOr(KeyMaxTunnels, ""),
		HeartbeatMs: s.GetOr(KeyHeartbeatMs, ""),
	}
}

// WriteBasic writes all five basic settings in a fixed order.
func (s *Store) WriteBasic(b Basic) error {
	for _, kv := range []struct{ key, value string }{
		{KeySSHHost, b.SSHHost},
		{KeySSHPort, b.SSHPort},
		{KeySSHUser, b.SSHUser},
		{KeyMaxTunnels, b.MaxTunnels},
		{KeyHeartbeatMs, b.HeartbeatMs},
	} {
		if err := s.Set(kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}
