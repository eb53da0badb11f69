// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingField      = errors.New("missing field")
	ErrNonNumericPort    = errors.New("port is not a number")
	ErrNonNumericSetting = errors.New("setting is not a number")
)

// Field names reported in FieldError.
const (
	FieldRemoteHost  = "remoteHost"
	FieldRemotePort  = "remotePort"
	FieldLocalHost   = "localHost"
	FieldLocalPort   = "localPort"
	FieldSSHPort     = "sshPort"
	FieldMaxTunnels  = "maxTunnels"
	FieldHeartbeatMs = "heartbeatMs"
)

// FieldError names the field that failed and why. It unwraps to one of the
// package sentinels.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseInt parses s as a base-10 integer. Surrounding whitespace and a
// leading sign are accepted. No range is enforced.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// TunnelFields checks a candidate tunnel as entered. Completeness is checked
// before port syntax so a blank port reports as missing.
func TunnelFields(remoteHost, remotePort, localHost, localPort string) error {
	fields := []struct{ name, value string }{
		{FieldRemoteHost, remoteHost},
		{FieldRemotePort, remotePort},
		{FieldLocalHost, localHost},
		{FieldLocalPort, localPort},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &FieldError{Field: f.name, Reason: "all tunnel fields are required", Err: ErrMissingField}
		}
	}

	for _, f := range []struct{ name, value string }{
		{FieldRemotePort, remotePort},
		{FieldLocalPort, localPort},
	} {
		if _, ok := ParseInt(f.value); !ok {
			return &FieldError{Field: f.name, Reason: fmt.Sprintf("%q is not a valid port number", f.value), Err: ErrNonNumericPort}
		}
	}
	return nil
}

// BasicSettings checks the numeric basic settings in the fixed order
// sshPort, maxTunnels, heartbeatMs and reports only the first failure.
func BasicSettings(sshPort, maxTunnels, heartbeatMs string) error {
	for _, f := range []struct{ name, value string }{
		{FieldSSHPort, sshPort},
		{FieldMaxTunnels, maxTunnels},
		{FieldHeartbeatMs, heartbeatMs},
	} {
		if _, ok := ParseInt(f.value); !ok {
			return &FieldError{Field: f.name, Reason: fmt.Sprintf("%q is not a valid number", f.value), Err: ErrNonNumericSetting}
		}
	}
	return nil
}
