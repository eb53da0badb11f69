// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"22", 22, true},
		{" 8080 ", 8080, true},
		{"+5", 5, true},
		{"-1", -1, true},
		{"99999", 99999, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0x10", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInt(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTunnelFields(t *testing.T) {
	tests := []struct {
		name      string
		fields    [4]string
		wantErr   error
		wantField string
	}{
		{"valid", [4]string{"10.0.0.1", "3389", "127.0.0.1", "3389"}, nil, ""},
		{"empty remote host", [4]string{"", "80", "h", "80"}, ErrMissingField, FieldRemoteHost},
		{"whitespace local host", [4]string{"h", "80", "  ", "80"}, ErrMissingField, FieldLocalHost},
		{"non numeric remote port", [4]string{"h", "abc", "h2", "80"}, ErrNonNumericPort, FieldRemotePort},
		{"non numeric local port", [4]string{"h", "80", "h2", "x"}, ErrNonNumericPort, FieldLocalPort},
		{"blank port is missing not non numeric", [4]string{"h", " ", "h2", "abc"}, ErrMissingField, FieldRemotePort},
		{"missing wins over bad port", [4]string{"h", "abc", "", "80"}, ErrMissingField, FieldLocalHost},
		{"no range check", [4]string{"h", "70000", "h2", "-1"}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TunnelFields(tt.fields[0], tt.fields[1], tt.fields[2], tt.fields[3])
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			var fe *FieldError
			if assert.True(t, errors.As(err, &fe)) {
				assert.Equal(t, tt.wantField, fe.Field)
			}
		})
	}
}

func TestBasicSettings(t *testing.T) {
	tests := []struct {
		name      string
		values    [3]string
		wantField string
	}{
		{"valid", [3]string{"22", "5", "30000"}, ""},
		{"bad ssh port", [3]string{"ssh", "5", "30000"}, FieldSSHPort},
		{"bad max tunnels", [3]string{"22", "", "30000"}, FieldMaxTunnels},
		{"bad heartbeat", [3]string{"22", "5", "30s"}, FieldHeartbeatMs},
		{"first failure only", [3]string{"x", "y", "z"}, FieldSSHPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BasicSettings(tt.values[0], tt.values[1], tt.values[2])
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrNonNumericSetting)

			var fe *FieldError
			if assert.True(t, errors.As(err, &fe)) {
				assert.Equal(t, tt.wantField, fe.Field)
			}
		})
	}
}
