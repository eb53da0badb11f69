// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	err := h.HandleLog(&log.Entry{Level: log.WarnLevel, Message: "skipped segment"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), " W skipped segment\n")

	buf.Reset()
	err = h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "TRACE: decoded"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), " T decoded\n")

	buf.Reset()
	err = h.HandleLog(&log.Entry{
		Level:   log.ErrorLevel,
		Message: "commit failed",
		Fields:  log.Fields{"error": errors.New("disk full")},
	})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), " E commit failed: disk full\n")
}
