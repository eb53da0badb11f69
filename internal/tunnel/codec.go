// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tunnel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tfctl/tunnelcfg/internal/validate"
)

const (
	recordDelim = ","
	fieldDelim  = ":"
	fieldCount  = 4
)

// Record is one forwarding rule. It has no identity beyond its position in a
// Collection.
type Record struct {
	RemoteHost string `json:"remoteHost" yaml:"remoteHost"`
	RemotePort int    `json:"remotePort" yaml:"remotePort"`
	LocalHost  string `json:"localHost" yaml:"localHost"`
	LocalPort  int    `json:"localPort" yaml:"localPort"`
}

func (r Record) String() string {
	return r.RemoteHost + fieldDelim + strconv.Itoa(r.RemotePort) + fieldDelim +
		r.LocalHost + fieldDelim + strconv.Itoa(r.LocalPort)
}

// Skipped describes a segment that Decode dropped.
type Skipped struct {
	Index   int    `json:"index" yaml:"index"`
	Segment string `json:"segment" yaml:"segment"`
	Reason  string `json:"reason" yaml:"reason"`
}

func (s Skipped) String() string {
	return fmt.Sprintf("segment %d %q: %s", s.Index, s.Segment, s.Reason)
}

// Decode parses raw into records. Malformed segments are dropped silently;
// use DecodeReport to learn about them.
func Decode(raw string) []Record {
	records, _ := DecodeReport(raw)
	return records
}

// DecodeReport parses raw and also returns the segments it dropped. Empty
// segments (leading, trailing or doubled delimiters) are not reported.
func DecodeReport(raw string) ([]Record, []Skipped) {
	records := []Record{}
	var skipped []Skipped

	if raw == "" {
		return records, nil
	}

	for i, segment := range strings.Split(raw, recordDelim) {
		if segment == "" {
			continue
		}

		parts := strings.Split(segment, fieldDelim)
		if len(parts) != fieldCount {
			skipped = append(skipped, Skipped{
				Index:   i,
				Segment: segment,
				Reason:  fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts)),
			})
			continue
		}

		remotePort, ok := validate.ParseInt(parts[1])
		if !ok {
			skipped = append(skipped, Skipped{Index: i, Segment: segment, Reason: "remote port is not a number"})
			continue
		}
		localPort, ok := validate.ParseInt(parts[3])
		if !ok {
			skipped = append(skipped, Skipped{Index: i, Segment: segment, Reason: "local port is not a number"})
			continue
		}

		records = append(records, Record{
			RemoteHost: parts[0],
			RemotePort: remotePort,
			LocalHost:  parts[2],
			LocalPort:  localPort,
		})
	}

	return records, skipped
}

// Encode renders records in order. An empty list encodes to "".
func Encode(records []Record) string {
	segments := make([]string, len(records))
	for i, r := range records {
		segments[i] = r.String()
	}
	return strings.Join(segments, recordDelim)
}

// FromFields validates editor text and builds a record from it. Host fields
// are trimmed.
func FromFields(remoteHost, remotePort, localHost, localPort string) (Record, error) {
	if err := validate.TunnelFields(remoteHost, remotePort, localHost, localPort); err != nil {
		return Record{}, err
	}
	rp, _ := validate.ParseInt(remotePort)
	lp, _ := validate.ParseInt(localPort)
	return Record{
		RemoteHost: strings.TrimSpace(remoteHost),
		RemotePort: rp,
		LocalHost:  strings.TrimSpace(localHost),
		LocalPort:  lp,
	}, nil
}
