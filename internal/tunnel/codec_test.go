// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tunnel

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tunnelcfg/internal/validate"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Record
	}{
		{"empty", "", []Record{}},
		{
			name: "two records",
			raw:  "10.0.0.1:3389:127.0.0.1:3389,10.0.0.2:22:127.0.0.1:2222",
			want: []Record{
				{RemoteHost: "10.0.0.1", RemotePort: 3389, LocalHost: "127.0.0.1", LocalPort: 3389},
				{RemoteHost: "10.0.0.2", RemotePort: 22, LocalHost: "127.0.0.1", LocalPort: 2222},
			},
		},
		{
			name: "empty segments dropped",
			raw:  ",a:1:b:2,,c:3:d:4,",
			want: []Record{
				{RemoteHost: "a", RemotePort: 1, LocalHost: "b", LocalPort: 2},
				{RemoteHost: "c", RemotePort: 3, LocalHost: "d", LocalPort: 4},
			},
		},
		{
			name: "wrong part count skipped",
			raw:  "a:1:b,a:1:b:2:x,c:3:d:4",
			want: []Record{{RemoteHost: "c", RemotePort: 3, LocalHost: "d", LocalPort: 4}},
		},
		{
			name: "non numeric port skipped",
			raw:  "a:x:b:2,a:1:b:y,c:3:d:4",
			want: []Record{{RemoteHost: "c", RemotePort: 3, LocalHost: "d", LocalPort: 4}},
		},
		{"only garbage", "garbage", []Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestDecodeReport(t *testing.T) {
	records, skipped := DecodeReport("a:1:b:2,bad,c:x:d:4,e:5:f:y")

	assert.Len(t, records, 1)
	require.Len(t, skipped, 3)
	assert.Equal(t, Skipped{Index: 1, Segment: "bad", Reason: "expected 4 fields, got 1"}, skipped[0])
	assert.Equal(t, "remote port is not a number", skipped[1].Reason)
	assert.Equal(t, "local port is not a number", skipped[2].Reason)
	assert.Equal(t, `segment 1 "bad": expected 4 fields, got 1`, skipped[0].String())
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]Record{}))
	assert.Equal(t,
		"10.0.0.1:3389:127.0.0.1:3389,h:-1:l:7",
		Encode([]Record{
			{RemoteHost: "10.0.0.1", RemotePort: 3389, LocalHost: "127.0.0.1", LocalPort: 3389},
			{RemoteHost: "h", RemotePort: -1, LocalHost: "l", LocalPort: 7},
		}),
	)
	assert.Equal(t, "h:80:l:8080", Encode([]Record{{RemoteHost: "h", RemotePort: 80, LocalHost: "l", LocalPort: 8080}}))
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hosts := []string{"10.0.0.1", "db.internal", "localhost", "127.0.0.1", "", "host-with-dash"}

	for n := 0; n < 50; n++ {
		records := make([]Record, rng.Intn(6))
		for i := range records {
			records[i] = Record{
				RemoteHost: hosts[rng.Intn(len(hosts))],
				RemotePort: rng.Intn(70000),
				LocalHost:  hosts[rng.Intn(len(hosts))],
				LocalPort:  rng.Intn(70000) - 100,
			}
		}

		t.Run(fmt.Sprintf("case %d", n), func(t *testing.T) {
			assert.Equal(t, records, Decode(Encode(records)))
		})
	}
}

func TestFromFields(t *testing.T) {
	r, err := FromFields(" 10.0.0.1 ", "3389", "127.0.0.1", " 13389 ")
	require.NoError(t, err)
	assert.Equal(t, Record{RemoteHost: "10.0.0.1", RemotePort: 3389, LocalHost: "127.0.0.1", LocalPort: 13389}, r)

	_, err = FromFields("", "80", "h", "80")
	assert.ErrorIs(t, err, validate.ErrMissingField)

	_, err = FromFields("h", "abc", "h2", "80")
	assert.ErrorIs(t, err, validate.ErrNonNumericPort)
}
