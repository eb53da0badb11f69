// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/tunnelcfg/internal/document"
	"github.com/tfctl/tunnelcfg/internal/log"
	"github.com/tfctl/tunnelcfg/internal/settings"
)

// Diff writes the differences between two settings sections to w and reports
// whether there were any. The Tunnels value is split into one element per
// tunnel so a single changed tunnel shows up on its own.
func Diff(before, after []document.Entry, w io.Writer, color bool) (bool, error) {
	log.Debugf(">> differ(): before=%d after=%d", len(before), len(after))

	left := toTree(before)
	right := toTree(after)

	lraw, err := json.Marshal(left)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settings: %w", err)
	}
	rraw, err := json.Marshal(right)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settings: %w", err)
	}

	delta, err := gojsondiff.New().Compare(lraw, rraw)
	if err != nil {
		return false, fmt.Errorf("failed to compare settings: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The settings are identical.")
		return false, nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprint(w, out)
	return true, nil
}

// toTree turns entries into the generic shape gojsondiff works on. Later
// duplicates of a key are ignored, matching how the document reads them.
func toTree(entries []document.Entry) map[string]interface{} {
	tree := make(map[string]interface{}, len(entries))
	for _, e := range entries {
		if _, seen := tree[e.Key]; seen {
			continue
		}
		if e.Key == settings.KeyTunnels {
			tree[e.Key] = splitTunnels(e.Value)
			continue
		}
		tree[e.Key] = e.Value
	}
	return tree
}

func splitTunnels(raw string) []interface{} {
	out := []interface{}{}
	for _, seg := range strings.Split(raw, ",") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
