// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset orders rows by a comma-separated list of columns. A leading "-"
// sorts a column descending and a leading "!" makes string comparison case
// sensitive. Numbers compare numerically.
func SortDataset(rows []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {
		for _, field := range fields {
			ascending := !strings.HasPrefix(field, "-")
			field = strings.TrimPrefix(field, "-")

			caseSensitive := strings.HasPrefix(field, "!")
			field = strings.TrimPrefix(field, "!")

			a, b := rows[one][field], rows[two][field]

			if an, ok := a.(float64); ok {
				if bn, ok := b.(float64); ok {
					if an == bn {
						continue
					}
					return (an < bn) == ascending
				}
			}

			as, bs := InterfaceToString(a), InterfaceToString(b)
			if !caseSensitive {
				as, bs = strings.ToLower(as), strings.ToLower(bs)
			}
			if as != bs {
				return (as < bs) == ascending
			}
		}
		return false
	})
}
