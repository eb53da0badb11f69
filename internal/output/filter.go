// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/tunnelcfg/internal/log"
)

// filterRegex splits an expression into key, optional operator (optionally
// negated with '!') and target. Operators are = ^ ~ < > @ and /. Examples:
// "localHost=127.0.0.1", "remotePort>1024", "remoteHost!^10.".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Value   string
}

// BuildFilters parses a comma-separated filter spec. Malformed entries are
// logged and skipped.
func BuildFilters(spec string) []Filter {
	var filters []Filter //nolint:prealloc

	for _, fs := range strings.Split(spec, ",") {
		fs = strings.TrimSpace(fs)
		if fs == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(fs)
		key := ""
		if parts != nil {
			key = strings.TrimSpace(parts[1])
		}
		if key == "" || parts[2] == "" {
			log.Errorf("invalid filter: %s", fs)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset returns the elements of the JSON array in raw that pass
// every filter, as generic rows.
func FilterDataset(raw []byte, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)

	rows := []map[string]interface{}{}
	for _, candidate := range gjson.ParseBytes(raw).Array() {
		if !matches(candidate, filters) {
			continue
		}
		if row, ok := candidate.Value().(map[string]interface{}); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func matches(candidate gjson.Result, filters []Filter) bool {
	for _, f := range filters {
		v := candidate.Get(f.Key)
		if !v.Exists() {
			log.Warnf("filter key not found: %s", f.Key)
			return false
		}

		var ok bool
		if v.Type == gjson.Number {
			ok = checkNumeric(v.Float(), f)
		} else {
			ok = checkString(v.String(), f)
		}
		if !ok {
			return false
		}
	}
	return true
}

func checkNumeric(value float64, f Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	if err != nil {
		// Not a number, compare as text instead.
		return checkString(strconv.FormatFloat(value, 'f', -1, 64), f)
	}

	switch f.Operand {
	case "=":
		return (value == tgt) == !f.Negate
	case ">":
		return (value > tgt) == !f.Negate
	case "<":
		return (value < tgt) == !f.Negate
	default:
		return checkString(strconv.FormatFloat(value, 'f', -1, 64), f)
	}
}

func checkString(value string, f Filter) bool {
	switch f.Operand {
	case "=":
		return (value == f.Value) == !f.Negate
	case "~":
		return strings.EqualFold(value, f.Value) == !f.Negate
	case "^":
		return strings.HasPrefix(value, f.Value) == !f.Negate
	case ">":
		return (value > f.Value) == !f.Negate
	case "<":
		return (value < f.Value) == !f.Negate
	case "@":
		return strings.Contains(value, f.Value) == !f.Negate
	case "/":
		matched, err := regexp.MatchString(f.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", f.Value)
			return false
		}
		return matched == !f.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", f.Operand)
		return false
	}
}
