// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package document loads and serializes the host configuration document that
// carries the settings section. Two encodings are supported:
//   - XML (.config, .xml and anything unrecognized), where the section is an
//     element such as <appSettings> holding <add key="" value=""/> entries.
//   - YAML (.yaml, .yml), where the section is a top-level mapping of string
//     scalars.
//
// Everything outside the settings section is carried through untouched so a
// save only changes the entries that were written.
package document
