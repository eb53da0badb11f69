// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tfctl/tunnelcfg/internal/log"
)

// ErrNoSection is returned when a write targets a document that has no
// settings section.
var ErrNoSection = errors.New("settings section not found")

// Format identifies the on-disk encoding of a host document.
type Format int

const (
	XML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "xml"
}

// FormatFor picks the format from the file extension. Unknown extensions are
// treated as XML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return XML
	}
}

// Layout names the parts of the document that hold the settings section.
// Entry, KeyAttr and ValueAttr only apply to XML.
type Layout struct {
	Section   string
	Entry     string
	KeyAttr   string
	ValueAttr string
}

// DefaultLayout matches the .NET appSettings convention.
var DefaultLayout = Layout{
	Section:   "appSettings",
	Entry:     "add",
	KeyAttr:   "key",
	ValueAttr: "value",
}

func (l Layout) withDefaults() Layout {
	if l.Section == "" {
		l.Section = DefaultLayout.Section
	}
	if l.Entry == "" {
		l.Entry = DefaultLayout.Entry
	}
	if l.KeyAttr == "" {
		l.KeyAttr = DefaultLayout.KeyAttr
	}
	if l.ValueAttr == "" {
		l.ValueAttr = DefaultLayout.ValueAttr
	}
	return l
}

// Entry is a single key/value pair of the settings section.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Document is a parsed host document.
type Document interface {
	// Format reports the encoding the document was parsed from.
	Format() Format
	// HasSection reports whether the settings section exists.
	HasSection() bool
	// Lookup returns the value of the first entry named key.
	Lookup(key string) (string, bool)
	// Assign updates the first entry named key or appends a new one. It
	// returns ErrNoSection if the section is missing.
	Assign(key, value string) error
	// Entries returns the section entries in document order.
	Entries() []Entry
	// Marshal serializes the whole document.
	Marshal() ([]byte, error)
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format, layout Layout) (Document, error) {
	layout = layout.withDefaults()

	var (
		doc Document
		err error
	)
	switch format {
	case YAML:
		doc, err = parseYAML(data, layout)
	default:
		doc, err = parseXML(data, layout)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", format, err)
	}

	warnDuplicates(doc.Entries())
	return doc, nil
}

// Load reads and parses the document at path. The format follows the file
// extension.
func Load(path string, layout Layout) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := Parse(data, FormatFor(path), layout)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded document: path=%s format=%s entries=%d", path, doc.Format(), len(doc.Entries()))
	return doc, nil
}

// warnDuplicates logs keys that appear more than once. Only the first
// occurrence is ever read or written.
func warnDuplicates(entries []Entry) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Key] {
			log.Warnf("duplicate settings key %q; only the first entry is used", e.Key)
		}
		seen[e.Key] = true
	}
}
