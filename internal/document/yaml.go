// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	layout Layout
	raw    []byte
	root   yaml.Node
}

func parseYAML(data []byte, layout Layout) (*yamlDocument, error) {
	doc := &yamlDocument{layout: layout, raw: data}
	if err := yaml.Unmarshal(data, &doc.root); err != nil {
		return nil, err
	}

	if doc.root.Kind == yaml.DocumentNode && len(doc.root.Content) > 0 {
		if top := doc.root.Content[0]; top.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("top level must be a mapping, got %s", kindName(top.Kind))
		}
	}
	return doc, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "mapping"
	}
}

// sectionNode returns the value node of the top-level section key. A null
// value ("appSettings:" with nothing under it) is an empty section.
func (d *yamlDocument) sectionNode() *yaml.Node {
	if d.root.Kind != yaml.DocumentNode || len(d.root.Content) == 0 {
		return nil
	}

	top := d.root.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value != d.layout.Section {
			continue
		}
		v := top.Content[i+1]
		if v.Kind == yaml.MappingNode || (v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
			return v
		}
		return nil
	}
	return nil
}

func (d *yamlDocument) Format() Format { return YAML }

func (d *yamlDocument) HasSection() bool { return d.sectionNode() != nil }

// find returns the value node of key whatever its kind.
func (d *yamlDocument) find(key string) *yaml.Node {
	sec := d.sectionNode()
	if sec == nil || sec.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(sec.Content); i += 2 {
		if sec.Content[i].Value == key {
			return sec.Content[i+1]
		}
	}
	return nil
}

// Lookup only sees scalar values; a list or mapping under key is not a
// setting.
func (d *yamlDocument) Lookup(key string) (string, bool) {
	n := d.find(key)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

func (d *yamlDocument) Assign(key, value string) error {
	sec := d.sectionNode()
	if sec == nil {
		return ErrNoSection
	}

	if n := d.find(key); n != nil {
		// A non-scalar value is replaced in place so the key stays unique.
		if n.Kind != yaml.ScalarNode {
			n.Kind = yaml.ScalarNode
			n.Content = nil
			n.Style = 0
		}
		n.Value = value
		n.Tag = ""
		if n.Style != yaml.DoubleQuotedStyle && n.Style != yaml.SingleQuotedStyle {
			n.Style = 0
		}
		return nil
	}

	if sec.Kind != yaml.MappingNode {
		sec.Kind = yaml.MappingNode
		sec.Tag = ""
		sec.Value = ""
	}
	sec.Content = append(sec.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
	return nil
}

func (d *yamlDocument) Entries() []Entry {
	sec := d.sectionNode()
	if sec == nil || sec.Kind != yaml.MappingNode {
		return nil
	}

	out := make([]Entry, 0, len(sec.Content)/2)
	for i := 0; i+1 < len(sec.Content); i += 2 {
		if sec.Content[i+1].Kind != yaml.ScalarNode {
			continue
		}
		out = append(out, Entry{Key: sec.Content[i].Value, Value: sec.Content[i+1].Value})
	}
	return out
}

func (d *yamlDocument) Marshal() ([]byte, error) {
	// An empty file has no node tree to encode.
	if d.root.Kind == 0 {
		return d.raw, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2) //nolint:mnd
	if err := enc.Encode(&d.root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
