// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// xmlElement is one element of the parsed tree. Names keep their prefix as
// written so that namespaced documents serialize unchanged. Children hold
// *xmlElement, xml.CharData, xml.Comment, xml.ProcInst or xml.Directive.
type xmlElement struct {
	name     string
	attrs    []xmlAttr
	children []any
}

type xmlAttr struct {
	name  string
	value string
}

func (e *xmlElement) attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (e *xmlElement) setAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, xmlAttr{name: name, value: value})
}

type xmlDocument struct {
	layout  Layout
	nodes   []any
	section *xmlElement
}

func parseXML(data []byte, layout Layout) (*xmlDocument, error) {
	doc := &xmlDocument{layout: layout}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []*xmlElement

	appendNode := func(n any) {
		if len(stack) == 0 {
			doc.nodes = append(doc.nodes, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, n)
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &xmlElement{name: qualified(t.Name)}
			for _, a := range t.Attr {
				el.attrs = append(el.attrs, xmlAttr{name: qualified(a.Name), value: a.Value})
			}
			appendNode(el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element </%s>", qualified(t.Name))
			}
			if open := stack[len(stack)-1].name; open != qualified(t.Name) {
				return nil, fmt.Errorf("element <%s> closed by </%s>", open, qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			appendNode(t.Copy())
		case xml.Comment:
			appendNode(t.Copy())
		case xml.ProcInst:
			appendNode(t.Copy())
		case xml.Directive:
			appendNode(t.Copy())
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("element <%s> is not closed", stack[len(stack)-1].name)
	}

	doc.section = doc.findSection()
	return doc, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// findSection returns the first child of the root element named after the
// layout section.
func (d *xmlDocument) findSection() *xmlElement {
	for _, n := range d.nodes {
		root, ok := n.(*xmlElement)
		if !ok {
			continue
		}
		for _, c := range root.children {
			if el, ok := c.(*xmlElement); ok && el.name == d.layout.Section {
				return el
			}
		}
		return nil
	}
	return nil
}

func (d *xmlDocument) Format() Format { return XML }

func (d *xmlDocument) HasSection() bool { return d.section != nil }

func (d *xmlDocument) entries() []*xmlElement {
	if d.section == nil {
		return nil
	}

	var out []*xmlElement
	for _, c := range d.section.children {
		el, ok := c.(*xmlElement)
		if !ok || el.name != d.layout.Entry {
			continue
		}
		if _, ok := el.attr(d.layout.KeyAttr); ok {
			out = append(out, el)
		}
	}
	return out
}

func (d *xmlDocument) find(key string) *xmlElement {
	for _, el := range d.entries() {
		if k, _ := el.attr(d.layout.KeyAttr); k == key {
			return el
		}
	}
	return nil
}

func (d *xmlDocument) Lookup(key string) (string, bool) {
	el := d.find(key)
	if el == nil {
		return "", false
	}
	v, _ := el.attr(d.layout.ValueAttr)
	return v, true
}

func (d *xmlDocument) Assign(key, value string) error {
	if d.section == nil {
		return ErrNoSection
	}

	if el := d.find(key); el != nil {
		el.setAttr(d.layout.ValueAttr, value)
		return nil
	}

	el := &xmlElement{
		name: d.layout.Entry,
		attrs: []xmlAttr{
			{name: d.layout.KeyAttr, value: key},
			{name: d.layout.ValueAttr, value: value},
		},
	}
	d.section.children = insertAfterLastElement(d.section.children, el)
	return nil
}

// insertAfterLastElement places el after the last element child, repeating
// the whitespace that precedes that child so the new line is indented like
// its siblings.
func insertAfterLastElement(children []any, el *xmlElement) []any {
	last := -1
	for i, c := range children {
		if _, ok := c.(*xmlElement); ok {
			last = i
		}
	}
	if last == -1 {
		return append(children, el)
	}

	insert := []any{el}
	if last > 0 {
		if ws, ok := children[last-1].(xml.CharData); ok && len(bytes.TrimSpace(ws)) == 0 {
			insert = []any{ws.Copy(), el}
		}
	}

	out := make([]any, 0, len(children)+len(insert))
	out = append(out, children[:last+1]...)
	out = append(out, insert...)
	return append(out, children[last+1:]...)
}

func (d *xmlDocument) Entries() []Entry {
	els := d.entries()
	out := make([]Entry, 0, len(els))
	for _, el := range els {
		k, _ := el.attr(d.layout.KeyAttr)
		v, _ := el.attr(d.layout.ValueAttr)
		out = append(out, Entry{Key: k, Value: v})
	}
	return out
}

func (d *xmlDocument) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range d.nodes {
		if err := writeXMLNode(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

func writeXMLNode(buf *bytes.Buffer, n any) error {
	switch n := n.(type) {
	case *xmlElement:
		buf.WriteString("<" + n.name)
		for _, a := range n.attrs {
			buf.WriteString(" " + a.name + `="` + attrEscaper.Replace(a.value) + `"`)
		}
		if len(n.children) == 0 {
			buf.WriteString("/>")
			return nil
		}
		buf.WriteString(">")
		for _, c := range n.children {
			if err := writeXMLNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteString("</" + n.name + ">")
	case xml.CharData:
		buf.WriteString(textEscaper.Replace(string(n)))
	case xml.Comment:
		buf.WriteString("<!--" + string(n) + "-->")
	case xml.ProcInst:
		if len(n.Inst) == 0 {
			buf.WriteString("<?" + n.Target + "?>")
		} else {
			buf.WriteString("<?" + n.Target + " " + string(n.Inst) + "?>")
		}
	case xml.Directive:
		buf.WriteString("<!" + string(n) + ">")
	default:
		return fmt.Errorf("unsupported xml node %T", n)
	}
	return nil
}
