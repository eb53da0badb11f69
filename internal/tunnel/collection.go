// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tunnel

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for a position that does not address an existing
// record.
var ErrOutOfRange = errors.New("position out of range")

const noSelection = -1

// Collection is an ordered list of records plus the position currently being
// edited, if any. The zero value is an empty collection with no selection.
type Collection struct {
	records  []Record
	selected int
	hasSel   bool
}

// NewCollection returns a collection holding a copy of records.
func NewCollection(records []Record) *Collection {
	c := &Collection{}
	c.records = append(c.records, records...)
	return c
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// All returns a copy of the records in order.
func (c *Collection) All() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// At returns the record at pos.
func (c *Collection) At(pos int) (Record, error) {
	if err := c.check(pos); err != nil {
		return Record{}, err
	}
	return c.records[pos], nil
}

// Append adds r at the end. Duplicates are allowed.
func (c *Collection) Append(r Record) {
	c.records = append(c.records, r)
}

// ReplaceAt overwrites the record at pos.
func (c *Collection) ReplaceAt(pos int, r Record) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.records[pos] = r
	return nil
}

// RemoveAt deletes the record at pos and shifts later records left. A
// selection at or after pos is cleared.
func (c *Collection) RemoveAt(pos int) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.records = append(c.records[:pos], c.records[pos+1:]...)
	if c.hasSel && c.selected >= pos {
		c.ClearSelection()
	}
	return nil
}

// Select marks pos as the record being edited.
func (c *Collection) Select(pos int) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.selected, c.hasSel = pos, true
	return nil
}

// Selected returns the selected position, if any.
func (c *Collection) Selected() (int, bool) {
	if !c.hasSel {
		return noSelection, false
	}
	return c.selected, true
}

// ClearSelection drops the selection.
func (c *Collection) ClearSelection() {
	c.selected, c.hasSel = noSelection, false
}

func (c *Collection) check(pos int) error {
	if pos < 0 || pos >= len(c.records) {
		return fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, pos, len(c.records))
	}
	return nil
}
