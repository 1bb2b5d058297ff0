// This file is part of GopherSID.
//
// GopherSID is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSID is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSID.  If not, see <https://www.gnu.org/licenses/>.

package player

import (
	"fmt"
	"io"
)

// TableNotFound is returned by the family extractors when a table the family
// requires cannot be located in the image. The value in the pattern names
// the table.
const TableNotFound = "table extraction: %v table not found"

// ID identifies a player family. The enumeration is closed; dispatching code
// switches over it exhaustively.
type ID int

// List of supported player families.
const (
	LaxityNP21 ID = iota
)

func (id ID) String() string {
	switch id {
	case LaxityNP21:
		return "Laxity NewPlayer v21"
	}
	return fmt.Sprintf("unknown player (%d)", int(id))
}

// Kind classifies a table recovered from a player.
type Kind int

// List of table kinds. Not every family produces every kind.
const (
	Instruments Kind = iota
	Wave
	Pulse
	Filter
	Sequence
	OrderList
)

func (k Kind) String() string {
	switch k {
	case Instruments:
		return "instruments"
	case Wave:
		return "wave"
	case Pulse:
		return "pulse"
	case Filter:
		return "filter"
	case Sequence:
		return "sequence"
	case OrderList:
		return "orderlist"
	}
	return fmt.Sprintf("unknown kind (%d)", int(k))
}

// Layout describes how the rows of a table are arranged in memory.
//
// RowMajor tables store each entry contiguously: entry n occupies the stride
// bytes starting at base+n*stride. ColumnMajor tables store each byte of the
// entry in its own parallel array: byte b of entry n is at base+b*count+n.
// Player code indexes column-major tables with a single register, which is
// why the layout is so common on the 6502.
type Layout int

// List of table layouts.
const (
	RowMajor Layout = iota
	ColumnMajor
)

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	}
	return fmt.Sprintf("unknown layout (%d)", int(l))
}

// TableDescriptor locates a table in the image it was extracted from.
type TableDescriptor struct {
	Kind Kind

	// address of the first byte of the table in the source image
	BaseAddr uint16

	// number of entries in the table. for Sequence and OrderList tables the
	// entries are single bytes and EntryCount is the byte length, terminator
	// included
	EntryCount int

	// number of bytes per entry
	Stride int

	Layout Layout
}

// ByteLen returns the total number of bytes the table occupies.
func (d TableDescriptor) ByteLen() int {
	return d.EntryCount * d.Stride
}

// End returns the address of the first byte past the table.
func (d TableDescriptor) End() uint16 {
	return d.BaseAddr + uint16(d.ByteLen())
}

func (d TableDescriptor) String() string {
	return fmt.Sprintf("%s: %#04x +%d (%d entries of %d, %s)",
		d.Kind, d.BaseAddr, d.ByteLen(), d.EntryCount, d.Stride, d.Layout)
}

// Table is a table copied out of the source image.
type Table struct {
	TableDescriptor

	// raw bytes of the table in source-image order. for ColumnMajor tables
	// this is the concatenation of the parallel arrays, not of the logical
	// entries
	Data []byte
}

// Entry returns the n bytes of logical entry n regardless of layout. The
// returned slice is freshly allocated.
func (t Table) Entry(n int) []byte {
	e := make([]byte, t.Stride)
	for b := 0; b < t.Stride; b++ {
		switch t.Layout {
		case RowMajor:
			e[b] = t.Data[n*t.Stride+b]
		case ColumnMajor:
			e[b] = t.Data[b*t.EntryCount+n]
		}
	}
	return e
}

// TableSet is everything an extractor recovers from a player: the fixed
// tables, the per-voice orderlists and the sequences the orderlists refer
// to.
type TableSet struct {
	Player ID

	// fixed tables keyed by kind. Sequence and OrderList kinds never appear
	// here; they have their own fields below
	Tables map[Kind]Table

	// one orderlist per voice
	OrderLists [3]Table

	// every sequence referenced by the orderlists, deduplicated by address
	// and sorted by address
	Sequences []Table

	// the sequence numbers used by the orderlists, mapped to indexes into
	// Sequences. a number whose pointer could not be resolved maps to the
	// sequence that was shared in its place
	SequenceNumbers map[uint8]int

	// index into Sequences of the first sequence each voice plays
	VoiceSequences [3]int

	// true for a voice whose sequence could not be resolved from its
	// orderlist and was assigned from another voice instead
	AutoAssigned [3]bool
}

// SequenceAt returns the index into Sequences of the sequence based at addr,
// or -1.
func (ts *TableSet) SequenceAt(addr uint16) int {
	for i := range ts.Sequences {
		if ts.Sequences[i].BaseAddr == addr {
			return i
		}
	}
	return -1
}

// Write prints a plain text summary of the table set: the player family, one
// line per table, the per voice orderlists and the sequence list.
func (ts *TableSet) Write(output io.Writer) error {
	_, err := fmt.Fprintln(output, ts.Player)
	if err != nil {
		return err
	}

	for _, k := range []Kind{Instruments, Wave, Pulse, Filter} {
		tbl, ok := ts.Tables[k]
		if !ok {
			continue
		}
		_, err = fmt.Fprintln(output, tbl.TableDescriptor)
		if err != nil {
			return err
		}
	}

	for v := range ts.OrderLists {
		_, err = fmt.Fprintf(output, "voice %d %s\n", v, ts.OrderLists[v].TableDescriptor)
		if err != nil {
			return err
		}
	}

	for i := range ts.Sequences {
		_, err = fmt.Fprintf(output, "%3d. %s\n", i, ts.Sequences[i].TableDescriptor)
		if err != nil {
			return err
		}
	}

	for v, idx := range ts.VoiceSequences {
		if idx < 0 {
			continue
		}
		assigned := ""
		if ts.AutoAssigned[v] {
			assigned = " (assigned from another voice)"
		}
		_, err = fmt.Fprintf(output, "voice %d starts at sequence %d%s\n", v, idx, assigned)
		if err != nil {
			return err
		}
	}

	return nil
}
