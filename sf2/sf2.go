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

package sf2

import (
	"fmt"
	"sort"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/driver"
	"github.com/gophersid/gophersid/logger"
	"github.com/gophersid/gophersid/player"
)

// sentinal error returned when the file cannot be a project container. the
// wrapped detail identifies the offending block or offset.
const InvalidFormat = "sf2 file: invalid format: %v"

// block tags.
const (
	endBlock    = 0x00
	driverBlock = 0x01
	tableBlock  = 0x02
	musicBlock  = 0x03
)

// orderlist command bytes. the driver inherits NewPlayer's conventions.
const (
	orderListEnd  = 0xff
	transposeBase = 0x80
)

// File is the parsed form of a project container.
type File struct {
	// address the driver code was assembled at
	LoadAddr uint16

	Driver driver.ID

	// the driver code as carried by the file. may be longer than the
	// driver's retained code block; conversions trim it against the
	// driver Config
	Code []byte

	// the music data, in the shape the table extractor produces. the two
	// conversion directions share everything downstream of this
	Tables *player.TableSet
}

// reader is a bounds checked cursor over the file bytes.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) take(n int) ([]byte, bool) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, false
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, true
}

func (r *reader) u8() (uint8, bool) {
	b, ok := r.take(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (r *reader) word() (uint16, bool) {
	b, ok := r.take(2)
	if !ok {
		return 0, false
	}
	return uint16(b[0]) | uint16(b[1])<<8, true
}

// parseTable parses the payload of a table block. the payload is the
// descriptor followed by the table bytes.
func parseTable(payload []byte) (player.Table, error) {
	const descriptorLen = 9

	bad := func(detail string) (player.Table, error) {
		return player.Table{}, curated.Errorf(InvalidFormat, fmt.Sprintf("table block: %s", detail))
	}

	if len(payload) < descriptorLen {
		return bad(fmt.Sprintf("%d bytes is too short for the descriptor", len(payload)))
	}

	kind := payload[0]
	if kind > uint8(player.Filter) {
		return bad(fmt.Sprintf("%#02x is not a fixed table kind", kind))
	}

	base := uint16(payload[1]) | uint16(payload[2])<<8
	entries := int(payload[3]) | int(payload[4])<<8
	visible := int(payload[5]) | int(payload[6])<<8
	stride := int(payload[7])
	layout := payload[8]

	if entries == 0 || stride == 0 {
		return bad("empty table")
	}
	if visible > entries {
		return bad(fmt.Sprintf("%d visible rows in a table of %d", visible, entries))
	}
	if layout > uint8(player.ColumnMajor) {
		return bad(fmt.Sprintf("%#02x is not a layout", layout))
	}
	if len(payload)-descriptorLen != entries*stride {
		return bad(fmt.Sprintf("%d data bytes for %d entries of %d", len(payload)-descriptorLen, entries, stride))
	}
	if int(base)+entries*stride > 0x10000 {
		return bad(fmt.Sprintf("table at %#04x spills out of the address space", base))
	}

	data := make([]byte, entries*stride)
	copy(data, payload[descriptorLen:])

	return player.Table{
		TableDescriptor: player.TableDescriptor{
			Kind:       player.Kind(kind),
			BaseAddr:   base,
			EntryCount: entries,
			Stride:     stride,
			Layout:     player.Layout(layout),
		},
		Data: data,
	}, nil
}

// parseMusic parses the payload of a music block into the orderlist and
// sequence fields of the table set.
func parseMusic(payload []byte, ts *player.TableSet) error {
	bad := func(detail string) error {
		return curated.Errorf(InvalidFormat, fmt.Sprintf("music block: %s", detail))
	}

	r := &reader{data: payload}

	for v := 0; v < 3; v++ {
		base, ok := r.word()
		if !ok {
			return bad(fmt.Sprintf("voice %d orderlist is truncated", v))
		}
		length, ok := r.word()
		if !ok {
			return bad(fmt.Sprintf("voice %d orderlist is truncated", v))
		}
		raw, ok := r.take(int(length))
		if !ok {
			return bad(fmt.Sprintf("voice %d orderlist is truncated", v))
		}

		data := make([]byte, len(raw))
		copy(data, raw)
		ts.OrderLists[v] = player.Table{
			TableDescriptor: player.TableDescriptor{
				Kind:       player.OrderList,
				BaseAddr:   base,
				EntryCount: len(data),
				Stride:     1,
				Layout:     player.RowMajor,
			},
			Data: data,
		}
	}

	count, ok := r.u8()
	if !ok {
		return bad("sequence count is missing")
	}

	// sequences are keyed by number in the file. numbers may share a
	// sequence, which is how shared sequences survive the container
	addrOf := make(map[uint8]uint16, count)
	seqAt := make(map[uint16]player.Table)
	for i := 0; i < int(count); i++ {
		num, ok := r.u8()
		if !ok {
			return bad(fmt.Sprintf("sequence %d is truncated", i))
		}
		if _, dup := addrOf[num]; dup {
			return bad(fmt.Sprintf("sequence number %d appears twice", num))
		}
		base, ok := r.word()
		if !ok {
			return bad(fmt.Sprintf("sequence %d is truncated", num))
		}
		length, ok := r.word()
		if !ok {
			return bad(fmt.Sprintf("sequence %d is truncated", num))
		}
		raw, ok := r.take(int(length))
		if !ok {
			return bad(fmt.Sprintf("sequence %d is truncated", num))
		}

		addrOf[num] = base
		if _, shared := seqAt[base]; !shared {
			data := make([]byte, len(raw))
			copy(data, raw)
			seqAt[base] = player.Table{
				TableDescriptor: player.TableDescriptor{
					Kind:       player.Sequence,
					BaseAddr:   base,
					EntryCount: len(data),
					Stride:     1,
					Layout:     player.RowMajor,
				},
				Data: data,
			}
		}
	}

	if r.pos != len(payload) {
		return bad(fmt.Sprintf("%d trailing bytes", len(payload)-r.pos))
	}

	// the table set keeps sequences in address order
	addrs := make([]int, 0, len(seqAt))
	for a := range seqAt {
		addrs = append(addrs, int(a))
	}
	sort.Ints(addrs)
	for _, a := range addrs {
		ts.Sequences = append(ts.Sequences, seqAt[uint16(a)])
	}
	for num, a := range addrOf {
		ts.SequenceNumbers[num] = ts.SequenceAt(a)
	}

	return nil
}

// Read parses a project container.
func Read(data []byte) (*File, error) {
	r := &reader{data: data}

	load, ok := r.word()
	if !ok {
		return nil, curated.Errorf(InvalidFormat, "file is too short for the load address")
	}

	f := &File{
		LoadAddr: load,
		Tables: &player.TableSet{
			Player:          player.LaxityNP21,
			Tables:          make(map[player.Kind]player.Table),
			SequenceNumbers: make(map[uint8]int),
		},
	}
	for v := 0; v < 3; v++ {
		f.Tables.VoiceSequences[v] = -1
	}

	var seenDriver, seenMusic, seenEnd bool

	for !seenEnd {
		blockStart := r.pos

		tag, ok := r.u8()
		if !ok {
			return nil, curated.Errorf(InvalidFormat, "file ends without an end block")
		}
		length, ok := r.word()
		if !ok {
			return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("block at offset %#04x is truncated", blockStart))
		}
		payload, ok := r.take(int(length))
		if !ok {
			return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("block at offset %#04x is truncated", blockStart))
		}

		switch tag {
		case endBlock:
			seenEnd = true

		case driverBlock:
			if seenDriver {
				return nil, curated.Errorf(InvalidFormat, "more than one driver block")
			}
			seenDriver = true

			if len(payload) < 2 {
				return nil, curated.Errorf(InvalidFormat, "driver block carries no code")
			}
			f.Driver = driver.ID(payload[0])
			if _, err := driver.Lookup(f.Driver); err != nil {
				return nil, err
			}
			f.Code = make([]byte, len(payload)-1)
			copy(f.Code, payload[1:])

		case tableBlock:
			tbl, err := parseTable(payload)
			if err != nil {
				return nil, err
			}
			if _, dup := f.Tables.Tables[tbl.Kind]; dup {
				return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("more than one %s table", tbl.Kind))
			}
			f.Tables.Tables[tbl.Kind] = tbl

		case musicBlock:
			if seenMusic {
				return nil, curated.Errorf(InvalidFormat, "more than one music block")
			}
			seenMusic = true

			err := parseMusic(payload, f.Tables)
			if err != nil {
				return nil, err
			}

		default:
			return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("unrecognised block tag %#02x at offset %#04x", tag, blockStart))
		}
	}

	if !seenDriver {
		return nil, curated.Errorf(InvalidFormat, "no driver block")
	}
	if !seenMusic {
		return nil, curated.Errorf(InvalidFormat, "no music block")
	}

	// first sequence each voice plays, as far as the orderlists say
	for v := 0; v < 3; v++ {
		for _, b := range f.Tables.OrderLists[v].Data {
			if b == orderListEnd {
				break
			}
			if b < transposeBase {
				if idx, ok := f.Tables.SequenceNumbers[b]; ok {
					f.Tables.VoiceSequences[v] = idx
				}
				break
			}
		}
	}

	logger.Logf(logger.Allow, "sf2", "read project: driver %s, %d tables, %d sequences",
		f.Driver, len(f.Tables.Tables), len(f.Tables.Sequences))

	return f, nil
}

// writer accumulates the file bytes.
type writer struct {
	data []byte
}

func (w *writer) u8(v uint8) {
	w.data = append(w.data, v)
}

func (w *writer) word(v uint16) {
	w.data = append(w.data, uint8(v), uint8(v>>8))
}

func (w *writer) bytes(b []byte) {
	w.data = append(w.data, b...)
}

func (w *writer) block(tag uint8, payload []byte) {
	w.u8(tag)
	w.word(uint16(len(payload)))
	w.bytes(payload)
}

// Encode produces the container form of a project. Blocks are written in a
// fixed order so that the same project always produces the same bytes.
func Encode(f *File) []byte {
	w := &writer{}
	w.word(f.LoadAddr)

	p := &writer{}
	p.u8(uint8(f.Driver))
	p.bytes(f.Code)
	w.block(driverBlock, p.data)

	for _, k := range []player.Kind{player.Instruments, player.Wave, player.Pulse, player.Filter} {
		tbl, ok := f.Tables.Tables[k]
		if !ok {
			continue
		}
		p := &writer{}
		p.u8(uint8(k))
		p.word(tbl.BaseAddr)
		p.word(uint16(tbl.EntryCount))
		p.word(uint16(tbl.EntryCount)) // every row visible
		p.u8(uint8(tbl.Stride))
		p.u8(uint8(tbl.Layout))
		p.bytes(tbl.Data)
		w.block(tableBlock, p.data)
	}

	p = &writer{}
	for v := 0; v < 3; v++ {
		ol := f.Tables.OrderLists[v]
		p.word(ol.BaseAddr)
		p.word(uint16(len(ol.Data)))
		p.bytes(ol.Data)
	}

	nums := make([]int, 0, len(f.Tables.SequenceNumbers))
	for n := range f.Tables.SequenceNumbers {
		nums = append(nums, int(n))
	}
	sort.Ints(nums)

	p.u8(uint8(len(nums)))
	for _, n := range nums {
		seq := f.Tables.Sequences[f.Tables.SequenceNumbers[uint8(n)]]
		p.u8(uint8(n))
		p.word(seq.BaseAddr)
		p.word(uint16(len(seq.Data)))
		p.bytes(seq.Data)
	}
	w.block(musicBlock, p.data)

	w.block(endBlock, nil)

	return w.data
}
