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

package laxity

import (
	"sort"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/memory"
	"github.com/gophersid/gophersid/logger"
	"github.com/gophersid/gophersid/player"
)

// markers used by NewPlayer v21. the wave table loops with a 0x7e command in
// the first byte of a row; the pulse and filter tables end at a 0x7f; a 0x7f
// byte ends a sequence; and 0xff ends an orderlist, with the restart position
// in the byte that follows.
const (
	waveLoop      = 0x7e
	tableEnd      = 0x7f
	sequenceEnd   = 0x7f
	orderListEnd  = 0xff
	transposeBase = 0x80
)

// Config gives the offsets from the identification anchor to the operand
// bytes of the instructions that address each table. The little endian word
// at anchor+offset is the base address of the table. The offsets are a
// property of the v21 assembly; they are constant across the tunes packed
// with a given release of the player.
type Config struct {
	InstrRef   int
	WaveRef    int
	PulseRef   int
	FilterRef  int
	SeqLoRef   int
	SeqHiRef   int
	OrderLoRef int
	OrderHiRef int

	// geometry of the instrument table
	InstrStride    int
	MaxInstruments int

	// caps on how far the sentinel walks are allowed to go before the table
	// is declared missing
	MaxTableBytes int
	MaxSeqBytes   int
	MaxOrderBytes int
}

// DefaultConfig returns the Config for the v21 releases we know about. The
// anchor sits in the voice routine; the filter reference is in the outer play
// routine, before the anchor, which is why its offset is negative.
func DefaultConfig() Config {
	return Config{
		SeqLoRef:   2,
		SeqHiRef:   7,
		InstrRef:   26,
		WaveRef:    54,
		PulseRef:   85,
		FilterRef:  -25,
		OrderLoRef: 105,
		OrderHiRef: 110,

		InstrStride:    8,
		MaxInstruments: 32,

		MaxTableBytes: 256,
		MaxSeqBytes:   256,
		MaxOrderBytes: 256,
	}
}

// ref reads the little endian word at anchor+offset. a read that would fall
// off the end of the address space returns zero, which the callers treat as
// table-not-found.
func ref(mem *memory.Memory, anchor uint16, offset int) uint16 {
	a := int(anchor) + offset
	if a < 0 || a+1 >= len(mem.RAM) {
		return 0
	}
	return uint16(mem.RAM[a]) | uint16(mem.RAM[a+1])<<8
}

// walkRows counts rows of the given stride from base until a row whose first
// byte is the mark. the count includes the marked row. the bool result is
// false if the mark was not found within maxBytes or before the end of the
// address space.
func walkRows(mem *memory.Memory, base uint16, stride int, mark uint8, maxBytes int) (int, bool) {
	if int(base)+maxBytes > len(mem.RAM) {
		maxBytes = len(mem.RAM) - int(base)
	}
	for o := 0; o+stride <= maxBytes; o += stride {
		if mem.RAM[int(base)+o] == mark {
			return o/stride + 1, true
		}
	}
	return 0, false
}

// copyTable builds a Table for the descriptor, copying the bytes out of the
// image.
func copyTable(mem *memory.Memory, d player.TableDescriptor) player.Table {
	data := make([]byte, d.ByteLen())
	copy(data, mem.RAM[d.BaseAddr:int(d.BaseAddr)+d.ByteLen()])
	return player.Table{TableDescriptor: d, Data: data}
}

// fixedTable locates one of the sentinel terminated tables.
func fixedTable(mem *memory.Memory, kind player.Kind, base uint16, stride int, mark uint8, maxBytes int) (player.Table, error) {
	if base == 0 {
		return player.Table{}, curated.Errorf(player.TableNotFound, kind)
	}
	n, ok := walkRows(mem, base, stride, mark, maxBytes)
	if !ok {
		return player.Table{}, curated.Errorf(player.TableNotFound, kind)
	}
	return copyTable(mem, player.TableDescriptor{
		Kind:       kind,
		BaseAddr:   base,
		EntryCount: n,
		Stride:     stride,
		Layout:     player.RowMajor,
	}), nil
}

// orderListBytes returns the orderlist based at base, terminator and restart
// position included.
func orderListBytes(mem *memory.Memory, base uint16, maxBytes int) ([]byte, bool) {
	if base == 0 {
		return nil, false
	}
	if int(base)+maxBytes > len(mem.RAM) {
		maxBytes = len(mem.RAM) - int(base)
	}
	for o := 0; o < maxBytes; o++ {
		if mem.RAM[int(base)+o] == orderListEnd {
			if int(base)+o+2 > len(mem.RAM) {
				return nil, false
			}
			data := make([]byte, o+2)
			copy(data, mem.RAM[base:int(base)+o+2])
			return data, true
		}
	}
	return nil, false
}

// sequenceNumbers returns every sequence number in the orderlist, in playing
// order and with duplicates preserved. values at or above transposeBase are
// commands, not sequence numbers.
func sequenceNumbers(orderlist []byte) []uint8 {
	var nums []uint8
	for _, b := range orderlist {
		if b == orderListEnd {
			break
		}
		if b < transposeBase {
			nums = append(nums, b)
		}
	}
	return nums
}

// Extract recovers the music data of a NewPlayer v21 tune from the image.
// The anchor is the address reported by player.Identify.
//
// A missing table is reported with the player.TableNotFound error pattern.
func Extract(mem *memory.Memory, anchor uint16, cfg Config) (*player.TableSet, error) {
	ts := &player.TableSet{
		Player:          player.LaxityNP21,
		Tables:          make(map[player.Kind]player.Table),
		SequenceNumbers: make(map[uint8]int),
	}

	instrBase := ref(mem, anchor, cfg.InstrRef)
	waveBase := ref(mem, anchor, cfg.WaveRef)
	pulseBase := ref(mem, anchor, cfg.PulseRef)
	filterBase := ref(mem, anchor, cfg.FilterRef)
	seqLoBase := ref(mem, anchor, cfg.SeqLoRef)
	seqHiBase := ref(mem, anchor, cfg.SeqHiRef)
	orderLoBase := ref(mem, anchor, cfg.OrderLoRef)
	orderHiBase := ref(mem, anchor, cfg.OrderHiRef)

	// sentinel terminated tables
	wave, err := fixedTable(mem, player.Wave, waveBase, 2, waveLoop, cfg.MaxTableBytes)
	if err != nil {
		return nil, err
	}
	ts.Tables[player.Wave] = wave

	pulse, err := fixedTable(mem, player.Pulse, pulseBase, 3, tableEnd, cfg.MaxTableBytes)
	if err != nil {
		return nil, err
	}
	ts.Tables[player.Pulse] = pulse

	filter, err := fixedTable(mem, player.Filter, filterBase, 3, tableEnd, cfg.MaxTableBytes)
	if err != nil {
		return nil, err
	}
	ts.Tables[player.Filter] = filter

	// the instrument table has no terminator. the entry count is bounded by
	// the nearest table known to start above it, capped at MaxInstruments,
	// and trailing all-zero entries are trimmed
	if instrBase == 0 {
		return nil, curated.Errorf(player.TableNotFound, player.Instruments)
	}
	count := cfg.MaxInstruments
	for _, b := range []uint16{waveBase, pulseBase, filterBase, seqLoBase, seqHiBase, orderLoBase, orderHiBase} {
		if b > instrBase {
			if c := int(b-instrBase) / cfg.InstrStride; c < count {
				count = c
			}
		}
	}
	if count < 1 {
		count = 1
	}
	instr := copyTable(mem, player.TableDescriptor{
		Kind:       player.Instruments,
		BaseAddr:   instrBase,
		EntryCount: count,
		Stride:     cfg.InstrStride,
		Layout:     player.RowMajor,
	})
	for instr.EntryCount > 1 {
		zero := true
		for _, b := range instr.Data[(instr.EntryCount-1)*instr.Stride : instr.EntryCount*instr.Stride] {
			if b != 0 {
				zero = false
				break
			}
		}
		if !zero {
			break
		}
		instr.EntryCount--
	}
	instr.Data = instr.Data[:instr.ByteLen()]
	ts.Tables[player.Instruments] = instr

	// orderlists. a voice whose orderlist cannot be located is left with an
	// empty table and is dealt with by the auto-assignment below
	for v := 0; v < 3; v++ {
		base := uint16(0)
		if orderLoBase != 0 && orderHiBase != 0 &&
			int(orderLoBase)+v < len(mem.RAM) && int(orderHiBase)+v < len(mem.RAM) {
			base = uint16(mem.RAM[int(orderLoBase)+v]) | uint16(mem.RAM[int(orderHiBase)+v])<<8
		}
		d := player.TableDescriptor{
			Kind:     player.OrderList,
			BaseAddr: base,
			Stride:   1,
			Layout:   player.RowMajor,
		}
		if data, ok := orderListBytes(mem, base, cfg.MaxOrderBytes); ok {
			d.EntryCount = len(data)
			ts.OrderLists[v] = player.Table{TableDescriptor: d, Data: data}
		} else {
			logger.Logf(logger.Allow, "laxity", "voice %d: no orderlist at %#04x", v, base)
			ts.OrderLists[v] = player.Table{TableDescriptor: d}
		}
	}

	// resolve every sequence number named by the orderlists
	type located struct {
		addr uint16
		len  int
	}
	resolved := make(map[uint8]located)
	failed := make(map[uint8]bool)
	for v := 0; v < 3; v++ {
		for _, n := range sequenceNumbers(ts.OrderLists[v].Data) {
			if _, ok := resolved[n]; ok || failed[n] {
				continue
			}
			var addr uint16
			if seqLoBase != 0 && seqHiBase != 0 &&
				int(seqLoBase)+int(n) < len(mem.RAM) && int(seqHiBase)+int(n) < len(mem.RAM) {
				addr = uint16(mem.RAM[int(seqLoBase)+int(n)]) | uint16(mem.RAM[int(seqHiBase)+int(n)])<<8
			}
			if addr == 0 {
				logger.Logf(logger.Allow, "laxity", "sequence %d: no pointer", n)
				failed[n] = true
				continue
			}
			l, ok := walkRows(mem, addr, 1, sequenceEnd, cfg.MaxSeqBytes)
			if !ok {
				logger.Logf(logger.Allow, "laxity", "sequence %d: no data at %#04x", n, addr)
				failed[n] = true
				continue
			}
			resolved[n] = located{addr: addr, len: l}
		}
	}

	if len(resolved) == 0 {
		return nil, curated.Errorf(player.TableNotFound, player.Sequence)
	}

	// gather the located sequences in address order
	lenAt := make(map[uint16]int)
	for _, loc := range resolved {
		lenAt[loc.addr] = loc.len
	}
	addrs := make([]int, 0, len(lenAt))
	for a := range lenAt {
		addrs = append(addrs, int(a))
	}
	sort.Ints(addrs)
	for _, a := range addrs {
		ts.Sequences = append(ts.Sequences, copyTable(mem, player.TableDescriptor{
			Kind:       player.Sequence,
			BaseAddr:   uint16(a),
			EntryCount: lenAt[uint16(a)],
			Stride:     1,
			Layout:     player.RowMajor,
		}))
	}

	// first resolved sequence of each voice
	first := [3]int{-1, -1, -1}
	for v := 0; v < 3; v++ {
		for _, n := range sequenceNumbers(ts.OrderLists[v].Data) {
			if loc, ok := resolved[n]; ok {
				first[v] = ts.SequenceAt(loc.addr)
				break
			}
		}
	}

	// any voice without a sequence of its own shares the first sequence of
	// the lowest numbered voice that has one
	donor := -1
	for v := 0; v < 3; v++ {
		if first[v] != -1 {
			donor = first[v]
			break
		}
	}
	for v := 0; v < 3; v++ {
		if first[v] == -1 {
			ts.VoiceSequences[v] = donor
			ts.AutoAssigned[v] = true
			logger.Logf(logger.Allow, "laxity", "voice %d: no sequence of its own, sharing %#04x", v, ts.Sequences[donor].BaseAddr)
		} else {
			ts.VoiceSequences[v] = first[v]
		}
	}

	// map sequence numbers to their tables. numbers that failed to resolve
	// follow the sharing rule
	for n, loc := range resolved {
		ts.SequenceNumbers[n] = ts.SequenceAt(loc.addr)
	}
	for n := range failed {
		ts.SequenceNumbers[n] = donor
	}

	logger.Logf(logger.Allow, "laxity", "%d instruments, %d wave, %d pulse, %d filter, %d sequences",
		instr.EntryCount, wave.EntryCount, pulse.EntryCount, filter.EntryCount, len(ts.Sequences))

	return ts, nil
}
