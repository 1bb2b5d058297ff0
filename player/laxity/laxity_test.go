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

package laxity_test

import (
	"testing"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/driver"
	"github.com/gophersid/gophersid/hardware/memory"
	"github.com/gophersid/gophersid/player"
	"github.com/gophersid/gophersid/player/laxity"
	"github.com/gophersid/gophersid/test"
)

// loadTune loads the driver 11 reference binary. its table layout is the
// same one NewPlayer v21 tunes use, demo data included, which makes it a
// complete extraction fixture that can also be run on the CPU.
func loadTune(t *testing.T) (*memory.Memory, uint16) {
	t.Helper()

	cfg, err := driver.Lookup(driver.SF2Driver11)
	test.DemandSuccess(t, err)

	mem := memory.NewMemory()
	err = mem.Load(cfg.LoadAddr, cfg.Template)
	test.DemandSuccess(t, err)

	det, err := player.Identify(mem)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, det.Player, player.LaxityNP21)
	test.DemandEquality(t, det.Anchor, 0x1066)

	return mem, det.Anchor
}

func TestExtract(t *testing.T) {
	mem, anchor := loadTune(t)

	ts, err := laxity.Extract(mem, anchor, laxity.DefaultConfig())
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, ts.Player, player.LaxityNP21)

	instr := ts.Tables[player.Instruments]
	test.ExpectEquality(t, instr.BaseAddr, 0x1200)
	test.ExpectEquality(t, instr.EntryCount, 4)
	test.ExpectEquality(t, instr.Stride, 8)
	test.ExpectEquality(t, instr.Entry(1)[0], 0x22)
	test.ExpectEquality(t, instr.Entry(1)[1], 0xa8)

	wave := ts.Tables[player.Wave]
	test.ExpectEquality(t, wave.BaseAddr, 0x1220)
	test.ExpectEquality(t, wave.EntryCount, 4)
	test.ExpectEquality(t, wave.Entry(2)[0], 0x15)
	test.ExpectEquality(t, wave.Entry(2)[1], 0x0c)

	// the loop row is part of the table
	test.ExpectEquality(t, wave.Entry(3)[0], 0x7e)

	pulse := ts.Tables[player.Pulse]
	test.ExpectEquality(t, pulse.BaseAddr, 0x1228)
	test.ExpectEquality(t, pulse.EntryCount, 3)

	filter := ts.Tables[player.Filter]
	test.ExpectEquality(t, filter.BaseAddr, 0x1234)
	test.ExpectEquality(t, filter.EntryCount, 2)
	test.ExpectEquality(t, filter.Entry(0)[2], 0xf1)

	// one short orderlist per voice, terminator and restart byte included
	for v := 0; v < 3; v++ {
		ol := ts.OrderLists[v]
		test.ExpectEquality(t, ol.BaseAddr, uint16(0x1256+v*4))
		test.DemandEquality(t, len(ol.Data), 3)
		test.ExpectEquality(t, ol.Data[0], uint8(v+1))
		test.ExpectEquality(t, ol.Data[1], 0xff)
	}

	// three sequences, gathered in address order
	test.DemandEquality(t, len(ts.Sequences), 3)
	test.ExpectEquality(t, ts.Sequences[0].BaseAddr, 0x1262)
	test.ExpectEquality(t, ts.Sequences[0].EntryCount, 4)
	test.ExpectEquality(t, ts.Sequences[0].Data[0], 0x20)
	test.ExpectEquality(t, ts.Sequences[0].Data[3], 0x7f)
	test.ExpectEquality(t, ts.Sequences[1].BaseAddr, 0x1266)
	test.ExpectEquality(t, ts.Sequences[1].EntryCount, 2)
	test.ExpectEquality(t, ts.Sequences[2].BaseAddr, 0x1268)
	test.ExpectEquality(t, ts.Sequences[2].EntryCount, 2)

	// every voice found a sequence of its own
	for v := 0; v < 3; v++ {
		test.ExpectEquality(t, ts.VoiceSequences[v], v)
		test.ExpectEquality(t, ts.AutoAssigned[v], false)
	}

	test.ExpectEquality(t, ts.SequenceNumbers[1], 0)
	test.ExpectEquality(t, ts.SequenceNumbers[2], 1)
	test.ExpectEquality(t, ts.SequenceNumbers[3], 2)
}

func TestSharedSequence(t *testing.T) {
	mem, anchor := loadTune(t)

	// voice 2's orderlist now names sequence 5, whose pointer entry we
	// clear. the voice should fall back to sharing voice 0's sequence
	_ = mem.Poke(0x125e, 0x05)
	_ = mem.Poke(0x1245, 0x00)
	_ = mem.Poke(0x124d, 0x00)

	ts, err := laxity.Extract(mem, anchor, laxity.DefaultConfig())
	test.DemandSuccess(t, err)

	test.DemandEquality(t, len(ts.Sequences), 2)

	test.ExpectEquality(t, ts.AutoAssigned[0], false)
	test.ExpectEquality(t, ts.AutoAssigned[1], false)
	test.ExpectEquality(t, ts.AutoAssigned[2], true)
	test.ExpectEquality(t, ts.VoiceSequences[2], ts.VoiceSequences[0])

	// the unresolvable number follows the sharing rule
	test.ExpectEquality(t, ts.SequenceNumbers[5], ts.VoiceSequences[0])
}

func TestNoSequences(t *testing.T) {
	mem, anchor := loadTune(t)

	// clear both sequence pointer arrays
	for a := uint16(0x1240); a < 0x1250; a++ {
		_ = mem.Poke(a, 0x00)
	}

	_, err := laxity.Extract(mem, anchor, laxity.DefaultConfig())
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, player.TableNotFound), true)
}

func TestMissingWaveTable(t *testing.T) {
	mem, anchor := loadTune(t)

	// overwrite the wave table's loop command. the sentinel walk runs off
	// the end of the data without finding it
	_ = mem.Poke(0x1226, 0x00)

	_, err := laxity.Extract(mem, anchor, laxity.DefaultConfig())
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, player.TableNotFound), true)
}
