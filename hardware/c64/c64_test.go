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

package c64_test

import (
	"testing"

	"github.com/gophersid/gophersid/hardware/c64"
	"github.com/gophersid/gophersid/test"
)

type sidWrite struct {
	register uint16
	value    uint8
}

func collect(mc *c64.C64) *[]sidWrite {
	writes := make([]sidWrite, 0)
	mc.Mem.TrapSIDWrite = func(address uint16, data uint8) {
		writes = append(writes, sidWrite{register: address, value: data})
	}
	return &writes
}

func TestRunInit(t *testing.T) {
	mc := c64.NewC64()
	writes := collect(mc)

	// STA $D400; RTS. the init routine receives the subtune in the
	// accumulator
	test.ExpectSuccess(t, mc.Mem.Load(0x1000, []uint8{0x8d, 0x00, 0xd4, 0x60}))

	test.ExpectSuccess(t, mc.RunInit(0x1000, 3))
	test.ExpectEquality(t, len(*writes), 1)
	test.ExpectEquality(t, (*writes)[0], sidWrite{register: 0xd400, value: 3})
}

func TestRunPlay(t *testing.T) {
	mc := c64.NewC64()
	writes := collect(mc)

	// LDA #$11; STA $D404; LDA #$22; STA $D405; RTS
	test.ExpectSuccess(t, mc.Mem.Load(0x1100, []uint8{
		0xa9, 0x11, 0x8d, 0x04, 0xd4,
		0xa9, 0x22, 0x8d, 0x05, 0xd4,
		0x60,
	}))

	before := mc.Cycles
	test.ExpectSuccess(t, mc.RunPlay(0x1100))

	test.ExpectEquality(t, len(*writes), 2)
	test.ExpectEquality(t, (*writes)[0], sidWrite{register: 0xd404, value: 0x11})
	test.ExpectEquality(t, (*writes)[1], sidWrite{register: 0xd405, value: 0x22})

	// two immediate loads and two absolute stores. the closing RTS is
	// recognised and not executed
	test.ExpectEquality(t, mc.Cycles-before, uint64(12))

	// a second call produces the same writes again
	test.ExpectSuccess(t, mc.RunPlay(0x1100))
	test.ExpectEquality(t, len(*writes), 4)
}

func TestNestedSubroutine(t *testing.T) {
	mc := c64.NewC64()
	writes := collect(mc)

	// JSR $1310; RTS with the subroutine LDA #$05; STA $D406; RTS. only the
	// outermost RTS ends the routine
	test.ExpectSuccess(t, mc.Mem.Load(0x1300, []uint8{0x20, 0x10, 0x13, 0x60}))
	test.ExpectSuccess(t, mc.Mem.Load(0x1310, []uint8{0xa9, 0x05, 0x8d, 0x06, 0xd4, 0x60}))

	test.ExpectSuccess(t, mc.RunInit(0x1300, 0))
	test.ExpectEquality(t, len(*writes), 1)
	test.ExpectEquality(t, (*writes)[0], sidWrite{register: 0xd406, value: 0x05})
}

func TestRasterWait(t *testing.T) {
	mc := c64.NewC64()

	// LDA $D012; CMP #$42; BNE loop; RTS. without the raster progression
	// this init routine would spin forever
	test.ExpectSuccess(t, mc.Mem.Load(0x1200, []uint8{
		0xad, 0x12, 0xd0,
		0xc9, 0x42,
		0xd0, 0xf9,
		0x60,
	}))

	test.ExpectSuccess(t, mc.RunInit(0x1200, 0))
}

func TestKernalExit(t *testing.T) {
	mc := c64.NewC64()

	// JMP $EA31. with the KERNAL banked in, arriving at the interrupt exit
	// point ends the routine
	test.ExpectSuccess(t, mc.Mem.Load(0x1400, []uint8{0x4c, 0x31, 0xea}))
	test.ExpectSuccess(t, mc.RunPlay(0x1400))

	// with banking configuration five the same address is plain RAM and the
	// routine runs into the instruction budget
	test.ExpectSuccess(t, mc.Mem.Poke(0x0001, 0x35))
	test.ExpectSuccess(t, mc.Mem.Load(0xea31, []uint8{0x4c, 0x31, 0xea}))
	test.ExpectFailure(t, mc.RunPlay(0x1400))
}

func TestRoutineBudget(t *testing.T) {
	mc := c64.NewC64()

	// JMP to itself
	test.ExpectSuccess(t, mc.Mem.Load(0x1500, []uint8{0x4c, 0x00, 0x15}))
	test.ExpectFailure(t, mc.RunPlay(0x1500))
}

func TestFallToZero(t *testing.T) {
	mc := c64.NewC64()

	// JMP $0000 ends the routine without an error
	test.ExpectSuccess(t, mc.Mem.Load(0x1600, []uint8{0x4c, 0x00, 0x00}))
	test.ExpectSuccess(t, mc.RunPlay(0x1600))
}

func TestResolvePlayAddress(t *testing.T) {
	mc := c64.NewC64()

	// a non-zero play address is returned unchanged
	test.ExpectEquality(t, mc.ResolvePlayAddress(0x1003), uint16(0x1003))

	// zero play address with the KERNAL banked in reads the KERNAL vector
	test.ExpectSuccess(t, mc.Mem.Poke(0x0314, 0x34))
	test.ExpectSuccess(t, mc.Mem.Poke(0x0315, 0x12))
	test.ExpectEquality(t, mc.ResolvePlayAddress(0), uint16(0x1234))

	// with banking configuration five the hardware vector is used instead
	test.ExpectSuccess(t, mc.Mem.Poke(0x0001, 0x35))
	test.ExpectSuccess(t, mc.Mem.Poke(0xfffe, 0x78))
	test.ExpectSuccess(t, mc.Mem.Poke(0xffff, 0x56))
	test.ExpectEquality(t, mc.ResolvePlayAddress(0), uint16(0x5678))
}

func TestSnapshot(t *testing.T) {
	mc := c64.NewC64()
	test.ExpectSuccess(t, mc.Mem.Load(0x1100, []uint8{
		0xa9, 0x11, 0x8d, 0x04, 0xd4, 0x60,
	}))

	snap := mc.Snapshot()
	test.ExpectSuccess(t, mc.RunPlay(0x1100))

	// the snapshot memory is unaffected by the run
	v, _ := snap.Mem.Peek(0xd404)
	test.ExpectEquality(t, v, uint8(0x00))
	test.ExpectEquality(t, snap.Cycles, uint64(0))

	// and the snapshot machine runs independently
	writes := collect(snap)
	test.ExpectSuccess(t, snap.RunPlay(0x1100))
	test.ExpectEquality(t, len(*writes), 1)
}
