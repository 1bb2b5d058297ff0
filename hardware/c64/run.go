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

package c64

import (
	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/memory/addresses"
	"github.com/gophersid/gophersid/hardware/memory/cpubus"
	"github.com/gophersid/gophersid/logger"
)

// MaxRoutineInstructions is the number of instructions a single call to a
// player routine may execute before the routine is considered to have hung.
const MaxRoutineInstructions = 0xffff

// RunInit runs the initialisation routine of a player. the subtune number is
// passed in the accumulator, which is the PSID calling convention.
//
// the VIC raster registers are nudged between instructions so that an init
// routine that waits on a raster line, or samples it as a random seed, can
// make progress.
func (c64 *C64) RunInit(entry uint16, subtune uint8) error {
	return c64.runRoutine(entry, subtune, 0, 0, true)
}

// RunPlay makes a single call to the play routine of a player. one call
// corresponds to one frame of music.
func (c64 *C64) RunPlay(entry uint16) error {
	return c64.runRoutine(entry, 0, 0, 0, false)
}

// ResolvePlayAddress returns the address RunPlay should be called with. a
// play address of zero in a SID header means the init routine has installed
// an interrupt handler and the real address must be read from the interrupt
// vector. which vector depends on the banking register: configuration five
// banks the KERNAL out, leaving the hardware vector in RAM.
func (c64 *C64) ResolvePlayAddress(play uint16) uint16 {
	if play != 0 {
		return play
	}

	vec := addresses.KernalIRQ
	if c64.Mem.Bank() == 0x05 {
		vec = cpubus.IRQ
	}

	lo, _ := c64.Mem.Peek(vec)
	hi, _ := c64.Mem.Peek(vec + 1)
	play = (uint16(hi) << 8) | uint16(lo)
	logger.Logf(logger.Allow, "c64", "play address taken from vector %#04x: %#04x", vec, play)

	return play
}

// runRoutine calls the routine at entry and runs it to completion. the
// routine is complete when any of the following is true
//
//   - the next instruction is RTS and the stack is at the level it was on
//     entry
//
//   - the program counter has arrived at one of the KERNAL interrupt exit
//     points, with the KERNAL banked in
//
//   - the program counter has fallen to address zero
func (c64 *C64) runRoutine(entry uint16, a uint8, x uint8, y uint8, raster bool) error {
	c64.CPU.A.Load(a)
	c64.CPU.X.Load(x)
	c64.CPU.Y.Load(y)
	c64.CPU.SP.Load(0xff)
	c64.CPU.Status.Reset()

	err := c64.CPU.LoadPC(entry)
	if err != nil {
		return curated.Errorf("c64: %v", err)
	}

	for instr := 0; instr < MaxRoutineInstructions; instr++ {
		op, _ := c64.Mem.Peek(c64.CPU.PC.Address())
		if op == 0x60 && c64.CPU.SP.Value() == 0xff {
			// RTS with nothing on the stack to return to
			return nil
		}

		err = c64.CPU.ExecuteInstruction(c64.cycle)
		if err != nil {
			return curated.Errorf("c64: %v", err)
		}

		pc := c64.CPU.PC.Address()

		// a player that was installed as an interrupt handler returns by
		// jumping into the KERNAL interrupt exit path rather than executing
		// RTS. only meaningful when the KERNAL is banked in
		if c64.Mem.Bank() != 0x05 && (pc == addresses.KernalIRQReturn || pc == addresses.KernalIRQReturnMin) {
			return nil
		}

		// execution falling to address zero means the routine has lost its
		// way, most likely a BRK through an empty interrupt vector
		if pc == 0x0000 {
			logger.Logf(logger.Allow, "c64", "routine at %#04x fell to address zero", entry)
			return nil
		}

		if raster {
			c64.advanceRaster()
		}
	}

	return curated.Errorf("c64: routine at %#04x has not returned after %d instructions", entry, MaxRoutineInstructions)
}

// advanceRaster steps the value a program sees in the VIC raster registers.
// the progression covers all nine bits of the PAL raster (312 lines), the
// ninth bit living in the control register.
func (c64 *C64) advanceRaster() {
	d012, _ := c64.Mem.Peek(addresses.VICRaster)
	d011, _ := c64.Mem.Peek(addresses.VICControl)

	d012++
	if d012 == 0 || (d011&0x80 == 0x80 && d012 >= 0x38) {
		d012 = 0
		d011 ^= 0x80
		_ = c64.Mem.Poke(addresses.VICControl, d011)
	}
	_ = c64.Mem.Poke(addresses.VICRaster, d012)
}
