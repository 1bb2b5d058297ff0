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
	"fmt"

	"github.com/gophersid/gophersid/hardware/cpu"
	"github.com/gophersid/gophersid/hardware/memory"
)

// number of CPU cycles in one PAL frame. the PAL C64 clock runs at 985248Hz
// and the screen refreshes a fraction over 50 times a second.
const CyclesPerFrame = 19705

// C64 is the collection of hardware required to run a SID music player. it
// is not a full C64, just the CPU and memory. the routines of the player are
// called directly rather than through an emulated interrupt source, which is
// all that trace comparison requires.
type C64 struct {
	CPU *cpu.CPU
	Mem *memory.Memory

	// Cycles is the number of CPU cycles consumed since creation or the last
	// Reset(). the SID write trap can sample this to timestamp writes
	Cycles uint64
}

// NewC64 is the preferred method of initialisation for the C64 type.
func NewC64() *C64 {
	c64 := &C64{}
	c64.Mem = memory.NewMemory()
	c64.CPU = cpu.NewCPU(c64.Mem)
	c64.Reset()
	return c64
}

// Reset the machine to its startup state.
func (c64 *C64) Reset() {
	c64.Mem.Reset()
	c64.CPU.Reset()
	c64.Cycles = 0
}

// Attach replaces the memory of the machine, typically with an instance that
// has a program staged in it by the sidfile loader. The CPU is re-plumbed to
// the new memory and the cycle counter restarted.
func (c64 *C64) Attach(mem *memory.Memory) {
	c64.Mem = mem
	c64.CPU.Plumb(mem)
	c64.CPU.Reset()
	c64.Cycles = 0
}

// Snapshot creates a copy of the machine in its current state. useful for
// preserving the state reached after a program load, so that several
// subtunes can be traced without reloading.
func (c64 *C64) Snapshot() *C64 {
	n := *c64
	n.Mem = c64.Mem.Snapshot()
	n.CPU = c64.CPU.Snapshot()
	n.CPU.Plumb(n.Mem)
	return &n
}

func (c64 *C64) String() string {
	return fmt.Sprintf("%s [cycles=%d]", c64.CPU.String(), c64.Cycles)
}

// cycle is the callback given to the CPU for every consumed cycle.
func (c64 *C64) cycle() error {
	c64.Cycles++
	return nil
}
