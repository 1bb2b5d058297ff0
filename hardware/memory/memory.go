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

package memory

import (
	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/memory/addresses"
)

// Memory is the 64k address space of the emulated C64. it is a single flat
// area of RAM with no banking. the I/O chips are not emulated as such but
// CPU writes into the SID register window are reported through the
// TrapSIDWrite function, which is how the tracing loop observes the music
// player at work.
//
// a flat area is sufficient because the programs we run are self contained
// music players. they do not call into BASIC or the KERNAL and any reads of
// the I/O area simply return whatever was last written, which is the
// behaviour most players that read back their own register writes expect.
type Memory struct {
	RAM []uint8

	// TrapSIDWrite is called for every CPU write into the SID register
	// window, in the order the writes occur. it may be nil, in which case
	// writes land in RAM and nothing else happens
	TrapSIDWrite func(address uint16, data uint8)

	// SIDWriteCount is the number of CPU writes into the SID register window
	// since the last Reset(), whether or not TrapSIDWrite is set
	SIDWriteCount int
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	mem := &Memory{
		RAM: make([]uint8, 0x10000),
	}
	mem.Reset()
	return mem
}

// Snapshot creates a copy of the memory in its current state. the
// TrapSIDWrite function is not copied.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	n.RAM = make([]uint8, len(mem.RAM))
	copy(n.RAM, mem.RAM)
	n.TrapSIDWrite = nil
	return &n
}

// Reset contents of memory. the 6510 on-chip port is given its power on
// value, banking in the I/O area.
func (mem *Memory) Reset() {
	for i := range mem.RAM {
		mem.RAM[i] = 0
	}
	mem.RAM[addresses.ProcessorPortDDR] = addresses.ProcessorPortDDRStartup
	mem.RAM[addresses.ProcessorPort] = addresses.ProcessorPortStartup
	mem.SIDWriteCount = 0
}

// Read is an implementation of the cpubus.Memory interface.
func (mem *Memory) Read(address uint16) (uint8, error) {
	return mem.RAM[address], nil
}

// Write is an implementation of the cpubus.Memory interface.
func (mem *Memory) Write(address uint16, data uint8) error {
	mem.RAM[address] = data
	if addresses.IsSIDRegister(address) {
		mem.SIDWriteCount++
		if mem.TrapSIDWrite != nil {
			mem.TrapSIDWrite(address, data)
		}
	}
	return nil
}

// Peek returns the value at the address without any side effects. in
// particular, the SID write trap never fires on a Peek or a Poke.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	return mem.RAM[address], nil
}

// Poke sets the value at the address without any side effects.
func (mem *Memory) Poke(address uint16, value uint8) error {
	mem.RAM[address] = value
	return nil
}

// Load copies data into memory starting at the origin address. loading is a
// Poke type operation, the SID write trap does not fire.
func (mem *Memory) Load(origin uint16, data []uint8) error {
	if int(origin)+len(data) > len(mem.RAM) {
		return curated.Errorf("memory: load of %d bytes at %#04x spills out of the address space", len(data), origin)
	}
	copy(mem.RAM[origin:], data)
	return nil
}

// Bank returns the low three bits of the 6510 on-chip port. the value
// selects the memory banking configuration of a real C64 and decides how
// interrupts are dispatched.
func (mem *Memory) Bank() uint8 {
	return mem.RAM[addresses.ProcessorPort] & 0x07
}
