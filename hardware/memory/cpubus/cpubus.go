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

package cpubus

import "errors"

// Memory defines the operations for the memory system when accessed from the
// CPU. the emulated C64 memory is a single flat area so the implementation
// need not care about banking or mirrors, but the CPU itself only ever sees
// this interface.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// AddressError is returned by implementations of the Memory interface when
// the address cannot be accessed. errors.Is() can be used to check for it
// even when the implementation has wrapped it with more detail.
var AddressError = errors.New("inaccessible address")

// the hardware vectors of the 6510. the CPU reads these addresses on reset
// and on interrupt. the BRK instruction is dispatched through the IRQ
// vector.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
	BRK   = IRQ
)
