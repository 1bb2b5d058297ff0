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

package disassembly

import (
	"fmt"
	"io"
	"strings"

	"github.com/gophersid/gophersid/hardware/cpu/instructions"
	"github.com/gophersid/gophersid/hardware/memory/addresses"
)

// Entry is one disassembled instruction.
type Entry struct {
	Address  uint16
	Bytecode []uint8
	Operator string
	Operand  string
}

func (e Entry) String() string {
	bc := strings.Builder{}
	for i, b := range e.Bytecode {
		if i > 0 {
			bc.WriteRune(' ')
		}
		fmt.Fprintf(&bc, "%02x", b)
	}

	s := fmt.Sprintf("$%04x   %-8s    %s %s", e.Address, bc.String(), e.Operator, e.Operand)
	return strings.TrimRight(s, " ")
}

// Disassembly is the decoded form of a block of memory.
type Disassembly struct {
	Origin  uint16
	Entries []Entry
}

// Disassemble decodes the block linearly from its first byte. Bytes at the
// end of the block that do not fit a whole instruction become .byte entries.
func Disassemble(origin uint16, data []byte) *Disassembly {
	defns := instructions.GetDefinitions()

	dsm := &Disassembly{Origin: origin}

	i := 0
	for i < len(data) {
		defn := defns[data[i]]

		if i+defn.Bytes > len(data) {
			for ; i < len(data); i++ {
				dsm.Entries = append(dsm.Entries, Entry{
					Address:  origin + uint16(i),
					Bytecode: []uint8{data[i]},
					Operator: ".byte",
					Operand:  fmt.Sprintf("$%02x", data[i]),
				})
			}
			break
		}

		bc := make([]uint8, defn.Bytes)
		copy(bc, data[i:])
		dsm.Entries = append(dsm.Entries, decode(origin+uint16(i), defn, bc))

		i += defn.Bytes
	}

	return dsm
}

// Write prints the disassembly, one instruction per line.
func (dsm *Disassembly) Write(output io.Writer) error {
	for _, e := range dsm.Entries {
		_, err := io.WriteString(output, e.String())
		if err != nil {
			return err
		}
		_, err = io.WriteString(output, "\n")
		if err != nil {
			return err
		}
	}
	return nil
}

func decode(addr uint16, defn *instructions.Definition, bytecode []uint8) Entry {
	e := Entry{
		Address:  addr,
		Bytecode: bytecode,
		Operator: defn.Operator.String(),
	}

	var operand uint16
	switch defn.Bytes {
	case 2:
		operand = uint16(bytecode[1])
	case 3:
		operand = uint16(bytecode[1]) | uint16(bytecode[2])<<8
	}

	switch defn.AddressingMode {
	case instructions.Implied:
		// no operand

	case instructions.Immediate:
		e.Operand = fmt.Sprintf("#$%02x", operand)

	case instructions.Relative:
		// branch offsets are relative to the address of the next
		// instruction. the arithmetic is allowed to wrap
		e.Operand = fmt.Sprintf("$%04x", addr+2+uint16(int8(bytecode[1])))

	case instructions.Absolute:
		e.Operand = address(operand)

	case instructions.ZeroPage:
		e.Operand = fmt.Sprintf("$%02x", operand)

	case instructions.Indirect:
		e.Operand = fmt.Sprintf("($%04x)", operand)

	case instructions.IndexedIndirect:
		e.Operand = fmt.Sprintf("($%02x,X)", operand)

	case instructions.IndirectIndexed:
		e.Operand = fmt.Sprintf("($%02x),Y", operand)

	case instructions.AbsoluteIndexedX:
		e.Operand = fmt.Sprintf("%s,X", address(operand))

	case instructions.AbsoluteIndexedY:
		e.Operand = fmt.Sprintf("%s,Y", address(operand))

	case instructions.ZeroPageIndexedX:
		e.Operand = fmt.Sprintf("$%02x,X", operand)

	case instructions.ZeroPageIndexedY:
		e.Operand = fmt.Sprintf("$%02x,Y", operand)
	}

	return e
}

// address formats an operand address, substituting the canonical register
// name when the address falls inside the SID window.
func address(addr uint16) string {
	if addresses.IsSIDRegister(addr) {
		return addresses.CanonicalSIDSymbols[addr-addresses.SIDBase]
	}
	return fmt.Sprintf("$%04x", addr)
}
