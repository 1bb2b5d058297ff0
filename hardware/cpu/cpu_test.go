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

package cpu_test

import (
	"fmt"
	"testing"

	"github.com/gophersid/gophersid/hardware/cpu"
	"github.com/gophersid/gophersid/test"
)

type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	mem := new(mockMem)
	mem.internal = make([]uint8, 0x10000)
	return mem
}

// putInstructions is a generalised function to help prepare mock memory. it
// returns the address after the last byte written, for chaining.
func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		_ = mem.Write(origin+uint16(i), b)
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	d, _ := mem.Read(address)
	test.ExpectEquality(t, d, value, fmt.Sprintf("memory at %#04x", address))
}

// Clear sets all bytes in memory to zero.
func (mem *mockMem) Clear() {
	for i := range mem.internal {
		mem.internal[i] = 0
	}
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	mem.internal[address] = data
	return nil
}

// step executes one instruction and cross-checks the execution result
// against the instruction definition.
func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	if err != nil {
		t.Fatal(err)
	}
	err = mc.LastResult.IsValid()
	if err != nil {
		t.Fatal(err)
	}
}

func loadPC(t *testing.T, mc *cpu.CPU, origin uint16) {
	t.Helper()
	err := mc.LoadPC(origin)
	if err != nil {
		t.Fatal(err)
	}
}

const origin = uint16(0x1000)

func testStatusInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// SEC; CLC; CLI; SEI; SED; CLD; CLV
	mem.putInstructions(origin, 0x38, 0x18, 0x58, 0x78, 0xf8, 0xd8, 0xb8)
	step(t, mc) // SEC
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")
	step(t, mc) // CLC
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
	step(t, mc) // CLI
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
	step(t, mc) // SEI
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIZc")
	step(t, mc) // SED
	test.ExpectEquality(t, mc.Status.String(), "sv-bDIZc")
	step(t, mc) // CLD
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIZc")
	step(t, mc) // CLV
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIZc")

	// PHP; PLP
	mem.putInstructions(mc.PC.Address(), 0x08, 0x28)
	step(t, mc) // PHP
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIZc")
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfe))

	// mangle status register. PLP should restore it
	mc.Status.Sign = true
	mc.Status.Overflow = true

	step(t, mc) // PLP
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIZc")
}

func testRegisterArithmetic(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// LDA immediate; ADC immediate
	mem.putInstructions(origin, 0xa9, 1, 0x69, 10)
	step(t, mc) // LDA #1
	step(t, mc) // ADC #10
	test.ExpectEquality(t, mc.A.Value(), uint8(11))

	// SEC; SBC immediate
	mem.putInstructions(mc.PC.Address(), 0x38, 0xe9, 8)
	step(t, mc) // SEC
	step(t, mc) // SBC #8
	test.ExpectEquality(t, mc.A.Value(), uint8(3))
	test.ExpectEquality(t, mc.Status.Carry, true)
}

func testRegisterBitwiseInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// ORA immediate; EOR immediate; AND immediate
	mem.putInstructions(origin, 0x09, 0xff, 0x49, 0xf0, 0x29, 0x01)
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	step(t, mc) // ORA #$FF
	test.ExpectEquality(t, mc.A.Value(), uint8(0xff))
	step(t, mc) // EOR #$F0
	test.ExpectEquality(t, mc.A.Value(), uint8(0x0f))
	step(t, mc) // AND #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))

	// ASL implied; LSR implied; LSR implied
	mem.putInstructions(mc.PC.Address(), 0x0a, 0x4a, 0x4a)
	step(t, mc) // ASL
	test.ExpectEquality(t, mc.A.Value(), uint8(2))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // LSR
	test.ExpectEquality(t, mc.A.Value(), uint8(1))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // LSR
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")

	// ROL implied; ROR implied; ROR implied; ROR implied
	mem.putInstructions(mc.PC.Address(), 0x2a, 0x6a, 0x6a, 0x6a)
	step(t, mc) // ROL
	test.ExpectEquality(t, mc.A.Value(), uint8(1))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // ROR
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")
	step(t, mc) // ROR
	test.ExpectEquality(t, mc.A.Value(), uint8(0x80))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // ROR
	test.ExpectEquality(t, mc.A.Value(), uint8(0x40))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
}

func testImmediateImplied(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// LDX immediate; INX; DEX
	mem.putInstructions(origin, 0xa2, 5, 0xe8, 0xca)
	step(t, mc) // LDX #5
	test.ExpectEquality(t, mc.X.Value(), uint8(5))
	step(t, mc) // INX
	test.ExpectEquality(t, mc.X.Value(), uint8(6))
	step(t, mc) // DEX
	test.ExpectEquality(t, mc.X.Value(), uint8(5))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")

	// LDA immediate; PHA; LDA immediate; PLA
	mem.putInstructions(mc.PC.Address(), 0xa9, 5, 0x48, 0xa9, 0, 0x68)
	step(t, mc) // LDA #5
	step(t, mc) // PHA
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfe))
	step(t, mc) // LDA #0
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	test.ExpectEquality(t, mc.Status.Zero, true)
	step(t, mc) // PLA
	test.ExpectEquality(t, mc.A.Value(), uint8(5))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))

	// TAX; TAY; LDX immediate; TXA; LDY immediate; TYA; INY; DEY
	mem.putInstructions(mc.PC.Address(), 0xaa, 0xa8, 0xa2, 1, 0x8a, 0xa0, 2, 0x98, 0xc8, 0x88)
	step(t, mc) // TAX
	test.ExpectEquality(t, mc.X.Value(), uint8(5))
	step(t, mc) // TAY
	test.ExpectEquality(t, mc.Y.Value(), uint8(5))
	step(t, mc) // LDX #1
	step(t, mc) // TXA
	test.ExpectEquality(t, mc.A.Value(), uint8(1))
	step(t, mc) // LDY #2
	step(t, mc) // TYA
	test.ExpectEquality(t, mc.A.Value(), uint8(2))
	step(t, mc) // INY
	test.ExpectEquality(t, mc.Y.Value(), uint8(3))
	step(t, mc) // DEY
	test.ExpectEquality(t, mc.Y.Value(), uint8(2))

	// TSX; LDX immediate; TXS
	mem.putInstructions(mc.PC.Address(), 0xba, 0xa2, 100, 0x9a)
	step(t, mc) // TSX
	test.ExpectEquality(t, mc.X.Value(), uint8(0xff))
	step(t, mc) // LDX #100
	step(t, mc) // TXS
	test.ExpectEquality(t, mc.SP.Value(), uint8(100))
}

func testAddressingModes(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// data for the tests below
	mem.putInstructions(0x0010, 0x11, 0x22, 0x33)
	mem.putInstructions(0x0020, 0x00, 0x02) // vector to 0x0200
	mem.putInstructions(0x0030, 0xff, 0x02) // vector to 0x02ff
	mem.putInstructions(0x0200, 0x44, 0x55)
	mem.putInstructions(0x02ff, 0x66)
	mem.putInstructions(0x0300, 0x77)

	// LDA zero page
	mem.putInstructions(mc.PC.Address(), 0xa5, 0x10)
	step(t, mc) // LDA $10
	test.ExpectEquality(t, mc.A.Value(), uint8(0x11))

	// LDX immediate; LDA zero page,X
	mem.putInstructions(mc.PC.Address(), 0xa2, 2, 0xb5, 0x10)
	step(t, mc) // LDX #2
	step(t, mc) // LDA $10,X
	test.ExpectEquality(t, mc.A.Value(), uint8(0x33))

	// LDY immediate; LDX zero page,Y
	mem.putInstructions(mc.PC.Address(), 0xa0, 1, 0xb6, 0x10)
	step(t, mc) // LDY #1
	step(t, mc) // LDX $10,Y
	test.ExpectEquality(t, mc.X.Value(), uint8(0x22))

	// LDA absolute
	mem.putInstructions(mc.PC.Address(), 0xad, 0x00, 0x02)
	step(t, mc) // LDA $0200
	test.ExpectEquality(t, mc.A.Value(), uint8(0x44))

	// LDX immediate; LDA absolute,X (no page crossing)
	mem.putInstructions(mc.PC.Address(), 0xa2, 1, 0xbd, 0x00, 0x02)
	step(t, mc) // LDX #1
	step(t, mc) // LDA $0200,X
	test.ExpectEquality(t, mc.A.Value(), uint8(0x55))
	test.ExpectEquality(t, mc.LastResult.PageFault, false)

	// LDY immediate; LDA absolute,Y (page crossing)
	mem.putInstructions(mc.PC.Address(), 0xa0, 1, 0xb9, 0xff, 0x02)
	step(t, mc) // LDY #1
	step(t, mc) // LDA $02FF,Y
	test.ExpectEquality(t, mc.A.Value(), uint8(0x77))
	test.ExpectEquality(t, mc.LastResult.PageFault, true)

	// pre-indexed indirect. X is 1 at this point
	mem.putInstructions(mc.PC.Address(), 0xa1, 0x1f)
	step(t, mc) // LDA ($1F,X)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x44))
	test.ExpectEquality(t, mc.LastResult.CPUBug, "")

	// pre-indexed indirect with wraparound. the vector is read from 0x00ff
	// and 0x0000, not 0x0100
	mem.putInstructions(0x00ff, 0x10)
	mem.putInstructions(mc.PC.Address(), 0xa2, 0, 0xa1, 0xff)
	step(t, mc) // LDX #0
	step(t, mc) // LDA ($FF,X)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x11))
	test.ExpectEquality(t, mc.LastResult.CPUBug, "indirect addressing bug")

	// post-indexed indirect (page crossing). Y is 1 at this point
	mem.putInstructions(mc.PC.Address(), 0xb1, 0x30)
	step(t, mc) // LDA ($30),Y
	test.ExpectEquality(t, mc.A.Value(), uint8(0x77))
	test.ExpectEquality(t, mc.LastResult.PageFault, true)
}

func testStorageInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// LDA immediate; STA absolute
	mem.putInstructions(origin, 0xa9, 0x54, 0x8d, 0x10, 0x02)
	step(t, mc) // LDA #$54
	step(t, mc) // STA $0210
	mem.assert(t, 0x0210, 0x54)

	// LDX immediate; STX zero page
	mem.putInstructions(mc.PC.Address(), 0xa2, 0x63, 0x86, 0x40)
	step(t, mc) // LDX #$63
	step(t, mc) // STX $40
	mem.assert(t, 0x0040, 0x63)

	// LDY immediate; STY absolute
	mem.putInstructions(mc.PC.Address(), 0xa0, 0x72, 0x8c, 0x11, 0x02)
	step(t, mc) // LDY #$72
	step(t, mc) // STY $0211
	mem.assert(t, 0x0211, 0x72)

	// STA absolute,X. the write always costs the extra cycle so there is
	// never a page fault
	mem.putInstructions(mc.PC.Address(), 0x9d, 0xf0, 0x02)
	step(t, mc) // STA $02F0,X
	mem.assert(t, 0x0353, 0x54)
	test.ExpectEquality(t, mc.LastResult.PageFault, false)

	// INC zero page; DEC absolute
	mem.putInstructions(mc.PC.Address(), 0xe6, 0x40, 0xce, 0x10, 0x02)
	step(t, mc) // INC $40
	mem.assert(t, 0x0040, 0x64)
	step(t, mc) // DEC $0210
	mem.assert(t, 0x0210, 0x53)
}

func testBranching(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0x10, 0x10)
	step(t, mc) // BPL +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x12)
	test.ExpectEquality(t, mc.LastResult.BranchSuccess, true)

	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0x50, 0x10)
	step(t, mc) // BVC +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x12)

	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0x90, 0x10)
	step(t, mc) // BCC +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x12)

	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0x38, 0xb0, 0x10)
	step(t, mc) // SEC
	step(t, mc) // BCS +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x13)

	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0xe8, 0xd0, 0x10)
	step(t, mc) // INX
	step(t, mc) // BNE +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x13)

	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0xca, 0x30, 0x10)
	step(t, mc) // DEX
	step(t, mc) // BMI +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x13)

	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mc.Status.Overflow = true
	mem.putInstructions(origin, 0x70, 0x10)
	step(t, mc) // BVS +$10
	test.ExpectEquality(t, mc.PC.Address(), origin+0x12)

	// branch not taken
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(origin, 0xd0, 0x10)
	step(t, mc) // BNE +$10 (zero flag is set after reset)
	test.ExpectEquality(t, mc.PC.Address(), origin+0x02)
	test.ExpectEquality(t, mc.LastResult.BranchSuccess, false)

	// branching backwards
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin+0x02)
	mem.putInstructions(origin, 0xe8, 0x00, 0xe8, 0xd0, 0xfb)
	step(t, mc) // INX
	step(t, mc) // BNE -$05
	test.ExpectEquality(t, mc.PC.Address(), origin)
}

func testJumps(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// JMP absolute
	mem.putInstructions(origin, 0x4c, 0x00, 0x21)
	step(t, mc) // JMP $2100
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x2100))

	// JMP indirect
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(0x0050, 0x49, 0x21)
	mem.putInstructions(origin, 0x6c, 0x50, 0x00)
	step(t, mc) // JMP ($0050)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x2149))

	// JMP indirect with the vector on a page boundary. the MSB is read from
	// the start of the same page, not the next one
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)
	mem.putInstructions(0x01ff, 0x03)
	mem.putInstructions(0x0100, 0x00)
	mem.putInstructions(origin, 0x6c, 0xff, 0x01)
	step(t, mc) // JMP ($01FF)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0003))
	test.ExpectEquality(t, mc.LastResult.CPUBug, "indirect addressing bug (JMP bug)")
}

func testComparisonInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// CMP immediate (equality)
	mem.putInstructions(origin, 0xc9, 0x00)
	step(t, mc) // CMP #$00
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")

	// LDA immediate; CMP immediate
	mem.putInstructions(mc.PC.Address(), 0xa9, 0xf6, 0xc9, 0x18)
	step(t, mc) // LDA #$F6
	step(t, mc) // CMP #$18
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizC")

	// LDX immediate; CPX immediate
	mem.putInstructions(mc.PC.Address(), 0xa2, 0xf6, 0xe0, 0x18)
	step(t, mc) // LDX #$F6
	step(t, mc) // CPX #$18
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizC")

	// LDY immediate; CPY immediate
	mem.putInstructions(mc.PC.Address(), 0xa0, 0xf6, 0xc0, 0x18)
	step(t, mc) // LDY #$F6
	step(t, mc) // CPY #$18
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizC")

	// LDA immediate; CMP immediate (carry clear this time)
	mem.putInstructions(mc.PC.Address(), 0xa9, 0x18, 0xc9, 0xf6)
	step(t, mc) // LDA #$18
	step(t, mc) // CMP #$F6
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")

	// BIT zero page. sign and overflow taken from bits 7 and 6 of the
	// tested value
	mem.putInstructions(0x0060, 0xc0)
	mem.putInstructions(mc.PC.Address(), 0x24, 0x60)
	step(t, mc) // BIT $60
	test.ExpectEquality(t, mc.Status.String(), "SV-bdiZc")
}

func testSubroutineInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// JSR absolute
	mem.putInstructions(origin, 0x20, 0x00, 0x21)
	step(t, mc) // JSR $2100
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x2100))
	mem.assert(t, 0x01ff, 0x10)
	mem.assert(t, 0x01fe, 0x02)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfd))

	mem.putInstructions(0x2100, 0x60)
	step(t, mc) // RTS
	test.ExpectEquality(t, mc.PC.Address(), origin+0x03)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
}

func testInterruptInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// BRK vectors through 0xfffe
	mem.putInstructions(0xfffe, 0x00, 0x21)
	mem.putInstructions(origin, 0x00)
	step(t, mc) // BRK
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x2100))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfc))
	test.ExpectEquality(t, mc.Status.Break, true)

	// the pushed program counter is the BRK address plus two
	mem.assert(t, 0x01ff, 0x10)
	mem.assert(t, 0x01fe, 0x02)

	// RTI returns to the pushed address, with the pushed status
	mem.putInstructions(0x2100, 0x40)
	step(t, mc) // RTI
	test.ExpectEquality(t, mc.PC.Address(), origin+0x02)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
}

func testDecimalMode(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// SED; LDA immediate; SEC; SBC immediate
	mem.putInstructions(origin, 0xf8, 0xa9, 0x20, 0x38, 0xe9, 0x01)
	step(t, mc) // SED
	step(t, mc) // LDA #$20
	step(t, mc) // SEC
	step(t, mc) // SBC #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0x19))

	// CLC; ADC immediate
	mem.putInstructions(mc.PC.Address(), 0x18, 0x69, 0x01)
	step(t, mc) // CLC
	step(t, mc) // ADC #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0x20))
}

func testUndocumentedInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	mem.Clear()
	mc.Reset()
	loadPC(t, mc, origin)

	// LAX absolute
	mem.putInstructions(0x0220, 0x5a)
	mem.putInstructions(origin, 0xaf, 0x20, 0x02)
	step(t, mc) // LAX $0220
	test.ExpectEquality(t, mc.A.Value(), uint8(0x5a))
	test.ExpectEquality(t, mc.X.Value(), uint8(0x5a))

	// LDA immediate; LDX immediate; SAX absolute
	mem.putInstructions(mc.PC.Address(), 0xa9, 0xf0, 0xa2, 0x3c, 0x8f, 0x21, 0x02)
	step(t, mc) // LDA #$F0
	step(t, mc) // LDX #$3C
	step(t, mc) // SAX $0221
	mem.assert(t, 0x0221, 0x30)

	// LDA immediate; DCP absolute
	mem.putInstructions(0x0222, 0x41)
	mem.putInstructions(mc.PC.Address(), 0xa9, 0x40, 0xcf, 0x22, 0x02)
	step(t, mc) // LDA #$40
	step(t, mc) // DCP $0222
	mem.assert(t, 0x0222, 0x40)
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")

	// LDA immediate; SLO absolute
	mem.putInstructions(0x0223, 0x40)
	mem.putInstructions(mc.PC.Address(), 0xa9, 0x01, 0x0f, 0x23, 0x02)
	step(t, mc) // LDA #$01
	step(t, mc) // SLO $0223
	mem.assert(t, 0x0223, 0x80)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x81))

	// LDA immediate; ANC immediate. carry takes the sign bit
	mem.putInstructions(mc.PC.Address(), 0xa9, 0xff, 0x0b, 0x80)
	step(t, mc) // LDA #$FF
	step(t, mc) // ANC #$80
	test.ExpectEquality(t, mc.A.Value(), uint8(0x80))
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectEquality(t, mc.Status.Sign, true)

	// the multi-byte NOPs advance the program counter past their argument
	pc := mc.PC.Address()
	mem.putInstructions(pc, 0x04, 0x00)
	step(t, mc) // NOP $00
	test.ExpectEquality(t, mc.PC.Address(), pc+2)

	pc = mc.PC.Address()
	mem.putInstructions(pc, 0x0c, 0x00, 0x03)
	step(t, mc) // NOP $0300
	test.ExpectEquality(t, mc.PC.Address(), pc+3)

	// KIL jams a real CPU. here it is a logged no-op and execution carries
	// on with the next instruction
	pc = mc.PC.Address()
	mem.putInstructions(pc, 0x02, 0xe8)
	step(t, mc) // KIL
	test.ExpectEquality(t, mc.PC.Address(), pc+1)
	x := mc.X.Value()
	step(t, mc) // INX
	test.ExpectEquality(t, mc.X.Value(), x+1)
}

func TestCPU(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)

	testStatusInstructions(t, mc, mem)
	testRegisterArithmetic(t, mc, mem)
	testRegisterBitwiseInstructions(t, mc, mem)
	testImmediateImplied(t, mc, mem)
	testAddressingModes(t, mc, mem)
	testStorageInstructions(t, mc, mem)
	testBranching(t, mc, mem)
	testJumps(t, mc, mem)
	testComparisonInstructions(t, mc, mem)
	testSubroutineInstructions(t, mc, mem)
	testInterruptInstructions(t, mc, mem)
	testDecimalMode(t, mc, mem)
	testUndocumentedInstructions(t, mc, mem)
}

func TestCycleCounts(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()
	loadPC(t, mc, origin)

	// a counting callback, to check that the consumed cycles are relayed one
	// at a time as they happen
	cycles := 0
	count := func() error {
		cycles++
		return nil
	}

	exec := func(expected int, bytes ...uint8) {
		t.Helper()
		mem.putInstructions(mc.PC.Address(), bytes...)
		cycles = 0
		err := mc.ExecuteInstruction(count)
		if err != nil {
			t.Fatal(err)
		}
		err = mc.LastResult.IsValid()
		if err != nil {
			t.Fatal(err)
		}
		test.ExpectEquality(t, mc.LastResult.Cycles, expected)
		test.ExpectEquality(t, cycles, expected)
	}

	exec(2, 0xa9, 0x01)       // LDA immediate
	exec(3, 0xa5, 0x10)       // LDA zero page
	exec(4, 0xad, 0x10, 0x02) // LDA absolute

	exec(2, 0xa2, 0x01)       // LDX #1
	exec(4, 0xbd, 0x00, 0x02) // LDA $0200,X (same page)
	exec(5, 0xbd, 0xff, 0x02) // LDA $02FF,X (page crossed)

	exec(5, 0x9d, 0xff, 0x02) // STA $02FF,X (write, fixed cost)
	exec(6, 0xee, 0x10, 0x02) // INC absolute
	exec(7, 0xfe, 0xff, 0x02) // INC absolute,X

	// branch not taken, taken, taken with page crossing. the zero flag is
	// clear after the INC above
	exec(2, 0xf0, 0x10) // BEQ (not taken)
	exec(3, 0xd0, 0x02) // BNE (taken, same page)

	loadPC(t, mc, 0x10f0)
	exec(4, 0xd0, 0x20) // BNE (taken, crossing into 0x1112)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x1112))

	loadPC(t, mc, origin)
	exec(6, 0x20, 0x00, 0x21) // JSR $2100
	exec(6, 0x60)             // RTS
	exec(7, 0x00)             // BRK
	exec(6, 0x40)             // RTI
	exec(2, 0x02)             // KIL
}
