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

package driver

import (
	"github.com/gophersid/gophersid/packer"
)

// memory map of the driver 11 reference binary. the patch census below was
// made against this assembly and is meaningless against any other build of
// the driver.
const (
	sf2d11Load      = 0x1000
	sf2d11Voice     = 0x1064
	sf2d11FreqLo    = 0x1100
	sf2d11FreqHi    = 0x1160
	sf2d11EmptySeq  = 0x11c0
	sf2d11DataStart = 0x11c1
	sf2d11End       = 0x126a
)

// the operand references in the driver 11 binary, at word granularity. the
// offsets are relative to the load address. expect values are the demo tune
// addresses the binary was assembled against.
//
// the freq table references at offsets 0x0a9 and 0x0af are deliberately
// absent: the freq tables live inside the retained driver block and never
// move.
var sf2d11Refs = []wordRef{
	{offset: 0x04d, target: Filter, delta: 0, expect: 0x1234},
	{offset: 0x053, target: Filter, delta: 1, expect: 0x1235},
	{offset: 0x059, target: Filter, delta: 2, expect: 0x1236},
	{offset: 0x068, target: SeqPtrLo, delta: 0, expect: 0x1240},
	{offset: 0x06d, target: SeqPtrHi, delta: 0, expect: 0x1248},
	{offset: 0x080, target: Instruments, delta: 0, expect: 0x1200},
	{offset: 0x086, target: Instruments, delta: 1, expect: 0x1201},
	{offset: 0x08c, target: Instruments, delta: 4, expect: 0x1204},
	{offset: 0x092, target: Instruments, delta: 5, expect: 0x1205},
	{offset: 0x098, target: Instruments, delta: 2, expect: 0x1202},
	{offset: 0x09c, target: Wave, delta: 0, expect: 0x1220},
	{offset: 0x0a2, target: Wave, delta: 1, expect: 0x1221},
	{offset: 0x0b7, target: Instruments, delta: 3, expect: 0x1203},
	{offset: 0x0bb, target: Pulse, delta: 0, expect: 0x1228},
	{offset: 0x0c1, target: Pulse, delta: 1, expect: 0x1229},
	{offset: 0x0c7, target: Pulse, delta: 2, expect: 0x122a},
	{offset: 0x0cf, target: OrderPtrLo, delta: 0, expect: 0x1250},
	{offset: 0x0d4, target: OrderPtrHi, delta: 0, expect: 0x1253},
	{offset: 0x0ed, target: SeqPtrLo, delta: 0, expect: 0x1240},
	{offset: 0x0f2, target: SeqPtrHi, delta: 0, expect: 0x1248},
}

// the operands in the driver 11 binary that point back into the binary
// itself. two entry jumps, the three voice routine calls and the two freq
// table reads.
var sf2d11Vectors = []packer.Span{
	{Start: 0x001, Len: 2},
	{Start: 0x004, Len: 2},
	{Start: 0x026, Len: 2},
	{Start: 0x037, Len: 2},
	{Start: 0x048, Len: 2},
	{Start: 0x0a9, Len: 2},
	{Start: 0x0af, Len: 2},
}

func sf2Driver11Config() Config {
	return Config{
		ID:           SF2Driver11,
		Name:         "SF2 driver 11.04",
		LoadAddr:     sf2d11Load,
		InitAddr:     0x1000,
		PlayAddr:     0x1003,
		DataStart:    sf2d11DataStart,
		EmptySeq:     sf2d11EmptySeq,
		MaxSequences: 128,
		Patches:      expandRefs(sf2d11Refs),
		Vectors:      sf2d11Vectors,
		Template:     sf2Driver11Template(),
	}
}

// the driver 11 binary, transcribed segment by segment. comments are the
// disassembly of the reference build.
//
// zero page usage: $e0,X/$e1,X/$e2,X hold sequence number, sequence
// position and orderlist position per voice (X is the SID register offset,
// 0, 7 or 14). $f8/$f9/$fa are the voice number and its times-8 and times-3
// forms, set up by the play routine before each voice call. $fb/$fc is the
// active sequence or orderlist pointer. $f7 is the note being played and
// $f6 the pulse program state.

// entry points at $1000
var sf2d11Entry = []uint8{
	0x4c, 0x06, 0x10, // JMP $1006 ; init
	0x4c, 0x1b, 0x10, // JMP $101b ; play
}

// init at $1006. clears the per voice state. sequence number zero is the
// built in empty sequence, so the first play frame of every voice falls
// straight through to its orderlist.
var sf2d11InitCode = []uint8{
	0xa9, 0x00, // LDA #$00
	0x85, 0xe0, // STA $e0
	0x85, 0xe1, // STA $e1
	0x85, 0xe2, // STA $e2
	0x85, 0xe7, // STA $e7
	0x85, 0xe8, // STA $e8
	0x85, 0xe9, // STA $e9
	0x85, 0xee, // STA $ee
	0x85, 0xef, // STA $ef
	0x85, 0xf0, // STA $f0
	0x60, // RTS
}

// play at $101b. calls the voice routine three times and then runs the
// filter row and master volume.
var sf2d11PlayCode = []uint8{
	0xa2, 0x00, // LDX #$00
	0xa9, 0x00, // LDA #$00
	0x85, 0xf8, // STA $f8
	0x85, 0xf9, // STA $f9
	0x85, 0xfa, // STA $fa
	0x20, 0x64, 0x10, // JSR $1064
	0xa2, 0x07, // LDX #$07
	0xa9, 0x01, // LDA #$01
	0x85, 0xf8, // STA $f8
	0xa9, 0x08, // LDA #$08
	0x85, 0xf9, // STA $f9
	0xa9, 0x03, // LDA #$03
	0x85, 0xfa, // STA $fa
	0x20, 0x64, 0x10, // JSR $1064
	0xa2, 0x0e, // LDX #$0e
	0xa9, 0x02, // LDA #$02
	0x85, 0xf8, // STA $f8
	0xa9, 0x10, // LDA #$10
	0x85, 0xf9, // STA $f9
	0xa9, 0x06, // LDA #$06
	0x85, 0xfa, // STA $fa
	0x20, 0x64, 0x10, // JSR $1064
	0xa0, 0x00, // LDY #$00
	0xb9, 0x34, 0x12, // LDA $1234,Y ; filter cutoff lo
	0x8d, 0x15, 0xd4, // STA $d415
	0xb9, 0x35, 0x12, // LDA $1235,Y ; filter cutoff hi
	0x8d, 0x16, 0xd4, // STA $d416
	0xb9, 0x36, 0x12, // LDA $1236,Y ; resonance and routing
	0x8d, 0x17, 0xd4, // STA $d417
	0xa9, 0x0f, // LDA #$0f
	0x8d, 0x18, 0xd4, // STA $d418
	0x60, // RTS
}

// voice routine at $1064. reads the next sequence byte; $7f hands control
// to the orderlist reader at $10cc, anything else is a note. the note path
// runs the instrument row, the wave row and the pulse row for the voice and
// leaves the frequency in $d400/$d401.
var sf2d11VoiceCode = []uint8{
	0xb5, 0xe0, // LDA $e0,X
	0xa8, // TAY ; $1066
	0xb9, 0x40, 0x12, // LDA $1240,Y ; sequence pointer lo
	0x85, 0xfb, // STA $fb
	0xb9, 0x48, 0x12, // LDA $1248,Y ; sequence pointer hi
	0x85, 0xfc, // STA $fc
	0xb4, 0xe1, // LDY $e1,X
	0xb1, 0xfb, // LDA ($fb),Y
	0xc9, 0x7f, // CMP #$7f
	0xf0, 0x53, // BEQ $10cc ; end of sequence
	0x85, 0xf7, // STA $f7
	0xf6, 0xe1, // INC $e1,X
	0xa4, 0xf9, // LDY $f9
	0xb9, 0x00, 0x12, // LDA $1200,Y ; instrument AD
	0x9d, 0x05, 0xd4, // STA $d405,X
	0xb9, 0x01, 0x12, // LDA $1201,Y ; instrument SR
	0x9d, 0x06, 0xd4, // STA $d406,X
	0xb9, 0x04, 0x12, // LDA $1204,Y ; pulse width lo
	0x9d, 0x02, 0xd4, // STA $d402,X
	0xb9, 0x05, 0x12, // LDA $1205,Y ; pulse width hi
	0x9d, 0x03, 0xd4, // STA $d403,X
	0xb9, 0x02, 0x12, // LDA $1202,Y ; wave row index
	0xa8, // TAY
	0xb9, 0x20, 0x12, // LDA $1220,Y ; wave control
	0x9d, 0x04, 0xd4, // STA $d404,X
	0xb9, 0x21, 0x12, // LDA $1221,Y ; wave note offset
	0x18,       // CLC
	0x65, 0xf7, // ADC $f7
	0xa8, // TAY
	0xb9, 0x00, 0x11, // LDA $1100,Y ; freq lo
	0x9d, 0x00, 0xd4, // STA $d400,X
	0xb9, 0x60, 0x11, // LDA $1160,Y ; freq hi
	0x9d, 0x01, 0xd4, // STA $d401,X
	0xa4, 0xf9, // LDY $f9
	0xb9, 0x03, 0x12, // LDA $1203,Y ; pulse row index
	0xa8, // TAY
	0xb9, 0x28, 0x12, // LDA $1228,Y ; pulse program lo
	0x9d, 0x02, 0xd4, // STA $d402,X
	0xb9, 0x29, 0x12, // LDA $1229,Y ; pulse program hi
	0x9d, 0x03, 0xd4, // STA $d403,X
	0xb9, 0x2a, 0x12, // LDA $122a,Y ; pulse duration
	0x85, 0xf6, // STA $f6
	0x60, // RTS
	0xa4, 0xf8, // LDY $f8 ; $10cc orderlist reader
	0xb9, 0x50, 0x12, // LDA $1250,Y ; orderlist pointer lo
	0x85, 0xfb, // STA $fb
	0xb9, 0x53, 0x12, // LDA $1253,Y ; orderlist pointer hi
	0x85, 0xfc, // STA $fc
	0xb4, 0xe2, // LDY $e2,X
	0xb1, 0xfb, // LDA ($fb),Y
	0xc9, 0xff, // CMP #$ff
	0xd0, 0x05, // BNE $10e5
	0xa9, 0x00, // LDA #$00 ; end marker: wrap the orderlist
	0x95, 0xe2, // STA $e2,X
	0x60, // RTS
	0xc9, 0x80, // CMP #$80 ; $10e5
	0xb0, 0x14, // BCS $10fd ; transpose entries are skipped
	0x95, 0xe0, // STA $e0,X
	0xa8, // TAY
	0xb9, 0x40, 0x12, // LDA $1240,Y ; sequence pointer lo
	0x85, 0xfb, // STA $fb
	0xb9, 0x48, 0x12, // LDA $1248,Y ; sequence pointer hi
	0x85, 0xfc, // STA $fc
	0xa9, 0x00, // LDA #$00
	0x95, 0xe1, // STA $e1,X
	0xf6, 0xe2, // INC $e2,X
	0x60, // RTS
	0xf6, 0xe2, // INC $e2,X ; $10fd
	0x60, // RTS
}

// the demo tune the reference binary was assembled with. three voices, one
// short sequence each.
var sf2d11DemoData = []uint8{
	// instruments at $1200. four rows of eight
	0x00, 0xf0, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00,
	0x22, 0xa8, 0x02, 0x00, 0x00, 0x08, 0x00, 0x00,
	0x0f, 0x00, 0x04, 0x03, 0x00, 0x02, 0x00, 0x00,
	0x44, 0x44, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00,

	// wave table at $1220. control byte and note offset per row
	0x11, 0x00,
	0x41, 0x00,
	0x15, 0x0c,
	0x7e, 0x00,

	// pulse table at $1228
	0x00, 0x08, 0x00,
	0x40, 0x02, 0x10,
	0x7f, 0x00, 0x00,

	// $1231
	0x00, 0x00, 0x00,

	// filter table at $1234
	0x00, 0x50, 0xf1,
	0x7f, 0x00, 0x00,

	// $123a
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	// sequence pointers at $1240/$1248. entry zero is the empty sequence
	0xc0, 0x62, 0x66, 0x68, 0xc0, 0xc0, 0xc0, 0xc0,
	0x11, 0x12, 0x12, 0x12, 0x11, 0x11, 0x11, 0x11,

	// orderlist pointers at $1250/$1253
	0x56, 0x5a, 0x5e,
	0x12, 0x12, 0x12,

	// orderlists at $1256, $125a and $125e
	0x01, 0xff, 0x00, 0x00,
	0x02, 0xff, 0x00, 0x00,
	0x03, 0xff, 0x00, 0x00,

	// sequences at $1262, $1266 and $1268
	0x20, 0x24, 0x27, 0x7f,
	0x2c, 0x7f,
	0x30, 0x7f,
}

// sf2Driver11Template assembles the reference binary. the freq tables are
// generated rather than transcribed: entry n is 0x0115 + 0x23*n, split
// into lo and hi halves.
func sf2Driver11Template() []uint8 {
	b := make([]uint8, sf2d11End-sf2d11Load)

	copy(b[0x000:], sf2d11Entry)
	copy(b[0x006:], sf2d11InitCode)
	copy(b[0x01b:], sf2d11PlayCode)
	copy(b[sf2d11Voice-sf2d11Load:], sf2d11VoiceCode)

	for i := 0; i < 96; i++ {
		f := 0x0115 + 0x23*i
		b[sf2d11FreqLo-sf2d11Load+i] = uint8(f)
		b[sf2d11FreqHi-sf2d11Load+i] = uint8(f >> 8)
	}

	// the built in empty sequence. a single end marker
	b[sf2d11EmptySeq-sf2d11Load] = 0x7f

	copy(b[0x200:], sf2d11DemoData)

	return b
}
