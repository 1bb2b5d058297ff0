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

package player_test

import (
	"testing"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/memory"
	"github.com/gophersid/gophersid/player"
	"github.com/gophersid/gophersid/test"
)

// the sequence-fetch core of a NewPlayer v21 assembly, with arbitrary operand
// values in the wildcard positions.
var np21core = []uint8{
	0xa8,             // TAY
	0xb9, 0x00, 0x20, // LDA $2000,Y
	0x85, 0xfb, // STA $FB
	0xb9, 0x80, 0x20, // LDA $2080,Y
	0x85, 0xfc, // STA $FC
	0xb4, 0xe1, // LDY $E1,X
	0xb1, 0xfb, // LDA ($FB),Y
	0xc9, 0x7f, // CMP #$7F
}

func TestIdentify(t *testing.T) {
	mem := memory.NewMemory()
	err := mem.Load(0x1000, np21core)
	test.ExpectSuccess(t, err)

	det, err := player.Identify(mem)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, det.Player, player.LaxityNP21)
	test.ExpectEquality(t, det.Anchor, uint16(0x1000))
}

func TestIdentifyNoMatch(t *testing.T) {
	mem := memory.NewMemory()

	_, err := player.Identify(mem)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, player.UnknownPlayer))

	// a near miss must not match. the CMP operand is the end-of-sequence
	// mark, any other value means this is not the player we think it is
	miss := make([]uint8, len(np21core))
	copy(miss, np21core)
	miss[len(miss)-1] = 0x7e

	err = mem.Load(0x1000, miss)
	test.ExpectSuccess(t, err)

	_, err = player.Identify(mem)
	test.ExpectFailure(t, err)
}

func TestTableEntry(t *testing.T) {
	// two entries of three bytes in both layouts. the logical entries are
	// {1,2,3} and {4,5,6}
	row := player.Table{
		TableDescriptor: player.TableDescriptor{
			Kind:       player.Pulse,
			BaseAddr:   0x2000,
			EntryCount: 2,
			Stride:     3,
			Layout:     player.RowMajor,
		},
		Data: []byte{1, 2, 3, 4, 5, 6},
	}
	col := player.Table{
		TableDescriptor: player.TableDescriptor{
			Kind:       player.Pulse,
			BaseAddr:   0x2000,
			EntryCount: 2,
			Stride:     3,
			Layout:     player.ColumnMajor,
		},
		Data: []byte{1, 4, 2, 5, 3, 6},
	}

	for n := 0; n < 2; n++ {
		r := row.Entry(n)
		c := col.Entry(n)
		test.DemandEquality(t, len(r), 3)
		test.DemandEquality(t, len(c), 3)
		for b := 0; b < 3; b++ {
			test.ExpectEquality(t, r[b], c[b], "entry", n, "byte", b)
			test.ExpectEquality(t, r[b], byte(n*3+b+1))
		}
	}

	test.ExpectEquality(t, row.ByteLen(), 6)
	test.ExpectEquality(t, row.End(), uint16(0x2006))
}
