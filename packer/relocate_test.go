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

package packer

import (
	"testing"

	"github.com/gophersid/gophersid/test"
)

// the scan must consider a candidate pointer at every byte offset. an odd
// addressed pointer table once went unrelocated because the scan advanced
// two bytes at a time, and the stale pointer sent the player to $0000. this
// test pins the defect: the same block, the same relocation, and alignment
// two provably misses what alignment one finds.
func TestOddAlignedPointer(t *testing.T) {
	rel := []RelocationEntry{{Source: 0x4000, Target: 0x5000, Len: 0x100}}

	// an RTS followed by a pointer to $4005 at offset 1
	block := []byte{0x60, 0x05, 0x40, 0x00}

	n := relocate(block, rel, 2)
	test.ExpectEquality(t, n, 0, "alignment 2")
	test.ExpectEquality(t, block[1], uint8(0x05))
	test.ExpectEquality(t, block[2], uint8(0x40))

	n = relocate(block, rel, 1)
	test.ExpectEquality(t, n, 1, "alignment 1")
	test.ExpectEquality(t, block[1], uint8(0x05))
	test.ExpectEquality(t, block[2], uint8(0x50))
}

func TestRelocateStepsOverMatches(t *testing.T) {
	rel := []RelocationEntry{{Source: 0x4000, Target: 0x7000, Len: 0x100}}

	// two adjacent pointers. after rewriting the first, the scan must not
	// treat its new high byte as the low byte of another candidate
	block := []byte{0x10, 0x40, 0x20, 0x40}

	n := relocate(block, rel, 1)
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, block[0], uint8(0x10))
	test.ExpectEquality(t, block[1], uint8(0x70))
	test.ExpectEquality(t, block[2], uint8(0x20))
	test.ExpectEquality(t, block[3], uint8(0x70))
}

func TestRelocateIgnoresZeroWords(t *testing.T) {
	rel := []RelocationEntry{{Source: 0x0000, Target: 0x2000, Len: 0x100}}

	block := []byte{0x00, 0x00, 0x00, 0x00}

	n := relocate(block, rel, 1)
	test.ExpectEquality(t, n, 0)
	for i, b := range block {
		test.ExpectEquality(t, b, uint8(0), "byte", i)
	}
}
