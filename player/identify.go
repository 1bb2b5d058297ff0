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

package player

import (
	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/memory"
	"github.com/gophersid/gophersid/logger"
)

// Sentinel errors for the identification process.
const (
	// UnknownPlayer is returned by Identify when no signature matches.
	UnknownPlayer = "player identification: no known player found"
)

// Detection is the result of a successful Identify.
type Detection struct {
	Player ID

	// Anchor is the address at which the player's signature matched. the
	// family's extractor interprets its configured offsets relative to this
	// address.
	Anchor uint16
}

// signature is a byte pattern with holes. a value of wildcard matches any
// byte, which is how the operand positions of the pattern's instructions are
// skipped over.
type signature []int16

const wildcard = int16(-1)

// the sequence-fetch core of Laxity's NewPlayer v21. the player looks up the
// current sequence pointer through parallel lo/hi byte arrays, indexes the
// sequence with the voice's position and tests the fetched byte against the
// end-of-sequence mark:
//
//	TAY
//	LDA seqlo,Y
//	STA $FB
//	LDA seqhi,Y
//	STA $FC
//	LDY seqpos,X
//	LDA ($FB),Y
//	CMP #$7F
//
// the operand positions are wildcarded. zero page locations differ between
// assemblies of the player but the opcode skeleton is stable across the v21
// releases we know about.
var laxityNP21Signature = signature{
	0xa8,                     // TAY
	0xb9, wildcard, wildcard, // LDA abs,Y
	0x85, wildcard, // STA zp
	0xb9, wildcard, wildcard, // LDA abs,Y
	0x85, wildcard, // STA zp
	0xb4, wildcard, // LDY zp,X
	0xb1, wildcard, // LDA (zp),Y
	0xc9, 0x7f, // CMP #$7F
}

// match tests whether the signature matches the image at offset o.
func (sig signature) match(image []uint8, o int) bool {
	if o+len(sig) > len(image) {
		return false
	}
	for i, b := range sig {
		if b != wildcard && uint8(b) != image[o+i] {
			return false
		}
	}
	return true
}

// scan returns the offset of the first match of the signature in the image,
// or -1.
func (sig signature) scan(image []uint8) int {
	for o := 0; o <= len(image)-len(sig); o++ {
		if sig.match(image, o) {
			return o
		}
	}
	return -1
}

// Identify scans the loaded image for the signature of a known player
// family. The returned anchor is the address of the match.
//
// The error returned when nothing matches can be tested for with
// curated.Is(err, UnknownPlayer).
func Identify(mem *memory.Memory) (Detection, error) {
	if o := laxityNP21Signature.scan(mem.RAM); o != -1 {
		det := Detection{Player: LaxityNP21, Anchor: uint16(o)}
		logger.Logf(logger.Allow, "player", "identified %s at %#04x", det.Player, det.Anchor)
		return det, nil
	}

	return Detection{}, curated.Errorf(UnknownPlayer)
}
