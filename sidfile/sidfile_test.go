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

package sidfile_test

import (
	"encoding/binary"
	"testing"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/sidfile"
	"github.com/gophersid/gophersid/test"
)

// buildSID assembles a version 2 PSID file around the supplied program data.
// a load address of zero leaves the header field zero, the convention for an
// embedded load address.
func buildSID(t *testing.T, load uint16, prg []byte) []byte {
	t.Helper()

	hdr := make([]byte, 0x7c)
	copy(hdr, "PSID")
	binary.BigEndian.PutUint16(hdr[0x04:], 2)
	binary.BigEndian.PutUint16(hdr[0x06:], 0x7c)
	binary.BigEndian.PutUint16(hdr[0x08:], load)
	binary.BigEndian.PutUint16(hdr[0x0a:], 0x1000)
	binary.BigEndian.PutUint16(hdr[0x0c:], 0x1003)
	binary.BigEndian.PutUint16(hdr[0x0e:], 1)
	binary.BigEndian.PutUint16(hdr[0x10:], 1)
	copy(hdr[0x16:], "Test Tune")
	copy(hdr[0x36:], "A. Tester")
	copy(hdr[0x56:], "2026")

	return append(hdr, prg...)
}

func TestLoad(t *testing.T) {
	prg := []byte{0x60, 0xea, 0x60}
	hdr, mem, err := sidfile.Load(buildSID(t, 0x1000, prg))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, hdr.Format, sidfile.PSID)
	test.ExpectEquality(t, hdr.Version, uint16(2))
	test.ExpectEquality(t, hdr.LoadAddress, uint16(0x1000))
	test.ExpectEquality(t, hdr.InitAddress, uint16(0x1000))
	test.ExpectEquality(t, hdr.PlayAddress, uint16(0x1003))
	test.ExpectEquality(t, hdr.Songs, uint16(1))
	test.ExpectEquality(t, hdr.Name, "Test Tune")
	test.ExpectEquality(t, hdr.Author, "A. Tester")
	test.ExpectEquality(t, hdr.Released, "2026")
	test.ExpectEquality(t, hdr.EmbeddedLoadAddress, false)

	for i, b := range prg {
		v, _ := mem.Peek(0x1000 + uint16(i))
		test.ExpectEquality(t, v, b)
	}

	// memory around the program is zero
	v, _ := mem.Peek(0x0fff)
	test.ExpectEquality(t, v, uint8(0))
	v, _ = mem.Peek(0x1003)
	test.ExpectEquality(t, v, uint8(0))
}

func TestEmbeddedLoadAddress(t *testing.T) {
	// the program data leads with the little-endian load address. the two
	// address bytes must be consumed and the program proper loaded at the
	// embedded address
	prg := []byte{0x00, 0x20, 0xa9, 0x01, 0x60}
	hdr, mem, err := sidfile.Load(buildSID(t, 0, prg))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, hdr.LoadAddress, uint16(0x2000))
	test.ExpectEquality(t, hdr.EmbeddedLoadAddress, true)

	v, _ := mem.Peek(0x2000)
	test.ExpectEquality(t, v, uint8(0xa9))
	v, _ = mem.Peek(0x2002)
	test.ExpectEquality(t, v, uint8(0x60))

	// the address bytes themselves are not part of the image
	v, _ = mem.Peek(0x1fff)
	test.ExpectEquality(t, v, uint8(0))
}

func TestBadMagic(t *testing.T) {
	file := buildSID(t, 0x1000, []byte{0x60})
	copy(file, "MSID")

	_, _, err := sidfile.Load(file)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, sidfile.InvalidFormat), true)
}

func TestShortFile(t *testing.T) {
	_, _, err := sidfile.Load([]byte("PS"))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, sidfile.InvalidFormat), true)

	// magic bytes present but header truncated
	_, _, err = sidfile.Load([]byte("PSID\x00\x02"))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, sidfile.InvalidFormat), true)
}

func TestDataOffsetBeyondFile(t *testing.T) {
	file := buildSID(t, 0x1000, []byte{0x60})
	binary.BigEndian.PutUint16(file[0x06:], uint16(len(file)+1))

	_, _, err := sidfile.Load(file)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, sidfile.InvalidFormat), true)
}

func TestOverflowingProgram(t *testing.T) {
	prg := make([]byte, 0x200)
	_, _, err := sidfile.Load(buildSID(t, 0xff00, prg))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, sidfile.InvalidFormat), true)
}

func TestRSID(t *testing.T) {
	file := buildSID(t, 0x1000, []byte{0x60})
	copy(file, "RSID")

	hdr, _, err := sidfile.Load(file)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, hdr.Format, sidfile.RSID)
}

func TestHeaderRoundTrip(t *testing.T) {
	prg := []byte{0xa9, 0x00, 0x60}
	hdr, _, err := sidfile.Load(buildSID(t, 0x1000, prg))
	test.DemandSuccess(t, err)

	out := sidfile.EncodeSID(hdr, prg)
	hdr2, mem2, err := sidfile.Load(out)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, hdr2.Format, hdr.Format)
	test.ExpectEquality(t, hdr2.LoadAddress, hdr.LoadAddress)
	test.ExpectEquality(t, hdr2.InitAddress, hdr.InitAddress)
	test.ExpectEquality(t, hdr2.PlayAddress, hdr.PlayAddress)
	test.ExpectEquality(t, hdr2.Name, hdr.Name)

	v, _ := mem2.Peek(0x1000)
	test.ExpectEquality(t, v, uint8(0xa9))
}

func TestEncodePRG(t *testing.T) {
	prg := sidfile.EncodePRG(0x0801, []byte{0x01, 0x02, 0x03})
	test.ExpectEquality(t, len(prg), 5)
	test.ExpectEquality(t, prg[0], uint8(0x01))
	test.ExpectEquality(t, prg[1], uint8(0x08))
	test.ExpectEquality(t, prg[2], uint8(0x01))
}
