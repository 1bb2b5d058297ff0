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

package sidfile

import (
	"fmt"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/memory"
	"github.com/gophersid/gophersid/logger"
)

// Program parses a SID file and returns the raw program bytes it carries,
// without staging them anywhere. The returned header holds the resolved load
// address.
//
// A load address of zero in the header means the real address is embedded in
// the first two bytes of the data section, little-endian. The two address
// bytes are consumed; they are not part of the program.
func Program(data []byte) (*Header, []byte, error) {
	hdr, err := ReadHeader(data)
	if err != nil {
		return nil, nil, err
	}

	prg := data[hdr.DataOffset:]

	if hdr.LoadAddress == 0 {
		if len(prg) < 2 {
			return nil, nil, curated.Errorf(InvalidFormat, "load address is embedded in the data but the data section is too short to hold it")
		}
		hdr.LoadAddress = uint16(prg[0]) | uint16(prg[1])<<8
		hdr.EmbeddedLoadAddress = true
		prg = prg[2:]
	}

	if len(prg) == 0 {
		return nil, nil, curated.Errorf(InvalidFormat, "file carries no program data")
	}

	if int(hdr.LoadAddress)+len(prg) > 0x10000 {
		return nil, nil, curated.Errorf(InvalidFormat,
			fmt.Sprintf("%d bytes of program at %#04x continues past the end of C64 memory", len(prg), hdr.LoadAddress))
	}

	return hdr, prg, nil
}

// Load parses a SID file and stages the program it carries into a fresh
// memory instance. All other memory is zero initialised, except for the 6510
// on-chip port which takes its power-on value.
func Load(data []byte) (*Header, *memory.Memory, error) {
	hdr, prg, err := Program(data)
	if err != nil {
		return nil, nil, err
	}

	mem := memory.NewMemory()
	err = mem.Load(hdr.LoadAddress, prg)
	if err != nil {
		return nil, nil, curated.Errorf("sid file: %v", err)
	}

	if hdr.Format == RSID {
		logger.Logf(logger.Allow, "sidfile", "%s is an RSID file. the player may expect a fuller environment than is emulated", hdr.Name)
	}

	logger.Logf(logger.Allow, "sidfile", "loaded %s", hdr.String())

	return hdr, mem, nil
}

// EncodePRG produces a PRG image, the simplest C64 program container: a
// little-endian load address followed by the program bytes.
func EncodePRG(origin uint16, data []byte) []byte {
	prg := make([]byte, 0, len(data)+2)
	prg = append(prg, uint8(origin), uint8(origin>>8))
	prg = append(prg, data...)
	return prg
}

// EncodeSID produces a complete SID file, the encoded header followed by the
// program bytes. The load address is written into the header proper, not
// embedded in the data, regardless of how the header was originally read.
func EncodeSID(hdr *Header, data []byte) []byte {
	h := *hdr
	h.EmbeddedLoadAddress = false

	enc := h.Encode()
	out := make([]byte, 0, len(enc)+len(data))
	out = append(out, enc...)
	out = append(out, data...)
	return out
}
