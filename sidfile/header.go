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
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gophersid/gophersid/curated"
)

// error patterns for the sidfile package.
const (
	// InvalidFormat means the file cannot be a SID file. the wrapped detail
	// identifies the offending field or offset
	InvalidFormat = "sid file: invalid format: %v"
)

// Format distinguishes the two SID file variants. PSID files are built for a
// generic player environment. RSID files expect a real C64.
type Format string

const (
	PSID Format = "PSID"
	RSID Format = "RSID"
)

// header sizes by version. version 1 headers are six bytes shorter because
// they lack the flags word and the relocation/extra-SID fields.
const (
	headerSizeV1 = 0x76
	headerSizeV2 = 0x7c
)

// length of the three text fields of the header.
const credentialLen = 32

// Header is the parsed form of a PSID/RSID file header. The multi-byte
// fields of the header are big-endian in the file, with one exception: a
// load address embedded in the data section (signalled by LoadAddress of
// zero in the header proper) is little-endian, like the PRG format it
// mimics.
type Header struct {
	Format  Format
	Version uint16

	// offset of the program data from the start of the file
	DataOffset uint16

	// LoadAddress as it appears after resolution. the resolved field records
	// whether the address was embedded in the data section
	LoadAddress uint16

	InitAddress uint16
	PlayAddress uint16

	// the number of subtunes in the file and the 1-based default subtune
	Songs     uint16
	StartSong uint16

	// one bit per subtune for the first 32 subtunes. a zero bit asks for
	// vertical blank timing, a one bit for CIA timer timing
	Speed uint32

	// the credentials of the file
	Name     string
	Author   string
	Released string

	// version 2 and later
	Flags uint16

	// true if the load address was taken from the first two bytes of the
	// data section rather than the header
	EmbeddedLoadAddress bool
}

// ReadHeader parses the header fields of a SID file. The data slice is the
// whole file. No part of the program data is touched, so a LoadAddress of
// zero is returned unresolved. Most callers want Load() instead.
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < 4 {
		return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("file is %d bytes, too short for the magic bytes", len(data)))
	}

	hdr := &Header{}

	switch string(data[:4]) {
	case string(PSID):
		hdr.Format = PSID
	case string(RSID):
		hdr.Format = RSID
	default:
		return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("unrecognised magic bytes %q", string(data[:4])))
	}

	if len(data) < headerSizeV1 {
		return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("file is %d bytes, shorter than any SID header", len(data)))
	}

	hdr.Version = binary.BigEndian.Uint16(data[0x04:])
	if hdr.Version < 1 || hdr.Version > 4 {
		return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("unsupported version %d", hdr.Version))
	}
	if hdr.Version >= 2 && len(data) < headerSizeV2 {
		return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("file is %d bytes, shorter than a version %d header", len(data), hdr.Version))
	}

	hdr.DataOffset = binary.BigEndian.Uint16(data[0x06:])
	hdr.LoadAddress = binary.BigEndian.Uint16(data[0x08:])
	hdr.InitAddress = binary.BigEndian.Uint16(data[0x0a:])
	hdr.PlayAddress = binary.BigEndian.Uint16(data[0x0c:])
	hdr.Songs = binary.BigEndian.Uint16(data[0x0e:])
	hdr.StartSong = binary.BigEndian.Uint16(data[0x10:])
	hdr.Speed = binary.BigEndian.Uint32(data[0x12:])
	hdr.Name = credential(data[0x16:])
	hdr.Author = credential(data[0x36:])
	hdr.Released = credential(data[0x56:])

	if hdr.Version >= 2 {
		hdr.Flags = binary.BigEndian.Uint16(data[0x76:])
	}

	if int(hdr.DataOffset) > len(data) {
		return nil, curated.Errorf(InvalidFormat, fmt.Sprintf("data offset %#04x is beyond the end of the %d byte file", hdr.DataOffset, len(data)))
	}

	return hdr, nil
}

// credential extracts one of the three text fields of the header. the fields
// are fixed width and padded with zero bytes.
func credential(data []byte) string {
	s := string(data[:credentialLen])
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// Encode produces the file form of the header. The data offset is set
// according to the header version and the load address field is written as
// zero when the header records an embedded load address.
//
// Used when reconstructing a SID file around a freshly packed program.
func (hdr *Header) Encode() []byte {
	size := headerSizeV2
	if hdr.Version == 1 {
		size = headerSizeV1
	}

	data := make([]byte, size)
	copy(data[:4], string(hdr.Format))
	binary.BigEndian.PutUint16(data[0x04:], hdr.Version)
	binary.BigEndian.PutUint16(data[0x06:], uint16(size))

	if !hdr.EmbeddedLoadAddress {
		binary.BigEndian.PutUint16(data[0x08:], hdr.LoadAddress)
	}
	binary.BigEndian.PutUint16(data[0x0a:], hdr.InitAddress)
	binary.BigEndian.PutUint16(data[0x0c:], hdr.PlayAddress)
	binary.BigEndian.PutUint16(data[0x0e:], hdr.Songs)
	binary.BigEndian.PutUint16(data[0x10:], hdr.StartSong)
	binary.BigEndian.PutUint32(data[0x12:], hdr.Speed)
	copy(data[0x16:0x16+credentialLen], hdr.Name)
	copy(data[0x36:0x36+credentialLen], hdr.Author)
	copy(data[0x56:0x56+credentialLen], hdr.Released)

	if hdr.Version >= 2 {
		binary.BigEndian.PutUint16(data[0x76:], hdr.Flags)
	}

	return data
}

func (hdr Header) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s v%d: %s", hdr.Format, hdr.Version, hdr.Name))
	if hdr.Author != "" {
		s.WriteString(fmt.Sprintf(" (%s)", hdr.Author))
	}
	s.WriteString(fmt.Sprintf(" [load=%#04x init=%#04x play=%#04x songs=%d]",
		hdr.LoadAddress, hdr.InitAddress, hdr.PlayAddress, hdr.Songs))
	return s.String()
}
