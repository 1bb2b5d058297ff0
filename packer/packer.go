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
	"fmt"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/logger"
)

// Sentinel errors for the packer package.
const (
	PackError = "packer: %v"
)

// Region is a block of bytes lifted from a source image.
type Region struct {
	Name string

	// address of the block in the source image
	Origin uint16

	Data []byte

	// PointerBearing marks a region whose content may contain little endian
	// pointers into relocated regions. the whole region is scanned
	PointerBearing bool

	// Vectors lists subranges that may contain pointers. used for code
	// regions, where scanning every operand would corrupt the code. offsets
	// are relative to the region origin
	Vectors []Span
}

// Span is a subrange of a region.
type Span struct {
	Start int
	Len   int
}

// Placement assigns a region its address in the packed image.
type Placement struct {
	Region Region
	Target uint16
}

// RelocationEntry records the move of one region from the source image to
// the packed image.
type RelocationEntry struct {
	Source uint16
	Target uint16
	Len    int
}

// contains reports whether the address falls inside the entry's source
// range.
func (re RelocationEntry) contains(addr uint16) bool {
	return addr >= re.Source && int(addr) < int(re.Source)+re.Len
}

// Image is a packed memory image: a contiguous block of bytes based at
// Origin.
type Image struct {
	Origin uint16
	Data   []byte

	// the relocations performed while packing, in placement order
	Relocations []RelocationEntry
}

// Read returns the byte at the address, which must be inside the image.
func (img *Image) Read(addr uint16) uint8 {
	return img.Data[addr-img.Origin]
}

// End returns the first address past the image.
func (img *Image) End() int {
	return int(img.Origin) + len(img.Data)
}

// Pack copies each placed region to its target address and rewrites the
// pointers between them. Code placements come first in the image ordering
// convention but the function itself only cares that no two placements
// overlap.
//
// Every placement produces a RelocationEntry. After copying, the pointer
// bearing parts of the image are scanned at byte alignment one: a little
// endian word at any offset that falls inside a moved region's old address
// range is rewritten to the region's new range.
func Pack(code []Placement, data []Placement) (*Image, error) {
	placements := make([]Placement, 0, len(code)+len(data))
	placements = append(placements, code...)
	placements = append(placements, data...)

	if len(placements) == 0 {
		return nil, curated.Errorf(PackError, "nothing to pack")
	}

	// bounds of the packed image
	origin := placements[0].Target
	end := int(placements[0].Target) + len(placements[0].Region.Data)
	for _, p := range placements[1:] {
		if p.Target < origin {
			origin = p.Target
		}
		if e := int(p.Target) + len(p.Region.Data); e > end {
			end = e
		}
	}
	if end > 0x10000 {
		return nil, curated.Errorf(PackError, "image spills out of the address space")
	}

	// overlap check. the number of placements is small
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if int(a.Target) < int(b.Target)+len(b.Region.Data) &&
				int(b.Target) < int(a.Target)+len(a.Region.Data) {
				return nil, curated.Errorf(PackError,
					fmt.Sprintf("regions %s and %s overlap", a.Region.Name, b.Region.Name))
			}
		}
	}

	img := &Image{
		Origin: origin,
		Data:   make([]byte, end-int(origin)),
	}

	for _, p := range placements {
		copy(img.Data[p.Target-origin:], p.Region.Data)
		img.Relocations = append(img.Relocations, RelocationEntry{
			Source: p.Region.Origin,
			Target: p.Target,
			Len:    len(p.Region.Data),
		})
	}

	// rewrite pointers in every part of the image that may contain them
	for _, p := range placements {
		base := int(p.Target - origin)
		if p.Region.PointerBearing {
			relocate(img.Data[base:base+len(p.Region.Data)], img.Relocations, 1)
			continue
		}
		for _, v := range p.Region.Vectors {
			if v.Start < 0 || v.Start+v.Len > len(p.Region.Data) {
				return nil, curated.Errorf(PackError,
					fmt.Sprintf("vector span outside region %s", p.Region.Name))
			}
			relocate(img.Data[base+v.Start:base+v.Start+v.Len], img.Relocations, 1)
		}
	}

	logger.Logf(logger.Allow, "packer", "%d regions packed into %#04x-%#04x", len(placements), origin, end-1)

	return img, nil
}

// relocate scans the block for little endian words that point into a moved
// region and rewrites them. candidates are considered every align bytes;
// align is always one when called from Pack. a matched pointer is stepped
// over whole so its freshly written high byte is not misread as the low
// byte of the next candidate.
func relocate(block []byte, relocations []RelocationEntry, align int) int {
	n := 0
	for o := 0; o+1 < len(block); {
		w := uint16(block[o]) | uint16(block[o+1])<<8

		// a zero word is data, not a pointer
		if w == 0 {
			o += align
			continue
		}

		rewritten := false
		for _, re := range relocations {
			if re.Source == re.Target || !re.contains(w) {
				continue
			}
			nw := re.Target + (w - re.Source)
			block[o] = uint8(nw)
			block[o+1] = uint8(nw >> 8)
			n++
			rewritten = true
			break
		}

		if rewritten {
			o += 2
		} else {
			o += align
		}
	}
	return n
}
