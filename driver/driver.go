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
	"fmt"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/packer"
)

// sentinal error returned by Lookup when the ID is not recognised.
const UnknownDriver = "driver lookup: no description for driver %v"

// sentinal error returned by Config.BuildPatches when the supplied layout
// does not place a structure the patch list refers to.
const MissingTarget = "driver patches: no address for %v"

// ID distinguishes the known driver versions.
type ID int

// List of valid ID values.
const (
	SF2Driver11 ID = iota
)

func (id ID) String() string {
	switch id {
	case SF2Driver11:
		return "SF2 driver 11"
	}
	return fmt.Sprintf("driver %d", int(id))
}

// Target names a music data structure that driver code addresses through a
// baked-in operand. Table targets are the tables themselves. The pointer
// targets are the driver's split lo/hi address arrays: the arrays are
// rebuilt by the packer rather than relocated, because half of an address
// is invisible to a word scan.
type Target int

// List of valid Target values.
const (
	Instruments Target = iota
	Wave
	Pulse
	Filter
	SeqPtrLo
	SeqPtrHi
	OrderPtrLo
	OrderPtrHi
)

func (tgt Target) String() string {
	switch tgt {
	case Instruments:
		return "instruments"
	case Wave:
		return "wave"
	case Pulse:
		return "pulse"
	case Filter:
		return "filter"
	case SeqPtrLo:
		return "sequence pointers (lo)"
	case SeqPtrHi:
		return "sequence pointers (hi)"
	case OrderPtrLo:
		return "orderlist pointers (lo)"
	case OrderPtrHi:
		return "orderlist pointers (hi)"
	}
	return fmt.Sprintf("target %d", int(tgt))
}

// Patch is a single operand byte in the driver binary that must be rewritten
// when the structure it addresses is placed. Offset is relative to the start
// of the driver block. Delta is added to the target's base address before
// the lo or hi byte is taken, for instructions that index from the middle of
// a table rather than its start.
//
// Expect is the value the pristine driver binary holds at Offset. It is
// carried through to packer.PointerPatch so that a driver binary that does
// not agree with its own patch list is rejected before any byte is written.
type Patch struct {
	Offset uint16
	Target Target
	Delta  uint16
	Hi     bool
	Expect uint8
}

// Config is the full description of one driver version. Everything a
// conversion needs to know about the binary is here: where it loads, where
// its entry points are, where its code ends and injected data may begin,
// and which operand bytes address which music data structures.
type Config struct {
	ID   ID
	Name string

	// load address of the driver block. the block must be placed here; the
	// patch offsets assume it.
	LoadAddr uint16

	// entry points, for the header of the packed file.
	InitAddr uint16
	PlayAddr uint16

	// DataStart is the first address past the retained driver block.
	// injected music data is placed at or above this address.
	DataStart uint16

	// EmptySeq is the address of the one byte terminated sequence built
	// into the driver block. entries in a rebuilt sequence pointer array
	// that have no sequence of their own point here. entry zero always
	// does: the init routine clears the per voice sequence numbers, so
	// number zero is what every voice plays until its orderlist has been
	// consulted.
	EmptySeq uint16

	// upper bound on the size of a rebuilt sequence pointer array.
	MaxSequences int

	// Patches is the operand census for this driver version, expanded to
	// byte granularity. offsets are relative to LoadAddr. a packed image
	// places the driver block at its origin, so they double as image
	// offsets.
	Patches []Patch

	// Vectors are the operands in the driver block that point back into
	// the driver block itself: the entry jump table, subroutine calls and
	// the freq table references. they are not in the patch list because
	// they never target injected data, but they do move when the block is
	// packed at an address other than LoadAddr. the packer's word scan
	// puts them right.
	Vectors []packer.Span

	// Template is the pristine driver binary, starting at LoadAddr. it is
	// always at least DataStart-LoadAddr bytes long; anything beyond that
	// is the demo tune the binary was assembled with. a conversion keeps
	// the code block and replaces the demo data with the packed tune.
	Template []uint8
}

// wordRef is one address-sized operand in the driver binary, before
// expansion into its lo and hi byte patches. the patch census below is kept
// at this level because that is how the references read in a disassembly.
type wordRef struct {
	offset uint16
	target Target
	delta  uint16
	expect uint16
}

// expandRefs turns a census of word-sized operand references into the byte
// granular patch list the packer consumes.
func expandRefs(refs []wordRef) []Patch {
	p := make([]Patch, 0, len(refs)*2)
	for _, r := range refs {
		p = append(p, Patch{
			Offset: r.offset,
			Target: r.target,
			Delta:  r.delta,
			Expect: uint8(r.expect),
		})
		p = append(p, Patch{
			Offset: r.offset + 1,
			Target: r.target,
			Delta:  r.delta,
			Hi:     true,
			Expect: uint8(r.expect >> 8),
		})
	}
	return p
}

// BuildPatches materialises the driver's patch list against the addresses a
// packing run has chosen. bases must have an entry for every Target the
// patch list names.
func (cfg Config) BuildPatches(bases map[Target]uint16) ([]packer.PointerPatch, error) {
	patches := make([]packer.PointerPatch, 0, len(cfg.Patches))
	for _, p := range cfg.Patches {
		base, ok := bases[p.Target]
		if !ok {
			return nil, curated.Errorf(MissingTarget, p.Target)
		}

		v := base + p.Delta
		b := uint8(v)
		if p.Hi {
			b = uint8(v >> 8)
		}

		patches = append(patches, packer.PointerPatch{
			Offset: p.Offset,
			Expect: p.Expect,
			Value:  b,
		})
	}
	return patches, nil
}

// Lookup returns the Config for a driver version. The set of known drivers
// is closed and small; an unknown ID is an error, not a fallback.
func Lookup(id ID) (Config, error) {
	switch id {
	case SF2Driver11:
		return sf2Driver11Config(), nil
	}
	return Config{}, curated.Errorf(UnknownDriver, id)
}
