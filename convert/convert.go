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

package convert

import (
	"fmt"

	"github.com/gophersid/gophersid/accuracy"
	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/driver"
	"github.com/gophersid/gophersid/hardware/memory"
	"github.com/gophersid/gophersid/logger"
	"github.com/gophersid/gophersid/packer"
	"github.com/gophersid/gophersid/player"
	"github.com/gophersid/gophersid/player/laxity"
	"github.com/gophersid/gophersid/sf2"
	"github.com/gophersid/gophersid/sidfile"
	"github.com/gophersid/gophersid/tracer"
)

// Sentinel errors for the convert package.
const (
	ConversionError = "conversion: %v"
)

// orderlist command bytes, as the supported player family uses them.
const (
	orderListEnd  = 0xff
	transposeBase = 0x80
)

// Options adjust how a packed module is addressed and credited.
type Options struct {
	// load address for the packed module. zero selects the driver's own
	// load address
	Target uint16

	// credentials for the SID header
	Name     string
	Author   string
	Released string
}

// Module is a packed, playable form of a tune: driver code and music data in
// one contiguous image.
type Module struct {
	Driver driver.Config
	Image  *packer.Image

	// the music data at its packed addresses
	Tables *player.TableSet
}

// InitAddress is the driver's init entry point in the packed image.
func (mod *Module) InitAddress() uint16 {
	return mod.Image.Origin + (mod.Driver.InitAddr - mod.Driver.LoadAddr)
}

// PlayAddress is the driver's play entry point in the packed image.
func (mod *Module) PlayAddress() uint16 {
	return mod.Image.Origin + (mod.Driver.PlayAddr - mod.Driver.LoadAddr)
}

// EncodeSID wraps the module in a PSID container.
func (mod *Module) EncodeSID(opt Options) []byte {
	hdr := &sidfile.Header{
		Format:      sidfile.PSID,
		Version:     2,
		LoadAddress: mod.Image.Origin,
		InitAddress: mod.InitAddress(),
		PlayAddress: mod.PlayAddress(),
		Songs:       1,
		StartSong:   1,
		Name:        opt.Name,
		Author:      opt.Author,
		Released:    opt.Released,
	}
	return sidfile.EncodeSID(hdr, mod.Image.Data)
}

// EncodePRG wraps the module in a PRG container.
func (mod *Module) EncodePRG() []byte {
	return sidfile.EncodePRG(mod.Image.Origin, mod.Image.Data)
}

// Extract identifies the player in a staged memory image and runs the
// matching table extractor over it.
func Extract(mem *memory.Memory) (*player.TableSet, error) {
	det, err := player.Identify(mem)
	if err != nil {
		return nil, err
	}

	switch det.Player {
	case player.LaxityNP21:
		return laxity.Extract(mem, det.Anchor, laxity.DefaultConfig())
	}

	return nil, curated.Errorf(ConversionError, fmt.Sprintf("no extractor for %s", det.Player))
}

// ExtractSID loads a SID file and extracts the music data from the program
// it carries.
func ExtractSID(data []byte) (*sidfile.Header, *player.TableSet, error) {
	hdr, mem, err := sidfile.Load(data)
	if err != nil {
		return nil, nil, err
	}

	ts, err := Extract(mem)
	if err != nil {
		return nil, nil, err
	}

	return hdr, ts, nil
}

// fixed tables every conversion must carry, paired with the driver patch
// target each one binds to.
var requiredTables = []struct {
	kind   player.Kind
	target driver.Target
}{
	{player.Instruments, driver.Instruments},
	{player.Wave, driver.Wave},
	{player.Pulse, driver.Pulse},
	{player.Filter, driver.Filter},
}

// Assemble lays the driver code and the music tables out as one contiguous
// image at the target address, relocates the driver's vectors and rebinds
// its table references.
//
// The code argument is usually the driver's own template but may be the
// code block carried by a project file. It must hold at least the driver's
// retained code length; anything beyond that is the template's demonstration
// data and is dropped in favour of the real tables.
func Assemble(cfg driver.Config, code []byte, ts *player.TableSet, target uint16) (*Module, error) {
	codeLen := int(cfg.DataStart) - int(cfg.LoadAddr)
	if len(code) < codeLen {
		return nil, curated.Errorf(ConversionError,
			fmt.Sprintf("%d bytes of driver code is too short for %s", len(code), cfg.Name))
	}
	code = code[:codeLen]

	out := &player.TableSet{
		Player:          ts.Player,
		Tables:          make(map[player.Kind]player.Table, len(ts.Tables)),
		SequenceNumbers: make(map[uint8]int, len(ts.SequenceNumbers)),
		VoiceSequences:  ts.VoiceSequences,
		AutoAssigned:    ts.AutoAssigned,
	}

	// music data follows on directly from the driver code
	cursor := int(target) + codeLen

	var data []packer.Placement
	add := func(name string, origin uint16, b []byte) uint16 {
		at := uint16(cursor)
		data = append(data, packer.Placement{
			Region: packer.Region{Name: name, Origin: origin, Data: b},
			Target: at,
		})
		cursor += len(b)
		return at
	}

	// generated regions have no previous address. giving them their target
	// address as origin keeps them out of the relocation scan
	addGenerated := func(name string, b []byte) uint16 {
		return add(name, uint16(cursor), b)
	}

	bases := make(map[driver.Target]uint16)

	for _, req := range requiredTables {
		tbl, ok := ts.Tables[req.kind]
		if !ok {
			return nil, curated.Errorf(ConversionError, fmt.Sprintf("no %s table to pack", req.kind))
		}
		at := add(req.kind.String(), tbl.BaseAddr, tbl.Data)
		bases[req.target] = at

		moved := tbl
		moved.BaseAddr = at
		out.Tables[req.kind] = moved
	}

	// the driver looks sequence addresses up by number. the lookup arrays
	// are rebuilt to cover every number the orderlists can reach
	maxNum := 0
	for n := range ts.SequenceNumbers {
		if int(n) > maxNum {
			maxNum = int(n)
		}
	}
	for v := 0; v < 3; v++ {
		for _, b := range ts.OrderLists[v].Data {
			if b == orderListEnd {
				break
			}
			if b < transposeBase && int(b) > maxNum {
				maxNum = int(b)
			}
		}
	}
	if maxNum+1 > cfg.MaxSequences {
		return nil, curated.Errorf(ConversionError,
			fmt.Sprintf("sequence number %d is beyond the %d the driver can address", maxNum, cfg.MaxSequences))
	}

	seqlo := make([]byte, maxNum+1)
	seqhi := make([]byte, maxNum+1)
	bases[driver.SeqPtrLo] = addGenerated("sequence pointers lo", seqlo)
	bases[driver.SeqPtrHi] = addGenerated("sequence pointers hi", seqhi)

	ordlo := make([]byte, 3)
	ordhi := make([]byte, 3)
	bases[driver.OrderPtrLo] = addGenerated("orderlist pointers lo", ordlo)
	bases[driver.OrderPtrHi] = addGenerated("orderlist pointers hi", ordhi)

	for v := 0; v < 3; v++ {
		ol := ts.OrderLists[v]
		at := add(fmt.Sprintf("orderlist %d", v), ol.BaseAddr, ol.Data)
		ordlo[v] = uint8(at)
		ordhi[v] = uint8(at >> 8)

		moved := ol
		moved.BaseAddr = at
		out.OrderLists[v] = moved
	}

	seqAt := make([]uint16, len(ts.Sequences))
	for i, seq := range ts.Sequences {
		at := add(fmt.Sprintf("sequence %d", i), seq.BaseAddr, seq.Data)
		seqAt[i] = at

		moved := seq
		moved.BaseAddr = at
		out.Sequences = append(out.Sequences, moved)
	}
	for n, idx := range ts.SequenceNumbers {
		out.SequenceNumbers[n] = idx
	}

	// numbers with no sequence of their own play the driver's empty
	// sequence
	empty := target + (cfg.EmptySeq - cfg.LoadAddr)
	for n := 0; n <= maxNum; n++ {
		addr := empty
		if idx, ok := ts.SequenceNumbers[uint8(n)]; ok {
			addr = seqAt[idx]
		}
		seqlo[n] = uint8(addr)
		seqhi[n] = uint8(addr >> 8)
	}

	img, err := packer.Pack([]packer.Placement{{
		Region: packer.Region{
			Name:    "driver",
			Origin:  cfg.LoadAddr,
			Data:    code,
			Vectors: cfg.Vectors,
		},
		Target: target,
	}}, data)
	if err != nil {
		return nil, err
	}

	patches, err := cfg.BuildPatches(bases)
	if err != nil {
		return nil, err
	}

	err = img.ApplyPatches(patches)
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "convert", "%s and %d bytes of music assembled at %#04x-%#04x",
		cfg.Name, len(img.Data)-codeLen, img.Origin, img.End()-1)

	return &Module{Driver: cfg, Image: img, Tables: out}, nil
}

// PackFile assembles a project file at the target address. A target of zero
// selects the driver's own load address.
func PackFile(f *sf2.File, target uint16) (*Module, error) {
	cfg, err := driver.Lookup(f.Driver)
	if err != nil {
		return nil, err
	}

	if target == 0 {
		target = cfg.LoadAddr
	}

	return Assemble(cfg, f.Code, f.Tables, target)
}

// SIDToSF2 converts a SID tune into a project for the given driver. The
// music data keeps the addresses it had in the source file and the project
// carries the driver in its pristine form; addresses are bound when the
// project is packed again.
func SIDToSF2(data []byte, id driver.ID) (*sf2.File, error) {
	cfg, err := driver.Lookup(id)
	if err != nil {
		return nil, err
	}

	_, ts, err := ExtractSID(data)
	if err != nil {
		return nil, err
	}

	f := &sf2.File{
		LoadAddr: cfg.LoadAddr,
		Driver:   id,
		Code:     cfg.Template[:int(cfg.DataStart)-int(cfg.LoadAddr)],
		Tables:   ts,
	}

	// assemble once and throw the module away. a tune the driver cannot
	// carry fails now, not when the project is opened later
	_, err = Assemble(cfg, f.Code, f.Tables, cfg.LoadAddr)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// SF2ToSID packs a project into a standalone SID file.
func SF2ToSID(f *sf2.File, opt Options) ([]byte, error) {
	mod, err := PackFile(f, opt.Target)
	if err != nil {
		return nil, err
	}
	return mod.EncodeSID(opt), nil
}

// SF2ToPRG packs a project into a PRG file.
func SF2ToPRG(f *sf2.File, opt Options) ([]byte, error) {
	mod, err := PackFile(f, opt.Target)
	if err != nil {
		return nil, err
	}
	return mod.EncodePRG(), nil
}

// Verify plays the original and the conversion side by side and reports how
// closely the conversion reproduces the original's SID writes.
func Verify(original []byte, converted []byte, frames int) (*accuracy.Report, error) {
	a, err := tracer.Trace(original, 0, frames)
	if err != nil {
		return nil, err
	}

	b, err := tracer.Trace(converted, 0, frames)
	if err != nil {
		return nil, err
	}

	return accuracy.Compare(a, b), nil
}
