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
)

// PatchMismatch is returned by ApplyPatches when the image does not hold the
// value a patch expects. It means the driver binary and the patch list have
// drifted apart and the pack must not continue.
const PatchMismatch = "pointer patch: mismatch at offset %#04x: %v"

// PointerPatch is a single byte overwrite redirecting part of a hardcoded
// address inside driver code. The offset is relative to the start of the
// image. Expect is the byte the unpatched driver must hold at that offset.
type PointerPatch struct {
	Offset uint16
	Expect uint8
	Value  uint8
}

// ApplyPatches overwrites the patch locations with their new values. Every
// expectation is verified before anything is written: on the first mismatch
// the image is returned untouched with a PatchMismatch error.
//
// An earlier tool skipped mismatched patches and carried on, and the result
// was a driver reading tables that were never injected: a perfectly valid
// file that played silence. Hence the hard failure.
func (img *Image) ApplyPatches(patches []PointerPatch) error {
	for _, p := range patches {
		if int(p.Offset) >= len(img.Data) {
			return curated.Errorf(PatchMismatch, p.Offset,
				fmt.Sprintf("offset is beyond the %d byte image", len(img.Data)))
		}
		if b := img.Data[p.Offset]; b != p.Expect {
			return curated.Errorf(PatchMismatch, p.Offset,
				fmt.Sprintf("expected %#02x, found %#02x", p.Expect, b))
		}
	}

	for _, p := range patches {
		img.Data[p.Offset] = p.Value
	}

	return nil
}
