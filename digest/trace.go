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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/gophersid/gophersid/hardware/memory/addresses"
	"github.com/gophersid/gophersid/trace"
)

// Trace is a SHA-1 digest of a frame trace. the digest is chained frame by
// frame, so two traces hash equal exactly when every frame carries the same
// register writes in the same order.
//
// note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Trace struct {
	digest [sha1.Size]byte
}

// NewTrace produces the digest of a frame trace.
func NewTrace(ft *trace.FrameTrace) *Trace {
	dig := &Trace{}

	buffer := make([]byte, 0, 1024)
	for n := 0; n < ft.NumFrames(); n++ {
		// chain fingerprints by copying the value of the last fingerprint to
		// the head of the frame data
		buffer = buffer[:0]
		buffer = append(buffer, dig.digest[:]...)

		for _, w := range ft.Frame(n) {
			buffer = append(buffer, uint8(w.Register-addresses.SIDBase), w.Value)
		}

		dig.digest = sha1.Sum(buffer)
	}

	return dig
}

// Hash implements the digest.Digest interface.
func (dig Trace) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Trace) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}
