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

package trace

import (
	"fmt"

	"github.com/gophersid/gophersid/hardware/memory/addresses"
)

// RegisterWrite records a single CPU write into the SID register window.
type RegisterWrite struct {
	// the frame the write occurred in. the first frame is zero
	Frame int

	// cycle offset of the write from the start of the frame
	Cycle int

	// the full address of the register, 0xd400 to 0xd418
	Register uint16

	Value uint8
}

func (w RegisterWrite) String() string {
	sym := fmt.Sprintf("%#04x", w.Register)
	if addresses.IsSIDRegister(w.Register) {
		sym = addresses.CanonicalSIDSymbols[w.Register-addresses.SIDBase]
	}
	return fmt.Sprintf("f%d +%d %s=%02x", w.Frame, w.Cycle, sym, w.Value)
}

// FrameTrace is the complete record of the SID register writes a player made
// over a number of frames. write order within a frame is preserved exactly.
//
// a FrameTrace is built a frame at a time with AddWrite and EndFrame, and is
// read-only thereafter.
type FrameTrace struct {
	Writes []RegisterWrite

	// index into Writes one past the last write of each frame. the number of
	// closed frames is len(ends)
	ends []int
}

// AddWrite appends a register write to the frame currently being recorded.
func (ft *FrameTrace) AddWrite(w RegisterWrite) {
	ft.Writes = append(ft.Writes, w)
}

// EndFrame closes the frame currently being recorded. a frame with no writes
// is still a frame.
func (ft *FrameTrace) EndFrame() {
	ft.ends = append(ft.ends, len(ft.Writes))
}

// NumFrames returns the number of closed frames in the trace.
func (ft *FrameTrace) NumFrames() int {
	return len(ft.ends)
}

// Reset discards the recorded writes and frames. Long-running measurements
// that do not care about the trace itself call this between frames to keep
// the trace from growing without bound.
func (ft *FrameTrace) Reset() {
	ft.Writes = ft.Writes[:0]
	ft.ends = ft.ends[:0]
}

// Frame returns the writes of the indicated frame, in write order. the
// returned slice is a view into the trace and must not be modified. frames
// outside the trace return nil.
func (ft *FrameTrace) Frame(n int) []RegisterWrite {
	if n < 0 || n >= len(ft.ends) {
		return nil
	}
	start := 0
	if n > 0 {
		start = ft.ends[n-1]
	}
	return ft.Writes[start:ft.ends[n]]
}

func (ft *FrameTrace) String() string {
	return fmt.Sprintf("%d writes over %d frames", len(ft.Writes), ft.NumFrames())
}
