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

package accuracy

import (
	"fmt"
	"io"

	"github.com/gophersid/gophersid/hardware/memory/addresses"
	"github.com/gophersid/gophersid/trace"
)

// Report is the outcome of comparing two frame traces. The counts are
// matched-frame counts; the corresponding percentages are derived on
// demand. A report is always produced, there is no failing comparison.
type Report struct {
	// the number of frames compared, which is the length of the longer
	// trace. frames beyond the end of the shorter trace count as full
	// mismatches everywhere
	Frames int

	// frames whose complete write lists are identical
	MatchedFrames int

	// frames in which the writes into one register, taken on their own,
	// are identical. indexed by register offset from the base of the SID
	// window
	RegisterMatches [addresses.NumSIDRegisters]int

	// frames in which the writes into one voice's seven registers, taken
	// on their own, are identical
	VoiceMatches [addresses.NumVoices]int

	// the total number of differing write events across all frames. two
	// write lists are walked in step; every position at which they
	// disagree counts one, and so does every unpaired write at the tail of
	// the longer list
	TotalDiffCount int
}

// pct expresses matched-out-of-total as a percentage. a comparison of zero
// frames has nothing to mismatch.
func pct(matched int, total int) float64 {
	if total == 0 {
		return 100.0
	}
	return float64(matched) / float64(total) * 100.0
}

// FrameMatchPct returns the percentage of frames whose write lists are
// identical.
func (rep *Report) FrameMatchPct() float64 {
	return pct(rep.MatchedFrames, rep.Frames)
}

// RegisterMatchPct returns the percentage of frames in which the named
// register received identical writes. The register is given as an offset
// from the base of the SID window.
func (rep *Report) RegisterMatchPct(reg int) float64 {
	return pct(rep.RegisterMatches[reg], rep.Frames)
}

// VoiceMatchPct returns the percentage of frames in which the voice's
// registers received identical writes.
func (rep *Report) VoiceMatchPct(voice int) float64 {
	return pct(rep.VoiceMatches[voice], rep.Frames)
}

func (rep *Report) String() string {
	return fmt.Sprintf("%d of %d frames match (%.2f%%), %d differing write events",
		rep.MatchedFrames, rep.Frames, rep.FrameMatchPct(), rep.TotalDiffCount)
}

// Write renders the full report: the frame summary, the per-voice
// percentages and a per-register table.
func (rep *Report) Write(output io.Writer) error {
	_, err := fmt.Fprintln(output, rep.String())
	if err != nil {
		return err
	}

	for v := 0; v < addresses.NumVoices; v++ {
		_, err = fmt.Fprintf(output, "voice %d: %.2f%%\n", v, rep.VoiceMatchPct(v))
		if err != nil {
			return err
		}
	}

	for r := 0; r < addresses.NumSIDRegisters; r++ {
		_, err = fmt.Fprintf(output, "%-9s %.2f%%\n", addresses.CanonicalSIDSymbols[r], rep.RegisterMatchPct(r))
		if err != nil {
			return err
		}
	}

	return nil
}

// groupEqual compares the writes the two frames make into the register
// window [from, to). writes outside the window are skipped over; the writes
// inside it must agree in register, value and order.
func groupEqual(fa []trace.RegisterWrite, fb []trace.RegisterWrite, from uint16, to uint16) bool {
	i, j := 0, 0
	for {
		for i < len(fa) && (fa[i].Register < from || fa[i].Register >= to) {
			i++
		}
		for j < len(fb) && (fb[j].Register < from || fb[j].Register >= to) {
			j++
		}
		if i == len(fa) || j == len(fb) {
			return i == len(fa) && j == len(fb)
		}
		if fa[i].Register != fb[j].Register || fa[i].Value != fb[j].Value {
			return false
		}
		i++
		j++
	}
}

// eventDiff counts the positions at which the two write lists disagree,
// plus the unpaired tail of the longer list.
func eventDiff(fa []trace.RegisterWrite, fb []trace.RegisterWrite) int {
	n := len(fa)
	if len(fb) < n {
		n = len(fb)
	}

	d := len(fa) + len(fb) - 2*n
	for i := 0; i < n; i++ {
		if fa[i].Register != fb[i].Register || fa[i].Value != fb[i].Value {
			d++
		}
	}
	return d
}

// Compare measures trace b against trace a, frame by frame.
func Compare(a *trace.FrameTrace, b *trace.FrameTrace) *Report {
	rep := &Report{}

	common := a.NumFrames()
	if b.NumFrames() < common {
		common = b.NumFrames()
	}
	rep.Frames = a.NumFrames()
	if b.NumFrames() > rep.Frames {
		rep.Frames = b.NumFrames()
	}

	for n := 0; n < rep.Frames; n++ {
		fa := a.Frame(n)
		fb := b.Frame(n)

		if n >= common {
			// one trace has ended. every write in the surviving trace is
			// an unpaired event and nothing in the frame can match
			rep.TotalDiffCount += len(fa) + len(fb)
			continue
		}

		if groupEqual(fa, fb, addresses.SIDBase, addresses.SIDBase+addresses.NumSIDRegisters) {
			rep.MatchedFrames++
		}

		rep.TotalDiffCount += eventDiff(fa, fb)

		for r := 0; r < addresses.NumSIDRegisters; r++ {
			from := addresses.SIDBase + uint16(r)
			if groupEqual(fa, fb, from, from+1) {
				rep.RegisterMatches[r]++
			}
		}

		for v := 0; v < addresses.NumVoices; v++ {
			from := addresses.SIDBase + uint16(v*addresses.NumVoiceRegisters)
			if groupEqual(fa, fb, from, from+addresses.NumVoiceRegisters) {
				rep.VoiceMatches[v]++
			}
		}
	}

	return rep
}
