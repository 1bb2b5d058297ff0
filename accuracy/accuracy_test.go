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

package accuracy_test

import (
	"strings"
	"testing"

	"github.com/gophersid/gophersid/accuracy"
	"github.com/gophersid/gophersid/test"
	"github.com/gophersid/gophersid/trace"
)

func w(reg uint16, val uint8) trace.RegisterWrite {
	return trace.RegisterWrite{Register: reg, Value: val}
}

func build(frames ...[]trace.RegisterWrite) *trace.FrameTrace {
	ft := &trace.FrameTrace{}
	for _, f := range frames {
		for _, wr := range f {
			ft.AddWrite(wr)
		}
		ft.EndFrame()
	}
	return ft
}

func TestIdentical(t *testing.T) {
	frames := [][]trace.RegisterWrite{
		{w(0xd400, 0x75), w(0xd401, 0x05), w(0xd404, 0x11)},
		{w(0xd40b, 0x41)},
		{},
	}

	rep := accuracy.Compare(build(frames...), build(frames...))

	test.ExpectEquality(t, rep.Frames, 3)
	test.ExpectEquality(t, rep.MatchedFrames, 3)
	test.ExpectEquality(t, rep.FrameMatchPct(), 100.0)
	test.ExpectEquality(t, rep.TotalDiffCount, 0)
	for v := 0; v < 3; v++ {
		test.ExpectEquality(t, rep.VoiceMatchPct(v), 100.0, v)
	}
}

func TestValueDifference(t *testing.T) {
	a := build(
		[]trace.RegisterWrite{w(0xd400, 0x75), w(0xd404, 0x11)},
		[]trace.RegisterWrite{w(0xd400, 0x8f), w(0xd404, 0x11)},
		[]trace.RegisterWrite{w(0xd400, 0x75)},
		[]trace.RegisterWrite{w(0xd407, 0x22)},
	)
	b := build(
		[]trace.RegisterWrite{w(0xd400, 0x75), w(0xd404, 0x11)},
		[]trace.RegisterWrite{w(0xd400, 0x80), w(0xd404, 0x11)},
		[]trace.RegisterWrite{w(0xd400, 0x75)},
		[]trace.RegisterWrite{w(0xd407, 0x22)},
	)

	rep := accuracy.Compare(a, b)

	test.ExpectEquality(t, rep.Frames, 4)
	test.ExpectEquality(t, rep.MatchedFrames, 3)
	test.ExpectEquality(t, rep.FrameMatchPct(), 75.0)
	test.ExpectEquality(t, rep.TotalDiffCount, 1)

	// the damage is confined to voice 0's frequency register
	test.ExpectEquality(t, rep.RegisterMatches[0], 3)
	test.ExpectEquality(t, rep.RegisterMatches[4], 4)
	test.ExpectEquality(t, rep.RegisterMatches[7], 4)
	test.ExpectEquality(t, rep.VoiceMatches[0], 3)
	test.ExpectEquality(t, rep.VoiceMatches[1], 4)
	test.ExpectEquality(t, rep.VoiceMatches[2], 4)
}

func TestCrossVoiceReorder(t *testing.T) {
	a := build([]trace.RegisterWrite{w(0xd400, 0x11), w(0xd407, 0x22)})
	b := build([]trace.RegisterWrite{w(0xd407, 0x22), w(0xd400, 0x11)})

	rep := accuracy.Compare(a, b)

	// the frame does not match because the overall write order differs,
	// but each voice saw its own writes in the right order
	test.ExpectEquality(t, rep.MatchedFrames, 0)
	test.ExpectEquality(t, rep.VoiceMatches[0], 1)
	test.ExpectEquality(t, rep.VoiceMatches[1], 1)
	test.ExpectEquality(t, rep.RegisterMatches[0], 1)
	test.ExpectEquality(t, rep.RegisterMatches[7], 1)
	test.ExpectEquality(t, rep.TotalDiffCount, 2)
}

func TestSameRegisterTwice(t *testing.T) {
	// two writes to one register are not interchangeable. the second write
	// is the one that sticks on hardware, so a reversed pair is a mismatch
	a := build([]trace.RegisterWrite{w(0xd404, 0x11), w(0xd404, 0x10)})
	b := build([]trace.RegisterWrite{w(0xd404, 0x10), w(0xd404, 0x11)})

	rep := accuracy.Compare(a, b)

	test.ExpectEquality(t, rep.MatchedFrames, 0)
	test.ExpectEquality(t, rep.RegisterMatches[4], 0)
	test.ExpectEquality(t, rep.VoiceMatches[0], 0)
	test.ExpectEquality(t, rep.TotalDiffCount, 2)
}

func TestTrailingFrames(t *testing.T) {
	a := build(
		[]trace.RegisterWrite{w(0xd400, 0x75)},
		[]trace.RegisterWrite{w(0xd400, 0x75)},
		[]trace.RegisterWrite{w(0xd400, 0x75), w(0xd418, 0x0f)},
	)
	b := build(
		[]trace.RegisterWrite{w(0xd400, 0x75)},
		[]trace.RegisterWrite{w(0xd400, 0x75)},
	)

	rep := accuracy.Compare(a, b)

	// the frame beyond the shorter trace is a full mismatch
	test.ExpectEquality(t, rep.Frames, 3)
	test.ExpectEquality(t, rep.MatchedFrames, 2)
	test.ExpectEquality(t, rep.TotalDiffCount, 2)
	test.ExpectEquality(t, rep.RegisterMatches[0], 2)
	test.ExpectEquality(t, rep.VoiceMatches[0], 2)
	test.ExpectApproximate(t, rep.FrameMatchPct(), 66.67, 0.001)
}

func TestEmptyTraces(t *testing.T) {
	rep := accuracy.Compare(&trace.FrameTrace{}, &trace.FrameTrace{})
	test.ExpectEquality(t, rep.Frames, 0)
	test.ExpectEquality(t, rep.FrameMatchPct(), 100.0)
	test.ExpectEquality(t, rep.TotalDiffCount, 0)
}

func TestWriteReport(t *testing.T) {
	frames := [][]trace.RegisterWrite{
		{w(0xd400, 0x75), w(0xd418, 0x0f)},
	}

	rep := accuracy.Compare(build(frames...), build(frames...))

	s := &strings.Builder{}
	err := rep.Write(s)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, strings.Contains(s.String(), "voice 0"), true)
	test.ExpectEquality(t, strings.Contains(s.String(), "FRELO1"), true)
	test.ExpectEquality(t, strings.Contains(s.String(), "SIGVOL"), true)
}
