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

package trace_test

import (
	"strings"
	"testing"

	"github.com/gophersid/gophersid/test"
	"github.com/gophersid/gophersid/trace"
)

func TestFrameViews(t *testing.T) {
	ft := &trace.FrameTrace{}

	ft.AddWrite(trace.RegisterWrite{Frame: 0, Cycle: 10, Register: 0xd400, Value: 0x34})
	ft.AddWrite(trace.RegisterWrite{Frame: 0, Cycle: 14, Register: 0xd401, Value: 0x12})
	ft.EndFrame()

	// an empty frame is still a frame
	ft.EndFrame()

	ft.AddWrite(trace.RegisterWrite{Frame: 2, Cycle: 4, Register: 0xd418, Value: 0x1f})
	ft.EndFrame()

	test.ExpectEquality(t, ft.NumFrames(), 3)
	test.ExpectEquality(t, len(ft.Writes), 3)

	test.ExpectEquality(t, len(ft.Frame(0)), 2)
	test.ExpectEquality(t, ft.Frame(0)[0].Value, uint8(0x34))
	test.ExpectEquality(t, ft.Frame(0)[1].Register, uint16(0xd401))

	test.ExpectEquality(t, len(ft.Frame(1)), 0)

	test.ExpectEquality(t, len(ft.Frame(2)), 1)
	test.ExpectEquality(t, ft.Frame(2)[0].Frame, 2)

	// out of range frames return nil
	test.ExpectEquality(t, ft.Frame(-1) == nil, true)
	test.ExpectEquality(t, ft.Frame(3) == nil, true)

	test.ExpectEquality(t, ft.String(), "3 writes over 3 frames")
}

func TestRegisterWriteString(t *testing.T) {
	w := trace.RegisterWrite{Frame: 12, Cycle: 4521, Register: 0xd400, Value: 0x1f}
	test.ExpectEquality(t, w.String(), "f12 +4521 FRELO1=1f")

	w = trace.RegisterWrite{Frame: 0, Cycle: 0, Register: 0xd418, Value: 0x0f}
	test.ExpectEquality(t, w.String(), "f0 +0 SIGVOL=0f")
}

func TestWriteTable(t *testing.T) {
	ft := &trace.FrameTrace{}

	ft.AddWrite(trace.RegisterWrite{Frame: 0, Cycle: 10, Register: 0xd400, Value: 0x34})
	ft.AddWrite(trace.RegisterWrite{Frame: 0, Cycle: 14, Register: 0xd401, Value: 0x12})
	ft.AddWrite(trace.RegisterWrite{Frame: 0, Cycle: 20, Register: 0xd404, Value: 0x41})
	ft.EndFrame()

	// frames without writes do not produce a row
	ft.EndFrame()

	ft.AddWrite(trace.RegisterWrite{Frame: 2, Cycle: 4, Register: 0xd418, Value: 0x1f})
	ft.EndFrame()

	b := &strings.Builder{}
	test.ExpectSuccess(t, trace.WriteTable(b, ft))

	expected := "| Frame | Freq WF ADSR Pul | Freq WF ADSR Pul | Freq WF ADSR Pul | FCut RC TV |\n" +
		"+-------+------------------+------------------+------------------+------------+\n" +
		"|     0 | 1234 41 .... ... | .... .. .... ... | .... .. .... ... | .... .. .. |\n" +
		"|     2 | .... .. .... ... | .... .. .... ... | .... .. .... ... | .... .. 1F |\n"

	test.ExpectEquality(t, b.String(), expected)
}
