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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/c64"
	"github.com/gophersid/gophersid/sidfile"
	"github.com/gophersid/gophersid/tracer"
)

// sentinal error returned by Check()
const PerformanceError = "performance: %v"

// a PAL machine calls the play routine this often. the multiple over this
// rate is what the summary line reports.
const framesPerSecond = 50.0

// number of frames to wait between checks of the wall clock. checking on
// every frame costs more than the frame itself for small tunes.
const performanceBrake = 100

// Check plays a tune flat out for the duration and writes a summary of the
// frame rate achieved. The subtune argument is zero-based.
func Check(output io.Writer, profile Profile, loader sidfile.Loader, subtune int, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	err = loader.Load()
	if err != nil {
		return err
	}

	hdr, mem, err := sidfile.Load(loader.Data)
	if err != nil {
		return err
	}

	mc := c64.NewC64()
	mc.Attach(mem)

	tr := tracer.NewTracer(mc, hdr)
	err = tr.Init(subtune)
	if err != nil {
		return err
	}

	frames := 0

	runner := func() error {
		end := time.Now().Add(dur)
		for {
			err := tr.Step()
			if err != nil {
				return err
			}
			frames++

			if frames%performanceBrake == 0 {
				if !time.Now().Before(end) {
					return nil
				}

				// we only care about how fast the frames go by, not
				// what's in them
				tr.Trace().Reset()
			}
		}
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return err
	}

	fps := float64(frames) / dur.Seconds()
	fmt.Fprintf(output, "%.0f frames/sec (%d frames in %.2f seconds) %.1fx real time\n",
		fps, frames, dur.Seconds(), fps/framesPerSecond)

	return nil
}
