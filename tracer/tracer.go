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

package tracer

import (
	"github.com/gophersid/gophersid/curated"
	"github.com/gophersid/gophersid/hardware/c64"
	"github.com/gophersid/gophersid/logger"
	"github.com/gophersid/gophersid/sidfile"
	"github.com/gophersid/gophersid/trace"
)

// State records how far through its lifecycle a Tracer has progressed.
type State int

// List of valid State values.
const (
	Initialising State = iota
	Playing
	Done
)

func (s State) String() string {
	switch s {
	case Initialising:
		return "initialising"
	case Playing:
		return "playing"
	case Done:
		return "done"
	}
	return "unknown"
}

// Tracer runs a loaded player one frame at a time and accumulates the frame
// trace. The zero value is not usable; use NewTracer().
type Tracer struct {
	mc  *c64.C64
	hdr *sidfile.Header

	// the play routine entry point. resolved after init because a player may
	// install itself through an interrupt vector
	play uint16

	state State
	frame int

	// machine cycle count at the start of the current frame. register write
	// timestamps are offsets from this
	frameStart uint64

	ft *trace.FrameTrace
}

// NewTracer is the preferred method of initialisation for the Tracer type.
// The machine is expected to hold the loaded program already; writes made by
// the player during initialisation are not part of the frame trace.
func NewTracer(mc *c64.C64, hdr *sidfile.Header) *Tracer {
	tr := &Tracer{
		mc:  mc,
		hdr: hdr,
		ft:  &trace.FrameTrace{},
	}

	mc.Mem.TrapSIDWrite = func(address uint16, data uint8) {
		if tr.state != Playing {
			return
		}
		tr.ft.AddWrite(trace.RegisterWrite{
			Frame:    tr.frame,
			Cycle:    int(tr.mc.Cycles - tr.frameStart),
			Register: address,
			Value:    data,
		})
	}

	return tr
}

// State returns the current lifecycle state of the tracer.
func (tr *Tracer) State() State {
	return tr.state
}

// Frame returns the index of the next frame to be played.
func (tr *Tracer) Frame() int {
	return tr.frame
}

// Trace returns the frame trace accumulated so far. The trace is extended in
// place by subsequent Step() calls.
func (tr *Tracer) Trace() *trace.FrameTrace {
	return tr.ft
}

// WriteCount returns the cumulative number of SID register writes the player
// has made, including writes made during initialisation.
func (tr *Tracer) WriteCount() int {
	return tr.mc.Mem.SIDWriteCount
}

// Init calls the initialisation routine of the player with the zero-based
// subtune number in the accumulator, the PSID calling convention. On success
// the tracer moves to the Playing state.
func (tr *Tracer) Init(subtune int) error {
	if tr.state != Initialising {
		return curated.Errorf("tracer: %v", "init called on a tracer that has already initialised")
	}

	if subtune < 0 || subtune >= int(tr.hdr.Songs) {
		return curated.Errorf("tracer: subtune %d is out of range (file has %d)", subtune, tr.hdr.Songs)
	}

	if tr.hdr.Speed != 0 {
		logger.Logf(logger.Allow, "tracer", "file requests CIA timing (speed=%#08x). stepping one play call per frame regardless", tr.hdr.Speed)
	}

	err := tr.mc.RunInit(tr.hdr.InitAddress, uint8(subtune))
	if err != nil {
		return curated.Errorf("tracer: %v", err)
	}

	tr.play = tr.mc.ResolvePlayAddress(tr.hdr.PlayAddress)
	tr.state = Playing

	return nil
}

// Step makes a single call to the play routine and closes the frame. One
// call to Step() is one frame of music.
func (tr *Tracer) Step() error {
	if tr.state != Playing {
		return curated.Errorf("tracer: step called in the %s state", tr.state)
	}

	tr.frameStart = tr.mc.Cycles

	err := tr.mc.RunPlay(tr.play)
	if err != nil {
		return curated.Errorf("tracer: %v", err)
	}

	tr.ft.EndFrame()
	tr.frame++

	return nil
}

// End moves the tracer to the Done state. Further Step() calls will fail.
func (tr *Tracer) End() {
	tr.state = Done
}

// Run initialises the player and plays the requested number of frames,
// leaving the tracer in the Done state.
func (tr *Tracer) Run(subtune int, frames int) error {
	err := tr.Init(subtune)
	if err != nil {
		return err
	}

	for n := 0; n < frames; n++ {
		err = tr.Step()
		if err != nil {
			return err
		}
	}

	tr.End()

	return nil
}

// Trace is a convenience function wrapping the full load/init/play cycle. It
// parses the SID file data, plays the zero-based subtune for the requested
// number of frames and returns the resulting frame trace.
func Trace(data []byte, subtune int, frames int) (*trace.FrameTrace, error) {
	hdr, mem, err := sidfile.Load(data)
	if err != nil {
		return nil, err
	}

	mc := c64.NewC64()
	mc.Attach(mem)

	tr := NewTracer(mc, hdr)
	err = tr.Run(subtune, frames)
	if err != nil {
		return nil, err
	}

	return tr.Trace(), nil
}
