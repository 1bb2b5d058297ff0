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

// Package tracer drives a loaded SID player through its initialisation
// routine and then through repeated play calls, one call per frame,
// recording every write the player makes into the SID register window.
//
// The Tracer type is a simple state machine. It begins in the Initialising
// state, moves to Playing on a successful Init() and to Done when the
// requested number of frames has been played. There is no natural end of
// song; the frame count is always the caller's decision, and the caller may
// simply stop requesting frames at any point.
//
// A single trace is strictly sequential. Frame N must complete before frame
// N+1 starts because the CPU and memory state carry forward. Independent
// traces of different files are themselves independent and may run
// concurrently.
//
// The Trace() function wraps the load/init/step cycle for the common case of
// tracing a file from start to finish.
package tracer
