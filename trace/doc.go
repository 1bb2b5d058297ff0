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

// Package trace defines the frame trace, the record of every write a music
// player makes into the SID register window, grouped by frame. two
// renditions of the same music are considered identical exactly when their
// frame traces are identical, which makes the FrameTrace the unit of
// comparison everywhere in this project.
//
// the trace is produced by the tracer package and consumed read-only. the
// WriteTable function renders a trace as a plain text table for inspection.
package trace
