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

// Package packer assembles a new memory image from regions of an existing
// one and keeps the pointers between those regions valid.
//
// Pack copies every placed region to its target address and records a
// relocation entry for each. Regions that may contain pointers are then
// scanned: every little endian word that falls inside a relocated region's
// old address range is rewritten to the matching address in the new range.
//
// The scan considers a candidate pointer at every byte offset. Scanning only
// even offsets is tempting because most pointer tables are word arrays, but
// a table that happens to start on an odd address is then missed entirely
// and the unrelocated pointer sends the player through a vector to $0000.
// The doubled scan work is a few microseconds per region; the crash was very
// much harder to find.
//
// Pointer patching is the second half of the job. A driver binary reads its
// tables through absolute addresses baked into instruction operands, which
// no scan can safely rewrite. The driver's own description (see the driver
// package) lists the operand locations and the values they are expected to
// hold; ApplyPatches verifies every expectation before it writes anything,
// so a driver binary that has drifted from its description aborts the pack
// instead of producing an image that plays silence.
package packer
