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

// Package convert joins the other packages into the two conversion
// directions: SID file to SF2 project, and SF2 project to a standalone SID
// or PRG file.
//
// Both directions meet in Assemble(), which lays a driver and a set of music
// tables out as one contiguous memory image. The music tables go in fixed
// order immediately after the driver code, each remembering where it came
// from, and the packer rewrites what needs rewriting:
//
//   - the driver's internal vectors (entry point jumps, subroutine calls,
//     frequency table references) move with the driver, found by the
//     relocation scan over the driver's declared vector spans.
//
//   - the driver's references into the music data are rebound by its patch
//     list, which knows every code offset holding half of a table address.
//
//   - the sequence and orderlist lookup arrays are not moved at all but
//     rebuilt from the new layout. Sequence numbers with no sequence of
//     their own point at the driver's built-in empty sequence, so a stray
//     orderlist entry plays silence instead of garbage.
//
// Table contents are never scanned for pointers. Note and command bytes can
// look exactly like addresses, and a false positive there would corrupt the
// tune. Everything address-like in the data plane goes through the rebuilt
// lookup arrays instead.
//
// A conversion to SF2 stores the driver in its pristine form and the tables
// at their source addresses. Address binding happens when the project is
// packed again, which is also when the patch expectations are verified.
package convert
