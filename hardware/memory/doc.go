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

// Package memory implements the memory of the emulated C64. unlike a real
// C64 there is no banking and no memory mapped I/O chips, just a flat 64k
// area of RAM. this is all a self contained music player requires.
//
// the one point of contact with the rest of the emulation, other than the
// CPU reading and writing, is the TrapSIDWrite function. when set, every CPU
// write that lands in the SID register window is reported to the trap in the
// order the writes occur. the trace package builds the register write stream
// from this.
//
// the addresses sub-package names the specific addresses that the emulation
// and the tracing code care about.
package memory
