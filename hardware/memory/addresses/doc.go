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

// Package addresses records the C64 addresses the emulation and the tracing
// code refer to by name. This covers the 6510 on-chip port and its power on
// values, the KERNAL interrupt vector and exit addresses, the two VIC-II
// raster registers that players poll, and the SID register window.
//
// Canonical symbols for the SID registers are provided for use in trace
// output and disassembly. The names are those used in the Commodore 64
// Programmer's Reference Guide.
package addresses
