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

// Package disassembly decodes a block of machine code into a readable
// listing.
//
// The decode is linear: every instruction is assumed to start where the
// previous one ended. That is the right model for player code, which is
// compact and free of inline data, but it means music data decodes as
// nonsense instructions. Callers are expected to hand Disassemble() the code
// range only; the driver registry knows where a driver's code ends and its
// data begins.
//
// Operand addresses that fall inside the SID register window are replaced by
// the canonical register names, which is usually the quickest way to orient
// yourself in an unfamiliar player.
package disassembly
