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

// Package c64 composes the CPU and memory into the minimal machine needed to
// run a SID music player. there is no VIC, CIA or SID chip emulation. the
// player's init and play routines are called directly, the play routine once
// per frame, and the music is observed through the writes the player makes
// into the SID register window.
//
// the one concession to the missing video chip is the raster progression
// during RunInit. init routines sometimes wait on a raster line before
// returning and would otherwise spin forever.
package c64
