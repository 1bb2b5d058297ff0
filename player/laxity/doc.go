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

// Package laxity extracts music data from tunes assembled with Laxity's
// NewPlayer v21.
//
// The extractor never runs the player. Everything is recovered statically
// from the loaded image, starting from the anchor found by the player package
// and the operand offsets in the Config. NewPlayer addresses its tables with
// absolute indexed instructions so the base address of every table is baked
// into the code at a known distance from the anchor.
//
// From those bases the tables are walked according to the v21 conventions:
// the instrument table is rows of eight bytes; the wave table is rows of two
// bytes ending at the row whose first byte is the loop command 0x7e; the
// pulse and filter tables are rows of three bytes ending at a first byte of
// 0x7f; orderlists are byte streams terminated by 0xff followed by a restart
// position; and sequences are byte streams terminated by 0x7f.
//
// Sequence pointers are stored as parallel lo/hi byte arrays indexed by the
// sequence numbers found in the orderlists. A pointer that cannot be resolved
// to sequence data does not abort the extraction: the voice is given a
// sequence shared from another voice and the substitution is reported in the
// TableSet. Only when no sequence at all can be located does extraction fail.
package laxity
