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

// Package driver describes the playback drivers that packed tunes are
// built on.
//
// A driver is a compiled player binary that reads its music data through
// table addresses baked into its instruction operands. Packing a tune means
// injecting new tables into memory the driver was not assembled to look at,
// so every one of those operands has to be redirected. The Config for a
// driver version lists them: each Patch names one byte of one operand, the
// structure it must point at after packing, and the value the unpatched
// binary holds there. The expectation is what keeps a patch list honest. A
// driver binary that has drifted from its description fails loudly at pack
// time instead of playing its built-in demo data, or worse, silence.
//
// The patch lists and address maps here are data, not behaviour. They are
// versioned with the driver binary they describe and must be revisited
// whenever that binary is reassembled.
//
// The set of known drivers is a closed enumeration, like the player
// families in the player package. Lookup dispatches on it exhaustively.
package driver
