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

// Package player identifies the music player routine inside a loaded SID
// program and defines the table structures that the per-family extractors
// recover from it.
//
// Identification works the way the familiar player-identification utilities
// do: each supported player family carries one or more byte signatures, with
// wildcards at the positions occupied by operands, and the loaded image is
// scanned for a match. The address of the match is the anchor from which a
// family's extractor finds its tables.
//
// The set of supported families is a closed enumeration. Code that dispatches
// on the ID is expected to switch over it exhaustively; there is no
// string-keyed registry to fall through.
//
// The extractors themselves live in subpackages, one per family. See
// player/laxity for the Laxity NewPlayer v21 family.
package player
