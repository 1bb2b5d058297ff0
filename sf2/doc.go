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

// Package sf2 reads and writes the project container used for the SF2 side
// of a conversion.
//
// The container is a load-address word followed by length-prefixed blocks:
// a driver block naming the driver version and carrying its code, table
// blocks carrying the fixed tables with their descriptors (address, row
// count, visible row count, stride and layout), a music block carrying the
// per voice orderlists and the numbered sequences, and an end block. All
// words are little endian.
//
// Read produces the driver identity, the driver code and a player.TableSet,
// which is the same shape the table extractor produces from a SID file.
// From there the two conversion directions share a pipeline.
//
// Encode writes the engine's interchange form of a project: exactly what
// conversion consumes, nothing else. The full tracker project writer, with
// editor state and song metadata, is a collaborator concern outside this
// repository.
package sf2
