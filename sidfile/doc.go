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

// Package sidfile parses the PSID and RSID file formats and stages the
// program they carry into the memory of an emulated C64.
//
// The Load() function is the usual entry point. It returns the parsed Header
// and a memory instance with the program in place, ready for the tracer or
// for static table extraction.
//
// The Loader type is a thin file wrapper around Load() for callers working
// with filenames rather than byte slices. The engine itself never performs
// file I/O.
//
// The package can also reconstruct file images. Header.Encode() produces the
// header bytes for a freshly packed program and EncodePRG() produces the
// simpler PRG form, a little-endian load address followed by the data.
package sidfile
