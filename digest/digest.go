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

// Package digest produces a cryptographic hash of a frame trace. the hash
// can be used to compare the output of subsequent runs: if a new hash
// differs from a previously recorded value then something has changed. we
// use this as the basis of determinism tests and for compact summaries of
// comparison results.
package digest

// Digest implementations return a cryptographic hash in response to a Hash()
// request.
type Digest interface {
	Hash() string
	ResetDigest()
}
