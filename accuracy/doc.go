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

// Package accuracy measures how faithfully one frame trace reproduces
// another. It is the pass/fail gate for everything the conversion pipeline
// does: a packed tune is only as good as its register writes.
//
// Compare never fails. It always produces a Report and leaves the verdict
// to the caller, because the threshold that matters depends on what is
// being asked: a regression gate wants near-perfection, a quick look at a
// work-in-progress extractor does not.
//
// A frame matches when both traces made the same writes, with the same
// values, in the same order. Order is part of the contract: two writes to
// the same register in one frame are not interchangeable, the later one
// wins on real hardware. Cycle timestamps are not compared. The comparison
// is about what was written and in what order, not about intra-frame
// timing.
package accuracy
