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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect group of functions test a condition and mark the test as having
// failed if the condition is not met. Testing continues. The Demand group of
// functions are the same except that a failed condition is a test fatality.
//
// ExpectSuccess, ExpectFailure and their Demand equivalents interpret their
// argument according to its type. The nil type is considered a success;
// because of how errors usually work (nil to indicate no error) we *need* to
// interpret nil in this way.
//
// All Expect and Demand functions accept optional trailing tags. Tags are
// printed as a prefix to any failure message and are useful for telling apart
// similar expectations inside a loop.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. The CompareWriter.Compare() function can then be
// used to test for equality. The CappedWriter type is similar but stops
// buffering once a predefined size is reached, which is useful when the
// output of interest is at the head of a long stream.
package test
