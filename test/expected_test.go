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

package test_test

import (
	"errors"
	"testing"

	"github.com/gophersid/gophersid/test"
)

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, nil)

	var err error
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, 1)
	test.ExpectSuccess(t, "non-empty")
}

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("an error"))
	test.ExpectFailure(t, 0)
	test.ExpectFailure(t, "")
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 100, 100)
	test.ExpectEquality(t, "abc", "abc")
	test.ExpectInequality(t, 100, 101)

	var a uint16 = 0x1000
	test.ExpectEquality(t, a, 0x1000)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 100, 101, 0.02)
	test.ExpectApproximate(t, 101, 100, 0.02)
	test.ExpectApproximate(t, 99.9, 100.0, 0.01)
}

func TestCompareWriter(t *testing.T) {
	w := &test.CompareWriter{}
	w.Write([]byte("hello"))
	test.ExpectSuccess(t, w.Compare("hello"))
	w.Clear()
	test.ExpectSuccess(t, w.Compare(""))
}

func TestCappedWriter(t *testing.T) {
	w, err := test.NewCappedWriter(5)
	test.DemandSuccess(t, err)

	n, err := w.Write([]byte("abcdefgh"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 5)
	test.ExpectEquality(t, w.String(), "abcde")

	_, err = test.NewCappedWriter(0)
	test.ExpectFailure(t, err)
}
