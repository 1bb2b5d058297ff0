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

package archivefs_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gophersid/gophersid/archivefs"
	"github.com/gophersid/gophersid/test"
)

// fixtures writes a plain file and a zip archive holding the same bytes
// under a nested directory, returning the directory both live in.
func fixtures(t *testing.T, content []byte) string {
	t.Helper()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "plain.sid"), content, 0644)
	test.DemandSuccess(t, err)

	f, err := os.Create(filepath.Join(dir, "collection.zip"))
	test.DemandSuccess(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("MUSICIANS/L/tune.sid")
	test.DemandSuccess(t, err)
	_, err = w.Write(content)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, zw.Close())

	return dir
}

func TestOpenPlainFile(t *testing.T) {
	content := []byte("not really a SID file")
	dir := fixtures(t, content)

	r, size, err := archivefs.Open(filepath.Join(dir, "plain.sid"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, size, len(content))

	b, err := io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(b), string(content))

	if c, ok := r.(io.Closer); ok {
		c.Close()
	}
}

func TestOpenInsideArchive(t *testing.T) {
	content := []byte("not really a SID file")
	dir := fixtures(t, content)

	r, size, err := archivefs.Open(filepath.Join(dir, "collection.zip", "MUSICIANS", "L", "tune.sid"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, size, len(content))

	b, err := io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(b), string(content))
}

func TestOpenMissing(t *testing.T) {
	dir := fixtures(t, []byte("x"))

	_, _, err := archivefs.Open(filepath.Join(dir, "missing.sid"))
	test.ExpectFailure(t, err)

	_, _, err = archivefs.Open(filepath.Join(dir, "collection.zip", "missing.sid"))
	test.ExpectFailure(t, err)
}

func TestPathDescent(t *testing.T) {
	dir := fixtures(t, []byte("x"))

	var afs archivefs.Path

	// a directory on the real file system
	err := afs.Set(dir)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())

	// the root of an archive counts as a directory
	err = afs.Set(filepath.Join(dir, "collection.zip"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// a file inside the archive
	err = afs.Set(filepath.Join(dir, "collection.zip", "MUSICIANS", "L", "tune.sid"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// a failed set resets the path
	err = afs.Set(filepath.Join(dir, "no", "such", "file"))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, afs.String(), "")

	afs.Close()
}
