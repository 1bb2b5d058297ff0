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

// Package archivefs presents files inside zip archives as ordinary files. A
// path is walked component by component and whenever a component names a zip
// file the walk carries on inside the archive.
//
// SID collections are customarily distributed as one large archive. Naming a
// file inside the archive directly means a tune can be traced or converted
// without unpacking the collection first.
package archivefs

import "io"

// Open and return an io.ReadSeeker for the specified filename. The filename
// can be inside an archive supported by archivefs.
//
// Returns the io.ReadSeeker, the size of the data behind the ReadSeeker and
// any errors. If the returned ReadSeeker also implements io.Closer then it is
// the caller's responsibility to close it.
func Open(filename string) (io.ReadSeeker, int, error) {
	var afs Path
	err := afs.Set(filename)
	if err != nil {
		return nil, 0, err
	}
	defer afs.Close()
	return afs.Open()
}
