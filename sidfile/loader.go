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

package sidfile

import (
	"crypto/sha1"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gophersid/gophersid/archivefs"
	"github.com/gophersid/gophersid/curated"
)

// Loader is used to specify the SID file to be converted or traced. The
// engine proper never touches the filesystem; the Loader is the thin wrapper
// that callers use to turn a filename into the bytes that Load() expects.
//
// Files are read through the archivefs package, so the filename may reach
// inside a zip archive. Music collections are usually distributed that way.
type Loader struct {
	// filename of SID file to load
	Filename string

	// expected hash of the loaded file. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will return a copy
	// of this data
	Data []byte
}

// FileExtensions is the list of file extensions that are recognised by the
// sidfile package.
var FileExtensions = [...]string{".SID", ".PSID", ".RSID"}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	shortName := path.Base(cl.Filename)
	shortName = strings.TrimSuffix(shortName, path.Ext(cl.Filename))
	return shortName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the file data into the Data field. The format of the data is not
// checked here, only that the file could be read and that any expected hash
// matches.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	r, _, err := archivefs.Open(cl.Filename)
	if err != nil {
		return curated.Errorf("sid file: %v", err)
	}

	cl.Data, err = io.ReadAll(r)
	if c, ok := r.(io.Closer); ok {
		c.Close()
	}
	if err != nil {
		return curated.Errorf("sid file: %v", err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("sid file: %v", "unexpected hash value")
	}
	cl.Hash = hash

	return nil
}
