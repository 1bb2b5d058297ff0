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

package main_test

import (
	"testing"

	"github.com/gophersid/gophersid/driver"
	"github.com/gophersid/gophersid/sidfile"
	"github.com/gophersid/gophersid/tracer"
)

// the demonstration tune carried by the driver template is the nearest thing
// to a reference workload. frames per second from this benchmark is the
// number the PERFORMANCE mode reports for real tunes.
func BenchmarkTrace(b *testing.B) {
	cfg, err := driver.Lookup(driver.SF2Driver11)
	if err != nil {
		b.Fatal(err)
	}

	hdr := &sidfile.Header{
		Format:      sidfile.PSID,
		Version:     2,
		LoadAddress: cfg.LoadAddr,
		InitAddress: cfg.InitAddr,
		PlayAddress: cfg.PlayAddr,
		Songs:       1,
		StartSong:   1,
		Name:        "benchmark",
	}
	data := sidfile.EncodeSID(hdr, cfg.Template)

	b.ResetTimer()

	_, err = tracer.Trace(data, 0, b.N)
	if err != nil {
		b.Fatal(err)
	}
}
