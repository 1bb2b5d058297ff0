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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gophersid/gophersid/accuracy"
	"github.com/gophersid/gophersid/convert"
	"github.com/gophersid/gophersid/digest"
	"github.com/gophersid/gophersid/disassembly"
	"github.com/gophersid/gophersid/driver"
	"github.com/gophersid/gophersid/logger"
	"github.com/gophersid/gophersid/modalflag"
	"github.com/gophersid/gophersid/performance"
	"github.com/gophersid/gophersid/sf2"
	"github.com/gophersid/gophersid/sidfile"
	"github.com/gophersid/gophersid/statsview"
	"github.com/gophersid/gophersid/trace"
	"github.com/gophersid/gophersid/tracer"
	"github.com/gophersid/gophersid/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("TRACE", "EXTRACT", "PACK", "COMPARE", "DISASM", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "TRACE":
		err = dump(md)

	case "EXTRACT":
		err = extract(md)

	case "PACK":
		err = pack(md)

	case "COMPARE":
		err = compare(md)

	case "DISASM":
		err = disasm(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// setEcho connects or disconnects the debugging log from stdout.
func setEcho(echo bool) {
	if echo {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}
}

// isSF2 returns true if the filename carries the project file extension.
func isSF2(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".sf2")
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	subtune := md.AddInt("subtune", 0, "the subtune to play, starting at zero")
	frames := md.AddInt("frames", 3000, "number of frames to play (PAL plays 50 per second)")
	echo := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*echo)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("SID file required for %s mode", md)
	case 1:
		loader := sidfile.NewLoader(md.GetArg(0))
		err := loader.Load()
		if err != nil {
			return err
		}

		ft, err := tracer.Trace(loader.Data, *subtune, *frames)
		if err != nil {
			return err
		}

		err = trace.WriteTable(md.Output, ft)
		if err != nil {
			return err
		}

		fmt.Fprintf(md.Output, "%s (digest %s)\n", ft, digest.NewTrace(ft).Hash())
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func extract(md *modalflag.Modes) error {
	md.NewMode()

	echo := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*echo)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("SID file required for %s mode", md)
	case 1:
		loader := sidfile.NewLoader(md.GetArg(0))
		err := loader.Load()
		if err != nil {
			return err
		}

		hdr, ts, err := convert.ExtractSID(loader.Data)
		if err != nil {
			return err
		}

		fmt.Fprintln(md.Output, hdr)

		err = ts.Write(md.Output)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func pack(md *modalflag.Modes) error {
	md.NewMode()

	target := md.AddString("target", "", "load address for the packed module, eg. 0x2000. defaults to the driver's own")
	name := md.AddString("name", "", "tune name for the SID header")
	author := md.AddString("author", "", "author for the SID header")
	released := md.AddString("released", "", "release details for the SID header")
	verify := md.AddInt("verify", 0, "play this many frames of the source and the conversion and compare them")
	echo := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp(
		`The direction of the conversion follows from the file extensions: a SID input and an SF2
output produces a project file; an SF2 input and a SID or PRG output packs the project into
a standalone program. A SID input with a SID or PRG output does both, which relocates the
tune onto the supported driver in one step.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*echo)

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("an input file and an output file are required for %s mode", md)
	}

	in := md.GetArg(0)
	out := md.GetArg(1)

	opt := convert.Options{Name: *name, Author: *author, Released: *released}
	if *target != "" {
		v, err := strconv.ParseUint(*target, 0, 16)
		if err != nil {
			return fmt.Errorf("target address: %v", err)
		}
		opt.Target = uint16(v)
	}

	// the project file for the requested conversion, whichever side of the
	// conversion it is on
	var f *sf2.File

	var source sidfile.Loader
	if isSF2(in) {
		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		f, err = sf2.Read(data)
		if err != nil {
			return err
		}
	} else {
		source = sidfile.NewLoader(in)
		err := source.Load()
		if err != nil {
			return err
		}

		f, err = convert.SIDToSF2(source.Data, driver.SF2Driver11)
		if err != nil {
			return err
		}

		// header credentials carry over from the source unless overridden
		hdr, err := sidfile.ReadHeader(source.Data)
		if err != nil {
			return err
		}
		if opt.Name == "" {
			opt.Name = hdr.Name
		}
		if opt.Author == "" {
			opt.Author = hdr.Author
		}
		if opt.Released == "" {
			opt.Released = hdr.Released
		}
	}

	var data []byte

	switch {
	case isSF2(out):
		if !source.HasLoaded() {
			return fmt.Errorf("%s is already a project file", in)
		}

		// check and warn about arguments that only apply to a packed output
		md.Visit(func(flg string) {
			switch flg {
			case "target", "name", "author", "released", "verify":
				fmt.Printf("! ignored %s flag when writing a project file\n", flg)
			}
		})

		data = sf2.Encode(f)

	case strings.EqualFold(filepath.Ext(out), ".prg"):
		data, err = convert.SF2ToPRG(f, opt)
		if err != nil {
			return err
		}

	default:
		data, err = convert.SF2ToSID(f, opt)
		if err != nil {
			return err
		}

		if *verify > 0 {
			if !source.HasLoaded() {
				return fmt.Errorf("verification needs a SID file on both sides of the conversion")
			}

			rep, err := convert.Verify(source.Data, data, *verify)
			if err != nil {
				return err
			}

			err = rep.Write(md.Output)
			if err != nil {
				return err
			}
		}
	}

	err = os.WriteFile(out, data, 0644)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s written (%d bytes)\n", out, len(data))

	return nil
}

func compare(md *modalflag.Modes) error {
	md.NewMode()

	subtune := md.AddInt("subtune", 0, "the subtune to play, starting at zero")
	frames := md.AddInt("frames", 3000, "number of frames to compare")
	echo := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*echo)

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("two SID files required for %s mode", md)
	}

	var ft [2]*trace.FrameTrace
	for i := 0; i < 2; i++ {
		loader := sidfile.NewLoader(md.GetArg(i))
		err := loader.Load()
		if err != nil {
			return err
		}

		ft[i], err = tracer.Trace(loader.Data, *subtune, *frames)
		if err != nil {
			return err
		}

		fmt.Fprintf(md.Output, "%s: %s (digest %s)\n", loader.ShortName(), ft[i], digest.NewTrace(ft[i]).Hash())
	}

	return accuracy.Compare(ft[0], ft[1]).Write(md.Output)
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("SID or SF2 file required for %s mode", md)
	case 1:
		filename := md.GetArg(0)

		// a project file names its driver, which knows exactly where the
		// code ends. a SID file makes no such distinction so the listing
		// covers the whole program, music data included
		if isSF2(filename) {
			data, err := os.ReadFile(filename)
			if err != nil {
				return err
			}

			f, err := sf2.Read(data)
			if err != nil {
				return err
			}

			return disassembly.Disassemble(f.LoadAddr, f.Code).Write(md.Output)
		}

		loader := sidfile.NewLoader(filename)
		err := loader.Load()
		if err != nil {
			return err
		}

		hdr, prg, err := sidfile.Program(loader.Data)
		if err != nil {
			return err
		}

		return disassembly.Disassemble(hdr.LoadAddress, prg).Write(md.Output)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	subtune := md.AddInt("subtune", 0, "the subtune to play, starting at zero")
	duration := md.AddString("duration", "5s", "run duration (eg. 4m)")
	profile := md.AddString("profile", "none", "run through profiler: comma separated list of cpu, mem, trace or all")
	stats := md.AddBool("statsview", false, "run the statsview web server")
	echo := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*echo)

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build (rebuild with the statsview tag)")
		}
		statsview.Launch(md.Output)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("SID file required for %s mode", md)
	case 1:
		loader := sidfile.NewLoader(md.GetArg(0))
		return performance.Check(md.Output, prf, loader, *subtune, *duration)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display vcs revision alongside the version number")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
