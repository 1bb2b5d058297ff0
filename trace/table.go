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

package trace

import (
	"fmt"
	"io"

	"github.com/gophersid/gophersid/hardware/memory/addresses"
)

// the composite fields of the table, derived from the raw registers of a
// voice. a field is printed when any of its registers was written in the
// frame, otherwise it is dotted out.
type voiceState struct {
	freq  uint16
	pulse uint16
	wave  uint8
	adsr  uint16
}

type tableState struct {
	regs    [addresses.NumSIDRegisters]uint8
	written [addresses.NumSIDRegisters]bool
}

func (st *tableState) voice(v int) voiceState {
	o := v * addresses.NumVoiceRegisters
	return voiceState{
		freq:  uint16(st.regs[o+addresses.VoiceFreqLo]) | uint16(st.regs[o+addresses.VoiceFreqHi])<<8,
		pulse: (uint16(st.regs[o+addresses.VoicePulseLo]) | uint16(st.regs[o+addresses.VoicePulseHi])<<8) & 0x0fff,
		wave:  st.regs[o+addresses.VoiceControl],
		adsr:  uint16(st.regs[o+addresses.VoiceAttackDecay])<<8 | uint16(st.regs[o+addresses.VoiceSustainRelease]),
	}
}

// anyWritten returns true if any of the registers at the given offsets was
// written in the current frame.
func (st *tableState) anyWritten(offsets ...int) bool {
	for _, o := range offsets {
		if st.written[o] {
			return true
		}
	}
	return false
}

func dotted(written bool, format string, value any, dots string) string {
	if !written {
		return dots
	}
	return fmt.Sprintf(format, value)
}

// WriteTable writes a plain text table of the trace, one row per frame in
// which at least one register was written. fields that were not touched in a
// frame are dotted out, so a row reads as "what the player did this frame".
func WriteTable(output io.Writer, ft *FrameTrace) error {
	var st tableState

	_, err := fmt.Fprintln(output, "| Frame | Freq WF ADSR Pul | Freq WF ADSR Pul | Freq WF ADSR Pul | FCut RC TV |")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, "+-------+------------------+------------------+------------------+------------+")
	if err != nil {
		return err
	}

	for n := 0; n < ft.NumFrames(); n++ {
		frame := ft.Frame(n)
		if len(frame) == 0 {
			continue
		}

		st.written = [addresses.NumSIDRegisters]bool{}
		for _, w := range frame {
			o := int(w.Register - addresses.SIDBase)
			st.regs[o] = w.Value
			st.written[o] = true
		}

		row := fmt.Sprintf("|%6d |", n)

		for v := 0; v < addresses.NumVoices; v++ {
			o := v * addresses.NumVoiceRegisters
			vs := st.voice(v)
			row += fmt.Sprintf(" %s %s %s %s |",
				dotted(st.anyWritten(o+addresses.VoiceFreqLo, o+addresses.VoiceFreqHi), "%04X", vs.freq, "...."),
				dotted(st.anyWritten(o+addresses.VoiceControl), "%02X", vs.wave, ".."),
				dotted(st.anyWritten(o+addresses.VoiceAttackDecay, o+addresses.VoiceSustainRelease), "%04X", vs.adsr, "...."),
				dotted(st.anyWritten(o+addresses.VoicePulseLo, o+addresses.VoicePulseHi), "%03X", vs.pulse, "..."),
			)
		}

		fcut := uint16(st.regs[addresses.FilterCutoffLo]&0x07) | uint16(st.regs[addresses.FilterCutoffHi])<<3
		row += fmt.Sprintf(" %s %s %s |",
			dotted(st.anyWritten(addresses.FilterCutoffLo, addresses.FilterCutoffHi), "%04X", fcut, "...."),
			dotted(st.anyWritten(addresses.FilterResonance), "%02X", st.regs[addresses.FilterResonance], ".."),
			dotted(st.anyWritten(addresses.ModeVolume), "%02X", st.regs[addresses.ModeVolume], ".."),
		)

		_, err = fmt.Fprintln(output, row)
		if err != nil {
			return err
		}
	}

	return nil
}
