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

package addresses

// ProcessorPortDDR is the data direction register for the 6510 on-chip port.
const ProcessorPortDDR = uint16(0x0000)

// ProcessorPort is the 6510 on-chip port. the low three bits select the
// memory banking configuration of the C64.
const ProcessorPort = uint16(0x0001)

// power on values for the 6510 on-chip port. the banking value of 0x37 banks
// in BASIC, I/O and the KERNAL.
const (
	ProcessorPortDDRStartup = uint8(0x2f)
	ProcessorPortStartup    = uint8(0x37)
)

// KernalIRQ is the RAM vector through which the KERNAL dispatches the
// maskable interrupt. music players installed as an interrupt routine are
// reached through this vector.
const KernalIRQ = uint16(0x0314)

// addresses in the KERNAL interrupt exit path. a player routine that was
// installed as an interrupt handler returns control by jumping to one of
// these rather than executing RTS.
const (
	KernalIRQReturn    = uint16(0xea31)
	KernalIRQReturnMin = uint16(0xea81)
)

// VICControl and VICRaster are the two VIC-II registers a player polls when
// it synchronises to the video beam. bit 7 of VICControl is the high bit of
// the raster line value.
const (
	VICControl = uint16(0xd011)
	VICRaster  = uint16(0xd012)
)

// the SID register window. SIDBase is the first register (voice 1 frequency
// low byte) and SIDTop is the last (mode/volume). the window is 25 registers
// long.
const (
	SIDBase = uint16(0xd400)
	SIDTop  = uint16(0xd418)
)

// NumSIDRegisters is the number of registers in the SID register window.
const NumSIDRegisters = 25

// the per voice register layout of the SID. each voice occupies seven
// registers starting at SIDBase+(voice*NumVoiceRegisters).
const (
	NumVoices         = 3
	NumVoiceRegisters = 7
)

// offsets of the individual registers within a voice.
const (
	VoiceFreqLo = iota
	VoiceFreqHi
	VoicePulseLo
	VoicePulseHi
	VoiceControl
	VoiceAttackDecay
	VoiceSustainRelease
)

// offsets of the filter and volume registers within the SID register window.
const (
	FilterCutoffLo  = 21
	FilterCutoffHi  = 22
	FilterResonance = 23
	ModeVolume      = 24
)

// CanonicalSIDSymbols lists the canonical names for the SID registers,
// indexed by register offset from SIDBase. the names are those used in the
// Commodore 64 Programmer's Reference Guide.
var CanonicalSIDSymbols = [NumSIDRegisters]string{
	"FRELO1", "FREHI1", "PWLO1", "PWHI1", "VCREG1", "ATDCY1", "SUREL1",
	"FRELO2", "FREHI2", "PWLO2", "PWHI2", "VCREG2", "ATDCY2", "SUREL2",
	"FRELO3", "FREHI3", "PWLO3", "PWHI3", "VCREG3", "ATDCY3", "SUREL3",
	"CUTLO", "CUTHI", "RESON", "SIGVOL",
}

// IsSIDRegister returns true if the address falls inside the SID register
// window.
func IsSIDRegister(address uint16) bool {
	return address >= SIDBase && address <= SIDTop
}
