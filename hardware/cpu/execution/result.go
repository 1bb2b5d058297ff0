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

package execution

import (
	"github.com/gophersid/gophersid/hardware/cpu/instructions"
)

// Result records the state of the CPU after execution of an instruction. It
// is updated as the instruction proceeds, the Final field indicating whether
// the last memory access of the instruction has taken place.
type Result struct {
	// a reference to the instruction definition
	Defn *instructions.Definition

	// the address at which the instruction began
	Address uint16

	// instruction data is the operand of the instruction. in the case of a
	// branch instruction, for example, the instruction data is the branch
	// offset
	InstructionData uint16

	// the actual number of cycles taken by the instruction. this may differ
	// from the cycles defined for the opcode because of page faults and
	// branch conditions
	Cycles int

	// the number of bytes read during instruction decode
	ByteCount int

	// whether an extra cycle was required because of a page fault during
	// address indexing
	PageFault bool

	// whether one of the CPU quirks was triggered during execution. the empty
	// string means no bug
	CPUBug string

	// whether a branch instruction test passed and the branch was taken
	BranchSuccess bool

	// whether this data has been finalised. data that has not been finalised
	// is the result of an instruction that is currently being executed
	Final bool

	// any memory access error. errors of this type do not stop the CPU, they
	// are noted and execution continues
	Error string
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	r.Defn = nil
	r.Address = 0
	r.InstructionData = 0
	r.Cycles = 0
	r.ByteCount = 0
	r.PageFault = false
	r.CPUBug = ""
	r.BranchSuccess = false
	r.Final = false
	r.Error = ""
}
