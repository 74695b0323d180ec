// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrOutOfBounds    = errors.New("address out of bounds")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
	ErrUnimplemented  = errors.New("unimplemented instruction")
)

// Fault is returned by Step when an instruction cannot be executed. The
// machine state is left as it was before the faulting instruction was fetched.
type Fault struct {
	Program     uint16
	Instruction uint16
	Err         error
}

func (f *Fault) Error() string {
	return fmt.Sprintf(
		"%#04x: instruction %#04x: %v", f.Program, f.Instruction, f.Err,
	)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Speaker receives the beep signal when the sound timer runs out
type Speaker interface {
	Beep()
}

type DeviceHandler struct {
	Speaker Speaker
	Random  *rand.Rand
}

type MachineState struct {
	Registers    [REGISTER_SIZE]uint8
	Program      uint16
	Index        uint16
	Stack        [STACK_SIZE]uint16
	StackPointer uint8
	DelayTimer   uint8
	SoundTimer   uint8
	Keys         [KEY_COUNT]bool
	Display      [SCREEN_SIZE]bool
	Memory       [MEMORY_SIZE]byte
}

type Machine struct {
	Devices *DeviceHandler
	State   MachineState
}
