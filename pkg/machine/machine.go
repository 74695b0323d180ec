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
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/lassandro/golc8/pkg/encoding"
)

func New() *Machine {
	var mc Machine
	mc.State.Reset()
	return &mc
}

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x00
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x00
	}

	for i := range mc.Stack {
		mc.Stack[i] = 0x0000
	}

	for i := range mc.Keys {
		mc.Keys[i] = false
	}

	mc.clear()

	copy(mc.Memory[MEMSPACE_FONT:], Font[:])

	mc.Program = MEMSPACE_PROGRAM
	mc.Index = 0x0000
	mc.StackPointer = 0
	mc.DelayTimer = 0
	mc.SoundTimer = 0
}

func (mc *Machine) Reset() {
	mc.State.Reset()
}

func (mc *MachineState) clear() {
	for i := range mc.Display {
		mc.Display[i] = false
	}
}

// Copies a program image into the program region without resetting the
// machine, anything past the end of the image is left as it was
func (mc *Machine) Load(program []byte) error {
	if int(MEMSPACE_PROGRAM)+len(program) > MEMORY_SIZE {
		return fmt.Errorf(
			"program of %d bytes does not fit at %#04x: %w",
			len(program), MEMSPACE_PROGRAM, ErrOutOfBounds,
		)
	}

	copy(mc.State.Memory[MEMSPACE_PROGRAM:], program)
	mc.State.Program = MEMSPACE_PROGRAM

	return nil
}

func (mc *Machine) LoadBin(reader io.Reader) error {
	mc.State.Reset()

	program, err := io.ReadAll(
		io.LimitReader(reader, MEMORY_SIZE-int64(MEMSPACE_PROGRAM)+1),
	)

	if err != nil {
		return err
	}

	return mc.Load(program)
}

func (mc *Machine) SetKey(index uint8, pressed bool) {
	if index >= KEY_COUNT {
		panic("Invalid key index")
	}

	mc.State.Keys[index] = pressed
}

// Returns a row-major copy of the pixel grid
func (mc *Machine) Display() [SCREEN_SIZE]bool {
	return mc.State.Display
}

func (mc *Machine) Pixel(x, y int) bool {
	x = ((x % SCREEN_WIDTH) + SCREEN_WIDTH) % SCREEN_WIDTH
	y = ((y % SCREEN_HEIGHT) + SCREEN_HEIGHT) % SCREEN_HEIGHT
	return mc.State.Display[x+SCREEN_WIDTH*y]
}

func (mc *Machine) SoundActive() bool {
	return mc.State.SoundTimer > 0
}

func (mc *Machine) DecayTimers() {
	if mc.State.DelayTimer > 0 {
		mc.State.DelayTimer--
	}

	if mc.State.SoundTimer > 0 {
		mc.State.SoundTimer--

		if mc.State.SoundTimer == 0 &&
			mc.Devices != nil && mc.Devices.Speaker != nil {
			mc.Devices.Speaker.Beep()
		}
	}
}

func (mc *Machine) push(value uint16) error {
	if mc.State.StackPointer >= STACK_SIZE {
		return ErrStackOverflow
	}

	mc.State.Stack[mc.State.StackPointer] = value
	mc.State.StackPointer++
	return nil
}

func (mc *Machine) pop() (uint16, error) {
	if mc.State.StackPointer == 0 {
		return 0, ErrStackUnderflow
	}

	mc.State.StackPointer--
	return mc.State.Stack[mc.State.StackPointer], nil
}

// Checks that count bytes starting at the index register are addressable
func (mc *Machine) indexed(count uint16) error {
	if int(mc.State.Index)+int(count) > MEMORY_SIZE {
		return ErrOutOfBounds
	}

	return nil
}

func (mc *Machine) random() uint8 {
	if mc.Devices != nil && mc.Devices.Random != nil {
		return uint8(mc.Devices.Random.IntN(256))
	}

	return uint8(rand.IntN(256))
}

func (mc *Machine) skipIf(condition bool) {
	if condition {
		mc.State.Program += 2
	}
}

// Executes a single instruction. On failure the returned error is a *Fault
// and the state is restored to what it was before the call.
func (mc *Machine) Step() error {
	program := mc.State.Program

	if int(program)+1 >= MEMORY_SIZE {
		return &Fault{Program: program, Err: ErrOutOfBounds}
	}

	instruction := encoding.Word(mc.State.Memory[program : program+2])

	mc.State.Program += 2

	if err := mc.execute(instruction); err != nil {
		mc.State.Program = program
		return &Fault{Program: program, Instruction: instruction, Err: err}
	}

	return nil
}

func (mc *Machine) execute(instruction uint16) error {
	x := encoding.X(instruction)
	y := encoding.Y(instruction)
	nn := encoding.NN(instruction)
	nnn := encoding.NNN(instruction)

	v := &mc.State.Registers

	switch encoding.Family(instruction) {
	// NOP  |0000|0000|0000|0000| No operation
	// CLS  |0000|0000|1110|0000| Clear display
	// RET  |0000|0000|1110|1110| Return from subroutine
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SYS:
		switch instruction {
		case SYS_NOP:
		case SYS_CLS:
			mc.State.clear()
		case SYS_RET:
			addr, err := mc.pop()
			if err != nil {
				return err
			}

			mc.State.Program = addr
		default:
			return ErrUnimplemented
		}

	// JP   |0001|nnn           | Jump
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JP:
		mc.State.Program = nnn

	// CALL |0010|nnn           | Call subroutine
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_CALL:
		if err := mc.push(mc.State.Program); err != nil {
			return err
		}

		mc.State.Program = nnn

	// SE   |0011|x   |nn       | Skip if equal immediate
	// SNE  |0100|x   |nn       | Skip if not equal immediate
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SE:
		mc.skipIf(v[x] == nn)

	case OP_SNE:
		mc.skipIf(v[x] != nn)

	// SE   |0101|x   |y   |0000| Skip if registers equal
	// SNE  |1001|x   |y   |0000| Skip if registers differ
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SER, OP_SNER:
		if encoding.N(instruction) != 0 {
			return ErrUnimplemented
		}

		if encoding.Family(instruction) == OP_SER {
			mc.skipIf(v[x] == v[y])
		} else {
			mc.skipIf(v[x] != v[y])
		}

	// LD   |0110|x   |nn       | Load immediate
	// ADD  |0111|x   |nn       | Add immediate, VF untouched
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		v[x] = nn

	case OP_ADD:
		v[x] += nn

	// ALU  |1000|x   |y   |op  | Register arithmetic
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ALU:
		return mc.alu(encoding.N(instruction), x, y)

	// LD   |1010|nnn           | Load index register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		mc.State.Index = nnn

	// JP   |1011|nnn           | Jump offset by V0
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JPV:
		mc.State.Program = nnn + uint16(v[0])

	// RND  |1100|x   |nn       | Random byte masked by nn
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RND:
		v[x] = mc.random() & nn

	// DRW  |1101|x   |y   |n   | Draw n byte sprite from index
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_DRW:
		return mc.draw(v[x], v[y], encoding.N(instruction))

	// SKP  |1110|x   |10011110 | Skip if key pressed
	// SKNP |1110|x   |10100001 | Skip if key not pressed
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_KEY:
		// Only the low nibble addresses the keypad
		pressed := mc.State.Keys[v[x]&0xF]

		switch nn {
		case KEY_SKP:
			mc.skipIf(pressed)
		case KEY_SKNP:
			mc.skipIf(!pressed)
		default:
			return ErrUnimplemented
		}

	case OP_MISC:
		return mc.misc(nn, x)
	}

	return nil
}

func (mc *Machine) alu(op, x, y uint8) error {
	v := &mc.State.Registers

	switch op {
	case ALU_LD:
		v[x] = v[y]

	case ALU_OR:
		v[x] |= v[y]

	case ALU_AND:
		v[x] &= v[y]

	case ALU_XOR:
		v[x] ^= v[y]

	case ALU_ADD:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		v[REG_FLAG] = uint8(sum >> 8)

	// VF is set when no borrow occurred
	case ALU_SUB:
		var flag uint8
		if v[x] >= v[y] {
			flag = 1
		}

		v[x] -= v[y]
		v[REG_FLAG] = flag

	case ALU_SUBN:
		var flag uint8
		if v[y] >= v[x] {
			flag = 1
		}

		v[x] = v[y] - v[x]
		v[REG_FLAG] = flag

	case ALU_SHR:
		flag := v[x] & 0x1
		v[x] >>= 1
		v[REG_FLAG] = flag

	case ALU_SHL:
		flag := v[x] >> 7
		v[x] <<= 1
		v[REG_FLAG] = flag

	default:
		return ErrUnimplemented
	}

	return nil
}

func (mc *Machine) draw(x, y, rows uint8) error {
	if err := mc.indexed(uint16(rows)); err != nil {
		return err
	}

	var collision uint8

	for row := uint16(0); row < uint16(rows); row++ {
		sprite := mc.State.Memory[mc.State.Index+row]
		py := (int(y) + int(row)) % SCREEN_HEIGHT

		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % SCREEN_WIDTH
			cell := &mc.State.Display[px+SCREEN_WIDTH*py]

			if *cell {
				collision = 1
			}

			*cell = !*cell
		}
	}

	mc.State.Registers[REG_FLAG] = collision

	return nil
}

func (mc *Machine) misc(op, x uint8) error {
	v := &mc.State.Registers

	switch op {
	// LD   |1111|x   |00000111 | Vx = delay timer
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_GET_DELAY:
		v[x] = mc.State.DelayTimer

	// LD   |1111|x   |00001010 | Wait for key press
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_WAIT_KEY:
		for key, pressed := range mc.State.Keys {
			if pressed {
				v[x] = uint8(key)
				return nil
			}
		}

		// Re-issue this instruction on the next step
		mc.State.Program -= 2

	// LD   |1111|x   |00010101 | delay timer = Vx
	// LD   |1111|x   |00011000 | sound timer = Vx
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_SET_DELAY:
		mc.State.DelayTimer = v[x]

	case MISC_SET_SOUND:
		mc.State.SoundTimer = v[x]

	// ADD  |1111|x   |00011110 | Index += Vx
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_ADD_INDEX:
		mc.State.Index += uint16(v[x])

	// LD   |1111|x   |00101001 | Index = font glyph for Vx
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_FONT:
		mc.State.Index = MEMSPACE_FONT + uint16(v[x])*FONT_GLYPH_SIZE

	// LD   |1111|x   |00110011 | Store decimal digits of Vx
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_BCD:
		if err := mc.indexed(3); err != nil {
			return err
		}

		hundreds, tens, ones := encoding.Decimal(v[x])
		mc.State.Memory[mc.State.Index] = hundreds
		mc.State.Memory[mc.State.Index+1] = tens
		mc.State.Memory[mc.State.Index+2] = ones

	// LD   |1111|x   |01010101 | Store V0..Vx at index
	// LD   |1111|x   |01100101 | Load V0..Vx from index
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case MISC_STORE:
		if err := mc.indexed(uint16(x) + 1); err != nil {
			return err
		}

		copy(mc.State.Memory[mc.State.Index:], v[:x+1])

	case MISC_RESTORE:
		if err := mc.indexed(uint16(x) + 1); err != nil {
			return err
		}

		copy(v[:x+1], mc.State.Memory[mc.State.Index:])

	default:
		return ErrUnimplemented
	}

	return nil
}
