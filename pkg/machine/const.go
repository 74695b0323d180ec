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

const (
	MEMORY_SIZE   = 4096
	REGISTER_SIZE = 16
	STACK_SIZE    = 16
	KEY_COUNT     = 16

	SCREEN_WIDTH  = 64
	SCREEN_HEIGHT = 32
	SCREEN_SIZE   = SCREEN_WIDTH * SCREEN_HEIGHT
)

const (
	MEMSPACE_FONT    uint16 = 0x0000
	MEMSPACE_PROGRAM uint16 = 0x0200
)

// VF doubles as the carry, borrow, shift-out and collision flag
const REG_FLAG = 0xF

const (
	OP_SYS  uint8 = 0x0
	OP_JP   uint8 = 0x1
	OP_CALL uint8 = 0x2
	OP_SE   uint8 = 0x3
	OP_SNE  uint8 = 0x4
	OP_SER  uint8 = 0x5
	OP_LD   uint8 = 0x6
	OP_ADD  uint8 = 0x7
	OP_ALU  uint8 = 0x8
	OP_SNER uint8 = 0x9
	OP_LDI  uint8 = 0xA
	OP_JPV  uint8 = 0xB
	OP_RND  uint8 = 0xC
	OP_DRW  uint8 = 0xD
	OP_KEY  uint8 = 0xE
	OP_MISC uint8 = 0xF
)

const (
	SYS_NOP uint16 = 0x0000
	SYS_CLS uint16 = 0x00E0
	SYS_RET uint16 = 0x00EE
)

const (
	ALU_LD   uint8 = 0x0
	ALU_OR   uint8 = 0x1
	ALU_AND  uint8 = 0x2
	ALU_XOR  uint8 = 0x3
	ALU_ADD  uint8 = 0x4
	ALU_SUB  uint8 = 0x5
	ALU_SHR  uint8 = 0x6
	ALU_SUBN uint8 = 0x7
	ALU_SHL  uint8 = 0xE
)

const (
	KEY_SKP  uint8 = 0x9E
	KEY_SKNP uint8 = 0xA1
)

const (
	MISC_GET_DELAY uint8 = 0x07
	MISC_WAIT_KEY  uint8 = 0x0A
	MISC_SET_DELAY uint8 = 0x15
	MISC_SET_SOUND uint8 = 0x18
	MISC_ADD_INDEX uint8 = 0x1E
	MISC_FONT      uint8 = 0x29
	MISC_BCD       uint8 = 0x33
	MISC_STORE     uint8 = 0x55
	MISC_RESTORE   uint8 = 0x65
)

const FONT_GLYPH_SIZE = 5

var Font = [16 * FONT_GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
