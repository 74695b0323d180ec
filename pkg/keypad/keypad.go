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

// Package keypad maps a QWERTY keyboard onto the sixteen key hex keypad.
//
//	Keyboard      Keypad
//	1 2 3 4       1 2 3 C
//	Q W E R       4 5 6 D
//	A S D F       7 8 9 E
//	Z X C V       A 0 B F
package keypad

import "unicode"

// Layout lists the keyboard rune for each keypad index
var Layout = [16]rune{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// Returns the keypad index bound to r, ignoring case
func Lookup(r rune) (uint8, bool) {
	r = unicode.ToLower(r)

	for index, key := range Layout {
		if key == r {
			return uint8(index), true
		}
	}

	return 0, false
}

// KeySetter receives key state changes, *machine.Machine satisfies it
type KeySetter interface {
	SetKey(index uint8, pressed bool)
}

// Latch holds keys down for a number of frames after a press. Terminals only
// report presses, so a release is synthesised once the hold runs out; a
// repeated press before then extends the hold.
type Latch struct {
	HoldFrames int

	held [16]int
}

func (l *Latch) Press(index uint8) {
	if index >= 16 {
		return
	}

	l.held[index] = l.HoldFrames
}

func (l *Latch) Pressed(index uint8) bool {
	return index < 16 && l.held[index] > 0
}

// Applies the current key state and ages every held key by one frame
func (l *Latch) Tick(keys KeySetter) {
	for i := range l.held {
		keys.SetKey(uint8(i), l.held[i] > 0)

		if l.held[i] > 0 {
			l.held[i]--
		}
	}
}

func (l *Latch) Release() {
	for i := range l.held {
		l.held[i] = 0
	}
}
