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

package keypad_test

import (
	"testing"

	"github.com/lassandro/golc8/pkg/keypad"
	"github.com/lassandro/golc8/pkg/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key      rune
		expected uint8
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
		{'Q', 0x4}, {'V', 0xF},
	}

	for _, tt := range tests {
		index, ok := keypad.Lookup(tt.key)
		assert.True(t, ok, string(tt.key))
		assert.Equal(t, tt.expected, index, string(tt.key))
	}

	for _, key := range []rune{'5', 'p', ' ', 0x1B} {
		_, ok := keypad.Lookup(key)
		assert.False(t, ok)
	}
}

func TestLayoutIsBijective(t *testing.T) {
	seen := map[rune]bool{}

	for _, key := range keypad.Layout {
		assert.False(t, seen[key], string(key))
		seen[key] = true
	}

	assert.Len(t, seen, 16)
}

func TestLatch(t *testing.T) {
	mc := machine.New()
	latch := keypad.Latch{HoldFrames: 2}

	latch.Press(0xA)
	assert.True(t, latch.Pressed(0xA))

	latch.Tick(mc)
	assert.True(t, mc.State.Keys[0xA])

	latch.Tick(mc)
	assert.True(t, mc.State.Keys[0xA])

	latch.Tick(mc)
	assert.False(t, mc.State.Keys[0xA])
	assert.False(t, latch.Pressed(0xA))
}

func TestLatchRepeatExtendsHold(t *testing.T) {
	mc := machine.New()
	latch := keypad.Latch{HoldFrames: 2}

	latch.Press(0x3)
	latch.Tick(mc)
	latch.Press(0x3)
	latch.Tick(mc)
	latch.Tick(mc)
	assert.True(t, mc.State.Keys[0x3])

	latch.Release()
	latch.Tick(mc)
	assert.False(t, mc.State.Keys[0x3])
}

func TestLatchIgnoresInvalidIndex(t *testing.T) {
	latch := keypad.Latch{HoldFrames: 2}

	latch.Press(16)
	assert.False(t, latch.Pressed(16))
}
