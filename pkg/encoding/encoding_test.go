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

package encoding_test

import (
	"testing"

	"github.com/lassandro/golc8/pkg/encoding"
	"github.com/retroenv/retrogolib/assert"
)

func TestFields(t *testing.T) {
	const instruction uint16 = 0xD5A7

	assert.Equal(t, uint16(0xD5A7), encoding.Word([]byte{0xD5, 0xA7}))
	assert.Equal(t, uint8(0xD), encoding.Family(instruction))
	assert.Equal(t, uint8(0x5), encoding.X(instruction))
	assert.Equal(t, uint8(0xA), encoding.Y(instruction))
	assert.Equal(t, uint8(0x7), encoding.N(instruction))
	assert.Equal(t, uint8(0xA7), encoding.NN(instruction))
	assert.Equal(t, uint16(0x5A7), encoding.NNN(instruction))
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		value    uint8
		expected [3]uint8
	}{
		{0, [3]uint8{0, 0, 0}},
		{9, [3]uint8{0, 0, 9}},
		{42, [3]uint8{0, 4, 2}},
		{100, [3]uint8{1, 0, 0}},
		{255, [3]uint8{2, 5, 5}},
	}

	for _, tt := range tests {
		hundreds, tens, ones := encoding.Decimal(tt.value)
		assert.Equal(t, tt.expected, [3]uint8{hundreds, tens, ones})
	}
}
