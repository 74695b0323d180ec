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

package main

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWave(t *testing.T) {
	wave := squareWave(8000, 1000, 10*time.Millisecond)

	// 80 samples of 2 bytes, 8 samples per period
	assert.Len(t, wave, 160)

	sample := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(wave[i*2:]))
	}

	assert.Equal(t, int16(beepAmplitude), sample(0))
	assert.Equal(t, int16(beepAmplitude), sample(3))
	assert.Equal(t, int16(-beepAmplitude), sample(4))
	assert.Equal(t, int16(-beepAmplitude), sample(7))
	assert.Equal(t, int16(beepAmplitude), sample(8))
}
