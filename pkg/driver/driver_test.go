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

package driver_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lassandro/golc8/pkg/driver"
	"github.com/lassandro/golc8/pkg/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// Counts V0 up forever:
//
//	0x200 ADD V0, 1
//	0x202 JP 0x200
var counter = []byte{0x70, 0x01, 0x12, 0x00}

func newDriver(t *testing.T, program []byte, ipf int) *driver.Driver {
	t.Helper()

	mc := machine.New()
	assert.NoError(t, mc.Load(program))

	return driver.New(mc, ipf, log.NewTestLogger(t))
}

// Faulting drivers log at error level, which fails a test logger, so their
// records go to a buffer instead
func newFaultingDriver(
	t *testing.T, program []byte, ipf int, output *bytes.Buffer,
) *driver.Driver {
	t.Helper()

	mc := machine.New()
	assert.NoError(t, mc.Load(program))

	cfg := log.DefaultConfig()
	cfg.Level = log.DebugLevel
	cfg.Output = output
	cfg.TimeFormat = "-"

	return driver.New(mc, ipf, log.NewWithConfig(cfg))
}

func TestFrame(t *testing.T) {
	d := newDriver(t, counter, 8)
	d.Machine.State.DelayTimer = 5

	assert.NoError(t, d.Frame())

	// 8 instructions execute the ADD four times
	assert.Equal(t, uint8(4), d.Machine.State.Registers[0])
	assert.Equal(t, uint8(4), d.Machine.State.DelayTimer)
	assert.Equal(t, 1, d.Frames())
}

func TestDefaultInstructionsPerFrame(t *testing.T) {
	d := newDriver(t, counter, 0)

	assert.Equal(t, driver.DEFAULT_INSTRUCTIONS_PER_FRAME, d.InstructionsPerFrame)
}

func TestFaultHaltsUntilReset(t *testing.T) {
	// RET with an empty stack
	program := []byte{0x60, 0x07, 0x00, 0xEE}
	var output bytes.Buffer
	d := newFaultingDriver(t, program, 10, &output)
	d.Machine.State.DelayTimer = 5

	err := d.Frame()
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, uint8(5), d.Machine.State.DelayTimer)
	assert.Equal(t, uint16(0x202), d.Machine.State.Program)

	// Later frames do not step the machine again
	again := d.Frame()
	assert.True(t, errors.Is(again, machine.ErrStackUnderflow))
	assert.True(t, errors.Is(d.Err(), machine.ErrStackUnderflow))
	assert.Equal(t, uint16(0x202), d.Machine.State.Program)

	// The fault is logged once, not once per frame
	assert.Equal(t, 1, strings.Count(output.String(), "Machine halted"))

	assert.NoError(t, d.Reset(counter))
	assert.Nil(t, d.Err())
	assert.Equal(t, uint8(0), d.Machine.State.Registers[0])
	assert.NoError(t, d.Frame())
}

func TestResetRejectsLargeProgram(t *testing.T) {
	d := newDriver(t, counter, 1)

	err := d.Reset(make([]byte, machine.MEMORY_SIZE))
	assert.True(t, errors.Is(err, machine.ErrOutOfBounds))
}

func TestRunStopsOnCancel(t *testing.T) {
	d := newDriver(t, counter, 2)
	ctx, cancel := context.WithCancel(context.Background())

	renders := 0
	err := d.Run(ctx, time.Millisecond, func() error {
		renders++
		if renders == 3 {
			cancel()
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, renders)
	assert.Equal(t, uint8(3), d.Machine.State.Registers[0])
}

func TestRunReturnsFault(t *testing.T) {
	// Unimplemented 0x5121
	var output bytes.Buffer
	d := newFaultingDriver(t, []byte{0x51, 0x21}, 1, &output)

	err := d.Run(context.Background(), time.Millisecond, nil)

	var fault *machine.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.Program)
	assert.Equal(t, uint16(0x5121), fault.Instruction)
	assert.Equal(t, 1, strings.Count(output.String(), "Machine halted"))
}

func TestRunReturnsRenderError(t *testing.T) {
	d := newDriver(t, counter, 1)
	failure := errors.New("render failed")

	err := d.Run(context.Background(), time.Millisecond, func() error {
		return failure
	})

	assert.True(t, errors.Is(err, failure))
}
