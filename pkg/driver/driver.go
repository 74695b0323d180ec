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

// Package driver runs a machine one display frame at a time: a fixed number
// of instructions, then a single timer decay.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/lassandro/golc8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
)

const (
	DEFAULT_INSTRUCTIONS_PER_FRAME = 10
	FRAME_RATE                     = 60
)

type Driver struct {
	Machine              *machine.Machine
	InstructionsPerFrame int

	logger *log.Logger
	fault  error
	frames int
}

func New(mc *machine.Machine, ipf int, logger *log.Logger) *Driver {
	if ipf <= 0 {
		ipf = DEFAULT_INSTRUCTIONS_PER_FRAME
	}

	return &Driver{
		Machine:              mc,
		InstructionsPerFrame: ipf,
		logger:               logger,
	}
}

// Runs one frame. A fault halts the machine until Reset, the fault is
// returned from this and every later call.
func (d *Driver) Frame() error {
	if d.fault != nil {
		return d.fault
	}

	for i := 0; i < d.InstructionsPerFrame; i++ {
		if err := d.Machine.Step(); err != nil {
			d.fault = err
			d.logger.Error(
				"Machine halted",
				log.Int("frame", d.frames),
				log.Err(err),
			)
			return err
		}
	}

	d.Machine.DecayTimers()
	d.frames++

	return nil
}

func (d *Driver) Err() error {
	return d.fault
}

func (d *Driver) Frames() int {
	return d.frames
}

// Resets the machine and loads program into it again
func (d *Driver) Reset(program []byte) error {
	d.Machine.Reset()
	d.fault = nil
	d.frames = 0

	if err := d.Machine.Load(program); err != nil {
		return err
	}

	d.logger.Debug("Machine reset", log.Int("program_size", len(program)))
	return nil
}

// Calls Frame and then render on every tick of the given rate until ctx is
// cancelled or the machine faults
func (d *Driver) Run(
	ctx context.Context, rate time.Duration, render func() error,
) error {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
			if err := d.Frame(); err != nil {
				return err
			}

			if render != nil {
				if err := render(); err != nil {
					return err
				}
			}
		}
	}
}
