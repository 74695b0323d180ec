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
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lassandro/golc8/pkg/driver"
	"github.com/lassandro/golc8/pkg/keypad"
	"github.com/lassandro/golc8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
)

var (
	background = color.RGBA{0x10, 0x10, 0x10, 0xFF}
	foreground = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
)

var windowKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2',
	ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

type window struct {
	driver  *driver.Driver
	program []byte
	logger  *log.Logger
	scale   int
	halted  bool
}

func runWindow(d *driver.Driver, program []byte, logger *log.Logger) error {
	if !mutevar {
		speaker, err := newOtoSpeaker()

		if err != nil {
			logger.Warn("Audio unavailable", log.Err(err))
		} else {
			d.Machine.Devices.Speaker = speaker
			defer speaker.Close()
		}
	}

	w := &window{
		driver:  d,
		program: program,
		logger:  logger,
		scale:   scalevar,
	}

	ebiten.SetWindowSize(
		machine.SCREEN_WIDTH*scalevar, machine.SCREEN_HEIGHT*scalevar,
	)
	ebiten.SetWindowTitle("golc8")
	ebiten.SetTPS(driver.FRAME_RATE)

	return ebiten.RunGame(w)
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := w.driver.Reset(w.program); err != nil {
			return err
		}

		w.halted = false
		ebiten.SetWindowTitle("golc8")
		w.logger.Info("Machine reset")
	}

	for key, r := range windowKeys {
		if index, ok := keypad.Lookup(r); ok {
			w.driver.Machine.SetKey(index, ebiten.IsKeyPressed(key))
		}
	}

	// The driver logs the fault, the window stays open on the last frame
	if err := w.driver.Frame(); err != nil && !w.halted {
		w.halted = true
		ebiten.SetWindowTitle("golc8 (halted, F5 to reset)")
	}

	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	display := w.driver.Machine.Display()

	for i, on := range display {
		if !on {
			continue
		}

		x := (i % machine.SCREEN_WIDTH) * w.scale
		y := (i / machine.SCREEN_WIDTH) * w.scale
		cell := image.Rect(x, y, x+w.scale, y+w.scale)

		screen.SubImage(cell).(*ebiten.Image).Fill(foreground)
	}
}

func (w *window) Layout(_, _ int) (int, int) {
	return machine.SCREEN_WIDTH * w.scale, machine.SCREEN_HEIGHT * w.scale
}
