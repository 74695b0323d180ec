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

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/lassandro/golc8/pkg/driver"
	"github.com/lassandro/golc8/pkg/keypad"
	"github.com/lassandro/golc8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminals only report presses, a press keeps the key down this many frames
const keyHoldFrames = 8

const (
	keyEscape = 0x1B
	keyReset  = 0x12 // Ctrl-R
)

// Stdin reports io.EOF whenever a raw mode read times out without input
const keyPollInterval = 10 * time.Millisecond

var termRestore unix.Termios

func enterRawTerm() error {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), ioctlGetTermios)

	if err != nil {
		return err
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	// Reads return after a tenth of a second even without input
	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 1

	return unix.IoctlSetTermios(
		int(os.Stdin.Fd()), ioctlSetTermios, &termstate,
	)
}

func exitRawTerm() error {
	return unix.IoctlSetTermios(
		int(os.Stdin.Fd()), ioctlSetTermios, &termRestore,
	)
}

type bell struct {
	out io.Writer
}

func (b bell) Beep() {
	b.out.Write([]byte{'\a'})
}

func runTerminal(d *driver.Driver, program []byte, logger *log.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("standard input is not a terminal")
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && (width < machine.SCREEN_WIDTH ||
		height < machine.SCREEN_HEIGHT/2) {
		return fmt.Errorf(
			"terminal is %dx%d, the display needs %dx%d",
			width, height, machine.SCREEN_WIDTH, machine.SCREEN_HEIGHT/2,
		)
	}

	if !mutevar {
		d.Machine.Devices.Speaker = bell{out: os.Stdout}
	}

	if err := enterRawTerm(); err != nil {
		return err
	}

	defer func() {
		if err := exitRawTerm(); err != nil {
			logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	keys := make(chan byte, 16)
	go readKeys(ctx, os.Stdin, keys)

	out := bufio.NewWriter(os.Stdout)
	fmt.Fprint(out, "\033[2J\033[?25l")
	defer func() {
		fmt.Fprint(out, "\033[?25h\r\n")
		out.Flush()
	}()

	latch := keypad.Latch{HoldFrames: keyHoldFrames}

	return d.Run(ctx, time.Second/driver.FRAME_RATE, func() error {
		for pending := true; pending; {
			select {
			case key := <-keys:
				switch key {
				case keyEscape:
					cancel()
				case keyReset:
					latch.Release()
					if err := d.Reset(program); err != nil {
						return err
					}
				default:
					if index, ok := keypad.Lookup(rune(key)); ok {
						latch.Press(index)
					}
				}
			default:
				pending = false
			}
		}

		latch.Tick(d.Machine)

		out.WriteString(renderTerminal(d.Machine.Display()))
		return out.Flush()
	})
}

func readKeys(ctx context.Context, r io.Reader, keys chan<- byte) {
	buf := make([]byte, 16)

	for ctx.Err() == nil {
		n, err := r.Read(buf)

		for i, key := range buf[:n] {
			// Arrow and function keys arrive as ESC led sequences
			if key == keyEscape && i+1 < n {
				break
			}

			select {
			case keys <- key:
			case <-ctx.Done():
				return
			}
		}

		if err == io.EOF {
			select {
			case <-time.After(keyPollInterval):
			case <-ctx.Done():
				return
			}
		} else if err != nil {
			return
		}
	}
}

// Packs two display rows into each text line using half block characters
func renderTerminal(display [machine.SCREEN_SIZE]bool) string {
	var sb strings.Builder

	sb.WriteString("\033[H")

	for y := 0; y < machine.SCREEN_HEIGHT; y += 2 {
		for x := 0; x < machine.SCREEN_WIDTH; x++ {
			top := display[x+machine.SCREEN_WIDTH*y]
			bottom := display[x+machine.SCREEN_WIDTH*(y+1)]

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}

		sb.WriteString("\r\n")
	}

	return sb.String()
}
