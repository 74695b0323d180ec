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
	"flag"
	"fmt"
	"os"

	"github.com/lassandro/golc8/pkg/driver"
	"github.com/lassandro/golc8/pkg/machine"
	"github.com/retroenv/retrogolib/log"
)

var helpvar bool
var debugvar bool
var quietvar bool
var termvar bool
var mutevar bool
var scalevar int
var ipfvar int

const usage = "golc8 [-term] [-scale n] [-ipf n] [-mute] filename"

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Enables debug logging")
	flag.BoolVar(&quietvar, "quiet", false, "Only logs errors")
	flag.BoolVar(
		&termvar, "term", false,
		"Renders into the terminal instead of opening a window",
	)
	flag.BoolVar(&mutevar, "mute", false, "Disables the beep")
	flag.IntVar(
		&scalevar, "scale", 15,
		"Window pixels per display cell",
	)
	flag.IntVar(
		&ipfvar, "ipf", driver.DEFAULT_INSTRUCTIONS_PER_FRAME,
		"Instructions executed per displayed frame, "+
			"raising it speeds up emulation",
	)
}

func golc8() int {
	flag.Parse()

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	logger := createLogger(debugvar, quietvar)
	args := flag.Args()

	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	if scalevar <= 0 {
		logger.Error("Invalid scale", log.Int("scale", scalevar))
		return 1
	}

	program, err := os.ReadFile(args[0])

	if err != nil {
		logger.Error("Reading ROM failed", log.Err(err))
		return 1
	}

	mc := machine.New()
	mc.Devices = &machine.DeviceHandler{}

	if err := mc.Load(program); err != nil {
		logger.Error("Loading ROM failed", log.Err(err))
		return 1
	}

	logger.Info(
		"ROM loaded",
		log.String("file", args[0]),
		log.Int("size", len(program)),
	)

	d := driver.New(mc, ipfvar, logger)

	if termvar {
		err = runTerminal(d, program, logger)
	} else {
		err = runWindow(d, program, logger)
	}

	if err != nil {
		logger.Error("Emulation stopped", log.Err(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(golc8())
}
