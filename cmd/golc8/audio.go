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
	"bytes"
	"encoding/binary"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate    = 44100
	beepFrequency = 440
	beepLength    = 120 * time.Millisecond
	beepAmplitude = 0x1800
)

type otoSpeaker struct {
	ctx    *oto.Context
	player *oto.Player
	tone   []byte
}

func newOtoSpeaker() (*otoSpeaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &otoSpeaker{
		ctx:  ctx,
		tone: squareWave(sampleRate, beepFrequency, beepLength),
	}, nil
}

// Restarts the tone, a beep still playing is cut short
func (s *otoSpeaker) Beep() {
	if s.player != nil {
		s.player.Close()
	}

	s.player = s.ctx.NewPlayer(bytes.NewReader(s.tone))
	s.player.Play()
}

func (s *otoSpeaker) Close() {
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

// Signed 16-bit little endian mono samples
func squareWave(rate, frequency int, length time.Duration) []byte {
	samples := int(int64(rate) * int64(length) / int64(time.Second))
	period := rate / frequency
	wave := make([]byte, samples*2)

	for i := 0; i < samples; i++ {
		value := int16(beepAmplitude)
		if i%period >= period/2 {
			value = -value
		}

		binary.LittleEndian.PutUint16(wave[i*2:], uint16(value))
	}

	return wave
}
