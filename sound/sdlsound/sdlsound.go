// This file is part of a8ext.
//
// a8ext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// a8ext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with a8ext.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlsound plays extension sound effects through an SDL audio
// device. Samples are resampled to the device's rate when they are loaded and
// queued on the device when they are played.
package sdlsound

import (
	"fmt"

	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/sound"
	"github.com/veandco/go-sdl2/sdl"
)

// playback frequency requested from SDL. the device may choose another
const frequency = 44100

// samples in the device buffer
const bufferLength = 512

// Player implements the environment.SoundPlayer interface.
type Player struct {
	env  *environment.Environment
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec
}

// NewPlayer is the preferred method of initialisation for the Player type.
func NewPlayer(env *environment.Environment) (*Player, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdlsound: %w", err)
	}

	p := &Player{env: env}

	spec := &sdl.AudioSpec{
		Freq:     frequency,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  bufferLength,
	}

	var err error
	p.id, err = sdl.OpenAudioDevice("", false, spec, &p.spec, 0)
	if err != nil {
		return nil, fmt.Errorf("sdlsound: %w", err)
	}

	logger.Logf(env, "sdlsound", "audio device: %dHz %d channel(s)", p.spec.Freq, p.spec.Channels)

	sdl.PauseAudioDevice(p.id, false)

	return p, nil
}

// Load implements the environment.SoundPlayer interface.
func (p *Player) Load(path string) (environment.Sound, error) {
	s, err := sound.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Logf(p.env, "sdlsound", "loaded %s (%v at %dHz)", s.Name(), s.Duration(), s.SampleRate)
	return s.Resample(int(p.spec.Freq)), nil
}

// Play implements the environment.SoundPlayer interface. The sample is
// queued after any sound that is already playing.
func (p *Player) Play(snd environment.Sound) error {
	s, ok := snd.(*sound.Sample)
	if !ok {
		return fmt.Errorf("sdlsound: %s was not loaded by this player", snd.Name())
	}
	if err := sdl.QueueAudio(p.id, s.PCM()); err != nil {
		return fmt.Errorf("sdlsound: %w", err)
	}
	return nil
}

// Stop any sound that is playing.
func (p *Player) Stop() {
	sdl.ClearQueuedAudio(p.id)
}

// Destroy closes the audio device.
func (p *Player) Destroy() {
	sdl.CloseAudioDevice(p.id)
}
