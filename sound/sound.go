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

// Package sound decodes the sound effects played by extensions. WAV and MP3
// files are supported. Samples are kept as mono 16 bit data; the left channel
// is used when the source is stereo.
//
// Playback is in the sdlsound sub-package.
package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrFormat is returned when a file is not in a supported format.
var ErrFormat = errors.New("sound: unsupported format")

// Sample is a decoded sound effect.
type Sample struct {
	name       string
	SampleRate int
	Data       []int16
}

// NewSample is the preferred method of initialisation for the Sample type.
func NewSample(name string, sampleRate int, data []int16) *Sample {
	return &Sample{name: name, SampleRate: sampleRate, Data: data}
}

// Name of the sample. This is the base name of the file it was loaded from.
func (s *Sample) Name() string {
	return s.name
}

// Duration of the sample when played at its sample rate.
func (s *Sample) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.SampleRate)
}

// Load a sample from a WAV or MP3 file. The format is decided by the file
// extension.
func Load(path string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	defer f.Close()

	return Decode(filepath.Base(path), f)
}

// Decode a sample. The format is decided by the extension of the name.
func Decode(name string, r io.ReadSeeker) (*Sample, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return decodeWAV(name, r)
	case ".mp3":
		return decodeMP3(name, r)
	}
	return nil, fmt.Errorf("%w: %s", ErrFormat, name)
}

func decodeWAV(name string, r io.ReadSeeker) (*Sample, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return nil, fmt.Errorf("sound: wav: %s: not a valid wav file", name)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sound: wav: %s: %w", name, err)
	}
	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}

	s := &Sample{
		name:       name,
		SampleRate: int(dec.SampleRate),
		Data:       make([]int16, 0, len(buf.Data)/chans),
	}

	// first channel only
	for i := 0; i < len(buf.Data); i += chans {
		s.Data = append(s.Data, toInt16(buf.Data[i], int(dec.BitDepth)))
	}

	return s, nil
}

// scale a sample value of the specified bit depth to 16 bits. 8 bit wav data
// is unsigned
func toInt16(v int, depth int) int16 {
	switch {
	case depth == 8:
		return int16((v - 128) << 8)
	case depth > 16:
		return int16(v >> (depth - 16))
	}
	return int16(v)
}

func decodeMP3(name string, r io.Reader) (*Sample, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("sound: mp3: %s: %w", name, err)
	}

	s := &Sample{
		name:       name,
		SampleRate: dec.SampleRate(),
	}

	// the stream is always 16 bit little endian with two channels. the index
	// increment of four takes the left channel only
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			s.Data = append(s.Data, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break // for loop
		}
		if err != nil {
			return nil, fmt.Errorf("sound: mp3: %s: %w", name, err)
		}
	}

	return s, nil
}

// Resample returns a copy of the sample converted to a new sample rate.
// Values between source samples are linearly interpolated.
func (s *Sample) Resample(rate int) *Sample {
	if rate == s.SampleRate || s.SampleRate == 0 || len(s.Data) == 0 {
		return &Sample{name: s.name, SampleRate: s.SampleRate, Data: s.Data}
	}

	n := int(int64(len(s.Data)) * int64(rate) / int64(s.SampleRate))
	r := &Sample{name: s.name, SampleRate: rate, Data: make([]int16, n)}

	step := float64(s.SampleRate) / float64(rate)
	for i := range r.Data {
		p := float64(i) * step
		j := int(p)
		if j+1 >= len(s.Data) {
			r.Data[i] = s.Data[len(s.Data)-1]
			continue
		}
		frac := p - float64(j)
		r.Data[i] = int16(float64(s.Data[j])*(1-frac) + float64(s.Data[j+1])*frac)
	}

	return r
}

// PCM returns the sample data as signed 16 bit little endian bytes.
func (s *Sample) PCM() []byte {
	b := make([]byte, 2*len(s.Data))
	for i, v := range s.Data {
		b[2*i] = uint8(v)
		b[2*i+1] = uint8(uint16(v) >> 8)
	}
	return b
}

// WriteWAV encodes the sample as a 16 bit mono WAV file.
func (s *Sample) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, s.SampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  s.SampleRate,
		},
		Data:           make([]int, len(s.Data)),
		SourceBitDepth: 16,
	}
	for i, v := range s.Data {
		buf.Data[i] = int(v)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("sound: wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sound: wav: %w", err)
	}
	return nil
}

// SaveWAV writes the sample to a WAV file.
func (s *Sample) SaveWAV(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sound: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("sound: %w", err)
		}
	}()
	return s.WriteWAV(f)
}
