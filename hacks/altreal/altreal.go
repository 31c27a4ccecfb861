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

// Package altreal accelerates Alternate Reality: The Dungeon. Six routines
// are fast-forwarded in the fake CPU and the frame rate is measured by
// counting calls to the routine that runs once per game frame.
package altreal

import (
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/fakecpu"
	"github.com/atari800ext/a8ext/fps"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/prefs"
)

// Name of the extension.
const Name = "Alt.Real. HACK by ERU"

// Fingerprint of the Alternate Reality program. The bytes spell "Dungeon".
var Fingerprint = extension.Fingerprint{
	Address: 0x29b6,
	Bytes:   []uint8{0x44, 0x75, 0x6e, 0x67, 0x65, 0x6f, 0x6e},
}

// called once per game frame
const frameMarker = 0x7856

// accelerated routines and the address at which each one is left
var accelerated = map[uint16]uint16{
	0x0090: 0x00d5, // drawing
	0x4a69: 0x4a82,
	0x3884: 0x38ce,
	0x7858: 0x7887, // moving into font memory
	0x7a1f: 0x7a36,
	0x7f1b: 0x7f4a,
}

// menu options.
const (
	optDisplayFPS = iota + 1
	optAccelerate
)

// Hack is the Alternate Reality extension.
type Hack struct {
	env *environment.Environment
	fps fps.Counter

	// number of calls to the frame marker routine
	frames int

	DisplayFPS prefs.Bool
	Accelerate prefs.Bool
}

// New is the preferred method of initialisation for the Hack type.
func New(env *environment.Environment) (*Hack, error) {
	h := &Hack{env: env}
	h.DisplayFPS.Set(true)
	h.Accelerate.Set(true)
	if err := env.AddPref("altreal.fps", &h.DisplayFPS); err != nil {
		return nil, err
	}
	if err := env.AddPref("altreal.accelerate", &h.Accelerate); err != nil {
		return nil, err
	}
	return h, nil
}

// Name implements the extension.Extension interface.
func (h *Hack) Name() string {
	return Name
}

// Initialise implements the extension.Extension interface.
func (h *Hack) Initialise() bool {
	return Fingerprint.Match(h.env.Mem())
}

// InjectionList implements the extension.InjectionLister interface.
func (h *Hack) InjectionList() []uint16 {
	l := []uint16{frameMarker}
	for pc := range accelerated {
		l = append(l, pc)
	}
	return l
}

// CodeInjection implements the extension.CodeInjector interface.
func (h *Hack) CodeInjection(pc uint16, op uint8) uint8 {
	if pc == frameMarker {
		h.frames++
	}

	if !h.Accelerate.Get().(bool) {
		return op
	}

	if end, ok := accelerated[pc]; ok {
		return h.env.CPU.RunUntil(fakecpu.UntilPC(end))
	}

	return op
}

// PreFrame implements the extension.PreFrameHook interface.
func (h *Hack) PreFrame() {
	if !h.DisplayFPS.Get().(bool) {
		return
	}
	h.env.Machine.Screen.Print(0x9f, 0x90, h.fps.Tick(h.frames), 0, -1, 20)
}

// Config implements the extension.Configurable interface.
func (h *Hack) Config() []menu.Item {
	return []menu.Item{
		{ID: optDisplayFPS, Label: "Display FPS:", Suffix: menu.OnOff(h.DisplayFPS.Get().(bool))},
		{ID: optAccelerate, Label: "Accelerate:", Suffix: menu.OnOff(h.Accelerate.Get().(bool))},
	}
}

// HandleConfig implements the extension.Configurable interface.
func (h *Hack) HandleConfig(id int) {
	switch id {
	case optDisplayFPS:
		h.DisplayFPS.Toggle()
	case optAccelerate:
		h.Accelerate.Toggle()
	}
}
