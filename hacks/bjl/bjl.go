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

// Package bjl accelerates the slowest routines of Behind Jaggi Lines by
// fast-forwarding them in the fake CPU.
package bjl

import (
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/fakecpu"
	"github.com/atari800ext/a8ext/fps"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/prefs"
)

// Name of the extension.
const Name = "Behind Jaggi Lines HACK by ERU"

// Fingerprint of the Behind Jaggi Lines program. The bytes spell "jaggi".
var Fingerprint = extension.Fingerprint{
	Address: 0x41fc,
	Bytes:   []uint8{0x6a, 0x61, 0x67, 0x67, 0x69},
}

// Acceleration levels.
const (
	AccelerationOff = iota
	AccelerationLow
	AccelerationHigh
	numAcceleration
)

var accelerationLabels = [numAcceleration]string{"OFF", "LOW", "HIGH"}

// routines fast-forwarded to their RTS
const (
	routineLow   = 0xb51c
	routineHighA = 0x9da7
	routineHighB = 0xaf32
)

// menu options.
const (
	optDisplayFPS = iota
	optAcceleration
)

var untilRTS = fakecpu.UntilOpcode(atari.OpRTS)

// Hack is the Behind Jaggi Lines extension.
type Hack struct {
	env *environment.Environment
	fps fps.Counter

	DisplayFPS   prefs.Bool
	Acceleration prefs.Int
}

// New is the preferred method of initialisation for the Hack type.
func New(env *environment.Environment) (*Hack, error) {
	h := &Hack{env: env}
	h.DisplayFPS.Set(true)
	h.Acceleration.Set(AccelerationLow)
	if err := env.AddPref("bjl.fps", &h.DisplayFPS); err != nil {
		return nil, err
	}
	if err := env.AddPref("bjl.acceleration", &h.Acceleration); err != nil {
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
	return []uint16{routineLow, routineHighA, routineHighB}
}

// CodeInjection implements the extension.CodeInjector interface.
func (h *Hack) CodeInjection(pc uint16, op uint8) uint8 {
	acc := h.Acceleration.Get().(int)
	if acc == AccelerationOff || h.env.AccelerationDisabled() {
		return op
	}

	switch pc {
	case routineLow:
		return h.env.CPU.RunUntil(untilRTS)
	case routineHighA, routineHighB:
		if acc == AccelerationHigh {
			return h.env.CPU.RunUntil(untilRTS)
		}
	}

	return op
}

// PreFrame implements the extension.PreFrameHook interface.
func (h *Hack) PreFrame() {
	if !h.DisplayFPS.Get().(bool) {
		return
	}
	h.env.Machine.Screen.Print(0x9f, 0x90, h.fps.Tick(int(h.env.Machine.Antic.Dlist)), 0, -2, 20)
}

// Config implements the extension.Configurable interface.
func (h *Hack) Config() []menu.Item {
	acc := h.Acceleration.Get().(int)
	return []menu.Item{
		{ID: optDisplayFPS, Label: "Display FPS:", Suffix: menu.OnOff(h.DisplayFPS.Get().(bool))},
		{ID: optAcceleration, Label: "Acceleration:", Suffix: accelerationLabels[acc%numAcceleration]},
	}
}

// HandleConfig implements the extension.Configurable interface.
func (h *Hack) HandleConfig(id int) {
	switch id {
	case optDisplayFPS:
		h.DisplayFPS.Toggle()
	case optAcceleration:
		h.Acceleration.Cycle(numAcceleration)
	}
}
