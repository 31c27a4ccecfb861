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

// Package zybex shows the frame rate of Zybex and fills the black background
// with a gradient.
package zybex

import (
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/fps"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/prefs"
)

// Name of the extension.
const Name = "ZYBEX HACK by ERU"

// Fingerprint of the Zybex program.
var Fingerprint = extension.Fingerprint{
	Address: 0x3000,
	Bytes:   []uint8{0x18, 0x69, 0x14, 0xa8, 0xc0, 0x50},
}

// menu options.
const (
	optDisplayFPS = iota
)

// Hack is the Zybex extension.
type Hack struct {
	env *environment.Environment
	fps fps.Counter

	DisplayFPS prefs.Bool
}

// New is the preferred method of initialisation for the Hack type.
func New(env *environment.Environment) (*Hack, error) {
	h := &Hack{env: env}
	h.DisplayFPS.Set(true)
	if err := env.AddPref("zybex.fps", &h.DisplayFPS); err != nil {
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

// PreFrame implements the extension.PreFrameHook interface.
func (h *Hack) PreFrame() {
	if !h.DisplayFPS.Get().(bool) {
		return
	}

	scr := h.env.Machine.Screen
	scr.Print(0x9f, 0x90, h.fps.Tick(int(h.env.Machine.Antic.Dlist)), 0, -1, 20)

	for y := 0; y < atari.ScreenHeight; y++ {
		for x := 0; x < atari.ScreenWidth; x++ {
			idx := y*atari.ScreenWidth + x
			if scr.Pix[idx] == 0 {
				scr.Pix[idx] = uint8(x + y)
			}
		}
	}
}

// Config implements the extension.Configurable interface.
func (h *Hack) Config() []menu.Item {
	return []menu.Item{
		{ID: optDisplayFPS, Label: "Display FPS:", Suffix: menu.OnOff(h.DisplayFPS.Get().(bool))},
	}
}

// HandleConfig implements the extension.Configurable interface.
func (h *Hack) HandleConfig(id int) {
	switch id {
	case optDisplayFPS:
		h.DisplayFPS.Toggle()
	}
}
