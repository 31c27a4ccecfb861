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

// Package sdlinput implements environment.Controls from SDL keyboard events.
// TAB requests the extension menu and holding CTRL suspends acceleration.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Controls implements the environment.Controls interface.
type Controls struct {
	menuRequested bool
	ctrl          [2]bool

	// Quit is set when the window has been closed or ESC pressed
	Quit bool
}

// Service handles all pending SDL events. Must be called from the thread
// that initialised SDL.
func (c *Controls) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		c.HandleEvent(ev)
	}
}

// HandleEvent updates the controls from a single SDL event. Events that are
// not relevant are ignored.
func (c *Controls) HandleEvent(ev sdl.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		c.Quit = true

	case *sdl.KeyboardEvent:
		down := ev.Type == sdl.KEYDOWN

		switch ev.Keysym.Sym {
		case sdl.K_TAB:
			if down && ev.Repeat == 0 {
				c.menuRequested = true
			}
		case sdl.K_ESCAPE:
			if down {
				c.Quit = true
			}
		case sdl.K_LCTRL:
			c.ctrl[0] = down
		case sdl.K_RCTRL:
			c.ctrl[1] = down
		}
	}
}

// MenuRequested implements the environment.Controls interface.
func (c *Controls) MenuRequested() bool {
	r := c.menuRequested
	c.menuRequested = false
	return r
}

// AccelerationDisabled implements the environment.Controls interface.
func (c *Controls) AccelerationDisabled() bool {
	return c.ctrl[0] || c.ctrl[1]
}
