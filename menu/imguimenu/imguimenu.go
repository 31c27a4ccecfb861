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

// Package imguimenu implements menu.Driver with Dear ImGui, drawn in the
// viewer's SDL window over the last emulated frame. Select() runs its own
// frame loop until an item is chosen or the menu is cancelled.
//
// The menu shares the window's OpenGL 2.1 context and must be used from the
// thread that created it.
package imguimenu

import (
	"fmt"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/menu"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

// Menu implements the menu.Driver interface.
type Menu struct {
	window   *sdl.Window
	backdrop func()

	context *imgui.Context
	io      imgui.IO
	font    uint32

	// time of the previous frame in performance counter units
	time uint64

	// Forward is called with key release events that arrive while the menu
	// is open, so that key state kept by the caller is not left stale
	Forward func(ev sdl.Event)
}

// NewMenu is the preferred method of initialisation for the Menu type. The
// window must have a current OpenGL context. The backdrop function is called
// at the start of every menu frame to draw whatever should appear behind the
// menu and can be nil.
func NewMenu(window *sdl.Window, backdrop func()) *Menu {
	assert.NotNil("window", window)
	return &Menu{
		window:   window,
		backdrop: backdrop,
	}
}

// the imgui context is created when the menu is first opened
func (m *Menu) start() {
	if m.context != nil {
		return
	}

	m.context = imgui.CreateContext(nil)
	m.io = imgui.CurrentIO()
	m.io.SetIniFilename("")
	m.font = createFontTexture(m.io.Fonts())

	logger.Logf(logger.Allow, "imguimenu", "dear imgui %s", imgui.Version())
}

// Destroy releases the imgui context and the font texture. The menu can be
// opened again afterwards.
func (m *Menu) Destroy() {
	if m.context == nil {
		return
	}
	destroyTexture(m.font)
	m.context.Destroy()
	m.context = nil
}

// Select implements the menu.Driver interface.
func (m *Menu) Select(title string, current int, items []menu.Item) int {
	if len(items) == 0 {
		return menu.Cancel
	}

	m.start()

	pos := menu.Index(items, current)
	if pos < 0 {
		pos = 0
	}

	// scroll the highlighted item into view on the next frame
	follow := true

	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				// handled by the window once the menu has closed
				_, _ = sdl.PushEvent(ev)
				return menu.Cancel

			case *sdl.KeyboardEvent:
				if ev.Type != sdl.KEYDOWN {
					if m.Forward != nil {
						m.Forward(ev)
					}
					continue // for loop
				}

				var act action
				pos, act = navigate(pos, len(items), ev.Keysym.Sym)
				switch act {
				case actionChoose:
					return items[pos].ID
				case actionCancel:
					return menu.Cancel
				}
				follow = true

			case *sdl.MouseWheelEvent:
				m.io.AddMouseWheelDelta(float32(ev.X), float32(ev.Y))
			}
		}

		if clicked := m.frame(title, pos, items, follow); clicked >= 0 {
			return items[clicked].ID
		}
		follow = false
	}
}

// draw one frame of the menu. returns the index of the item that was clicked
// or -1
func (m *Menu) frame(title string, pos int, items []menu.Item, follow bool) int {
	m.newFrame()
	imgui.NewFrame()

	w, h := m.window.GetSize()
	imgui.SetNextWindowPosV(imgui.Vec2{X: float32(w) / 2, Y: float32(h) / 2}, imgui.ConditionAlways, imgui.Vec2{X: 0.5, Y: 0.5})

	clicked := -1
	if imgui.BeginV(title, nil, imgui.WindowFlagsNoResize|imgui.WindowFlagsNoMove|imgui.WindowFlagsNoCollapse|
		imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoSavedSettings) {
		for i, it := range items {
			if imgui.SelectableV(label(i, it), i == pos, 0, imgui.Vec2{}) {
				clicked = i
			}
			if i == pos && follow {
				imgui.SetScrollHereY(0.5)
			}
		}
	}
	imgui.End()
	imgui.Render()

	if m.backdrop != nil {
		m.backdrop()
	} else {
		clearFramebuffer()
	}
	m.render()
	m.window.GLSwap()

	return clicked
}

// forward the window size, time step and mouse state to imgui
func (m *Menu) newFrame() {
	w, h := m.window.GetSize()
	m.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	frequency := sdl.GetPerformanceFrequency()
	t := sdl.GetPerformanceCounter()
	if m.time > 0 {
		m.io.SetDeltaTime(float32(t-m.time) / float32(frequency))
	} else {
		m.io.SetDeltaTime(1.0 / 60.0)
	}
	m.time = t

	x, y, state := sdl.GetMouseState()
	m.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	for i, button := range []uint32{sdl.BUTTON_LEFT, sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE} {
		m.io.SetMouseButtonDown(i, (state&sdl.Button(button)) != 0)
	}
}

func label(i int, it menu.Item) string {
	return fmt.Sprintf("%d. %s", i+1, it)
}
