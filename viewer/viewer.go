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

// Package viewer shows the emulator's screen buffer in an SDL window with the
// active extension's overlay drawn on top. It drives the extension hub once
// per frame and is used by the VIEW mode of the a8ext command.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/limiter"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/overlay"
	"github.com/atari800ext/a8ext/overlay/glrender"
	"github.com/atari800ext/a8ext/sdlinput"
	"github.com/veandco/go-sdl2/sdl"
)

// FrameRate of a PAL machine.
const FrameRate = 50

// Viewer is an SDL window with an OpenGL context.
type Viewer struct {
	env    *environment.Environment
	hub    *extension.Hub
	driver menu.Driver

	window  *sdl.Window
	context sdl.GLContext

	rnd      *glrender.GL
	controls *sdlinput.Controls
	lmtr     *limiter.Limiter

	screen *overlay.Texture
	rgba   *image.RGBA
	scale  int

	// Frame is called at the start of every frame. It is how the emulation
	// is advanced and can be nil
	Frame func()
}

// NewViewer is the preferred method of initialisation for the Viewer type.
// The environment's Renderer and Controls fields are set to the viewer's
// renderer and controls. The calling goroutine is locked to its OS thread and
// all other methods must be called from the same goroutine.
func NewViewer(env *environment.Environment, hub *extension.Hub, driver menu.Driver, scale int) (*Viewer, error) {
	if scale < 1 {
		return nil, fmt.Errorf("viewer: scale must be at least one (%d)", scale)
	}

	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	vw := &Viewer{
		env:      env,
		hub:      hub,
		driver:   driver,
		controls: &sdlinput.Controls{},
		rgba:     image.NewRGBA(image.Rect(0, 0, atari.ScreenWidth, atari.ScreenHeight)),
		scale:    scale,
	}

	vw.window, err = sdl.CreateWindow("a8ext", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(atari.ScreenWidth*scale), int32(atari.ScreenHeight*scale), sdl.WINDOW_OPENGL)
	if err != nil {
		vw.Destroy()
		return nil, fmt.Errorf("viewer: %w", err)
	}

	// the renderer uses the fixed function pipeline
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	_ = sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	vw.context, err = vw.window.GLCreateContext()
	if err != nil {
		vw.Destroy()
		return nil, fmt.Errorf("viewer: %w", err)
	}
	err = vw.window.GLMakeCurrent(vw.context)
	if err != nil {
		vw.Destroy()
		return nil, fmt.Errorf("viewer: %w", err)
	}
	_ = sdl.GLSetSwapInterval(1)

	vw.rnd = glrender.NewGL()
	err = vw.rnd.Start()
	if err != nil {
		vw.Destroy()
		return nil, fmt.Errorf("viewer: %w", err)
	}

	vw.screen, err = vw.rnd.Upload(vw.rgba)
	if err != nil {
		vw.Destroy()
		return nil, fmt.Errorf("viewer: %w", err)
	}

	vw.lmtr, err = limiter.NewLimiter(FrameRate)
	if err != nil {
		vw.Destroy()
		return nil, fmt.Errorf("viewer: %w", err)
	}

	env.Renderer = vw.rnd
	env.Controls = vw.controls

	logger.Logf(env, "viewer", "window %dx%d", atari.ScreenWidth*scale, atari.ScreenHeight*scale)

	return vw, nil
}

// Destroy the window and release SDL. The environment's renderer and controls
// are removed.
func (vw *Viewer) Destroy() {
	if vw.lmtr != nil {
		vw.lmtr.Stop()
		vw.lmtr = nil
	}
	if vw.rnd != nil {
		vw.rnd.Destroy()
		vw.rnd = nil
	}
	if vw.context != nil {
		sdl.GLDeleteContext(vw.context)
		vw.context = nil
	}
	if vw.window != nil {
		_ = vw.window.Destroy()
		vw.window = nil
	}
	vw.env.Renderer = nil
	vw.env.Controls = nil
	sdl.Quit()
}

// Run frames until the window is closed.
func (vw *Viewer) Run() {
	for !vw.controls.Quit {
		vw.RunFrame()
		vw.lmtr.Wait()
	}
}

// Stop the Run() loop at the end of the current frame.
func (vw *Viewer) Stop() {
	vw.controls.Quit = true
}

// RunFrame runs the hub's per-frame sequence once and presents the result.
func (vw *Viewer) RunFrame() {
	vw.controls.Service()

	if vw.Frame != nil {
		vw.Frame()
	}

	vw.hub.Frame(vw.driver)
	vw.hub.BeforeFrame()

	ToRGBA(vw.env.Machine.Screen, vw.rgba)
	if err := vw.rnd.Update(vw.screen, vw.rgba); err != nil {
		logger.Log(vw.env, "viewer", err)
	}

	vw.DrawScreen()

	vw.hub.AfterFrame()

	vw.window.GLSwap()
}

// DrawScreen draws the most recent frame to the window without the overlay.
// The buffers are not swapped.
func (vw *Viewer) DrawScreen() {
	w := atari.ScreenWidth * vw.scale
	h := atari.ScreenHeight * vw.scale

	vw.rnd.Begin()
	vw.rnd.SetViewport(overlay.Viewport{
		Width:  w,
		Height: h,
		Clear:  color.RGBA{A: 255},
		Projection: overlay.Projection{
			Left:   0,
			Right:  float64(atari.ScreenWidth),
			Bottom: float64(atari.ScreenHeight),
			Top:    0,
			Near:   -1,
			Far:    1,
		},
	})
	vw.rnd.Draw(vw.screen, overlay.Full, overlay.Rect{
		Right:  atari.ScreenWidth,
		Bottom: atari.ScreenHeight,
	}, 0)
	vw.rnd.End()
}

// Window returns the SDL window. Its OpenGL context is current on the
// viewer's thread.
func (vw *Viewer) Window() *sdl.Window {
	return vw.window
}

// Controls returns the controls updated from the window's events.
func (vw *Viewer) Controls() *sdlinput.Controls {
	return vw.controls
}

// SetDriver sets the menu driver used when the extension menu is requested.
func (vw *Viewer) SetDriver(driver menu.Driver) {
	vw.driver = driver
}

// ToRGBA converts the screen buffer to RGBA. The destination image must be
// the same size as the screen.
func ToRGBA(scr *atari.Screen, dst *image.RGBA) {
	var pal [256]color.RGBA
	for i := range pal {
		pal[i] = atari.Colour(uint8(i))
	}

	for i, c := range scr.Pix {
		p := pal[c]
		j := i * 4
		dst.Pix[j] = p.R
		dst.Pix[j+1] = p.G
		dst.Pix[j+2] = p.B
		dst.Pix[j+3] = 255
	}
}
