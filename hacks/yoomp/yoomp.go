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

// Package yoomp draws a textured background and a 3D ball over the raster
// output of Yoomp!. An optional Lua function is called every frame so that
// scripts can draw their own additions.
package yoomp

import (
	"fmt"
	"math"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/overlay"
	"github.com/atari800ext/a8ext/paths"
	"github.com/atari800ext/a8ext/prefs"
)

// Name of the extension.
const Name = "Yoomp! Hack by Eru"

// Fingerprint of the Yoomp! program.
var Fingerprint = extension.Fingerprint{
	Address: 0x3600,
	Bytes:   []uint8{0x20, 0x00, 0xb0, 0x20, 0xbc, 0x3d},
}

// ScriptFunction is called every frame when the script option is on.
const ScriptFunction = "yoomp_render_frame"

// the background texture
const (
	backgroundFile = "rof-gray.rgba"
	backgroundSize = 476
)

// game locations
const (
	ballAngle        = 0x30
	ballX            = 0x31
	ballY            = 0x32
	ballColour       = 0x4f5c
	backgroundColour = 0x4f60
)

// display list of the game screen. nothing is drawn on other screens
const gameDisplayList = 0xca00

// degrees of spin per frame
const spin = 11

type ball struct {
	file      string
	name      string
	colourise bool
	model     *overlay.Model
}

func newBalls() []ball {
	return []ball{
		{name: "ORIGINAL"},
		{file: "ball-yoomp-bw.obj", name: "Yoomp-like-colorized", colourise: true},
		{file: "ball-yoomp.obj", name: "Yoomp-like-green"},
		{file: "ball-amiga.obj", name: "Amiga V1"},
		{file: "ball-amiga-2.obj", name: "Amiga V2"},
		{file: "beach-ball.obj", name: "Beach Ball"},
	}
}

// menu options.
const (
	optScript = iota
	optBackground
	optBall
)

// Hack is the Yoomp! extension.
type Hack struct {
	env *environment.Environment

	background *overlay.Texture
	balls      []ball
	frame      int
	loaded     bool

	// AssetPath returns the path of an asset file. The default finds assets
	// in the extension's data directory
	AssetPath func(asset string) string

	Script     prefs.Bool
	Background prefs.Bool
	Ball       prefs.Int
}

// New is the preferred method of initialisation for the Hack type.
func New(env *environment.Environment) (*Hack, error) {
	h := &Hack{
		env:   env,
		balls: newBalls(),
		AssetPath: func(asset string) string {
			return paths.DataPath("yoomp", asset)
		},
	}

	h.Background.Set(true)
	h.Ball.Set(1)
	h.Ball.SetHookPre(func(v prefs.Value) error {
		if n := v.(int); n < 0 || n >= len(h.balls) {
			return fmt.Errorf("yoomp: no ball type %d", n)
		}
		return nil
	})

	if err := env.AddPref("yoomp.script", &h.Script); err != nil {
		return nil, err
	}
	if err := env.AddPref("yoomp.background", &h.Background); err != nil {
		return nil, err
	}
	if err := env.AddPref("yoomp.ball", &h.Ball); err != nil {
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
	if !Fingerprint.Match(h.env.Mem()) {
		return false
	}
	if !h.loaded && h.env.Renderer != nil {
		h.load()
	}
	return true
}

func (h *Hack) load() {
	h.loaded = true

	img, err := overlay.LoadRGBA(h.AssetPath(backgroundFile), backgroundSize, backgroundSize)
	if err != nil {
		logger.Log(h.env, "yoomp", err)
	} else {
		Vignette(img.Pix, backgroundSize)
		h.background, err = h.env.Renderer.Upload(img)
		if err != nil {
			logger.Log(h.env, "yoomp", err)
		}
	}

	for i := range h.balls {
		if h.balls[i].file == "" {
			continue
		}
		h.balls[i].model, err = overlay.LoadModel(h.AssetPath(h.balls[i].file))
		if err != nil {
			logger.Log(h.env, "yoomp", err)
		}
	}
}

// Vignette sets the alpha channel of a square RGBA image. The centre fades
// from opaque to transparent, a ring around it is transparent and everything
// outside the ring is opaque.
func Vignette(pix []uint8, size int) {
	xc := float64(size)/2 + 7
	yc := float64(size) / 2
	const rad = 120.0
	const dark = 0.8 * rad

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := math.Hypot(float64(x)-xc, float64(y)-yc)
			var alpha uint8
			switch {
			case r <= dark:
				alpha = uint8(255 - 255*r/dark)
			case r <= rad:
				alpha = 0
			default:
				alpha = 255
			}
			pix[4*(y*size+x)+3] = alpha
		}
	}
}

// PostFrame implements the extension.PostFrameHook interface.
func (h *Hack) PostFrame() {
	if h.Script.Get().(bool) && h.env.Scripts != nil {
		if err := h.env.Scripts.Call(ScriptFunction); err != nil {
			logger.Log(h.env, "yoomp", err)
		}
	}

	if h.env.Machine.Antic.Dlist != gameDisplayList {
		return
	}

	rnd := h.env.Renderer
	if rnd == nil {
		return
	}

	rnd.Begin()
	defer rnd.End()

	if h.Background.Get().(bool) && h.background != nil {
		h.drawBackground(rnd)
	}

	if b := h.balls[h.Ball.Get().(int)]; b.model != nil {
		h.drawBall(rnd, b)
	}
}

func (h *Hack) drawBackground(rnd overlay.Renderer) {
	r, g, b := atari.ColourFloat(h.env.Mem()[backgroundColour] | 0x0f)
	rnd.Tint(overlay.Colour{R: r, G: g, B: b, A: 1})
	rnd.Draw(h.background,
		overlay.Rect{Left: 0.18, Right: 0.84, Top: 0.76, Bottom: 0.25},
		overlay.Rect{Left: -0.77, Right: 0.77, Top: 0.9, Bottom: -0.75},
		0)
	rnd.Tint(overlay.White)
}

func (h *Hack) drawBall(rnd overlay.Renderer, b ball) {
	mem := h.env.Mem()
	h.frame++

	angle := float32(mem[ballAngle])
	vx := float32(mem[ballX])
	vy := float32(mem[ballY])

	rnd.PushMatrix()
	defer rnd.PopMatrix()

	rnd.LoadIdentity()
	rnd.Translate((vx-128+4)/84, -(vy-112-8)/120, 0)
	rnd.Scale(0.05, 0.07, 0.07)
	rnd.Rotate(angle/256*360, 0, 0, 1)
	rnd.Rotate(float32(spin*h.frame), 1, 0, 0)

	tint := overlay.White
	if b.colourise {
		tint.R, tint.G, tint.B = atari.ColourFloat(mem[ballColour] | 0x0c)
	}
	rnd.DrawModel(b.model, tint)
}

// Config implements the extension.Configurable interface.
func (h *Hack) Config() []menu.Item {
	return []menu.Item{
		{ID: optScript, Label: "(Lua) Script enabled:", Suffix: menu.OnOff(h.Script.Get().(bool))},
		{ID: optBackground, Label: "Nicer background:", Suffix: menu.OnOff(h.Background.Get().(bool))},
		{ID: optBall, Label: "Ball type:", Suffix: h.balls[h.Ball.Get().(int)].name},
	}
}

// HandleConfig implements the extension.Configurable interface.
func (h *Hack) HandleConfig(id int) {
	switch id {
	case optScript:
		h.Script.Toggle()
	case optBackground:
		h.Background.Toggle()
	case optBall:
		h.Ball.Cycle(len(h.balls))
	}
}
