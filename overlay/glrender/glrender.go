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

// Package glrender implements the overlay.Renderer interface with the fixed
// function pipeline of OpenGL 2.1. Start() must be called once a GL context
// is current on the calling thread.
package glrender

import (
	"fmt"
	"image"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/overlay"
	"github.com/go-gl/gl/v2.1/gl"
)

type glTexture struct {
	tex    overlay.Texture
	linear bool
}

// GL is an OpenGL 2.1 overlay renderer.
type GL struct {
	textures map[uint32]*glTexture
	tint     overlay.Colour

	// state saved by Begin() and restored by End()
	begun        bool
	lastViewport [4]int32
	lastTexture  int32

	// Linear controls the filtering of textures uploaded after it is set
	Linear bool
}

// NewGL is the preferred method of initialisation for the GL type.
func NewGL() *GL {
	return &GL{
		textures: make(map[uint32]*glTexture),
		tint:     overlay.White,
	}
}

// Start initialises the GL bindings and logs the driver details.
func (rnd *GL) Start() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("glrender: %w", err)
	}

	logger.Logf(logger.Allow, "glrender", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "glrender", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "glrender", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return nil
}

// Destroy deletes all textures.
func (rnd *GL) Destroy() {
	for id := range rnd.textures {
		gl.DeleteTextures(1, &id)
	}
	clear(rnd.textures)
}

// Upload implements the overlay.Renderer interface.
func (rnd *GL) Upload(img *image.RGBA) (*overlay.Texture, error) {
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return nil, fmt.Errorf("glrender: cannot upload empty image")
	}

	t := &glTexture{linear: rnd.Linear}
	t.tex.Width = sz.X
	t.tex.Height = sz.Y

	gl.GenTextures(1, &t.tex.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.tex.ID)
	if t.linear {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride)/4)
	defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.TexImage2D(gl.TEXTURE_2D, 0,
		gl.RGBA, int32(sz.X), int32(sz.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix))

	rnd.textures[t.tex.ID] = t

	tex := t.tex
	return &tex, nil
}

// Update implements the overlay.Renderer interface.
func (rnd *GL) Update(tex *overlay.Texture, img *image.RGBA) error {
	if _, ok := rnd.textures[tex.ID]; !ok {
		return fmt.Errorf("glrender: unknown texture %v", tex)
	}

	sz := img.Bounds().Size()
	if sz.X != tex.Width || sz.Y != tex.Height {
		return fmt.Errorf("glrender: update of %v with image of different size", tex)
	}

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride)/4)
	defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		0, 0, int32(sz.X), int32(sz.Y),
		gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix))

	return nil
}

// Begin implements the overlay.Renderer interface.
func (rnd *GL) Begin() {
	assert.That(!rnd.begun, "glrender: nested call to Begin()")
	rnd.begun = true

	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &rnd.lastTexture)
	gl.GetIntegerv(gl.VIEWPORT, &rnd.lastViewport[0])
	gl.PushAttrib(gl.ENABLE_BIT | gl.COLOR_BUFFER_BIT | gl.TRANSFORM_BIT | gl.CURRENT_BIT | gl.SCISSOR_BIT)

	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.LIGHTING)
	gl.Enable(gl.TEXTURE_2D)

	rnd.tint = overlay.White
}

// End implements the overlay.Renderer interface.
func (rnd *GL) End() {
	assert.That(rnd.begun, "glrender: End() without Begin()")
	rnd.begun = false

	gl.BindTexture(gl.TEXTURE_2D, uint32(rnd.lastTexture))
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopAttrib()
	gl.Viewport(rnd.lastViewport[0], rnd.lastViewport[1], rnd.lastViewport[2], rnd.lastViewport[3])
}

// SetViewport implements the overlay.Renderer interface.
func (rnd *GL) SetViewport(vp overlay.Viewport) {
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))

	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	gl.ClearColor(float32(vp.Clear.R)/255, float32(vp.Clear.G)/255, float32(vp.Clear.B)/255, float32(vp.Clear.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p := vp.Projection
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	if p.Perspective {
		gl.Frustum(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	} else {
		gl.Ortho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	}
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}

// Tint implements the overlay.Renderer interface.
func (rnd *GL) Tint(c overlay.Colour) {
	rnd.tint = c
}

// LoadIdentity implements the overlay.Renderer interface.
func (rnd *GL) LoadIdentity() {
	gl.LoadIdentity()
}

// PushMatrix implements the overlay.Renderer interface.
func (rnd *GL) PushMatrix() {
	gl.PushMatrix()
}

// PopMatrix implements the overlay.Renderer interface.
func (rnd *GL) PopMatrix() {
	gl.PopMatrix()
}

// Translate implements the overlay.Renderer interface.
func (rnd *GL) Translate(x, y, z float32) {
	gl.Translatef(x, y, z)
}

// Scale implements the overlay.Renderer interface.
func (rnd *GL) Scale(x, y, z float32) {
	gl.Scalef(x, y, z)
}

// Rotate implements the overlay.Renderer interface.
func (rnd *GL) Rotate(angle float32, x, y, z float32) {
	gl.Rotatef(angle, x, y, z)
}

// Draw implements the overlay.Renderer interface.
func (rnd *GL) Draw(tex *overlay.Texture, src overlay.Rect, dst overlay.Rect, z float32) {
	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	if tex.Repeat {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	}
	gl.Color4f(rnd.tint.R, rnd.tint.G, rnd.tint.B, rnd.tint.A)

	gl.Begin(gl.QUADS)
	gl.TexCoord2f(src.Left, src.Top)
	gl.Vertex3f(dst.Left, dst.Top, z)
	gl.TexCoord2f(src.Right, src.Top)
	gl.Vertex3f(dst.Right, dst.Top, z)
	gl.TexCoord2f(src.Right, src.Bottom)
	gl.Vertex3f(dst.Right, dst.Bottom, z)
	gl.TexCoord2f(src.Left, src.Bottom)
	gl.Vertex3f(dst.Left, dst.Bottom, z)
	gl.End()
}

// DrawModel implements the overlay.Renderer interface.
func (rnd *GL) DrawModel(m *overlay.Model, tint overlay.Colour) {
	gl.Disable(gl.TEXTURE_2D)
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Begin(gl.TRIANGLES)
	for _, t := range m.Triangles {
		d := m.Diffuse(t)
		gl.Color4f(d[0]*tint.R, d[1]*tint.G, d[2]*tint.B, tint.A)
		for i := range t.Vertices {
			gl.Normal3f(t.Normals[i][0], t.Normals[i][1], t.Normals[i][2])
			gl.Vertex3f(t.Vertices[i][0], t.Vertices[i][1], t.Vertices[i][2])
		}
	}
	gl.End()

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.TEXTURE_2D)
}
