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

package overlay

import (
	"fmt"
	"image"
	"image/color"
)

// Texture is a handle to an image uploaded to the renderer.
type Texture struct {
	ID     uint32
	Width  int
	Height int

	// texture coordinates outside of the range zero to one repeat the
	// texture. by default the texture is clamped to a transparent border
	Repeat bool
}

func (tex *Texture) String() string {
	return fmt.Sprintf("tex%d(%dx%d)", tex.ID, tex.Width, tex.Height)
}

// Rect describes the edges of a quad. For texture coordinates the values are
// between zero and one.
type Rect struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
}

// Full is the texture coordinates of the entire texture.
var Full = Rect{Left: 0, Right: 1, Top: 0, Bottom: 1}

// Colour with normalised components.
type Colour struct {
	R, G, B, A float32
}

// White is the neutral tint.
var White = Colour{R: 1, G: 1, B: 1, A: 1}

// Projection of a viewport. When Perspective is false the projection is
// orthographic.
type Projection struct {
	Perspective bool
	Left        float64
	Right       float64
	Bottom      float64
	Top         float64
	Near        float64
	Far         float64
}

// Viewport is a rectangular area of the window with its own projection. The
// area is cleared to the Clear colour when the viewport is set.
type Viewport struct {
	X, Y          int
	Width, Height int
	Clear         color.RGBA
	Projection    Projection
}

// Renderer is implemented by drawing backends.
type Renderer interface {
	// Upload an image and return a handle to the texture
	Upload(img *image.RGBA) (*Texture, error)

	// Update replaces the contents of an existing texture. The image must be
	// the same size as the original
	Update(tex *Texture, img *image.RGBA) error

	// Begin saves the emulator's drawing state and enables blending. End
	// restores the saved state. Every call to Begin must be matched by a call
	// to End
	Begin()
	End()

	// SetViewport changes the drawing area and projection
	SetViewport(vp Viewport)

	// Tint sets the colour that textures and models are multiplied by
	Tint(c Colour)

	// matrix operations on the model view matrix
	LoadIdentity()
	PushMatrix()
	PopMatrix()
	Translate(x, y, z float32)
	Scale(x, y, z float32)
	Rotate(angle float32, x, y, z float32)

	// Draw the src area of a texture into the dst area at depth z
	Draw(tex *Texture, src Rect, dst Rect, z float32)

	// DrawModel draws the triangles of a model with the materials multiplied
	// by the tint colour
	DrawModel(m *Model, tint Colour)
}
