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
)

// Recorder implements the Renderer interface by recording a description of
// every call. It does no drawing.
type Recorder struct {
	Ops []string

	nextID   uint32
	textures map[uint32]*image.RGBA
	depth    int
	begun    int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder() *Recorder {
	return &Recorder{
		textures: make(map[uint32]*image.RGBA),
	}
}

func (rec *Recorder) record(format string, args ...any) {
	rec.Ops = append(rec.Ops, fmt.Sprintf(format, args...))
}

// Reset forgets all recorded operations. Textures are kept.
func (rec *Recorder) Reset() {
	rec.Ops = rec.Ops[:0]
}

// Count returns the number of recorded operations that begin with prefix.
func (rec *Recorder) Count(prefix string) int {
	n := 0
	for _, op := range rec.Ops {
		if len(op) >= len(prefix) && op[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// Image returns the most recent image uploaded for the texture.
func (rec *Recorder) Image(tex *Texture) *image.RGBA {
	return rec.textures[tex.ID]
}

// Balanced returns true if every Begin() has been matched by an End() and
// every PushMatrix() by a PopMatrix().
func (rec *Recorder) Balanced() bool {
	return rec.depth == 0 && rec.begun == 0
}

// Upload implements the Renderer interface.
func (rec *Recorder) Upload(img *image.RGBA) (*Texture, error) {
	rec.nextID++
	tex := &Texture{
		ID:     rec.nextID,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}
	rec.textures[tex.ID] = img
	rec.record("upload %v", tex)
	return tex, nil
}

// Update implements the Renderer interface.
func (rec *Recorder) Update(tex *Texture, img *image.RGBA) error {
	if img.Bounds().Dx() != tex.Width || img.Bounds().Dy() != tex.Height {
		return fmt.Errorf("overlay: update of %v with image of different size", tex)
	}
	rec.textures[tex.ID] = img
	rec.record("update %v", tex)
	return nil
}

// Begin implements the Renderer interface.
func (rec *Recorder) Begin() {
	rec.begun++
	rec.record("begin")
}

// End implements the Renderer interface.
func (rec *Recorder) End() {
	rec.begun--
	rec.record("end")
}

// SetViewport implements the Renderer interface.
func (rec *Recorder) SetViewport(vp Viewport) {
	p := "ortho"
	if vp.Projection.Perspective {
		p = "frustum"
	}
	rec.record("viewport %d %d %d %d %s", vp.X, vp.Y, vp.Width, vp.Height, p)
}

// Tint implements the Renderer interface.
func (rec *Recorder) Tint(c Colour) {
	rec.record("tint %.2f %.2f %.2f %.2f", c.R, c.G, c.B, c.A)
}

// LoadIdentity implements the Renderer interface.
func (rec *Recorder) LoadIdentity() {
	rec.record("identity")
}

// PushMatrix implements the Renderer interface.
func (rec *Recorder) PushMatrix() {
	rec.depth++
	rec.record("push")
}

// PopMatrix implements the Renderer interface.
func (rec *Recorder) PopMatrix() {
	rec.depth--
	rec.record("pop")
}

// Translate implements the Renderer interface.
func (rec *Recorder) Translate(x, y, z float32) {
	rec.record("translate %.3f %.3f %.3f", x, y, z)
}

// Scale implements the Renderer interface.
func (rec *Recorder) Scale(x, y, z float32) {
	rec.record("scale %.3f %.3f %.3f", x, y, z)
}

// Rotate implements the Renderer interface.
func (rec *Recorder) Rotate(angle float32, x, y, z float32) {
	rec.record("rotate %.3f %.0f %.0f %.0f", angle, x, y, z)
}

// Draw implements the Renderer interface.
func (rec *Recorder) Draw(tex *Texture, src Rect, dst Rect, z float32) {
	rec.record("draw %v %.2f %.2f %.2f %.2f z=%.0f", tex, dst.Left, dst.Right, dst.Top, dst.Bottom, z)
}

// DrawModel implements the Renderer interface.
func (rec *Recorder) DrawModel(m *Model, tint Colour) {
	rec.record("model %s %d %.2f %.2f %.2f", m.Name, len(m.Triangles), tint.R, tint.G, tint.B)
}
