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

// Package riverraid renders River Raid in two extra views beside the
// emulator's output: a flat reconstruction of the playfield and a perspective
// view looking up the river. The views are built from textures generated from
// the game's own graphics data when the game is detected.
package riverraid

import (
	"image"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/overlay"
)

// Name of the extension.
const Name = "River Raid Hack by Eru"

// Fingerprint of the River Raid program.
var Fingerprint = extension.Fingerprint{
	Address: 0xb55c,
	Bytes:   []uint8{0xa4, 0x4d, 0xa2, 0x5d, 0xd0, 0x03},
}

// graphics tables in the game
const (
	colourTableLo = 0xbb30
	colourData    = 0xb700
	gfxTableLo    = 0xbb40
	gfxData       = 0xb900
	heights       = 0xbb60
	widths        = 0x0521
	planePointers = 0xbacd
	missileGfx    = 0xa5b3
)

// explosion graphics, in order of explosion index
var explosionGfx = [3]uint16{0xb91c, 0xb934, 0xb94c}

// object state in the game
const (
	firstObject   = 0x4d
	objectY       = 0x0c
	objectGfx     = 0x0500
	objectColour  = 0x050b
	objectFlags   = 0x0042
	objectX       = 0x0516
	numObjectRows = 11

	// the object graphic is mirrored
	flagMirror = 0x08
)

// player state in the game
const (
	planeIndex = 0x5e
	planeX     = 0x57
	missileY   = 0x56
)

// playfield state in the game
const (
	playfieldActive = 0x3eff
	playfieldTop    = 0x3f04
)

// LineCount is the number of lines in the playfield.
const LineCount = 160

// LineBytes is the number of bytes in a playfield line. Each byte is four
// pixels.
const LineBytes = 48

// object IDs 0 and 1 are nothing, 2 to 6 are explosions and 7 to 15 are the
// nine objects
const (
	objectsOffset = 7
	numObjects    = 9
	numPlanes     = 10
)

// explosion index for object IDs 2 to 6
var explosionIndex = [7]int{-1, -1, 2, 1, 0, 1, 2}

// view geometry
const (
	zNear = 200
	zFar  = zNear + LineCount

	// difference between object Y positions and playfield lines
	yAdjustment = 0x5d

	// empty lines at the top of the screen
	yBlanks = 20

	// depth of everything drawn in the flat view
	z2D = -1.0

	viewWidth  = 336
	viewHeight = 240
)

type object struct {
	normal     *overlay.Texture
	mirror     *overlay.Texture
	explosions [3]*overlay.Texture
	height     int
}

// Hack is the River Raid extension.
type Hack struct {
	env *environment.Environment

	ready   bool
	objects [numObjects]object
	planes  [numPlanes]*overlay.Texture
	missile *overlay.Texture

	lines    [LineCount]*overlay.Texture
	lineImgs [LineCount]*image.RGBA

	lastActive bool
	lastLine   int

	perspective bool
}

// New is the preferred method of initialisation for the Hack type.
func New(env *environment.Environment) *Hack {
	return &Hack{env: env}
}

// Name implements the extension.Extension interface.
func (h *Hack) Name() string {
	return Name
}

// Initialise implements the extension.Extension interface. The textures are
// built from game memory when the game is detected.
func (h *Hack) Initialise() bool {
	if !Fingerprint.Match(h.env.Mem()) {
		return false
	}

	logger.Log(h.env, "riverraid", "RIVER RAID detected")

	if h.env.Renderer != nil {
		if err := h.initLines(); err != nil {
			logger.Log(h.env, "riverraid", err)
			return true
		}
		if err := h.initObjects(); err != nil {
			logger.Log(h.env, "riverraid", err)
			return true
		}
		h.ready = true
	}

	return true
}

// GenTexture creates an image eight pixels wide from one byte of graphics
// per line. The data in memory is upside down. If colourOrPtr is less than
// 256 it is the colour of every line, otherwise it is the address of a table
// of colours with one entry per line.
func GenTexture(mem *atari.Memory, height int, colourOrPtr int, gfxPtr uint16) *image.RGBA {
	const width = 8
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		idx := height - y - 1

		colour := uint8(colourOrPtr)
		if colourOrPtr >= 256 {
			colour = mem.Read(uint16(colourOrPtr + idx))
		}
		rgb := atari.Colour(colour)

		gfx := mem.Read(gfxPtr + uint16(idx))
		for x := 0; x < width; x++ {
			if gfx&(1<<(7-x)) != 0 {
				img.SetRGBA(x, y, rgb)
			}
		}
	}

	return img
}

func (h *Hack) upload(img *image.RGBA) (*overlay.Texture, error) {
	return h.env.Renderer.Upload(img)
}

func (h *Hack) genObject(id int) (object, error) {
	mem := h.env.Mem()

	o := object{height: 1 + int(mem.Read(uint16(heights+id)))}
	colours := colourData | int(mem.Read(uint16(colourTableLo+id%16)))
	gfxNormal := gfxData | uint16(mem.Read(uint16(gfxTableLo+id)))
	gfxMirror := gfxData | uint16(mem.Read(uint16(gfxTableLo+id+0x10)))

	logger.Logf(h.env, "riverraid", "object %02x: height %02x colours %04x normal %04x mirror %04x",
		id, o.height, colours, gfxNormal, gfxMirror)

	var err error
	if o.normal, err = h.upload(GenTexture(mem, o.height, colours, gfxNormal)); err != nil {
		return o, err
	}
	if o.mirror, err = h.upload(GenTexture(mem, o.height, colours, gfxMirror)); err != nil {
		return o, err
	}
	for i, gfx := range explosionGfx {
		if o.explosions[i], err = h.upload(GenTexture(mem, o.height, colours, gfx)); err != nil {
			return o, err
		}
	}

	return o, nil
}

func (h *Hack) initObjects() error {
	mem := h.env.Mem()
	colour := int(h.env.Machine.GTIA.COLPM[1])

	var err error
	for i := range h.objects {
		if h.objects[i], err = h.genObject(objectsOffset + i); err != nil {
			return err
		}
	}

	for i := range h.planes {
		ptr := mem.ReadWord(uint16(planePointers + 2*i))
		if h.planes[i], err = h.upload(GenTexture(mem, 14, colour, ptr)); err != nil {
			return err
		}
	}

	h.missile, err = h.upload(GenTexture(mem, 1, colour, missileGfx))
	return err
}

// LineToAddr returns the address of a playfield line. The first 80 lines
// start at 0x2000 and the remaining 80 at 0x3000.
func LineToAddr(line int) uint16 {
	assert.Between("line", line, 0, LineCount-1)
	if line < 80 {
		return uint16(0x2000 + line*LineBytes)
	}
	return uint16(0x3000 + (line-80)*LineBytes)
}

// AddrToLine is the inverse of LineToAddr().
func AddrToLine(addr uint16) int {
	var line int
	if addr < 0x3000 {
		line = (int(addr) - 0x2000) / LineBytes
	} else {
		line = 80 + (int(addr)-0x3000)/LineBytes
	}
	assert.Between("line", line, 0, LineCount-1)
	return line
}

// RenderLine draws a playfield line into an image LineBytes*4 pixels wide.
// Each two bit pixel selects one of the background and playfield colours.
func RenderLine(mem *atari.Memory, gtia *atari.GTIA, line int, img *image.RGBA) {
	addr := LineToAddr(line)
	colours := [4]uint8{gtia.COLBK, gtia.COLPF[0], gtia.COLPF[1], gtia.COLPF[2]}

	for xb := 0; xb < LineBytes; xb++ {
		b := mem.Read(addr + uint16(xb))
		for xp := 0; xp < 4; xp++ {
			pixel := (b >> (2 * (3 - xp))) & 0x03
			img.SetRGBA(4*xb+xp, 0, atari.Colour(colours[pixel]))
		}
	}
}

func (h *Hack) initLines() error {
	var err error
	for i := range h.lines {
		h.lineImgs[i] = image.NewRGBA(image.Rect(0, 0, LineBytes*4, 1))
		if h.lines[i], err = h.upload(h.lineImgs[i]); err != nil {
			return err
		}
		h.lines[i].Repeat = true
	}
	h.lastActive = false
	return nil
}

func (h *Hack) renderLine(line int) {
	RenderLine(h.env.Mem(), &h.env.Machine.GTIA, line, h.lineImgs[line])
	if err := h.env.Renderer.Update(h.lines[line], h.lineImgs[line]); err != nil {
		logger.Log(h.env, "riverraid", err)
	}
}

// bring the line textures up to date. returns the line at the top of the
// playfield
func (h *Hack) updateLines() int {
	mem := h.env.Mem()
	cur := AddrToLine(mem.ReadWord(playfieldTop))

	active := mem.Read(playfieldActive) != 0
	if active && !h.lastActive {
		for i := range h.lines {
			h.renderLine(i)
		}
		h.lastLine = cur
	} else {
		for h.lastLine != cur {
			h.lastLine = (h.lastLine + LineCount - 1) % LineCount
			h.renderLine(h.lastLine)
		}
	}
	h.lastActive = active

	return cur
}

func (h *Hack) drawLines(rnd overlay.Renderer, cur int) {
	// a line texture is 384 pixels wide but the visible screen is 336
	const margin = (1.0 - 0.875) / 2

	for y := 0; y < LineCount; y++ {
		t := h.lines[(cur+y)%LineCount]
		if h.perspective {
			const sx = -192.0
			const sw = 384.0
			rnd.Draw(t,
				overlay.Rect{Left: -168.0 / 384, Right: 1 + 168.0/384, Top: 0, Bottom: 1},
				overlay.Rect{Left: sx - 168, Right: sx + sw + 168, Top: 0, Bottom: -2},
				-float32(zFar-y))
		} else {
			sy := float32(120 - (yBlanks + y))
			rnd.Draw(t,
				overlay.Rect{Left: margin, Right: 1 - margin, Top: 0, Bottom: 1},
				overlay.Rect{Left: -168, Right: 168, Top: sy, Bottom: sy + 1},
				z2D)
		}
	}
}

func (h *Hack) drawObjects(rnd overlay.Renderer) {
	mem := h.env.Mem()

	for idx := int(mem.Read(firstObject)); idx < numObjectRows; {
		y := int(mem.Read(uint16(objectY+idx))) - yAdjustment
		gfx := int(mem.Read(uint16(objectGfx + idx)))
		colour := int(mem.Read(uint16(objectColour + idx)))
		flags := mem.Read(uint16(objectFlags + idx))
		height := int(mem.Read(uint16(heights + colour)))
		w := 2 * (8 + 8*int(mem.Read(uint16(widths+idx))))
		x := int(mem.Read(uint16(objectX + idx)))

		if gfx >= 2 {
			assert.That(colour >= objectsOffset && colour <= 15, "riverraid: unexpected colour id %d at index %d", colour, idx)
			o := &h.objects[colour-objectsOffset]

			var dst overlay.Rect
			var z float32
			if h.perspective {
				sh := 0.25 * float32(o.height)
				sy := sh / 2
				sx := float32(2 * (x - 128))
				dst = overlay.Rect{Left: sx, Right: sx + float32(w), Top: sy, Bottom: sy - sh}
				z = -float32(zFar - y)
			} else {
				y += yBlanks
				sy := float32(120 - y)
				sx := float32(2 * (x - 128))
				dst = overlay.Rect{Left: sx, Right: sx + float32(w), Top: sy, Bottom: sy - float32(o.height)}
				z = z2D
			}

			var t *overlay.Texture
			if gfx <= 6 {
				t = o.explosions[explosionIndex[gfx]]
			} else {
				assert.That(gfx <= 15, "riverraid: unexpected graphics id %d at index %d", gfx, idx)
				o = &h.objects[gfx-objectsOffset]
				if flags&flagMirror != 0 {
					t = o.mirror
				} else {
					t = o.normal
				}
			}
			rnd.Draw(t, overlay.Full, dst, z)
		}

		idx++

		if y+height > LineCount {
			break // for loop
		}
	}

	// every object along the bottom of the view
	for i := range h.objects {
		x := float32(-0.8 + float64(i)*0.1)
		rnd.Draw(h.objects[i].normal, overlay.Full, overlay.Rect{Left: x, Right: x + 0.1, Top: -0.8, Bottom: -1}, z2D)
		rnd.Draw(h.objects[i].mirror, overlay.Full, overlay.Rect{Left: x, Right: x + 0.1, Top: -0.6, Bottom: -0.8}, z2D)
	}
}

func (h *Hack) drawPlaneAndMissile(rnd overlay.Renderer) {
	mem := h.env.Mem()

	idx := int(mem.Read(planeIndex))
	assert.Between("plane index", idx, 0, numPlanes-1)

	const sh = 14 / 2
	const sw = 2 * 8
	sx := float32(2 * (int(mem.Read(planeX)) - 128))

	var sy, z float32
	if h.perspective {
		sy = -25 - sh
		z = -zNear - 34
		sx = -4
	} else {
		sy = 120 - 0xaa - 6
		z = z2D
	}
	rnd.Draw(h.planes[idx], overlay.Full, overlay.Rect{Left: sx, Right: sx + sw, Top: sy, Bottom: sy + sh}, z)

	my := int(mem.Read(missileY))
	if my <= 1 {
		return
	}

	sx = float32(2 * (int(mem.Read(planeX)) - 128))
	if h.perspective {
		sy = -25 - 0.5
		sx = 0
		z = -float32(zFar - my)
	} else {
		sx += 4
		sy = float32(120 - my)
		z = z2D
	}
	rnd.Draw(h.missile, overlay.Full, overlay.Rect{Left: sx, Right: sx + sw, Top: sy, Bottom: sy + 1}, z)
}

func (h *Hack) drawView(rnd overlay.Renderer, x int, perspective bool) {
	h.perspective = perspective

	vp := overlay.Viewport{
		X:      x,
		Width:  viewWidth,
		Height: viewHeight,
	}
	vp.Clear.B = 51

	if perspective {
		vp.Projection = overlay.Projection{
			Perspective: true,
			Left:        -168, Right: 168,
			Bottom: -25, Top: 5,
			Near: zNear, Far: zFar + 160,
		}
		rnd.SetViewport(vp)

		px := float32(h.env.Mem().Read(planeX)) - 128
		rnd.Translate(-2*px, 0, 0)
		rnd.Translate(0, -25, 0)

		h.drawLines(rnd, h.updateLines())
		h.drawObjects(rnd)

		rnd.LoadIdentity()
		h.drawPlaneAndMissile(rnd)
		return
	}

	vp.Projection = overlay.Projection{
		Left: -168, Right: 168,
		Bottom: -120, Top: 120,
		Near: 0, Far: 10,
	}
	rnd.SetViewport(vp)

	h.drawLines(rnd, h.updateLines())
	h.drawObjects(rnd)
	h.drawPlaneAndMissile(rnd)
}

// PostFrame implements the extension.PostFrameHook interface.
func (h *Hack) PostFrame() {
	if !h.ready {
		return
	}

	rnd := h.env.Renderer
	rnd.Begin()
	defer rnd.End()

	rnd.Tint(overlay.White)
	h.drawView(rnd, 0, false)
	h.drawView(rnd, viewWidth*2, true)
}
