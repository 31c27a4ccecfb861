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

package atari

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Dimensions of the screen buffer.
const (
	ScreenWidth  = 384
	ScreenHeight = 240
)

// The text grid used by Print(). Cells are eight pixels square and the grid
// origin is inset from the edge of the screen buffer. Rows above the origin
// are addressed with negative row numbers.
const (
	textOriginX = 32
	textOriginY = 24
	cellSize    = 8
)

// Screen is the emulator's screen buffer. Each byte is an Atari colour value,
// the high nibble is the hue and the low nibble the luminance.
type Screen struct {
	Pix []uint8
}

// NewScreen is the preferred method of initialisation for the Screen type.
func NewScreen() *Screen {
	return &Screen{
		Pix: make([]uint8, ScreenWidth*ScreenHeight),
	}
}

// At returns the colour value at x, y. Coordinates outside the screen return
// zero.
func (scr *Screen) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= ScreenWidth || y >= ScreenHeight {
		return 0
	}
	return scr.Pix[y*ScreenWidth+x]
}

// Set the colour value at x, y. Coordinates outside the screen are ignored.
func (scr *Screen) Set(x, y int, c uint8) {
	if x < 0 || y < 0 || x >= ScreenWidth || y >= ScreenHeight {
		return
	}
	scr.Pix[y*ScreenWidth+x] = c
}

// Image returns an image.Paletted sharing the screen's pixel data.
func (scr *Screen) Image() *image.Paletted {
	return &image.Paletted{
		Pix:     scr.Pix,
		Stride:  ScreenWidth,
		Rect:    image.Rect(0, 0, ScreenWidth, ScreenHeight),
		Palette: Palette(),
	}
}

// Print text onto the screen in the fg colour on a bg background. The x and y
// arguments are cell positions in the text grid and maxWidth is the maximum
// number of cells to use. Text that falls off the screen is clipped.
func (scr *Screen) Print(fg, bg uint8, s string, x, y int, maxWidth int) {
	face := basicfont.Face7x13

	n := 0
	for _, r := range s {
		if n >= maxWidth {
			break
		}

		px := textOriginX + (x+n)*cellSize
		py := textOriginY + y*cellSize

		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Ascent), r)
		if !ok {
			dr, mask, maskp, _, _ = face.Glyph(fixed.P(0, face.Ascent), '?')
		}

		// the glyph is resampled into the cell
		for cy := 0; cy < cellSize; cy++ {
			for cx := 0; cx < cellSize; cx++ {
				c := bg
				gx := cx * face.Advance / cellSize
				gy := cy * face.Height / cellSize
				if gx >= dr.Min.X && gx < dr.Max.X {
					_, _, _, a := mask.At(maskp.X+gx-dr.Min.X, maskp.Y+gy).RGBA()
					if a > 0x8000 {
						c = fg
					}
				}
				scr.Set(px+cx, py+cy, c)
			}
		}

		n++
	}
}

// Fill the entire screen with a colour value.
func (scr *Screen) Fill(c uint8) {
	for i := range scr.Pix {
		scr.Pix[i] = c
	}
}

var (
	palette     color.Palette
	paletteOnce sync.Once
)

// Palette returns the 256 colour NTSC palette.
func Palette() color.Palette {
	paletteOnce.Do(func() {
		palette = make(color.Palette, 256)
		for i := range palette {
			palette[i] = Colour(uint8(i))
		}
	})
	return palette
}
