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
	"image/color"
	"math"
)

// Colour returns the RGB value for an Atari colour value. The palette is
// generated from the hue and luminance nibbles using the YIQ model.
func Colour(c uint8) color.RGBA {
	hue := int(c >> 4)
	lum := int(c & 0x0f)

	y := 0.05 + float64(lum)/15.0*0.9

	var i, q float64
	if hue > 0 {
		const sat = 0.2
		angle := (float64(hue-1)/15.0)*2.0*math.Pi + 0.52
		i = sat * math.Cos(angle)
		q = sat * math.Sin(angle)
	}

	r := y + 0.956*i + 0.621*q
	g := y - 0.272*i - 0.647*q
	b := y - 1.106*i + 1.703*q

	return color.RGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: 0xff}
}

func clamp(v float64) uint8 {
	v = math.Round(v * 255.0)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ColourFloat returns the colour value as normalised red, green and blue
// components.
func ColourFloat(c uint8) (float32, float32, float32) {
	rgb := Colour(c)
	return float32(rgb.R) / 255.0, float32(rgb.G) / 255.0, float32(rgb.B) / 255.0
}
