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

package atari_test

import (
	"testing"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/test"
)

func TestMemoryWords(t *testing.T) {
	var mem atari.Memory

	mem.WriteWord(0x0080, 0x1234)
	test.ExpectEquality(t, mem.Read(0x0080), 0x34)
	test.ExpectEquality(t, mem.Read(0x0081), 0x12)
	test.ExpectEquality(t, mem.ReadWord(0x0080), 0x1234)

	// high byte wraps to the bottom of memory
	mem.Write(0xffff, 0xcd)
	mem.Write(0x0000, 0xab)
	test.ExpectEquality(t, mem.ReadWord(0xffff), 0xabcd)
}

func TestMemoryCompare(t *testing.T) {
	var mem atari.Memory
	test.ExpectSuccess(t, mem.Load(0x3000, []uint8{0x18, 0x69, 0x14, 0xa8, 0xc0, 0x50}))

	test.ExpectSuccess(t, mem.Compare(0x3000, []uint8{0x18, 0x69, 0x14, 0xa8, 0xc0, 0x50}))
	test.ExpectFailure(t, mem.Compare(0x3000, []uint8{0x18, 0x69, 0x14, 0xa8, 0xc0, 0x51}))
	test.ExpectFailure(t, mem.Compare(0xfffe, []uint8{0x00, 0x00, 0x00}))

	test.ExpectFailure(t, mem.Load(0xffff, []uint8{1, 2}))

	_, err := mem.Slice(0xfff0, 0x20)
	test.ExpectFailure(t, err)
	s, err := mem.Slice(0x3000, 2)
	test.ExpectSuccess(t, err)
	s[0] = 0xff
	test.ExpectEquality(t, mem.Read(0x3000), 0xff)
}

func TestNewMachine(t *testing.T) {
	steps := 0
	m := atari.NewMachine(atari.StepperFunc(func(count int) {
		steps += count
	}))
	test.ExpectEquality(t, m.Antic.CurScreenPos, atari.NotDrawing)
	test.ExpectEquality(t, m.Antic.XposLimit, 1)

	m.Step(1)
	m.Step(1)
	test.ExpectEquality(t, steps, 2)

	m.Mem.Write(0x1000, atari.OpRTS)
	m.CPU.PC = 0x1000
	test.ExpectEquality(t, m.OpcodeAtPC(), atari.OpRTS)
}

func TestPrint(t *testing.T) {
	scr := atari.NewScreen()
	scr.Print(0x9f, 0x90, "FRAMES: 12 ", 0, -1, 20)

	// row -1 of the text grid begins at pixel row 16
	fg := 0
	bg := 0
	for y := 16; y < 24; y++ {
		for x := 32; x < 32+11*8; x++ {
			switch scr.At(x, y) {
			case 0x9f:
				fg++
			case 0x90:
				bg++
			default:
				t.Fatalf("unexpected colour at %d,%d", x, y)
			}
		}
	}
	test.ExpectInequality(t, fg, 0)
	test.ExpectInequality(t, bg, 0)

	// nothing written outside the cells
	test.ExpectEquality(t, scr.At(31, 16), 0)
	test.ExpectEquality(t, scr.At(32, 24), 0)

	// maximum width is honoured
	scr.Fill(0)
	scr.Print(0x9f, 0x90, "0123456789", 0, 0, 2)
	test.ExpectEquality(t, scr.At(32+2*8, 24), 0)
	test.ExpectEquality(t, scr.At(32+2*8-1, 24), 0x90)
}

func TestPalette(t *testing.T) {
	p := atari.Palette()
	test.ExpectEquality(t, len(p), 256)

	// luminance increases within a hue
	dark := atari.Colour(0x00)
	light := atari.Colour(0x0f)
	test.ExpectEquality(t, dark.R < light.R, true)

	// hue zero is grey
	grey := atari.Colour(0x08)
	test.ExpectEquality(t, grey.R, grey.G)
	test.ExpectEquality(t, grey.G, grey.B)

	img := atari.NewScreen().Image()
	test.ExpectEquality(t, img.Bounds().Dx(), atari.ScreenWidth)
}
