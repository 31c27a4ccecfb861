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

package riverraid_test

import (
	"image"
	"testing"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/hacks/riverraid"
	"github.com/atari800ext/a8ext/overlay"
	"github.com/atari800ext/a8ext/test"
)

func TestGenTexture(t *testing.T) {
	var mem atari.Memory
	mem.Write(0x1000, 0x80)
	mem.Write(0x1001, 0x01)

	// graphics data is upside down
	img := riverraid.GenTexture(&mem, 2, 0x0f, 0x1000)
	test.ExpectEquality(t, img.Bounds().Dx(), 8)
	test.ExpectEquality(t, img.Bounds().Dy(), 2)
	test.ExpectEquality(t, img.RGBAAt(7, 0), atari.Colour(0x0f))
	test.ExpectEquality(t, img.RGBAAt(0, 0).A, uint8(0))
	test.ExpectEquality(t, img.RGBAAt(0, 1), atari.Colour(0x0f))

	// colour table
	mem.Write(0x2000, 0x24)
	mem.Write(0x2001, 0x86)
	img = riverraid.GenTexture(&mem, 2, 0x2000, 0x1000)
	test.ExpectEquality(t, img.RGBAAt(7, 0), atari.Colour(0x86))
	test.ExpectEquality(t, img.RGBAAt(0, 1), atari.Colour(0x24))
}

func TestLineAddresses(t *testing.T) {
	test.ExpectEquality(t, riverraid.LineToAddr(0), uint16(0x2000))
	test.ExpectEquality(t, riverraid.LineToAddr(79), uint16(0x2000+79*riverraid.LineBytes))
	test.ExpectEquality(t, riverraid.LineToAddr(80), uint16(0x3000))
	test.ExpectEquality(t, riverraid.LineToAddr(159), uint16(0x3000+79*riverraid.LineBytes))

	for l := 0; l < riverraid.LineCount; l++ {
		test.ExpectEquality(t, riverraid.AddrToLine(riverraid.LineToAddr(l)), l)
	}

	test.ExpectViolation(t, func() { riverraid.LineToAddr(riverraid.LineCount) })
	test.ExpectViolation(t, func() { riverraid.LineToAddr(-1) })
	test.ExpectViolation(t, func() { riverraid.AddrToLine(0x1000) })
}

func TestRenderLine(t *testing.T) {
	var mem atari.Memory
	mem.Write(0x2000, 0x1b)

	gtia := atari.GTIA{COLBK: 0x00}
	gtia.COLPF[0] = 0x24
	gtia.COLPF[1] = 0x46
	gtia.COLPF[2] = 0x88

	img := image.NewRGBA(image.Rect(0, 0, riverraid.LineBytes*4, 1))
	riverraid.RenderLine(&mem, &gtia, 0, img)
	test.ExpectEquality(t, img.RGBAAt(0, 0), atari.Colour(0x00))
	test.ExpectEquality(t, img.RGBAAt(1, 0), atari.Colour(0x24))
	test.ExpectEquality(t, img.RGBAAt(2, 0), atari.Colour(0x46))
	test.ExpectEquality(t, img.RGBAAt(3, 0), atari.Colour(0x88))
	test.ExpectEquality(t, img.RGBAAt(4, 0), atari.Colour(0x00))
}

func newHack(t *testing.T) (*riverraid.Hack, *environment.Environment, *overlay.Recorder) {
	t.Helper()

	rec := overlay.NewRecorder()
	env := environment.NewEnvironment("", atari.NewMachine(nil))
	env.Quiet = true
	env.Renderer = rec

	h := riverraid.New(env)
	test.DemandEquality(t, h.Initialise(), false)

	mem := env.Mem()
	test.DemandSuccess(t, mem.Load(riverraid.Fingerprint.Address, riverraid.Fingerprint.Bytes))

	// top of the playfield at the first line
	mem.WriteWord(0x3f04, 0x2000)

	test.DemandEquality(t, h.Initialise(), true)
	return h, env, rec
}

func TestInitialise(t *testing.T) {
	_, _, rec := newHack(t)

	// lines, five textures for each object, planes and the missile
	test.ExpectEquality(t, rec.Count("upload"), 160+9*5+10+1)
}

func TestPostFrame(t *testing.T) {
	h, env, rec := newHack(t)
	mem := env.Mem()
	rec.Reset()

	// two views of lines, the object showcase and the plane
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("viewport"), 2)
	test.ExpectEquality(t, rec.Count("draw"), 2*(160+18+1))
	test.ExpectEquality(t, rec.Count("update"), 0)
	test.ExpectEquality(t, rec.Balanced(), true)

	// every line is redrawn when the playfield becomes active
	rec.Reset()
	mem.Write(0x3eff, 1)
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("update"), 160)

	// scrolling redraws the new lines only
	rec.Reset()
	mem.WriteWord(0x3f04, riverraid.LineToAddr(158))
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("update"), 2)

	// an object and the missile
	rec.Reset()
	mem.Write(0x4d, 10)
	mem.Write(0x0c+10, 0x5d+50)
	mem.Write(0x0500+10, 7)
	mem.Write(0x050b+10, 7)
	mem.Write(0x0042+10, 0x08)
	mem.Write(0xbb60+7, 5)
	mem.Write(0x56, 100)
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("draw"), 2*(160+18+1+1+1))
	test.ExpectEquality(t, rec.Balanced(), true)
}

func TestNoRenderer(t *testing.T) {
	env := environment.NewEnvironment("", atari.NewMachine(nil))
	env.Quiet = true
	h := riverraid.New(env)

	test.DemandSuccess(t, env.Mem().Load(riverraid.Fingerprint.Address, riverraid.Fingerprint.Bytes))
	test.ExpectEquality(t, h.Initialise(), true)
	h.PostFrame()
}
