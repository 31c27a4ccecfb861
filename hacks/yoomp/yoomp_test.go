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

package yoomp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/hacks/yoomp"
	"github.com/atari800ext/a8ext/overlay"
	"github.com/atari800ext/a8ext/test"
)

type scripts struct {
	calls []string
}

func (s *scripts) Call(fn string) error {
	s.calls = append(s.calls, fn)
	return nil
}

const ball = `o ball
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

// a detected Yoomp! hack using a recording renderer and assets in a temporary
// directory. only one of the ball models is present
func newHack(t *testing.T) (*yoomp.Hack, *environment.Environment, *overlay.Recorder) {
	t.Helper()

	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "rof-gray.rgba"), make([]byte, 476*476*4), 0o644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "ball-yoomp-bw.obj"), []byte(ball), 0o644))

	rec := overlay.NewRecorder()
	env := environment.NewEnvironment("", atari.NewMachine(nil))
	env.Quiet = true
	env.Renderer = rec

	h, err := yoomp.New(env)
	test.DemandSuccess(t, err)
	h.AssetPath = func(asset string) string {
		return filepath.Join(dir, asset)
	}

	test.DemandSuccess(t, env.Mem().Load(yoomp.Fingerprint.Address, yoomp.Fingerprint.Bytes))
	test.DemandEquality(t, h.Initialise(), true)

	return h, env, rec
}

func TestInitialise(t *testing.T) {
	h, _, rec := newHack(t)
	test.ExpectEquality(t, rec.Count("upload"), 1)

	// assets are only loaded once
	test.ExpectEquality(t, h.Initialise(), true)
	test.ExpectEquality(t, rec.Count("upload"), 1)
}

func TestVignette(t *testing.T) {
	const size = 476
	pix := make([]uint8, size*size*4)
	yoomp.Vignette(pix, size)

	alpha := func(x, y int) uint8 {
		return pix[4*(y*size+x)+3]
	}

	// the centre is offset to the right
	test.ExpectEquality(t, alpha(245, 238), uint8(255))
	test.ExpectEquality(t, alpha(345, 238), uint8(0))
	test.ExpectEquality(t, alpha(0, 0), uint8(255))
	test.ExpectEquality(t, alpha(size-1, size-1), uint8(255))
}

func TestPostFrame(t *testing.T) {
	h, env, rec := newHack(t)
	rec.Reset()

	// nothing is drawn outside of the game screen
	h.PostFrame()
	test.ExpectEquality(t, len(rec.Ops), 0)

	env.Machine.Antic.Dlist = 0xca00
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("begin"), 1)
	test.ExpectEquality(t, rec.Count("draw"), 1)
	test.ExpectEquality(t, rec.Count("model"), 1)
	test.ExpectEquality(t, rec.Balanced(), true)

	// the selected ball has no model
	rec.Reset()
	h.HandleConfig(h.Config()[2].ID)
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("draw"), 1)
	test.ExpectEquality(t, rec.Count("model"), 0)

	rec.Reset()
	test.DemandSuccess(t, h.Background.Set(false))
	h.PostFrame()
	test.ExpectEquality(t, rec.Count("draw"), 0)
	test.ExpectEquality(t, rec.Balanced(), true)
}

func TestScript(t *testing.T) {
	h, env, _ := newHack(t)
	s := &scripts{}
	env.Scripts = s

	h.PostFrame()
	test.ExpectEquality(t, len(s.calls), 0)

	h.HandleConfig(h.Config()[0].ID)
	h.PostFrame()
	test.DemandEquality(t, len(s.calls), 1)
	test.ExpectEquality(t, s.calls[0], yoomp.ScriptFunction)
}

func TestBallConfig(t *testing.T) {
	h, _, _ := newHack(t)

	test.ExpectEquality(t, h.Config()[2].String(), "Ball type: Yoomp-like-colorized")
	for i := 0; i < 5; i++ {
		h.HandleConfig(h.Config()[2].ID)
	}
	test.ExpectEquality(t, h.Config()[2].String(), "Ball type: ORIGINAL")

	test.ExpectFailure(t, h.Ball.Set(6))
	test.ExpectEquality(t, h.Ball.Get().(int), 0)
}

func TestNoRenderer(t *testing.T) {
	env := environment.NewEnvironment("", atari.NewMachine(nil))
	env.Quiet = true
	h, err := yoomp.New(env)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, h.Initialise(), false)
	test.DemandSuccess(t, env.Mem().Load(yoomp.Fingerprint.Address, yoomp.Fingerprint.Bytes))
	test.ExpectEquality(t, h.Initialise(), true)

	env.Machine.Antic.Dlist = 0xca00
	h.PostFrame()
}
