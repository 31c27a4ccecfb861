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

package imguimenu

import (
	"testing"

	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/test"
	"github.com/veandco/go-sdl2/sdl"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		pos int
		n   int
		key sdl.Keycode
		to  int
		act action
	}{
		{pos: 0, n: 3, key: sdl.K_DOWN, to: 1, act: actionNone},
		{pos: 2, n: 3, key: sdl.K_DOWN, to: 0, act: actionNone},
		{pos: 2, n: 3, key: sdl.K_TAB, to: 0, act: actionNone},
		{pos: 0, n: 3, key: sdl.K_UP, to: 2, act: actionNone},
		{pos: 1, n: 3, key: sdl.K_UP, to: 0, act: actionNone},
		{pos: 1, n: 3, key: sdl.K_HOME, to: 0, act: actionNone},
		{pos: 1, n: 3, key: sdl.K_END, to: 2, act: actionNone},
		{pos: 1, n: 3, key: sdl.K_RETURN, to: 1, act: actionChoose},
		{pos: 1, n: 3, key: sdl.K_SPACE, to: 1, act: actionChoose},
		{pos: 1, n: 3, key: sdl.K_ESCAPE, to: 1, act: actionCancel},
		{pos: 1, n: 3, key: sdl.K_q, to: 1, act: actionCancel},
		{pos: 0, n: 3, key: sdl.K_3, to: 2, act: actionChoose},
		{pos: 0, n: 3, key: sdl.K_4, to: 0, act: actionNone},
		{pos: 0, n: 12, key: sdl.K_9, to: 8, act: actionChoose},
		{pos: 1, n: 3, key: sdl.K_a, to: 1, act: actionNone},
		{pos: 0, n: 0, key: sdl.K_DOWN, to: 0, act: actionCancel},
	}

	for i, tc := range tests {
		to, act := navigate(tc.pos, tc.n, tc.key)
		test.ExpectEquality(t, to, tc.to, i)
		test.ExpectEquality(t, act, tc.act, i)
	}
}

func TestLabel(t *testing.T) {
	test.ExpectEquality(t, label(0, menu.Item{Label: "Extension"}), "1. Extension")
	test.ExpectEquality(t, label(9, menu.Item{Label: "Sound", Suffix: "ON"}), "10. Sound ON")
}
