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
	"github.com/veandco/go-sdl2/sdl"
)

// the result of a key press in the menu
type action int

const (
	actionNone action = iota
	actionChoose
	actionCancel
)

// navigate returns the new position of the highlight after a key press in a
// menu of n items. The number keys choose one of the first nine items
// directly.
func navigate(pos int, n int, key sdl.Keycode) (int, action) {
	if n == 0 {
		return 0, actionCancel
	}

	switch key {
	case sdl.K_UP, sdl.K_KP_8:
		return (pos + n - 1) % n, actionNone
	case sdl.K_DOWN, sdl.K_KP_2, sdl.K_TAB:
		return (pos + 1) % n, actionNone
	case sdl.K_HOME, sdl.K_PAGEUP:
		return 0, actionNone
	case sdl.K_END, sdl.K_PAGEDOWN:
		return n - 1, actionNone
	case sdl.K_RETURN, sdl.K_KP_ENTER, sdl.K_SPACE:
		return pos, actionChoose
	case sdl.K_ESCAPE, sdl.K_q:
		return pos, actionCancel
	}

	if key >= sdl.K_1 && key <= sdl.K_9 {
		if i := int(key - sdl.K_1); i < n {
			return i, actionChoose
		}
	}

	return pos, actionNone
}
