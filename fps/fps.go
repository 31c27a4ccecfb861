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

// Package fps measures the speed of a game as the number of emulated frames
// between changes of a value that the game updates once per game frame. The
// display list address and a call counter are typical examples.
package fps

import "fmt"

// Counter of frames between value changes. The zero value is ready to use.
type Counter struct {
	value  int
	frames int
	last   int
}

// Tick is called once per emulated frame with the current value of the
// observed quantity. The returned string shows the number of frames between
// the two most recent changes.
func (c *Counter) Tick(value int) string {
	c.frames++
	if value != c.value {
		c.last = c.frames
		c.frames = 0
		c.value = value
	}
	return c.String()
}

// Frames returns the number of frames between the two most recent changes.
func (c *Counter) Frames() int {
	return c.last
}

func (c *Counter) String() string {
	return fmt.Sprintf("FRAMES: %d ", c.last)
}
