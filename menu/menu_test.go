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

package menu_test

import (
	"testing"

	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/test"
)

func TestFormat(t *testing.T) {
	items := []menu.Item{
		{ID: 100, Label: "Found extension:", Suffix: "ZYBEX HACK by ERU"},
		{ID: 0, Label: "Display FPS:", Suffix: menu.OnOff(true)},
		{ID: 101, Label: "EXIT"},
	}

	test.ExpectEquality(t, menu.Format("Extensions", 0, items),
		"Extensions\n"+
			"  1. Found extension: ZYBEX HACK by ERU\n"+
			"> 2. Display FPS: ON\n"+
			"  3. EXIT\n")

	test.ExpectEquality(t, menu.Index(items, 101), 2)
	test.ExpectEquality(t, menu.Index(items, 5), -1)
}

func TestScripted(t *testing.T) {
	d := &menu.Scripted{Choices: []int{0, 101}}
	items := []menu.Item{{ID: 0, Label: "A"}, {ID: 101, Label: "EXIT"}}

	test.ExpectEquality(t, d.Select("t", 0, items), 0)
	test.ExpectEquality(t, d.Select("t", 0, items), 101)
	test.ExpectEquality(t, d.Select("t", 0, items), menu.Cancel)
	test.ExpectEquality(t, len(d.Seen), 3)
	test.ExpectEquality(t, d.Last()[1].Label, "EXIT")
}
