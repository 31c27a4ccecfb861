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

// Package menu defines the modal list selection used by the extension hub
// for configuration. Implementations of Driver are found in the plainmenu,
// tuimenu and imguimenu sub-packages.
package menu

import (
	"fmt"
	"strings"
)

// Cancel is returned by Driver.Select() when the user leaves the menu
// without choosing an item.
const Cancel = -1

// Item is a single entry in a menu. Suffix is shown after the label and is
// usually the current value of an option.
type Item struct {
	ID     int
	Label  string
	Suffix string
}

func (it Item) String() string {
	if it.Suffix == "" {
		return it.Label
	}
	return fmt.Sprintf("%s %s", it.Label, it.Suffix)
}

// Driver presents a list of items and blocks until one is chosen. The
// current argument is the ID of the item to highlight initially. The return
// value is the ID of the chosen item or Cancel.
type Driver interface {
	Select(title string, current int, items []Item) int
}

// OnOff returns the suffix used for boolean options.
func OnOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

// Index returns the position of the item with the specified ID. Returns -1
// if there is no such item.
func Index(items []Item, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Format the menu as plain text, one item per line. The item at the current
// position is marked.
func Format(title string, current int, items []Item) string {
	s := strings.Builder{}
	s.WriteString(title)
	s.WriteString("\n")
	for i, it := range items {
		mark := " "
		if it.ID == current {
			mark = ">"
		}
		s.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, it))
	}
	return s.String()
}
