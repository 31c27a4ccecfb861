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

// Package tuimenu implements menu.Driver as a full-screen terminal menu. The
// highlighted item is moved with the cursor keys and chosen with Enter. Items
// can also be chosen directly with the number keys.
package tuimenu

import (
	"fmt"

	"github.com/atari800ext/a8ext/menu"
	"github.com/gdamore/tcell"
)

// Menu implements the menu.Driver interface.
type Menu struct {
	screen tcell.Screen
}

// NewMenu is the preferred method of initialisation for the Menu type. The
// screen must have been initialised.
func NewMenu(screen tcell.Screen) *Menu {
	return &Menu{screen: screen}
}

var (
	styleBox       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleItem      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Select implements the menu.Driver interface.
func (m *Menu) Select(title string, current int, items []menu.Item) int {
	if len(items) == 0 {
		return menu.Cancel
	}

	pos := menu.Index(items, current)
	if pos < 0 {
		pos = 0
	}

	for {
		m.draw(title, pos, items)

		ev := m.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// the screen has been finalised
			return menu.Cancel

		case *tcell.EventResize:
			m.screen.Sync()

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp:
				pos = (pos + len(items) - 1) % len(items)
			case tcell.KeyDown, tcell.KeyTab:
				pos = (pos + 1) % len(items)
			case tcell.KeyEnter:
				return items[pos].ID
			case tcell.KeyEscape:
				return menu.Cancel
			case tcell.KeyRune:
				r := ev.Rune()
				switch {
				case r == 'q':
					return menu.Cancel
				case r >= '1' && r <= '9':
					if n := int(r - '1'); n < len(items) {
						return items[n].ID
					}
				}
			}
		}
	}
}

func (m *Menu) draw(title string, pos int, items []menu.Item) {
	w := len(title)
	for i, it := range items {
		if l := len(label(i, it)); l > w {
			w = l
		}
	}
	w += 4
	h := len(items) + 3

	m.screen.Clear()

	sw, sh := m.screen.Size()
	x := (sw - w) / 2
	y := (sh - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	box(m.screen, x, y, w, h)
	drawString(m.screen, x+2, y, styleTitle, " "+title+" ")

	for i, it := range items {
		style := styleItem
		if i == pos {
			style = styleHighlight
		}
		drawString(m.screen, x+2, y+2+i, style, label(i, it))
	}

	m.screen.Show()
}

func label(i int, it menu.Item) string {
	return fmt.Sprintf("%d. %s", i+1, it)
}

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}

func box(s tcell.Screen, x, y, w, h int) {
	s.SetContent(x, y, tcell.RuneULCorner, nil, styleBox)
	s.SetContent(x+w, y, tcell.RuneURCorner, nil, styleBox)
	s.SetContent(x, y+h, tcell.RuneLLCorner, nil, styleBox)
	s.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, styleBox)
	for col := x + 1; col < x+w; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, styleBox)
		s.SetContent(col, y+h, tcell.RuneHLine, nil, styleBox)
	}
	for row := y + 1; row < y+h; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, styleBox)
		s.SetContent(x+w, row, tcell.RuneVLine, nil, styleBox)
	}
}
