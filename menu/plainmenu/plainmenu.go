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

// Package plainmenu implements menu.Driver for a plain terminal. The menu is
// printed as a numbered list and the user types the number of an item. When
// the input is a real terminal, lists of up to nine items are answered with a
// single key press.
package plainmenu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/atari800ext/a8ext/menu"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Menu implements the menu.Driver interface.
type Menu struct {
	input  io.Reader
	output io.Writer
	reader *bufio.Reader

	// file descriptor of the input if it is a real terminal
	realInput bool
	fd        uintptr
}

// NewMenu is the preferred method of initialisation for the Menu type.
func NewMenu(input *os.File, output io.Writer) *Menu {
	m := NewMenuFromReader(input, output)
	m.realInput = term.IsTerminal(int(input.Fd()))
	m.fd = input.Fd()
	return m
}

// NewMenuFromReader creates a menu that reads whole lines from any reader.
func NewMenuFromReader(input io.Reader, output io.Writer) *Menu {
	return &Menu{
		input:  input,
		output: output,
		reader: bufio.NewReader(input),
	}
}

// Select implements the menu.Driver interface.
func (m *Menu) Select(title string, current int, items []menu.Item) int {
	for {
		io.WriteString(m.output, menu.Format(title, current, items))
		fmt.Fprintf(m.output, "select 1-%d or q: ", len(items))

		var s string
		var readErr error
		if m.realInput && len(items) <= 9 {
			s, readErr = m.readKey()
			io.WriteString(m.output, "\n")
		} else {
			s, readErr = m.reader.ReadString('\n')
		}

		s = strings.TrimSpace(s)
		if s == "" && readErr != nil {
			return menu.Cancel
		}
		if strings.EqualFold(s, "q") {
			return menu.Cancel
		}

		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(items) {
			return items[n-1].ID
		}

		fmt.Fprintf(m.output, "* invalid selection: %q\n", s)

		// no more input
		if readErr != nil {
			return menu.Cancel
		}
	}
}

// read a single key press with the terminal in cbreak mode
func (m *Menu) readKey() (string, error) {
	var canAttr unix.Termios
	if err := termios.Tcgetattr(m.fd, &canAttr); err != nil {
		return "", err
	}
	cbreakAttr := canAttr
	termios.Cfmakecbreak(&cbreakAttr)

	if err := termios.Tcsetattr(m.fd, termios.TCIFLUSH, &cbreakAttr); err != nil {
		return "", err
	}
	defer termios.Tcsetattr(m.fd, termios.TCIFLUSH, &canAttr)

	b := make([]byte, 1)
	n, err := m.input.Read(b)
	return string(b[:n]), err
}
