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

package extension

import "github.com/atari800ext/a8ext/menu"

// Extension is implemented by every game extension.
type Extension interface {
	Name() string

	// Initialise returns true if the extension recognises the program in
	// memory. Setup that depends on the program (eg. building textures from
	// game data) is done here when the result is true
	Initialise() bool
}

// CodeInjector is implemented by extensions that intercept opcodes. The
// return value is the opcode that the CPU executes in place of op.
type CodeInjector interface {
	CodeInjection(pc uint16, op uint8) uint8
}

// InjectionLister is implemented by extensions that only need to intercept
// opcodes at specific addresses. An empty list is the same as not
// implementing the interface.
type InjectionLister interface {
	InjectionList() []uint16
}

// PreFrameHook is implemented by extensions that draw before the emulator's
// frame is presented.
type PreFrameHook interface {
	PreFrame()
}

// PostFrameHook is implemented by extensions that draw after the emulator's
// frame is presented.
type PostFrameHook interface {
	PostFrame()
}

// Configurable is implemented by extensions with menu options. Config is
// called every time the menu is shown so that suffixes reflect the current
// value of each option. Menu IDs of 100 and above are reserved by the Hub.
type Configurable interface {
	Config() []menu.Item
	HandleConfig(id int)
}

// menu IDs used by the Hub.
const (
	MenuFoundExtension = 100
	MenuExit           = 101
)

// UnknownExtension is shown in the menu when no extension is active.
const UnknownExtension = "-UNKNOWN-"
