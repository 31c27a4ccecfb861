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

// Package modalflag wraps the flag package of the standard library with
// support for program modes. A mode is a leading non-flag argument that puts
// the program into a different mode of operation, each with its own set of
// flags. The a8ext command has DETECT, LIST, TRACE, MENU and STATE modes.
//
// The arguments are given to NewArgs() and then parsed in layers. Each layer
// declares its flags and its sub-modes before calling Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("DETECT", "LIST", "TRACE")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "TRACE":
//		md.NewMode()
//		limit := md.AddInt("limit", 0, "maximum number of steps")
//		...
//	}
//
// The first sub-mode in the list is the default and is selected when the next
// argument is not a recognised sub-mode. Sub-mode comparisons are case
// insensitive.
//
// Help for the current layer is printed to the Output writer when the -help
// flag is given. Parse() returns ParseHelp in that case and the caller should
// stop without printing anything further.
package modalflag
