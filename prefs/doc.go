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

// Package prefs stores the persistent options of the extensions and of the
// extension hub. Options are held by the Bool, Int and String types, which
// are safe to read from any goroutine.
//
// A Disk instance associates option values with keys and saves them to a
// plain text file. Keys are dotted by convention, with the extension's
// package name first:
//
//	dsk, err := prefs.NewDisk(path)
//	var fps prefs.Bool
//	dsk.Add("zybex.fps", &fps)
//	dsk.Load(true)
//
// More than one Disk instance can use the same file. Saving from one instance
// does not clobber the entries written by another.
//
// Values given on the command line (see PushCommandLineStack()) take priority
// over values in the file when Load() is called.
package prefs
