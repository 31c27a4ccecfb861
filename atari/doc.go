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

// Package atari models the parts of the Atari 8-bit emulator that the
// extension host observes and mutates: the 64K address space, the 6502
// registers, the ANTIC and GTIA fields that govern timing and colour, the
// monitor trace writer and the screen buffer.
//
// The emulator proper, the 6502 core and the video pipeline, is not part of
// this module. It is represented by the Stepper interface, which the fakecpu
// package drives to fast-forward execution.
package atari
