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

// Package memimage loads a program into an atari.Memory. The image is either
// a 64K memory dump, which is placed at address zero, or an Atari executable
// made of 0xffff delimited segments.
//
// Images can be loaded from zip, 7z, gzip and rar archives. For archives
// with more than one entry, the first entry with a recognised extension is
// used.
package memimage
