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

// Package injection is the per-address filter consulted on every retired
// opcode. An extension supplies the list of addresses it wants to intercept
// and the map answers whether a program counter is one of them. A map built
// from an empty list is unfiltered and every address is consulted.
package injection

import "github.com/atari800ext/a8ext/atari"

// Map of program counter values that trigger a code injection.
type Map struct {
	marked   [atari.MemorySize]bool
	filtered bool
	count    int
}

// Rebuild clears the map and marks every address in list. An empty or nil
// list leaves the map unfiltered.
func (mp *Map) Rebuild(list []uint16) {
	clear(mp.marked[:])
	mp.count = 0
	mp.filtered = len(list) > 0

	for _, pc := range list {
		if !mp.marked[pc] {
			mp.marked[pc] = true
			mp.count++
		}
	}
}

// Reset the map to the unfiltered state.
func (mp *Map) Reset() {
	mp.Rebuild(nil)
}

// Consult returns true if the extension's handler should be called for pc.
func (mp *Map) Consult(pc uint16) bool {
	return !mp.filtered || mp.marked[pc]
}

// Filtered returns true if the map was built from a non-empty list.
func (mp *Map) Filtered() bool {
	return mp.filtered
}

// Len returns the number of distinct marked addresses.
func (mp *Map) Len() int {
	return mp.count
}

// Addresses returns the marked addresses in ascending order.
func (mp *Map) Addresses() []uint16 {
	l := make([]uint16, 0, mp.count)
	for pc, ok := range mp.marked {
		if ok {
			l = append(l, uint16(pc))
		}
	}
	return l
}
