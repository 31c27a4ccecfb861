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

package atari

import (
	"bytes"
	"fmt"
)

// MemorySize is the size of the 6502 address space.
const MemorySize = 0x10000

// Memory is the complete 64K address space. All access is direct with no
// memory mapped hardware side effects.
type Memory [MemorySize]uint8

// Read returns the byte at address.
func (mem *Memory) Read(address uint16) uint8 {
	return mem[address]
}

// Write stores a byte at address.
func (mem *Memory) Write(address uint16, data uint8) {
	mem[address] = data
}

// ReadWord returns the little-endian 16 bit value at address. The high byte
// is read from address+1, wrapping at the top of memory.
func (mem *Memory) ReadWord(address uint16) uint16 {
	return uint16(mem[address]) | uint16(mem[address+1])<<8
}

// WriteWord stores a little-endian 16 bit value at address.
func (mem *Memory) WriteWord(address uint16, data uint16) {
	mem[address] = uint8(data)
	mem[address+1] = uint8(data >> 8)
}

// Compare returns true if the bytes starting at address are identical to b.
// Returns false if b would extend beyond the top of memory.
func (mem *Memory) Compare(address uint16, b []uint8) bool {
	if int(address)+len(b) > MemorySize {
		return false
	}
	return bytes.Equal(mem[int(address):int(address)+len(b)], b)
}

// Slice returns the memory between address and address+length. The returned
// slice shares storage with the address space.
func (mem *Memory) Slice(address uint16, length int) ([]uint8, error) {
	if length < 0 || int(address)+length > MemorySize {
		return nil, fmt.Errorf("atari: memory slice %04x+%d out of range", address, length)
	}
	return mem[int(address) : int(address)+length], nil
}

// Load copies data into memory starting at address.
func (mem *Memory) Load(address uint16, data []uint8) error {
	if int(address)+len(data) > MemorySize {
		return fmt.Errorf("atari: %d bytes at %04x does not fit in memory", len(data), address)
	}
	copy(mem[address:], data)
	return nil
}
