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

// Package mercenary replaces the line drawing and area fill routines of
// Mercenary with native implementations. The program has no reliable
// fingerprint so the extension must be chosen from the extension menu.
package mercenary

import (
	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
)

// Name of the extension.
const Name = "Mercenary HACK by ERU"

// line drawing routine. one of eight depending on the octant of the line
type octant struct {
	pc uint16

	// true if X is the major axis
	xMajor bool

	majorDelta int8
	minorLimit uint8
	minorDelta int8

	// the fraction is subtracted rather than added
	fracNeg bool
}

var octants = [8]octant{
	{pc: 0x5230, xMajor: true, majorDelta: 1, minorLimit: 0x98, minorDelta: 1, fracNeg: false},    // X right, Y down
	{pc: 0x525d, xMajor: false, majorDelta: 1, minorLimit: 0xa0, minorDelta: 1, fracNeg: false},   // Y down, X right
	{pc: 0x528a, xMajor: false, majorDelta: 1, minorLimit: 0xff, minorDelta: -1, fracNeg: false},  // Y down, X left
	{pc: 0x52b7, xMajor: true, majorDelta: -1, minorLimit: 0x98, minorDelta: 1, fracNeg: true},    // X left, Y down
	{pc: 0x52e4, xMajor: true, majorDelta: -1, minorLimit: 0xff, minorDelta: -1, fracNeg: true},   // X left, Y up
	{pc: 0x5311, xMajor: false, majorDelta: -1, minorLimit: 0xff, minorDelta: -1, fracNeg: false}, // Y up, X left
	{pc: 0x533e, xMajor: false, majorDelta: -1, minorLimit: 0xa0, minorDelta: 1, fracNeg: true},   // Y up, X right
	{pc: 0x536b, xMajor: true, majorDelta: 1, minorLimit: 0xff, minorDelta: -1, fracNeg: true},    // X right, Y up
}

const (
	fillOneColour = 0x586f
	fillTwoColour = 0x570e

	// the remainder of the two colour fill routine, which is not replaced
	fillTwoColourResume = 0x5823
)

// zero page and program locations used by the routines
const (
	zpDest      = 0x00
	zpCurY      = 0x04
	zpFrac      = 0x06
	zpLineCount = 0x18
	zpScreenHi  = 0x23
	zpFracDelta = 0x64
	zpXLimit    = 0x6a
	zpYLimit    = 0x6b
	zpColour1   = 0x80
	zpColour2   = 0x81

	// the line routines clear pixels instead of setting them when the
	// program has patched this location with an AND instruction
	colourMode = 0x5243
	opAND      = 0x3d
)

// bytes per line of the screen
const lineBytes = 40

// Hack is the Mercenary extension.
type Hack struct {
	env *environment.Environment
}

// New is the preferred method of initialisation for the Hack type.
func New(env *environment.Environment) *Hack {
	return &Hack{env: env}
}

// Name implements the extension.Extension interface.
func (h *Hack) Name() string {
	return Name
}

// Initialise implements the extension.Extension interface. Mercenary is
// never detected automatically.
func (h *Hack) Initialise() bool {
	return false
}

// InjectionList implements the extension.InjectionLister interface.
func (h *Hack) InjectionList() []uint16 {
	l := make([]uint16, 0, len(octants)+2)
	for _, o := range octants {
		l = append(l, o.pc)
	}
	return append(l, fillOneColour, fillTwoColour)
}

// CodeInjection implements the extension.CodeInjector interface.
func (h *Hack) CodeInjection(pc uint16, op uint8) uint8 {
	for _, o := range octants {
		if pc == o.pc {
			h.line(o)
			return atari.OpRTS
		}
	}

	switch pc {
	case fillOneColour:
		h.fillOne()
		return atari.OpRTS
	case fillTwoColour:
		h.fillTwo()
		h.env.Machine.CPU.PC = fillTwoColourResume
		return atari.OpNOP
	}

	return op
}

// draw a line from the X and Y registers to the limits in zero page
func (h *Hack) line(o octant) {
	mem := h.env.Mem()
	cpu := &h.env.Machine.CPU

	screen := int(mem[zpScreenHi])*0x100 + 0x10

	majorCur, minorCur := cpu.X, cpu.Y
	majorLimit := mem[zpXLimit]
	if !o.xMajor {
		majorCur, minorCur = cpu.Y, cpu.X
		majorLimit = mem[zpYLimit]
	}
	majorDelta := uint8(o.majorDelta)
	minorDelta := uint8(o.minorDelta)

	fracCur := mem[zpFrac]
	fracDelta := mem[zpFracDelta]

	clearPixels := mem[colourMode] == opAND

	for {
		curX, curY := majorCur, minorCur
		if !o.xMajor {
			curX, curY = minorCur, majorCur
		}

		mem[zpCurY] = curY

		adr := uint16(screen + lineBytes*int(curY) + int(curX/4))
		mask := uint8(0x03 << (2 * (3 - curX%4)))
		if clearPixels {
			mem[adr] &^= mask
		} else {
			// only the odd bits are set. this stops lines drawing over the sky
			mem[adr] |= mask & 0x55
		}

		if majorCur == majorLimit {
			break // for loop
		}
		majorCur += majorDelta

		fracNew := fracCur
		if o.fracNeg {
			fracNew -= fracDelta
			if fracNew > fracCur {
				minorCur += minorDelta
			}
		} else {
			fracNew += fracDelta
			if fracNew < fracCur {
				minorCur += minorDelta
			}
		}
		fracCur = fracNew

		if minorCur == o.minorLimit {
			break // for loop
		}
	}

	mem[zpFrac] = fracCur
	if o.xMajor {
		cpu.X, cpu.Y = majorCur, minorCur
	} else {
		cpu.X, cpu.Y = minorCur, majorCur
	}
}

// fill X lines with the value in the accumulator, starting at the address
// in zero page
func (h *Hack) fillOne() {
	mem := h.env.Mem()
	cpu := &h.env.Machine.CPU

	for y := 0; y < int(cpu.X); y++ {
		dst := mem.ReadWord(zpDest)
		for x := uint16(0); x < lineBytes; x++ {
			mem.Write(dst+x, cpu.A)
		}
		mem[zpLineCount]--
		mem.WriteWord(zpDest, dst+lineBytes)
	}
}

// fill a line with two colours. the accumulator is the position of the
// change from the first colour to the second
func (h *Hack) fillTwo() {
	mem := h.env.Mem()

	dst := mem.ReadWord(zpDest)
	change := 159 - int(h.env.Machine.CPU.A)
	c1 := mem[zpColour1]
	c2 := mem[zpColour2]

	c1bytes := change / 4
	c2bytes := lineBytes - c1bytes
	assert.That(c2bytes >= 0, "mercenary: two colour fill of %d bytes", c2bytes)

	for x := 0; x < c1bytes; x++ {
		mem.Write(dst+uint16(x), c1)
	}

	mask := uint8(0xff >> (2 * (change & 3)))
	mem.Write(dst+uint16(c1bytes), (c2&mask)|(c1&^mask))

	for x := 1; x < c2bytes; x++ {
		mem.Write(dst+uint16(c1bytes+x), c2)
	}
}
