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
	"fmt"
	"io"
)

// 6502 opcodes returned by code injection handlers.
const (
	OpRTS = 0x60
	OpNOP = 0xEA
)

// NotDrawing is the value of Antic.CurScreenPos when the beam is not in the
// visible part of the screen.
const NotDrawing = -999

// Registers of the 6502.
type Registers struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8

	// interrupt request pending
	IRQ bool
}

func (r Registers) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x S=%02x P=%02x", r.PC, r.A, r.X, r.Y, r.S, r.P)
}

// Antic holds the timing state that decides whether the CPU is allowed to run
// in the current cycle.
type Antic struct {
	WsyncHalt    bool
	CurScreenPos int
	Xpos         int
	XposLimit    int
	DelayedWsync int

	// address of the current display list
	Dlist uint16
}

// GTIA colour registers.
type GTIA struct {
	COLBK uint8
	COLPF [4]uint8
	COLPM [4]uint8
}

// Stepper is implemented by the 6502 core. Step executes instructions until
// count cycles of the current scanline have elapsed. When the timing fields
// are forced to a cycle limit of one, as the fakecpu package does, a single
// call executes exactly one instruction.
type Stepper interface {
	Step(count int)
}

// StepperFunc adapts an ordinary function to the Stepper interface.
type StepperFunc func(count int)

// Step implements the Stepper interface.
func (f StepperFunc) Step(count int) {
	f(count)
}

// Machine is the shared emulator state.
type Machine struct {
	Mem    *Memory
	CPU    Registers
	Antic  Antic
	GTIA   GTIA
	Screen *Screen

	// monitor trace output. nil when tracing is disabled
	Trace io.Writer

	Stepper Stepper
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The stepper can be nil if the machine will never be stepped.
func NewMachine(stepper Stepper) *Machine {
	return &Machine{
		Mem:    &Memory{},
		Screen: NewScreen(),
		Antic: Antic{
			CurScreenPos: NotDrawing,
			XposLimit:    1,
		},
		Stepper: stepper,
	}
}

// Step the machine by count cycles.
func (m *Machine) Step(count int) {
	if m.Stepper == nil {
		panic("atari: machine has no stepper")
	}
	m.Stepper.Step(count)
}

// OpcodeAtPC returns the byte at the current program counter.
func (m *Machine) OpcodeAtPC() uint8 {
	return m.Mem[m.CPU.PC]
}
