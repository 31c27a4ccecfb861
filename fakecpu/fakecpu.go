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

package fakecpu

import (
	"errors"
	"io"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/logger"
)

// ErrStepLimit is wrapped by the violation raised when RunUntil() exceeds the
// sandbox's step limit.
var ErrStepLimit = errors.New("fakecpu: step limit exceeded")

// the machine state saved on Enter() and restored on Exit()
type snapshot struct {
	irq          bool
	wsyncHalt    bool
	curScreenPos int
	xpos         int
	xposLimit    int
	delayedWsync int
	trace        io.Writer
}

// Sandbox steps the machine one instruction at a time with the timing state
// forced to neutral values.
type Sandbox struct {
	m      *atari.Machine
	active bool
	saved  snapshot

	// maximum number of steps taken by RunUntil(). zero means no limit
	Limit int

	// number of StepOne() calls in the most recent session
	steps int
}

// NewSandbox is the preferred method of initialisation for the Sandbox type.
func NewSandbox(m *atari.Machine) *Sandbox {
	assert.NotNil("machine", m)
	return &Sandbox{m: m}
}

// Active returns true while the sandbox has been entered and not yet left.
func (sb *Sandbox) Active() bool {
	return sb.active
}

// Steps returns the number of instructions executed during the current or
// most recent session.
func (sb *Sandbox) Steps() int {
	return sb.steps
}

// Enter the sandbox, saving the state that StepOne() will override.
func (sb *Sandbox) Enter() {
	assert.That(!sb.active, "fakecpu: sandbox entered while already active")
	sb.active = true
	sb.steps = 0

	sb.saved = snapshot{
		irq:          sb.m.CPU.IRQ,
		wsyncHalt:    sb.m.Antic.WsyncHalt,
		curScreenPos: sb.m.Antic.CurScreenPos,
		xpos:         sb.m.Antic.Xpos,
		xposLimit:    sb.m.Antic.XposLimit,
		delayedWsync: sb.m.Antic.DelayedWsync,
		trace:        sb.m.Trace,
	}
}

// StepOne executes a single instruction.
func (sb *Sandbox) StepOne() {
	assert.That(sb.active, "fakecpu: step outside of sandbox")

	sb.m.CPU.IRQ = false
	sb.m.Antic.WsyncHalt = false
	sb.m.Antic.CurScreenPos = atari.NotDrawing
	sb.m.Antic.Xpos = 0
	sb.m.Antic.XposLimit = 1
	sb.m.Trace = nil

	sb.m.Step(1)
	sb.steps++
}

// Exit the sandbox, restoring the state saved by Enter().
func (sb *Sandbox) Exit() {
	assert.That(sb.active, "fakecpu: sandbox left while not active")

	sb.m.Antic.WsyncHalt = sb.saved.wsyncHalt
	sb.m.CPU.IRQ = sb.saved.irq
	sb.m.Antic.CurScreenPos = sb.saved.curScreenPos
	sb.m.Antic.Xpos = sb.saved.xpos
	sb.m.Antic.XposLimit = sb.saved.xposLimit
	sb.m.Antic.DelayedWsync = sb.saved.delayedWsync

	// trace writer is always restored last
	sb.m.Trace = sb.saved.trace

	sb.saved = snapshot{}
	sb.active = false
}

// Until describes the stop condition for RunUntil().
type Until struct {
	// stop when the program counter equals PC
	PC    uint16
	UsePC bool

	// stop when the byte at the program counter equals Opcode
	Opcode    uint8
	UseOpcode bool

	// execute one more instruction after the stop condition has been met
	After bool
}

// UntilPC stops when the program counter reaches pc.
func UntilPC(pc uint16) Until {
	return Until{PC: pc, UsePC: true}
}

// UntilOpcode stops when the next instruction is op.
func UntilOpcode(op uint8) Until {
	return Until{Opcode: op, UseOpcode: true}
}

// UntilAfterOpcode stops after the next instruction that is op has been
// executed.
func UntilAfterOpcode(op uint8) Until {
	return Until{Opcode: op, UseOpcode: true, After: true}
}

func (u Until) met(m *atari.Machine) bool {
	if u.UsePC && m.CPU.PC == u.PC {
		return true
	}
	if u.UseOpcode && m.Mem[m.CPU.PC] == u.Opcode {
		return true
	}
	return false
}

// RunUntil fast-forwards the machine until the stop condition is met. The
// program counter is rewound by one before the first step, so that the
// instruction that triggered the injection is executed. At least one step is
// always taken.
//
// The return value is always a NOP, which is suitable for returning from a
// code injection handler.
func (sb *Sandbox) RunUntil(u Until) uint8 {
	assert.That(u.UsePC || u.UseOpcode, "fakecpu: stop condition has neither pc nor opcode")

	sb.Enter()

	sb.m.CPU.PC--
	for {
		sb.StepOne()
		if u.met(sb.m) {
			break // for loop
		}
		if sb.Limit > 0 && sb.steps >= sb.Limit {
			pc := sb.m.CPU.PC
			sb.Exit()
			logger.Logf(logger.Allow, "fakecpu", "step limit of %d reached at %04x", sb.Limit, pc)
			assert.Wrap(ErrStepLimit, "fakecpu: no stop condition after %d steps (pc=%04x)", sb.Limit, pc)
		}
	}
	if u.After {
		sb.StepOne()
	}

	sb.Exit()

	return atari.OpNOP
}
