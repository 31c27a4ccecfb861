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

package fakecpu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/fakecpu"
	"github.com/atari800ext/a8ext/test"
)

// incrementing stepper. records the timing state seen by each step and writes
// to the trace writer if there is one
type stepper struct {
	m     *atari.Machine
	steps int

	sawIRQ       bool
	sawWsync     bool
	sawDrawing   bool
	sawTrace     bool
	sawBadLimits bool
}

func (s *stepper) Step(count int) {
	s.steps++
	if s.m.CPU.IRQ {
		s.sawIRQ = true
	}
	if s.m.Antic.WsyncHalt {
		s.sawWsync = true
	}
	if s.m.Antic.CurScreenPos != atari.NotDrawing {
		s.sawDrawing = true
	}
	if s.m.Antic.Xpos != 0 || s.m.Antic.XposLimit != 1 || count != 1 {
		s.sawBadLimits = true
	}
	if s.m.Trace != nil {
		s.sawTrace = true
		fmt.Fprintf(s.m.Trace, "PC=%04x\n", s.m.CPU.PC)
	}
	s.m.CPU.PC++
}

func newMachine() (*atari.Machine, *stepper) {
	s := &stepper{}
	m := atari.NewMachine(s)
	s.m = m
	return m, s
}

// non-neutral timing state that the sandbox must preserve
func dirty(t *testing.T, m *atari.Machine) *test.RingWriter {
	t.Helper()
	w, err := test.NewRingWriter(100)
	test.DemandSuccess(t, err)

	m.CPU.IRQ = true
	m.Antic.WsyncHalt = true
	m.Antic.CurScreenPos = 42
	m.Antic.Xpos = 17
	m.Antic.XposLimit = 114
	m.Antic.DelayedWsync = 3
	m.Trace = w
	return w
}

func expectRestored(t *testing.T, m *atari.Machine, w *test.RingWriter) {
	t.Helper()
	test.ExpectEquality(t, m.CPU.IRQ, true)
	test.ExpectEquality(t, m.Antic.WsyncHalt, true)
	test.ExpectEquality(t, m.Antic.CurScreenPos, 42)
	test.ExpectEquality(t, m.Antic.Xpos, 17)
	test.ExpectEquality(t, m.Antic.XposLimit, 114)
	test.ExpectEquality(t, m.Antic.DelayedWsync, 3)
	test.ExpectEquality(t, m.Trace == w, true)
}

func TestRoundTrip(t *testing.T) {
	m, s := newMachine()
	w := dirty(t, m)
	sb := fakecpu.NewSandbox(m)

	sb.Enter()
	test.ExpectEquality(t, sb.Active(), true)
	sb.Exit()
	test.ExpectEquality(t, sb.Active(), false)
	test.ExpectEquality(t, s.steps, 0)
	expectRestored(t, m, w)
}

func TestIsolation(t *testing.T) {
	m, s := newMachine()
	w := dirty(t, m)
	sb := fakecpu.NewSandbox(m)

	sb.Enter()
	for i := 0; i < 10; i++ {
		sb.StepOne()
	}
	sb.Exit()

	test.ExpectEquality(t, s.steps, 10)
	test.ExpectEquality(t, sb.Steps(), 10)
	test.ExpectEquality(t, s.sawIRQ, false)
	test.ExpectEquality(t, s.sawWsync, false)
	test.ExpectEquality(t, s.sawDrawing, false)
	test.ExpectEquality(t, s.sawBadLimits, false)
	test.ExpectEquality(t, s.sawTrace, false)
	test.ExpectEquality(t, w.String(), "")
	expectRestored(t, m, w)

	// tracing outside of the sandbox is unaffected
	m.Step(1)
	test.ExpectEquality(t, s.sawTrace, true)
}

func TestRunUntilPC(t *testing.T) {
	m, s := newMachine()
	w := dirty(t, m)
	sb := fakecpu.NewSandbox(m)

	m.CPU.PC = 0x0091
	op := sb.RunUntil(fakecpu.UntilPC(0x00d5))

	test.ExpectEquality(t, op, atari.OpNOP)
	test.ExpectEquality(t, m.CPU.PC, 0x00d5)

	// the PC is rewound to 0x0090 before stepping so that the instruction
	// at the injection address is executed. that makes 69 steps from a start
	// of 0x0091, not 68
	test.ExpectEquality(t, s.steps, 0x00d5-0x0090)
	test.ExpectEquality(t, sb.Active(), false)
	expectRestored(t, m, w)
}

func TestRunUntilAlwaysSteps(t *testing.T) {
	m, s := newMachine()
	sb := fakecpu.NewSandbox(m)

	// the stop opcode is at the rewound PC but is not checked until after the
	// first step
	m.CPU.PC = 0x1001
	m.Mem.Write(0x1000, atari.OpRTS)
	m.Mem.Write(0x1001, atari.OpRTS)
	sb.RunUntil(fakecpu.UntilOpcode(atari.OpRTS))
	test.ExpectEquality(t, s.steps, 1)
	test.ExpectEquality(t, m.CPU.PC, 0x1001)
}

func TestRunUntilOpcode(t *testing.T) {
	m, s := newMachine()
	sb := fakecpu.NewSandbox(m)

	m.Mem.Write(0xb530, atari.OpRTS)
	m.CPU.PC = 0xb51d
	op := sb.RunUntil(fakecpu.UntilOpcode(atari.OpRTS))
	test.ExpectEquality(t, op, atari.OpNOP)
	test.ExpectEquality(t, m.CPU.PC, 0xb530)
	test.ExpectEquality(t, s.steps, 0xb530-0xb51c)
}

func TestRunUntilAfterOpcode(t *testing.T) {
	m, s := newMachine()
	sb := fakecpu.NewSandbox(m)

	m.Mem.Write(0x2010, atari.OpRTS)
	m.CPU.PC = 0x2001
	sb.RunUntil(fakecpu.UntilAfterOpcode(atari.OpRTS))
	test.ExpectEquality(t, m.CPU.PC, 0x2011)
	test.ExpectEquality(t, s.steps, 0x2011-0x2000)
}

func TestRunUntilEither(t *testing.T) {
	m, _ := newMachine()
	sb := fakecpu.NewSandbox(m)

	// opcode is reached before the pc
	m.Mem.Write(0x3005, atari.OpRTS)
	m.CPU.PC = 0x3001
	sb.RunUntil(fakecpu.Until{PC: 0x3010, UsePC: true, Opcode: atari.OpRTS, UseOpcode: true})
	test.ExpectEquality(t, m.CPU.PC, 0x3005)
}

func TestContractViolations(t *testing.T) {
	m, _ := newMachine()
	sb := fakecpu.NewSandbox(m)

	test.ExpectViolation(t, func() {
		sb.Exit()
	})
	test.ExpectViolation(t, func() {
		sb.StepOne()
	})

	sb.Enter()
	test.ExpectViolation(t, func() {
		sb.Enter()
	})
	test.ExpectViolation(t, func() {
		sb.RunUntil(fakecpu.UntilPC(0x1000))
	})
	sb.Exit()

	test.ExpectViolation(t, func() {
		sb.RunUntil(fakecpu.Until{})
	})
	test.ExpectEquality(t, sb.Active(), false)
}

func TestStepLimit(t *testing.T) {
	m, s := newMachine()
	w := dirty(t, m)
	sb := fakecpu.NewSandbox(m)
	sb.Limit = 50

	m.CPU.PC = 0x4001
	err := assert.Recover(func() {
		sb.RunUntil(fakecpu.UntilPC(0x4000))
	})
	test.ExpectEquality(t, errors.Is(err, assert.ErrViolation), true)
	test.ExpectEquality(t, errors.Is(err, fakecpu.ErrStepLimit), true)
	test.ExpectEquality(t, s.steps, 50)

	// the sandbox was left before the violation was raised
	test.ExpectEquality(t, sb.Active(), false)
	expectRestored(t, m, w)
}
