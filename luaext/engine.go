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

// Package luaext runs Lua scripts that define extensions and draw over the
// emulator's output. Scripts register extensions with ext_register() and the
// engine can call global functions on behalf of the native extensions, such
// as the frame function used by the Yoomp! hack.
//
// The engine is not safe for concurrent use. It must be driven from the
// goroutine that owns the extension hub.
package luaext

import (
	"errors"
	"fmt"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/fakecpu"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/overlay"
	lua "github.com/yuin/gopher-lua"
)

// ErrScript is wrapped by all errors returned from running script code.
var ErrScript = errors.New("luaext")

// Engine is a Lua interpreter with the extension API installed.
type Engine struct {
	env *environment.Environment
	hub *extension.Hub
	ls  *lua.LState

	// colour used by the renderer API for models and textures
	tint overlay.Colour

	// extensions registered by scripts, in registration order
	registered []string

	// a contract violation raised by Go code called from the script. the Lua
	// interpreter turns panics into script errors so the violation is held
	// here until control returns from the interpreter
	violation error
}

// NewEngine is the preferred method of initialisation for the Engine type.
// The hub argument can be nil, in which case scripts cannot register
// extensions.
func NewEngine(env *environment.Environment, hub *extension.Hub) *Engine {
	e := &Engine{
		env:  env,
		hub:  hub,
		ls:   lua.NewState(),
		tint: overlay.White,
	}

	e.installMemory()
	e.installRenderer()
	e.installSound()

	e.ls.SetGlobal("antic_dlist", e.ls.NewFunction(e.anticDlist))
	e.ls.SetGlobal("ext_register", e.ls.NewFunction(e.register))
	e.ls.SetGlobal("ext_fakecpu_until_op", e.ls.NewFunction(e.fakecpuUntilOp))
	e.ls.SetGlobal("OP_RTS", lua.LNumber(atari.OpRTS))
	e.ls.SetGlobal("OP_NOP", lua.LNumber(atari.OpNOP))

	return e
}

// Close the interpreter. The engine can not be used after this.
func (e *Engine) Close() {
	e.ls.Close()
}

// Registered returns the names of the extensions registered by scripts.
func (e *Engine) Registered() []string {
	return e.registered
}

// RunFile runs the Lua script in the named file.
func (e *Engine) RunFile(path string) error {
	logger.Logf(e.env, "luaext", "running %s", path)
	err := e.ls.DoFile(path)
	e.propagateViolation()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, path, err)
	}
	return nil
}

// RunString runs a fragment of Lua code.
func (e *Engine) RunString(src string) error {
	err := e.ls.DoString(src)
	e.propagateViolation()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return nil
}

// Call implements the environment.ScriptCaller interface. The named global
// function is called with no arguments.
func (e *Engine) Call(fn string) error {
	f, ok := e.ls.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("%w: %s is not a function", ErrScript, fn)
	}
	err := e.ls.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true})
	e.propagateViolation()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, fn, err)
	}
	return nil
}

func (e *Engine) anticDlist(L *lua.LState) int {
	L.Push(lua.LNumber(e.env.Machine.Antic.Dlist))
	return 1
}

func (e *Engine) fakecpuUntilOp(L *lua.LState) int {
	op := L.CheckInt(1)
	if op < 0 || op > 0xff {
		L.ArgError(1, "opcode out of range")
	}
	if e.env.CPU.Active() {
		L.RaiseError("fake CPU is already running")
	}

	var ret uint8
	if err := assert.Recover(func() {
		ret = e.env.CPU.RunUntil(fakecpu.UntilOpcode(uint8(op)))
	}); err != nil {
		e.violation = err
		L.RaiseError("%v", err)
	}

	L.Push(lua.LNumber(ret))
	return 1
}

// panic with any violation raised while the interpreter was running. must be
// called after every protected call into the interpreter
func (e *Engine) propagateViolation() {
	if e.violation == nil {
		return
	}
	err := e.violation
	e.violation = nil
	panic(err)
}
