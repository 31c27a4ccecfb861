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

package luaext

import (
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/logger"
	lua "github.com/yuin/gopher-lua"
)

// an extension defined by a script. detection is always by fingerprint
type script struct {
	e           *Engine
	name        string
	fingerprint extension.Fingerprint
}

func (s *script) Name() string {
	return s.name
}

func (s *script) Initialise() bool {
	return s.fingerprint.Match(s.e.env.Mem())
}

// a script extension with code injections
type injectingScript struct {
	script
	list []uint16
	fn   *lua.LFunction
}

func (s *injectingScript) InjectionList() []uint16 {
	return s.list
}

// CodeInjection calls the script's injection function with the program
// counter and opcode. Errors in the script are logged and the original
// opcode is executed. Contract violations are not script errors and are
// raised again once the interpreter has returned.
func (s *injectingScript) CodeInjection(pc uint16, op uint8) uint8 {
	L := s.e.ls
	err := L.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true}, lua.LNumber(pc), lua.LNumber(op))
	s.e.propagateViolation()
	if err != nil {
		logger.Logf(s.e.env, "luaext", "%s: %v", s.name, err)
		return op
	}

	ret := L.Get(-1)
	L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok || n < 0 || n > 0xff {
		logger.Logf(s.e.env, "luaext", "%s: injection function returned %v for %04x", s.name, ret, pc)
		return op
	}

	return uint8(n)
}

// ext_register{NAME, ENABLE_CHECK_ADDRESS, ENABLE_CHECK_FINGERPRINT,
// CODE_INJECTION_LIST, CODE_INJECTION_FUNCTION}
func (e *Engine) register(L *lua.LState) int {
	t := L.CheckTable(1)

	if e.hub == nil {
		L.RaiseError("ext_register: no extension hub")
	}

	name, ok := L.GetField(t, "NAME").(lua.LString)
	if !ok || name == "" {
		L.RaiseError("ext_register: NAME must be a non-empty string")
	}
	if _, ok := e.hub.Lookup(string(name)); ok {
		L.RaiseError("ext_register: %s is already registered", name)
	}

	s := script{e: e, name: string(name)}

	addr, ok := L.GetField(t, "ENABLE_CHECK_ADDRESS").(lua.LNumber)
	if !ok || addr < 0 || addr > 0xffff {
		L.RaiseError("ext_register: ENABLE_CHECK_ADDRESS must be an address")
	}
	s.fingerprint.Address = uint16(addr)

	s.fingerprint.Bytes = checkList[uint8](L, t, "ENABLE_CHECK_FINGERPRINT", 0xff, true)
	if len(s.fingerprint.Bytes) == 0 {
		L.RaiseError("ext_register: ENABLE_CHECK_FINGERPRINT is empty")
	}

	var fn *lua.LFunction
	switch v := L.GetField(t, "CODE_INJECTION_FUNCTION").(type) {
	case *lua.LNilType:
	case *lua.LFunction:
		fn = v
	default:
		L.RaiseError("ext_register: CODE_INJECTION_FUNCTION must be a function")
	}

	list := checkList[uint16](L, t, "CODE_INJECTION_LIST", 0xffff, false)

	if list != nil && fn == nil {
		L.RaiseError("ext_register: CODE_INJECTION_LIST without CODE_INJECTION_FUNCTION")
	}
	if list == nil && fn != nil {
		L.RaiseError("ext_register: CODE_INJECTION_FUNCTION without CODE_INJECTION_LIST")
	}

	if fn == nil {
		e.hub.Register(&s)
	} else {
		e.hub.Register(&injectingScript{script: s, list: list, fn: fn})
	}
	e.registered = append(e.registered, s.name)

	logger.Logf(e.env, "luaext", "registered %s (fingerprint %s)", s.name, s.fingerprint)

	return 0
}

// read a table field holding a list of numbers between 0 and max. returns nil
// if the field is nil and not required
func checkList[T uint8 | uint16](L *lua.LState, t *lua.LTable, field string, limit int, required bool) []T {
	v := L.GetField(t, field)
	if v == lua.LNil && !required {
		return nil
	}

	tbl, ok := v.(*lua.LTable)
	if !ok {
		L.RaiseError("ext_register: %s must be a table", field)
	}

	n := tbl.Len()
	if n == 0 {
		L.RaiseError("ext_register: %s is empty", field)
	}

	l := make([]T, 0, n)
	for i := 1; i <= n; i++ {
		v, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok || v < 0 || int(v) > limit {
			L.RaiseError("ext_register: %s entry %d is not between 0 and %d", field, i, limit)
		}
		l = append(l, T(v))
	}

	return l
}
