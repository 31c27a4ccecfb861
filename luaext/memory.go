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
	"github.com/atari800ext/a8ext/atari"
	lua "github.com/yuin/gopher-lua"
)

const memoryType = "barray"

// a8_memory() returns a userdata giving access to the machine's memory.
// Reading and writing is by index or with the get() and set() methods.
func (e *Engine) installMemory() {
	methods := map[string]lua.LGFunction{
		"get":  memoryGet,
		"set":  memorySet,
		"size": memorySize,
	}

	mt := e.ls.NewTypeMetatable(memoryType)
	e.ls.SetField(mt, "__index", e.ls.NewFunction(func(L *lua.LState) int {
		if name, ok := L.Get(2).(lua.LString); ok {
			if f, ok := methods[string(name)]; ok {
				L.Push(L.NewFunction(f))
				return 1
			}
			L.Push(lua.LNil)
			return 1
		}
		return memoryGet(L)
	}))
	e.ls.SetField(mt, "__newindex", e.ls.NewFunction(memorySet))
	e.ls.SetField(mt, "__len", e.ls.NewFunction(memorySize))

	e.ls.SetGlobal("a8_memory", e.ls.NewFunction(func(L *lua.LState) int {
		ud := L.NewUserData()
		ud.Value = e.env.Mem()
		L.SetMetatable(ud, L.GetTypeMetatable(memoryType))
		L.Push(ud)
		return 1
	}))
}

func checkMemory(L *lua.LState) *atari.Memory {
	ud := L.CheckUserData(1)
	mem, ok := ud.Value.(*atari.Memory)
	if !ok {
		L.ArgError(1, "memory expected")
	}
	return mem
}

func checkAddress(L *lua.LState, n int) uint16 {
	a := L.CheckInt(n)
	if a < 0 || a >= atari.MemorySize {
		L.ArgError(n, "address out of range")
	}
	return uint16(a)
}

func memoryGet(L *lua.LState) int {
	mem := checkMemory(L)
	L.Push(lua.LNumber(mem.Read(checkAddress(L, 2))))
	return 1
}

func memorySet(L *lua.LState) int {
	mem := checkMemory(L)
	a := checkAddress(L, 2)
	v := L.CheckInt(3)
	if v < 0 || v > 0xff {
		L.ArgError(3, "value out of range")
	}
	mem.Write(a, uint8(v))
	return 0
}

func memorySize(L *lua.LState) int {
	checkMemory(L)
	L.Push(lua.LNumber(atari.MemorySize))
	return 1
}
