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
	"github.com/atari800ext/a8ext/environment"
	lua "github.com/yuin/gopher-lua"
)

const soundType = "sound"

// ext_sound_load(path) and ext_sound_play(sound)
func (e *Engine) installSound() {
	L := e.ls

	mt := L.NewTypeMetatable(soundType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(checkSound(L, 1).Name()))
			return 1
		},
	}))

	L.SetGlobal("ext_sound_load", L.NewFunction(func(L *lua.LState) int {
		snd, err := e.player(L).Load(L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
		}
		pushUserData(L, snd, soundType)
		return 1
	}))

	L.SetGlobal("ext_sound_play", L.NewFunction(func(L *lua.LState) int {
		if err := e.player(L).Play(checkSound(L, 1)); err != nil {
			L.RaiseError("%v", err)
		}
		return 0
	}))
}

func (e *Engine) player(L *lua.LState) environment.SoundPlayer {
	if e.env.Sound == nil {
		L.RaiseError("no sound player")
	}
	return e.env.Sound
}

func checkSound(L *lua.LState, n int) environment.Sound {
	snd, ok := L.CheckUserData(n).Value.(environment.Sound)
	if !ok {
		L.ArgError(n, "sound expected")
	}
	return snd
}
