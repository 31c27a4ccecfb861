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
	"github.com/atari800ext/a8ext/overlay"
	lua "github.com/yuin/gopher-lua"
)

const (
	textureType  = "glt"
	modelType    = "glo"
	rendererType = "gl_api"
)

// the renderer API. textures and models are loaded with glt_load_rgba() and
// glo_load(). drawing is through the methods of the object returned by
// gl_api()
func (e *Engine) installRenderer() {
	L := e.ls

	mt := L.NewTypeMetatable(textureType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"width": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkTexture(L, 1).Width))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkTexture(L, 1).Height))
			return 1
		},
		"gl_id": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkTexture(L, 1).ID))
			return 1
		},
	}))

	mt = L.NewTypeMetatable(modelType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"render": func(L *lua.LState) int {
			m := checkModel(L, 1)
			e.renderer(L).DrawModel(m, e.tint)
			return 0
		},
	}))

	mt = L.NewTypeMetatable(rendererType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), e.rendererMethods()))

	L.SetGlobal("glt_load_rgba", L.NewFunction(func(L *lua.LState) int {
		img, err := overlay.LoadRGBA(L.CheckString(1), L.CheckInt(2), L.CheckInt(3))
		if err != nil {
			L.RaiseError("%v", err)
		}
		tex, err := e.renderer(L).Upload(img)
		if err != nil {
			L.RaiseError("%v", err)
		}
		pushUserData(L, tex, textureType)
		return 1
	}))

	L.SetGlobal("glo_load", L.NewFunction(func(L *lua.LState) int {
		m, err := overlay.LoadModel(L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
		}
		pushUserData(L, m, modelType)
		return 1
	}))

	L.SetGlobal("gl_api", L.NewFunction(func(L *lua.LState) int {
		pushUserData(L, e, rendererType)
		return 1
	}))
}

func (e *Engine) renderer(L *lua.LState) overlay.Renderer {
	if e.env.Renderer == nil {
		L.RaiseError("no renderer")
	}
	return e.env.Renderer
}

func pushUserData(L *lua.LState, v any, typ string) {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typ))
	L.Push(ud)
}

func checkTexture(L *lua.LState, n int) *overlay.Texture {
	tex, ok := L.CheckUserData(n).Value.(*overlay.Texture)
	if !ok {
		L.ArgError(n, "texture expected")
	}
	return tex
}

func checkModel(L *lua.LState, n int) *overlay.Model {
	m, ok := L.CheckUserData(n).Value.(*overlay.Model)
	if !ok {
		L.ArgError(n, "model expected")
	}
	return m
}

func checkFloat(L *lua.LState, n int) float32 {
	return float32(L.CheckNumber(n))
}

// methods are called with the colon syntax so the first argument is always
// the gl_api object
func (e *Engine) rendererMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"Begin": func(L *lua.LState) int {
			e.renderer(L).Begin()
			return 0
		},
		"End": func(L *lua.LState) int {
			e.renderer(L).End()
			return 0
		},
		"Color4f": func(L *lua.LState) int {
			e.tint = overlay.Colour{R: checkFloat(L, 2), G: checkFloat(L, 3), B: checkFloat(L, 4), A: checkFloat(L, 5)}
			e.renderer(L).Tint(e.tint)
			return 0
		},
		"Translatef": func(L *lua.LState) int {
			e.renderer(L).Translate(checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4))
			return 0
		},
		"Scalef": func(L *lua.LState) int {
			e.renderer(L).Scale(checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4))
			return 0
		},
		"Rotatef": func(L *lua.LState) int {
			e.renderer(L).Rotate(checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4), checkFloat(L, 5))
			return 0
		},
		"PushMatrix": func(L *lua.LState) int {
			e.renderer(L).PushMatrix()
			return 0
		},
		"PopMatrix": func(L *lua.LState) int {
			e.renderer(L).PopMatrix()
			return 0
		},
		"LoadIdentity": func(L *lua.LState) int {
			e.renderer(L).LoadIdentity()
			return 0
		},

		// Draw(texture, src left, top, right, bottom, dst left, top, right, bottom, z)
		"Draw": func(L *lua.LState) int {
			tex := checkTexture(L, 2)
			src := overlay.Rect{Left: checkFloat(L, 3), Top: checkFloat(L, 4), Right: checkFloat(L, 5), Bottom: checkFloat(L, 6)}
			dst := overlay.Rect{Left: checkFloat(L, 7), Top: checkFloat(L, 8), Right: checkFloat(L, 9), Bottom: checkFloat(L, 10)}
			e.renderer(L).Draw(tex, src, dst, float32(L.OptNumber(11, 0)))
			return 0
		},
	}
}
