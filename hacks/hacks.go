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

// Package hacks registers the built-in game extensions with an extension hub.
// Each game has its own sub-package.
//
//	yoomp      Yoomp! background and ball overlay
//	mercenary  Mercenary line drawing and fills (manual activation only)
//	zybex      Zybex frame rate and background gradient
//	altreal    Alternate Reality: The Dungeon acceleration
//	bjl        Behind Jaggi Lines acceleration
//	riverraid  River Raid flat and perspective views
package hacks

import (
	"fmt"

	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/hacks/altreal"
	"github.com/atari800ext/a8ext/hacks/bjl"
	"github.com/atari800ext/a8ext/hacks/mercenary"
	"github.com/atari800ext/a8ext/hacks/riverraid"
	"github.com/atari800ext/a8ext/hacks/yoomp"
	"github.com/atari800ext/a8ext/hacks/zybex"
)

// New creates every built-in extension in registration order.
func New(env *environment.Environment) ([]extension.Extension, error) {
	y, err := yoomp.New(env)
	if err != nil {
		return nil, fmt.Errorf("hacks: %w", err)
	}
	z, err := zybex.New(env)
	if err != nil {
		return nil, fmt.Errorf("hacks: %w", err)
	}
	a, err := altreal.New(env)
	if err != nil {
		return nil, fmt.Errorf("hacks: %w", err)
	}
	b, err := bjl.New(env)
	if err != nil {
		return nil, fmt.Errorf("hacks: %w", err)
	}

	return []extension.Extension{
		y,
		mercenary.New(env),
		z,
		a,
		b,
		riverraid.New(env),
	}, nil
}

// RegisterAll creates every built-in extension and registers them with the
// hub.
func RegisterAll(hub *extension.Hub, env *environment.Environment) error {
	exts, err := New(env)
	if err != nil {
		return err
	}
	for _, ext := range exts {
		hub.Register(ext)
	}
	return nil
}
