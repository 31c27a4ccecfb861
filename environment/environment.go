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

package environment

import (
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/fakecpu"
	"github.com/atari800ext/a8ext/overlay"
	"github.com/atari800ext/a8ext/prefs"
)

// Label is used to name the environment
type Label string

// Controls is the keyboard state consulted by the extensions.
type Controls interface {
	// MenuRequested returns true if the extension menu key has been pressed
	// since the previous call
	MenuRequested() bool

	// AccelerationDisabled returns true while the key that suspends
	// acceleration is held down
	AccelerationDisabled() bool
}

// ScriptCaller calls a named function in the script engine.
type ScriptCaller interface {
	Call(fn string) error
}

// Sound is a decoded sound effect ready for playback.
type Sound interface {
	Name() string
}

// SoundPlayer plays sound effects on behalf of extensions.
type SoundPlayer interface {
	Load(path string) (Sound, error)
	Play(snd Sound) error
}

// Environment is used to provide context for the extensions. Everything an
// extension needs from the emulator is reached through this type.
type Environment struct {
	Label Label

	Machine *atari.Machine
	CPU     *fakecpu.Sandbox

	// the remaining fields are optional and can be nil
	Controls Controls
	Prefs    *prefs.Disk
	Renderer overlay.Renderer
	Scripts  ScriptCaller
	Sound    SoundPlayer

	// suppress logging from the extensions
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type. The machine argument must not be nil. A new Sandbox is created for the
// machine.
func NewEnvironment(label Label, m *atari.Machine) *Environment {
	return &Environment{
		Label:   label,
		Machine: m,
		CPU:     fakecpu.NewSandbox(m),
	}
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}

// Mem is a shortcut to the machine's memory.
func (env *Environment) Mem() *atari.Memory {
	return env.Machine.Mem
}

// AccelerationDisabled returns true if acceleration has been suspended by the
// user. It is safe to call when there are no controls.
func (env *Environment) AccelerationDisabled() bool {
	return env.Controls != nil && env.Controls.AccelerationDisabled()
}

// MenuRequested returns true if the user has asked for the menu. It is safe
// to call when there are no controls.
func (env *Environment) MenuRequested() bool {
	return env.Controls != nil && env.Controls.MenuRequested()
}

// AddPref registers a preference with the environment's preferences store.
// It does nothing if the environment has no store.
func (env *Environment) AddPref(key string, p prefs.Pref) error {
	if env.Prefs == nil {
		return nil
	}
	return env.Prefs.Add(key, p)
}

// IsMainEnvironment returns true if the environment is the main environment.
func (env *Environment) IsMainEnvironment() bool {
	return env.Label == ""
}
