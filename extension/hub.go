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

package extension

import (
	"fmt"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/injection"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/prefs"
)

// Stats are counters maintained by the Hub.
type Stats struct {
	// number of calls to HandleCodeInjection()
	Opcodes uint64

	// number of calls that reached the active extension's handler
	Injections uint64

	// number of calls to BeforeFrame()
	Frames uint64

	// number of times the active extension has changed
	Changes uint64
}

// Hub is the extension registry and dispatcher.
type Hub struct {
	env *environment.Environment

	// the goroutine that created the hub. the hub is not safe for use by
	// other goroutines
	owner uint64

	extensions []Extension

	active   Extension
	injector CodeInjector

	injection injection.Map

	insideMenu bool

	// the menu option chosen most recently
	menuOption int

	stats Stats

	// run AutoSelect() at the start of every frame while no extension is
	// active
	Autodetect prefs.Bool

	// maximum number of instructions in a single fast-forward. zero is no
	// limit
	StepLimit prefs.Int

	// called when the extension menu is closed. the default saves the
	// environment's preferences
	OnMenuClose func()
}

// NewHub is the preferred method of initialisation for the Hub type. The
// hub's preferences are added to the environment's preferences if the
// environment has them.
func NewHub(env *environment.Environment) (*Hub, error) {
	assert.NotNil("environment", env)
	assert.NotNil("sandbox", env.CPU)

	hub := &Hub{
		env:        env,
		owner:      assert.GoroutineID(),
		menuOption: MenuFoundExtension,
	}

	hub.Autodetect.Set(true)
	hub.StepLimit.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("hub: step limit cannot be negative")
		}
		return nil
	})
	hub.StepLimit.SetHookPost(func(v prefs.Value) error {
		hub.env.CPU.Limit = v.(int)
		return nil
	})

	if err := env.AddPref("hub.autodetect", &hub.Autodetect); err != nil {
		return nil, fmt.Errorf("hub: %w", err)
	}
	if err := env.AddPref("hub.steplimit", &hub.StepLimit); err != nil {
		return nil, fmt.Errorf("hub: %w", err)
	}

	hub.OnMenuClose = func() {
		if env.Prefs == nil {
			return
		}
		if err := env.Prefs.Save(); err != nil {
			logger.Log(env, "hub", err)
		}
	}

	return hub, nil
}

// Register adds an extension to the end of the registry. Registration order
// is the order in which AutoSelect() tries the extensions.
func (hub *Hub) Register(ext Extension) {
	assert.NotNil("extension", ext)
	assert.That(ext.Name() != "", "hub: extension has no name")

	if l, ok := ext.(InjectionLister); ok && len(l.InjectionList()) > 0 {
		_, ok := ext.(CodeInjector)
		assert.That(ok, "hub: %s has an injection list but no injection handler", ext.Name())
	}

	hub.extensions = append(hub.extensions, ext)
}

// Extensions returns the registered extensions in registration order.
func (hub *Hub) Extensions() []Extension {
	return hub.extensions
}

// Lookup returns the registered extension with the specified name.
func (hub *Hub) Lookup(name string) (Extension, bool) {
	for _, ext := range hub.extensions {
		if ext.Name() == name {
			return ext, true
		}
	}
	return nil, false
}

// Active returns the active extension. Returns nil if no extension is
// active.
func (hub *Hub) Active() Extension {
	return hub.active
}

// Injection returns the injection map built for the active extension.
func (hub *Hub) Injection() *injection.Map {
	return &hub.injection
}

// Stats returns a copy of the hub's counters.
func (hub *Hub) Stats() Stats {
	return hub.stats
}

// InsideMenu returns true while the extension menu is open.
func (hub *Hub) InsideMenu() bool {
	return hub.insideMenu
}

// AutoSelect activates the first registered extension that recognises the
// program in memory. It does nothing if an extension is already active. The
// active extension is returned.
func (hub *Hub) AutoSelect() Extension {
	if hub.active != nil {
		return hub.active
	}

	for _, ext := range hub.extensions {
		if ext.Initialise() {
			hub.SetActive(ext)
			break // for loop
		}
	}

	return hub.active
}

// SetActive makes the extension the active extension and rebuilds the
// injection map. The extension must have been registered. A nil extension
// leaves the hub with no active extension.
func (hub *Hub) SetActive(ext Extension) {
	assert.SameGoroutine(hub.owner, "hub")

	if ext != nil {
		registered := false
		for _, e := range hub.extensions {
			if e == ext {
				registered = true
				break // for loop
			}
		}
		assert.That(registered, "hub: %s has not been registered", ext.Name())
	}

	hub.active = ext
	hub.injector = nil
	hub.stats.Changes++

	if ext == nil {
		hub.injection.Reset()
		logger.Log(hub.env, "hub", "active extension: -none-")
		return
	}

	hub.injector, _ = ext.(CodeInjector)

	var list []uint16
	if l, ok := ext.(InjectionLister); ok {
		list = l.InjectionList()
	}
	hub.injection.Rebuild(list)

	logger.Logf(hub.env, "hub", "active extension: %s (%d code injections)", ext.Name(), hub.injection.Len())
}

// HandleCodeInjection is called by the CPU for every opcode. The returned
// opcode is executed in place of op.
func (hub *Hub) HandleCodeInjection(pc uint16, op uint8) uint8 {
	hub.stats.Opcodes++

	// opcodes executed by the sandbox are never intercepted
	if hub.env.CPU.Active() {
		return op
	}

	if hub.injector == nil {
		return op
	}

	if !hub.injection.Consult(pc) {
		return op
	}

	hub.stats.Injections++
	return hub.injector.CodeInjection(pc, op)
}

// BeforeFrame calls the active extension's PreFrame() hook.
func (hub *Hub) BeforeFrame() {
	hub.stats.Frames++
	if hub.insideMenu {
		return
	}
	if h, ok := hub.active.(PreFrameHook); ok {
		h.PreFrame()
	}
}

// AfterFrame calls the active extension's PostFrame() hook.
func (hub *Hub) AfterFrame() {
	if hub.insideMenu {
		return
	}
	if h, ok := hub.active.(PostFrameHook); ok {
		h.PostFrame()
	}
}
