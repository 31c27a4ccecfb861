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

package extension_test

import (
	"errors"
	"testing"

	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/test"
)

// plain extension with no optional capabilities
type plainExt struct {
	name  string
	match bool
	calls int
}

func (ext *plainExt) Name() string {
	return ext.name
}

func (ext *plainExt) Initialise() bool {
	ext.calls++
	return ext.match
}

// extension with every optional capability
type fullExt struct {
	plainExt
	list []uint16

	injections int
	lastPC     uint16
	preFrame   int
	postFrame  int

	option  bool
	handled []int
}

func (ext *fullExt) InjectionList() []uint16 {
	return ext.list
}

func (ext *fullExt) CodeInjection(pc uint16, op uint8) uint8 {
	ext.injections++
	ext.lastPC = pc
	return atari.OpRTS
}

func (ext *fullExt) PreFrame() {
	ext.preFrame++
}

func (ext *fullExt) PostFrame() {
	ext.postFrame++
}

func (ext *fullExt) Config() []menu.Item {
	return []menu.Item{{ID: 1, Label: "Option:", Suffix: menu.OnOff(ext.option)}}
}

func (ext *fullExt) HandleConfig(id int) {
	ext.handled = append(ext.handled, id)
	if id == 1 {
		ext.option = !ext.option
	}
}

// extension with an injection list but no handler
type listOnly struct {
	plainExt
}

func (ext *listOnly) InjectionList() []uint16 {
	return []uint16{0x1000}
}

// keyboard controls with a menu request that is consumed when read
type controls struct {
	menu    bool
	disable bool
}

func (c *controls) MenuRequested() bool {
	m := c.menu
	c.menu = false
	return m
}

func (c *controls) AccelerationDisabled() bool {
	return c.disable
}

func newHub(t *testing.T) (*extension.Hub, *environment.Environment) {
	t.Helper()
	m := atari.NewMachine(atari.StepperFunc(func(int) {}))
	env := environment.NewEnvironment("test", m)
	env.Quiet = true
	hub, err := extension.NewHub(env)
	test.DemandSuccess(t, err)
	return hub, env
}

func TestDispatchFiltered(t *testing.T) {
	hub, _ := newHub(t)
	ext := &fullExt{plainExt: plainExt{name: "filtered"}, list: []uint16{0x1000, 0x2000}}
	hub.Register(ext)
	hub.SetActive(ext)

	test.ExpectEquality(t, hub.Injection().Filtered(), true)
	test.ExpectEquality(t, hub.Injection().Len(), 2)

	test.ExpectEquality(t, hub.HandleCodeInjection(0x3000, atari.OpNOP), uint8(atari.OpNOP))
	test.ExpectEquality(t, ext.injections, 0)

	test.ExpectEquality(t, hub.HandleCodeInjection(0x2000, 0x20), uint8(atari.OpRTS))
	test.ExpectEquality(t, ext.injections, 1)
	test.ExpectEquality(t, ext.lastPC, uint16(0x2000))

	test.ExpectEquality(t, hub.Stats().Opcodes, uint64(2))
	test.ExpectEquality(t, hub.Stats().Injections, uint64(1))
}

func TestDispatchUnfiltered(t *testing.T) {
	hub, _ := newHub(t)
	ext := &fullExt{plainExt: plainExt{name: "unfiltered"}}
	hub.Register(ext)
	hub.SetActive(ext)

	test.ExpectEquality(t, hub.Injection().Filtered(), false)

	for _, pc := range []uint16{0x0000, 0x1234, 0x3000, 0xffff} {
		test.ExpectEquality(t, hub.HandleCodeInjection(pc, atari.OpNOP), uint8(atari.OpRTS))
	}
	test.ExpectEquality(t, ext.injections, 4)
}

func TestDispatchPassthrough(t *testing.T) {
	hub, env := newHub(t)

	// no active extension
	test.ExpectEquality(t, hub.HandleCodeInjection(0x1000, 0x20), uint8(0x20))

	// active extension without a handler
	plain := &plainExt{name: "plain"}
	hub.Register(plain)
	hub.SetActive(plain)
	test.ExpectEquality(t, hub.HandleCodeInjection(0x1000, 0x20), uint8(0x20))

	// opcodes retired by the sandbox are not intercepted
	ext := &fullExt{plainExt: plainExt{name: "full"}}
	hub.Register(ext)
	hub.SetActive(ext)
	env.CPU.Enter()
	test.ExpectEquality(t, hub.HandleCodeInjection(0x1000, 0x20), uint8(0x20))
	env.CPU.Exit()
	test.ExpectEquality(t, ext.injections, 0)

	test.ExpectEquality(t, hub.HandleCodeInjection(0x1000, 0x20), uint8(atari.OpRTS))
	test.ExpectEquality(t, ext.injections, 1)
}

func TestMapRebuiltOnChange(t *testing.T) {
	hub, _ := newHub(t)
	a := &fullExt{plainExt: plainExt{name: "a"}, list: []uint16{0x1000}}
	b := &fullExt{plainExt: plainExt{name: "b"}, list: []uint16{0x2000, 0x2001}}
	hub.Register(a)
	hub.Register(b)

	hub.SetActive(a)
	test.ExpectEquality(t, hub.Injection().Consult(0x1000), true)
	test.ExpectEquality(t, hub.Injection().Consult(0x2000), false)

	hub.SetActive(b)
	test.ExpectEquality(t, hub.Injection().Consult(0x1000), false)
	test.ExpectEquality(t, hub.Injection().Consult(0x2001), true)

	hub.SetActive(nil)
	test.ExpectEquality(t, hub.Active() == nil, true)
	test.ExpectEquality(t, hub.Injection().Filtered(), false)
	test.ExpectEquality(t, hub.Stats().Changes, uint64(3))
}

func TestAutoSelect(t *testing.T) {
	hub, _ := newHub(t)
	first := &plainExt{name: "first"}
	second := &plainExt{name: "second", match: true}
	third := &plainExt{name: "third", match: true}
	hub.Register(first)
	hub.Register(second)
	hub.Register(third)

	test.ExpectEquality(t, hub.AutoSelect(), extension.Extension(second))
	test.ExpectEquality(t, first.calls, 1)
	test.ExpectEquality(t, second.calls, 1)
	test.ExpectEquality(t, third.calls, 0)

	// already active so no rescan
	test.ExpectEquality(t, hub.AutoSelect(), extension.Extension(second))
	test.ExpectEquality(t, first.calls, 1)
	test.ExpectEquality(t, second.calls, 1)

	// no match
	hub, _ = newHub(t)
	hub.Register(&plainExt{name: "none"})
	test.ExpectEquality(t, hub.AutoSelect() == nil, true)
}

func TestRegisterViolations(t *testing.T) {
	hub, _ := newHub(t)

	test.ExpectViolation(t, func() {
		hub.Register(nil)
	})
	test.ExpectViolation(t, func() {
		hub.Register(&plainExt{})
	})
	test.ExpectViolation(t, func() {
		hub.Register(&listOnly{plainExt: plainExt{name: "list only"}})
	})
	test.ExpectEquality(t, len(hub.Extensions()), 0)

	// activating an extension that has not been registered
	test.ExpectViolation(t, func() {
		hub.SetActive(&plainExt{name: "stranger"})
	})

	hub.Register(&plainExt{name: "ok"})
	_, ok := hub.Lookup("ok")
	test.ExpectEquality(t, ok, true)
	_, ok = hub.Lookup("missing")
	test.ExpectEquality(t, ok, false)
}

func TestFrameHooks(t *testing.T) {
	hub, _ := newHub(t)

	// no active extension
	hub.BeforeFrame()
	hub.AfterFrame()

	ext := &fullExt{plainExt: plainExt{name: "hooks"}}
	hub.Register(ext)
	hub.SetActive(ext)

	hub.BeforeFrame()
	hub.AfterFrame()
	test.ExpectEquality(t, ext.preFrame, 1)
	test.ExpectEquality(t, ext.postFrame, 1)
}

// driver that runs the frame hooks while the menu is open
type framingDriver struct {
	hub     *extension.Hub
	inside  bool
	choices []int
}

func (d *framingDriver) Select(title string, current int, items []menu.Item) int {
	d.inside = d.hub.InsideMenu()
	d.hub.BeforeFrame()
	d.hub.AfterFrame()
	d.hub.Frame(d)
	if len(d.choices) == 0 {
		return menu.Cancel
	}
	c := d.choices[0]
	d.choices = d.choices[1:]
	return c
}

func TestFrameHooksSuspendedInMenu(t *testing.T) {
	hub, _ := newHub(t)
	ext := &fullExt{plainExt: plainExt{name: "hooks"}}
	hub.Register(ext)
	hub.SetActive(ext)

	closed := 0
	hub.OnMenuClose = func() {
		closed++
	}

	d := &framingDriver{hub: hub, choices: []int{1, 1}}
	hub.ChooseExtensionMenu(d)

	test.ExpectEquality(t, d.inside, true)
	test.ExpectEquality(t, ext.preFrame, 0)
	test.ExpectEquality(t, ext.postFrame, 0)
	test.ExpectEquality(t, len(ext.handled), 2)
	test.ExpectEquality(t, hub.InsideMenu(), false)
	test.ExpectEquality(t, closed, 1)

	hub.BeforeFrame()
	test.ExpectEquality(t, ext.preFrame, 1)
}

func TestHubOwnership(t *testing.T) {
	hub, _ := newHub(t)
	ext := &plainExt{name: "owned"}
	hub.Register(ext)

	done := make(chan error)
	go func() {
		done <- assert.Recover(func() {
			hub.SetActive(ext)
		})
	}()
	err := <-done
	test.ExpectEquality(t, errors.Is(err, assert.ErrViolation), true)
	test.ExpectEquality(t, hub.Active() == nil, true)
}
