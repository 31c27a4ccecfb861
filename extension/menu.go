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
	"github.com/atari800ext/a8ext/assert"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/menu"
)

// Frame is called once per frame by the emulator. If no extension is active
// and autodetection is enabled then AutoSelect() is run. If the user has
// requested the menu then ChooseExtensionMenu() is run with the driver.
func (hub *Hub) Frame(driver menu.Driver) {
	if hub.insideMenu {
		return
	}

	if hub.active == nil && hub.Autodetect.Get().(bool) {
		hub.AutoSelect()
	}

	if hub.env.MenuRequested() {
		hub.ChooseExtensionMenu(driver)
	}
}

func (hub *Hub) menuItems() []menu.Item {
	found := menu.Item{ID: MenuFoundExtension, Label: "Found extension:", Suffix: UnknownExtension}
	if hub.active != nil {
		found.Suffix = hub.active.Name()
	}

	items := []menu.Item{found}
	if c, ok := hub.active.(Configurable); ok {
		items = append(items, c.Config()...)
	}
	items = append(items, menu.Item{ID: MenuExit, Label: "EXIT"})

	return items
}

// cycle through the registered extensions and no extension
func (hub *Hub) nextExtension() {
	if len(hub.extensions) == 0 {
		return
	}

	if hub.active == nil {
		hub.SetActive(hub.extensions[0])
		return
	}

	for i, ext := range hub.extensions {
		if ext == hub.active {
			if i+1 < len(hub.extensions) {
				hub.SetActive(hub.extensions[i+1])
			} else {
				hub.SetActive(nil)
			}
			return
		}
	}
}

// ChooseExtensionMenu shows the extension menu until the user exits or
// cancels. If no extension is active, detection is run before the menu is
// shown. Choosing the "Found extension" item cycles through the registered
// extensions. All other choices are passed to the active extension.
//
// The frame hooks are suspended while the menu is open.
func (hub *Hub) ChooseExtensionMenu(driver menu.Driver) {
	if hub.insideMenu {
		return
	}
	assert.SameGoroutine(hub.owner, "hub")

	hub.AutoSelect()

	hub.insideMenu = true
	defer func() {
		hub.insideMenu = false
		if hub.OnMenuClose != nil {
			hub.OnMenuClose()
		}
	}()

	for {
		hub.menuOption = driver.Select("Extensions", hub.menuOption, hub.menuItems())
		if hub.menuOption < 0 || hub.menuOption == MenuExit {
			break // for loop
		}

		if hub.menuOption == MenuFoundExtension {
			hub.nextExtension()
			continue // for loop
		}

		if c, ok := hub.active.(Configurable); ok {
			c.HandleConfig(hub.menuOption)
		} else {
			logger.Logf(hub.env, "hub", "menu option %d ignored", hub.menuOption)
		}
	}

	hub.menuOption = MenuFoundExtension
}
