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

// Package environment is the context passed to every extension. It bundles
// the emulator state (the machine and its fake-CPU sandbox) with the optional
// collaborators of the extensions: keyboard controls, preferences, the
// overlay renderer, the script engine and sound playback.
//
// The Environment type implements logger.Permission, so extensions log with
// their environment as the permission argument.
package environment
