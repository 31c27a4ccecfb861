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

// Package extension is the registry and dispatcher for game extensions. An
// extension recognises a single game from a fingerprint in memory and, once
// active, intercepts opcodes, draws before or after each frame and offers
// configuration options through the extension menu.
//
// The Hub type owns the list of registered extensions, the single active
// extension and the injection map built from the active extension's list of
// addresses. The emulator calls the Hub once per retired opcode
// (HandleCodeInjection) and once per frame (BeforeFrame, AfterFrame and
// Frame).
//
// Only the Extension interface is required. The remaining capabilities are
// optional and discovered with a type assertion:
//
//	CodeInjector     intercept opcodes
//	InjectionLister  restrict interception to a list of addresses
//	PreFrameHook     called before the frame is drawn
//	PostFrameHook    called after the frame is drawn
//	Configurable     options for the extension menu
package extension
