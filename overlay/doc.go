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

// Package overlay is the drawing interface used by extensions to render on
// top of, or alongside, the emulator's raster output. The Renderer interface
// follows the fixed function model: a matrix stack, a tint colour and
// textured quads in the current projection.
//
// The glrender sub-package implements Renderer with OpenGL 2.1. The Recorder
// type in this package implements Renderer by recording every call, for
// testing and for dry runs of the extension hooks.
//
// Textures are created from image.RGBA values. LoadRGBA() reads the raw
// texture files used by the extensions and LoadModel() reads Wavefront OBJ
// models with their MTL material libraries.
package overlay
