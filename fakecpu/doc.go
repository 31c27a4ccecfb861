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

// Package fakecpu runs emulated 6502 code synchronously, outside of the
// normal frame timing, so that a code injection handler can fast-forward a
// slow routine to a known return point.
//
// While the sandbox is active the interrupt line, the WSYNC halt and the beam
// position are forced so that every call to the stepper executes exactly one
// instruction with no interrupt and no raster side effects. Monitor tracing is
// suppressed. Everything is restored when the sandbox is left.
//
// The usual entry point is RunUntil(). The PC is rewound by one before
// stepping because the opcode that triggered the injection has already been
// fetched:
//
//	func (h *hack) CodeInjection(pc uint16, op uint8) uint8 {
//		if pc == 0x0090 {
//			return h.sandbox.RunUntil(fakecpu.UntilPC(0x00d5))
//		}
//		return op
//	}
//
// Entering an active sandbox and leaving an inactive one are contract
// violations and panic with an assert.Violation.
package fakecpu
