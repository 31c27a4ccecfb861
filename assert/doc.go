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

// Package assert raises contract violations. A contract violation is a
// defect in the calling code, never a runtime condition: re-entering the
// fake-CPU sandbox, leaving it when it was never entered, registering an
// extension with missing parts and so on.
//
// Violations are raised with panic() and a value of type Violation. In
// production nothing recovers the panic and the process ends with the
// diagnostic. Test code and the command line harness can use Recover() to turn
// the violation back into an error:
//
//	err := assert.Recover(func() {
//		sb.Exit()
//	})
//	if errors.Is(err, assert.ErrViolation) {
//		...
//	}
package assert
