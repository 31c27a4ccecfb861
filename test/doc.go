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

// Package test bundles functions useful for testing, in conjunction with the
// standard go test harness.
//
// The Expect*() functions report a test error and let the test continue. The
// Demand*() functions end the test immediately. For both sets of functions the
// nil value is interpreted as success, because of how errors usually work
// (nil indicates no error).
//
// ExpectViolation() tests that a function raises a contract violation from the
// assert package.
//
// The RingWriter type implements the io.Writer interface and keeps only the
// most recent output. It is used to capture trace output.
package test
