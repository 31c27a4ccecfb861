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

// Package logger is the central log for the extension host. Log entries are
// made with Log() and Logf(), either on a Logger instance or on the central
// logger through the package level functions.
//
// The first argument of every logging call is a Permission. The environment
// type satisfies the Permission interface and uses it to keep probing work,
// such as fingerprint checks on inactive extensions, out of the log.
//
//	logger.Logf(env, "hub", "activated %s", ext.Name())
//
// Where there is no environment available logger.Allow can be used.
package logger
