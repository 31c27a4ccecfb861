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

package paths

import (
	"strings"
	"time"
)

// layout of the timestamp in unique filenames
const uniqueLayout = "20060102_150405"

// UniqueFilename creates a filename from a prefix, a name and the current
// time. Whitespace and path separators are removed from the name. An empty
// name is omitted.
//
//	prefix_name_YYYYMMDD_HHMMSS
//	prefix_YYYYMMDD_HHMMSS
//
// The file is not checked for existence.
func UniqueFilename(prefix string, name string) string {
	parts := []string{prefix}

	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return -1
		}
		return r
	}, name)
	if n := strings.Join(strings.Fields(name), ""); n != "" {
		parts = append(parts, n)
	}

	parts = append(parts, time.Now().Format(uniqueLayout))
	return strings.Join(parts, "_")
}
