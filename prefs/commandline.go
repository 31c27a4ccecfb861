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

package prefs

import (
	"sort"
	"strings"
	"sync"
)

// a group of preference values given on the command line for one session.
// values are consumed as they are used so that the remainder can be reported
type clGroup map[string]string

func parseGroup(s string) clGroup {
	g := make(clGroup)
	for _, entry := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(entry, "::")
		if !ok || strings.Contains(value, "::") {
			continue // for loop
		}
		g[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return g
}

func (g clGroup) String() string {
	entries := make([]string, 0, len(g))
	for k, v := range g {
		entries = append(entries, k+"::"+v)
	}
	sort.Strings(entries)
	return strings.Join(entries, "; ")
}

var (
	clCrit  sync.Mutex
	clStack []clGroup
)

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	clCrit.Lock()
	defer clCrit.Unlock()
	return len(clStack)
}

// PushCommandLineStack parses a command line and adds it as a new group. The
// command line is of the form "key::value; key::value". Malformed entries are
// ignored.
func PushCommandLineStack(prefs string) {
	clCrit.Lock()
	defer clCrit.Unlock()
	clStack = append(clStack, parseGroup(prefs))
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). The values in the group that were never used are
// returned in the command line form, sorted by key.
func PopCommandLineStack() string {
	clCrit.Lock()
	defer clCrit.Unlock()

	if len(clStack) == 0 {
		return ""
	}

	top := clStack[len(clStack)-1]
	clStack = clStack[:len(clStack)-1]
	return top.String()
}

// GetCommandLinePref returns the value for key from the most recent group. A
// value can only be used once.
func GetCommandLinePref(key string) (bool, Value) {
	clCrit.Lock()
	defer clCrit.Unlock()

	if len(clStack) == 0 {
		return false, nil
	}

	top := clStack[len(clStack)-1]
	v, ok := top[key]
	if !ok {
		return false, nil
	}
	delete(top, key)

	return true, v
}
