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

// Package tracefreq turns a monitor trace into a frequency map of executed
// addresses. Contiguous addresses with the same count are grouped into
// ranges, ordered by count and then address. The map is used to find the
// hot loops of a game that are candidates for code injection.
package tracefreq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrLine is returned when a trace line is not in the expected form.
var ErrLine = errors.New("tracefreq: unrecognised trace line")

// PC=XXXX: followed by three opcode columns. operand columns are blank for
// shorter instructions
var traceLine = regexp.MustCompile(`PC=([0-9a-fA-F]{4}): (..) (..) (..)`)

// Range of addresses with the same execution count.
type Range struct {
	From  uint16
	To    uint16
	Count int
}

func (r Range) String() string {
	return fmt.Sprintf("%6d  %04x .. %04x", r.Count, r.From, r.To)
}

// Map counts how many times each address has been fetched.
type Map struct {
	counts [0x10000]int
	lines  int
}

// NewMap is the preferred method of initialisation for the Map type.
func NewMap() *Map {
	return &Map{}
}

// Lines returns the number of trace lines read.
func (m *Map) Lines() int {
	return m.lines
}

// Count returns the number of fetches of the address.
func (m *Map) Count(address uint16) int {
	return m.counts[address]
}

// Read every line of a trace. Lines that are not trace lines are an error.
// Blank lines are ignored.
func (m *Map) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		l := scanner.Text()
		if strings.TrimSpace(l) == "" {
			continue // for loop
		}
		if err := m.Add(l); err != nil {
			return fmt.Errorf("%w (line %d)", err, n)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("tracefreq: %w", err)
	}
	return nil
}

// Add a single trace line to the map.
func (m *Map) Add(line string) error {
	match := traceLine.FindStringSubmatch(line)
	if match == nil {
		return fmt.Errorf("%w: %q", ErrLine, line)
	}

	pc, err := strconv.ParseUint(match[1], 16, 16)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrLine, line)
	}

	address := uint16(pc)
	m.counts[address]++
	if strings.TrimSpace(match[3]) != "" {
		m.counts[address+1]++
	}
	if strings.TrimSpace(match[4]) != "" {
		m.counts[address+2]++
	}
	m.lines++

	return nil
}

// Ranges returns the grouped frequency map, least frequent first.
func (m *Map) Ranges() []Range {
	type freq struct {
		address uint16
		count   int
	}

	var freqs []freq
	for a, c := range m.counts {
		if c > 0 {
			freqs = append(freqs, freq{address: uint16(a), count: c})
		}
	}

	sort.SliceStable(freqs, func(i, j int) bool {
		if freqs[i].count == freqs[j].count {
			return freqs[i].address < freqs[j].address
		}
		return freqs[i].count < freqs[j].count
	})

	var ranges []Range
	for _, f := range freqs {
		if len(ranges) > 0 {
			r := &ranges[len(ranges)-1]
			if r.Count == f.count && uint32(f.address) == uint32(r.To)+1 {
				r.To = f.address
				continue // for loop
			}
		}
		ranges = append(ranges, Range{From: f.address, To: f.address, Count: f.count})
	}

	return ranges
}

// Write the frequency map as a table.
func (m *Map) Write(w io.Writer) error {
	if _, err := io.WriteString(w, "  freq  from .. to\n"); err != nil {
		return fmt.Errorf("tracefreq: %w", err)
	}
	for _, r := range m.Ranges() {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return fmt.Errorf("tracefreq: %w", err)
		}
	}
	return nil
}
