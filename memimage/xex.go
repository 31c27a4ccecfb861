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

package memimage

import (
	"encoding/binary"
	"fmt"

	"github.com/atari800ext/a8ext/atari"
)

// address of the run vector in an executable
const runVector = 0x02e0

// IsExecutable returns true if the data begins with the executable header.
func IsExecutable(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xff && data[1] == 0xff
}

// LoadExecutable copies every segment of an Atari executable into memory
// and returns the run address. Segments after the first can omit the 0xffff
// header.
func LoadExecutable(mem *atari.Memory, data []byte) (uint16, error) {
	if !IsExecutable(data) {
		return 0, fmt.Errorf("%w: missing executable header", ErrFormat)
	}

	var run uint16
	segments := 0

	for len(data) > 0 {
		if IsExecutable(data) {
			data = data[2:]
		}
		if len(data) < 4 {
			return 0, fmt.Errorf("%w: truncated segment header (segment %d)", ErrFormat, segments)
		}

		start := binary.LittleEndian.Uint16(data[0:])
		end := binary.LittleEndian.Uint16(data[2:])
		data = data[4:]

		if end < start {
			return 0, fmt.Errorf("%w: segment %d ends before it starts (%04x .. %04x)", ErrFormat, segments, start, end)
		}

		l := int(end) - int(start) + 1
		if len(data) < l {
			return 0, fmt.Errorf("%w: truncated segment (segment %d)", ErrFormat, segments)
		}

		if err := mem.Load(start, data[:l]); err != nil {
			return 0, fmt.Errorf("memimage: %w", err)
		}
		if start <= runVector && end >= runVector+1 {
			run = mem.ReadWord(runVector)
		}

		data = data[l:]
		segments++
	}

	return run, nil
}
