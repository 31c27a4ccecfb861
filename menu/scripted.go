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

package menu

// Scripted is a Driver that returns a predefined sequence of choices. Once
// the sequence is exhausted it returns Cancel. Every menu presented is
// recorded.
type Scripted struct {
	Choices []int

	// every call to Select() is recorded
	Seen [][]Item
}

// Select implements the Driver interface.
func (s *Scripted) Select(title string, current int, items []Item) int {
	c := make([]Item, len(items))
	copy(c, items)
	s.Seen = append(s.Seen, c)

	if len(s.Choices) == 0 {
		return Cancel
	}
	ch := s.Choices[0]
	s.Choices = s.Choices[1:]
	return ch
}

// Last returns the most recently presented menu.
func (s *Scripted) Last() []Item {
	if len(s.Seen) == 0 {
		return nil
	}
	return s.Seen[len(s.Seen)-1]
}
