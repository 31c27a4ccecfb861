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

package limiter_test

import (
	"testing"
	"time"

	"github.com/atari800ext/a8ext/limiter"
	"github.com/atari800ext/a8ext/test"
)

func TestLimiter(t *testing.T) {
	_, err := limiter.NewLimiter(0)
	test.ExpectFailure(t, err)

	lmtr, err := limiter.NewLimiter(100)
	test.DemandSuccess(t, err)
	defer lmtr.Stop()

	start := time.Now()
	for i := 0; i < 5; i++ {
		lmtr.Wait()
	}
	test.ExpectEquality(t, time.Since(start) >= 40*time.Millisecond, true)

	test.ExpectFailure(t, lmtr.SetRate(-1))
	test.ExpectSuccess(t, lmtr.SetRate(1))
	test.ExpectEquality(t, lmtr.Rate(), 1)

	// drain a trigger that arrived before the rate changed. the next trigger
	// is a second away
	lmtr.HasWaited()
	test.ExpectEquality(t, lmtr.HasWaited(), false)
}
