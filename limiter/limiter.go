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

// Package limiter limits a loop to a fixed rate.
//
//	lmtr, _ := limiter.NewLimiter(60)
//	defer lmtr.Stop()
//	for {
//		lmtr.Wait()
//		renderFrame()
//	}
package limiter

import (
	"fmt"
	"time"
)

// Limiter triggers a fixed number of times per second.
type Limiter struct {
	rate   int
	ticker *time.Ticker
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(rate int) (*Limiter, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("limiter: rate must be positive (%d)", rate)
	}
	return &Limiter{
		rate:   rate,
		ticker: time.NewTicker(time.Second / time.Duration(rate)),
	}, nil
}

// Rate returns the number of triggers per second.
func (lmtr *Limiter) Rate() int {
	return lmtr.rate
}

// SetRate changes the rate of the limiter.
func (lmtr *Limiter) SetRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("limiter: rate must be positive (%d)", rate)
	}
	lmtr.rate = rate
	lmtr.ticker.Reset(time.Second / time.Duration(rate))
	return nil
}

// Wait blocks until the next trigger.
func (lmtr *Limiter) Wait() {
	<-lmtr.ticker.C
}

// HasWaited returns true if the trigger has happened since the last call to
// Wait() or HasWaited(). It does not block.
func (lmtr *Limiter) HasWaited() bool {
	select {
	case <-lmtr.ticker.C:
		return true
	default:
		return false
	}
}

// Stop the limiter. No more triggers will happen.
func (lmtr *Limiter) Stop() {
	lmtr.ticker.Stop()
}
