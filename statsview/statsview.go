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

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/atari800ext/a8ext/logger"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress of the stats server.
const DefaultAddress = "localhost:12800"

const url = "/debug/statsview"

var (
	crit    sync.Mutex
	running *statsview.ViewManager
)

// URL returns the address of the statistics page for a server at addr.
func URL(addr string) string {
	return fmt.Sprintf("http://%s%s", addr, url)
}

// Launch a new goroutine running the stats server at addr. Only one server
// can be running at a time.
func Launch(output io.Writer, addr string) error {
	crit.Lock()
	defer crit.Unlock()

	if running != nil {
		return fmt.Errorf("statsview: server already running")
	}

	viewer.SetConfiguration(viewer.WithAddr(addr))
	running = statsview.New()
	go running.Start()

	logger.Logf(logger.Allow, "statsview", "launched at %s", addr)
	if output != nil {
		fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
	}

	return nil
}

// Stop the running stats server. It does nothing if no server is running.
func Stop() {
	crit.Lock()
	defer crit.Unlock()

	if running == nil {
		return
	}
	running.Stop()
	running = nil
	logger.Log(logger.Allow, "statsview", "stopped")
}
