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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atari800ext/a8ext/paths"
	"github.com/atari800ext/a8ext/test"
)

func TestPaths(t *testing.T) {
	// the test runs in a directory with a local resource path so that the
	// results are predictable
	dir := t.TempDir()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Mkdir(".a8ext", 0o700))

	test.ExpectEquality(t, paths.ResourcePath("foo/bar", "baz"), ".a8ext/foo/bar/baz")
	test.ExpectEquality(t, paths.ResourcePath("foo/bar", ""), ".a8ext/foo/bar")
	test.ExpectEquality(t, paths.ResourcePath("", "baz"), ".a8ext/baz")
	test.ExpectEquality(t, paths.ResourcePath("", ""), ".a8ext")

	// data path falls back to the resource path
	test.ExpectEquality(t, paths.DataPath("yoomp", "beach-ball.obj"), ".a8ext/data/ext/yoomp/beach-ball.obj")

	// local data directory is preferred
	test.DemandSuccess(t, os.MkdirAll(filepath.Join("data", "ext", "yoomp"), 0o700))
	test.DemandSuccess(t, os.WriteFile(filepath.Join("data", "ext", "yoomp", "beach-ball.obj"), nil, 0o600))
	test.ExpectEquality(t, paths.DataPath("yoomp", "beach-ball.obj"), "data/ext/yoomp/beach-ball.obj")

	pth, err := paths.EnsureResourcePath("dumps")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(pth)
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("trace", "River Raid Hack by Eru")
	test.ExpectEquality(t, strings.HasPrefix(fn, "trace_RiverRaidHackbyEru_"), true)

	fn = paths.UniqueFilename("dump", "")
	test.ExpectEquality(t, strings.HasPrefix(fn, "dump_"), true)
	test.ExpectEquality(t, strings.Count(fn, "_"), 2)

	fn = paths.UniqueFilename("sound", "a/b\\c")
	test.ExpectEquality(t, strings.HasPrefix(fn, "sound_abc_"), true)
}
