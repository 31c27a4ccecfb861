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

package memimage_test

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/memimage"
	"github.com/atari800ext/a8ext/test"
)

// two segments, the second without a header and setting the run vector
var executable = []byte{
	0xff, 0xff, 0x00, 0x20, 0x02, 0x20, 0xa9, 0x01, 0x60,
	0xe0, 0x02, 0xe1, 0x02, 0x00, 0x20,
}

func TestExecutable(t *testing.T) {
	var mem atari.Memory
	run, err := memimage.LoadExecutable(&mem, executable)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, run, uint16(0x2000))
	test.ExpectEquality(t, mem[0x2000], uint8(0xa9))
	test.ExpectEquality(t, mem[0x2002], uint8(0x60))
	test.ExpectEquality(t, mem[0x2003], uint8(0x00))
}

func TestExecutableErrors(t *testing.T) {
	var mem atari.Memory

	for _, d := range [][]byte{
		{0x00, 0x20, 0x00, 0x20},
		{0xff, 0xff, 0x00},
		{0xff, 0xff, 0x02, 0x20, 0x00, 0x20},
		{0xff, 0xff, 0x00, 0x20, 0x02, 0x20, 0xa9},
	} {
		_, err := memimage.LoadExecutable(&mem, d)
		test.ExpectEquality(t, errors.Is(err, memimage.ErrFormat), true, d)
	}
}

func write(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o600))
	return fn
}

func TestRawDump(t *testing.T) {
	data := make([]byte, atari.MemorySize)
	data[0x3600] = 0x20
	data[0xffff] = 0x42

	ld := memimage.NewLoader(write(t, "dump.a8m", data))
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, ld.Name, "dump.a8m")
	test.ExpectEquality(t, len(ld.Hash), 40)

	var mem atari.Memory
	run, err := ld.Apply(&mem)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, run, uint16(0))
	test.ExpectEquality(t, mem[0x3600], uint8(0x20))
	test.ExpectEquality(t, mem[0xffff], uint8(0x42))
}

func TestUnrecognised(t *testing.T) {
	ld := memimage.NewLoader(write(t, "short.bin", []byte{1, 2, 3}))
	test.DemandSuccess(t, ld.Load())

	var mem atari.Memory
	_, err := ld.Apply(&mem)
	test.ExpectEquality(t, errors.Is(err, memimage.ErrFormat), true)
}

func TestHash(t *testing.T) {
	fn := write(t, "game.xex", executable)

	ld := memimage.NewLoader(fn)
	test.DemandSuccess(t, ld.Load())

	ok := memimage.NewLoader(fn)
	ok.Hash = ld.Hash
	test.ExpectSuccess(t, ok.Load())

	bad := memimage.NewLoader(fn)
	bad.Hash = "0000"
	test.ExpectFailure(t, bad.Load())
}

func TestZIP(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "game.zip")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	test.DemandSuccess(t, err)
	_, err = w.Write([]byte("not an image"))
	test.DemandSuccess(t, err)
	w, err = zw.Create("dir/game.xex")
	test.DemandSuccess(t, err)
	_, err = w.Write(executable)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, f.Close())

	ld := memimage.NewLoader(fn)
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, ld.Name, "game.xex")
	test.ExpectEquality(t, len(ld.Data), len(executable))

	var mem atari.Memory
	run, err := ld.Apply(&mem)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, run, uint16(0x2000))
}

func TestZIPWithoutImage(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	zw := zip.NewWriter(f)
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, f.Close())

	ld := memimage.NewLoader(fn)
	test.ExpectEquality(t, errors.Is(ld.Load(), memimage.ErrNoImage), true)
}

func TestGzip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "game.xex.gz")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write(executable)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, gw.Close())
	test.DemandSuccess(t, f.Close())

	ld := memimage.NewLoader(fn)
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, ld.Name, "game.xex")
	test.ExpectEquality(t, memimage.IsExecutable(ld.Data), true)
}

func TestMissingFile(t *testing.T) {
	ld := memimage.NewLoader(filepath.Join(t.TempDir(), "missing.xex"))
	test.ExpectFailure(t, ld.Load())
}
