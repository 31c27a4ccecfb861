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
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atari800ext/a8ext/atari"
)

// Sentinel errors returned by the Loader.
var (
	ErrNoImage     = errors.New("memimage: no memory image found in archive")
	ErrFormat      = errors.New("memimage: unrecognised memory image")
	ErrTooLarge    = errors.New("memimage: file exceeds maximum size")
	ErrUnsupported = errors.New("memimage: unsupported file format")
)

// maximum size of a file or an archive entry
const maxSize = 8 * 1024 * 1024

// Extensions of files that are treated as memory images, whether they are
// loose files or entries in an archive.
var Extensions = []string{".xex", ".com", ".exe", ".bin", ".raw", ".mem", ".a8m"}

var (
	magicZIP    = []byte{0x50, 0x4b, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4b, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicGzip   = []byte{0x1f, 0x8b}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21}
)

type format int

const (
	formatRaw format = iota
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// Loader is used to specify the memory image to use with Apply().
type Loader struct {
	// Filename of the image or of the archive containing the image
	Filename string

	// Name is the basename of the loaded image. For an archive this is the
	// name of the entry
	Name string

	// Hash is the SHA1 of the loaded data. If it is not empty before Load()
	// the loaded data must match it
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// Load reads the image data. Archives are detected by their magic bytes or
// their file extension and the first entry with one of the Extensions is
// used.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	f, err := os.Open(ld.Filename)
	if err != nil {
		return fmt.Errorf("memimage: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("memimage: %w", err)
	}
	header = header[:n]

	var data []byte
	var name string

	switch detect(header, ld.Filename) {
	case formatZIP:
		data, name, err = fromZIP(ld.Filename)
	case format7z:
		data, name, err = from7z(ld.Filename)
	case formatGzip:
		data, name, err = fromGzip(ld.Filename)
	case formatRAR:
		data, name, err = fromRAR(ld.Filename)
	default:
		if _, err = f.Seek(0, io.SeekStart); err == nil {
			data, err = limitedRead(f)
			name = filepath.Base(ld.Filename)
		}
	}
	if err != nil {
		return err
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return fmt.Errorf("memimage: unexpected hash value for %s", name)
	}

	ld.Hash = hash
	ld.Data = data
	ld.Name = name

	return nil
}

// Apply the loaded image to memory. A 64K image replaces all of memory. An
// executable is loaded segment by segment. The run address of an executable
// is returned, which is zero when it has no run address or when the image is
// a 64K dump.
func (ld *Loader) Apply(mem *atari.Memory) (uint16, error) {
	if len(ld.Data) == 0 {
		return 0, fmt.Errorf("memimage: nothing loaded")
	}

	if IsExecutable(ld.Data) {
		return LoadExecutable(mem, ld.Data)
	}

	if len(ld.Data) == atari.MemorySize {
		if err := mem.Load(0, ld.Data); err != nil {
			return 0, fmt.Errorf("memimage: %w", err)
		}
		return 0, nil
	}

	return 0, fmt.Errorf("%w: %s (%d bytes)", ErrFormat, ld.Name, len(ld.Data))
}

func detect(header []byte, filename string) format {
	switch {
	case bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd):
		return formatZIP
	case bytes.HasPrefix(header, magicRAR):
		return formatRAR
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	return formatRaw
}

func isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("memimage: %w", err)
	}
	if len(data) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
