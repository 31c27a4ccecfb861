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
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

func fromZIP(filename string) ([]byte, string, error) {
	r, err := zip.OpenReader(filename)
	if err != nil {
		return nil, "", fmt.Errorf("memimage: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isImage(f.Name) {
			continue // for loop
		}
		return readEntry(f.Name, f.Open)
	}

	return nil, "", ErrNoImage
}

func from7z(filename string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(filename)
	if err != nil {
		return nil, "", fmt.Errorf("memimage: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isImage(f.Name) {
			continue // for loop
		}
		return readEntry(f.Name, f.Open)
	}

	return nil, "", ErrNoImage
}

func readEntry(name string, open func() (io.ReadCloser, error)) ([]byte, string, error) {
	rc, err := open()
	if err != nil {
		return nil, "", fmt.Errorf("memimage: %s: %w", name, err)
	}
	defer rc.Close()

	data, err := limitedRead(rc)
	if err != nil {
		return nil, "", fmt.Errorf("%w (%s)", err, name)
	}
	return data, filepath.Base(name), nil
}

// a gzip file contains a single image. the name of the image is the name of
// the file without the .gz extension
func fromGzip(filename string) ([]byte, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", fmt.Errorf("memimage: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("memimage: %w", err)
	}
	defer gr.Close()

	data, err := limitedRead(gr)
	if err != nil {
		return nil, "", err
	}

	name := filepath.Base(filename)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-3]
	}
	return data, name, nil
}

func fromRAR(filename string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(filename)
	if err != nil {
		return nil, "", fmt.Errorf("memimage: %w", err)
	}
	defer r.Close()

	for {
		hdr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break // for loop
		}
		if err != nil {
			return nil, "", fmt.Errorf("memimage: %w", err)
		}
		if hdr.IsDir || !isImage(hdr.Name) {
			continue // for loop
		}

		data, err := limitedRead(r)
		if err != nil {
			return nil, "", fmt.Errorf("%w (%s)", err, hdr.Name)
		}
		return data, filepath.Base(hdr.Name), nil
	}

	return nil, "", ErrNoImage
}
