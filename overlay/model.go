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

package overlay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrModel is wrapped by all errors from the model parser.
var ErrModel = errors.New("overlay: model")

// Vec3 is a point or a direction in model space.
type Vec3 [3]float32

// Material of a model. Only the diffuse colour is used.
type Material struct {
	Name    string
	Diffuse Vec3
}

// Triangle is a single face of a model.
type Triangle struct {
	Vertices [3]Vec3
	Normals  [3]Vec3

	// index into the model's Materials slice. negative if the face has no
	// material
	Material int
}

// Model is a triangulated mesh.
type Model struct {
	Name      string
	Triangles []Triangle
	Materials []Material
}

// Diffuse returns the diffuse colour of the triangle's material. Faces with
// no material are white.
func (m *Model) Diffuse(t Triangle) Vec3 {
	if t.Material < 0 || t.Material >= len(m.Materials) {
		return Vec3{1, 1, 1}
	}
	return m.Materials[t.Material].Diffuse
}

// LoadModel reads a Wavefront OBJ file. Material libraries named by the file
// are read from the same directory.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	m, err := ParseModel(f, func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, name))
	})
	if err != nil {
		return nil, err
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// ParseModel parses OBJ data. The mtllib function opens material libraries
// and can be nil if the model has none. Polygons with more than three
// vertices are triangulated as fans.
func ParseModel(r io.Reader, mtllib func(name string) (io.ReadCloser, error)) (*Model, error) {
	m := &Model{}

	var vertices []Vec3
	var normals []Vec3
	material := -1

	scanner := bufio.NewScanner(r)
	ln := 0
	for scanner.Scan() {
		ln++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrModel, ln, err)
			}
			vertices = append(vertices, v)

		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrModel, ln, err)
			}
			normals = append(normals, v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face with fewer than three vertices", ErrModel, ln)
			}

			type corner struct {
				v, n Vec3
			}
			corners := make([]corner, 0, len(fields)-1)
			for _, f := range fields[1:] {
				vi, ni, err := parseFaceIndex(f, len(vertices), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %w", ErrModel, ln, err)
				}
				c := corner{v: vertices[vi]}
				if ni >= 0 {
					c.n = normals[ni]
				}
				corners = append(corners, c)
			}

			for i := 1; i < len(corners)-1; i++ {
				m.Triangles = append(m.Triangles, Triangle{
					Vertices: [3]Vec3{corners[0].v, corners[i].v, corners[i+1].v},
					Normals:  [3]Vec3{corners[0].n, corners[i].n, corners[i+1].n},
					Material: material,
				})
			}

		case "usemtl":
			material = -1
			if len(fields) > 1 {
				for i, mt := range m.Materials {
					if mt.Name == fields[1] {
						material = i
						break // for loop
					}
				}
			}

		case "mtllib":
			if mtllib == nil || len(fields) < 2 {
				continue
			}
			for _, name := range fields[1:] {
				f, err := mtllib(name)
				if err != nil {
					return nil, fmt.Errorf("%w: mtllib %s: %w", ErrModel, name, err)
				}
				mats, err := parseMaterials(f)
				f.Close()
				if err != nil {
					return nil, err
				}
				m.Materials = append(m.Materials, mats...)
			}

		case "o":
			if len(fields) > 1 {
				m.Name = fields[1]
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}

	return m, nil
}

func parseMaterials(r io.Reader) ([]Material, error) {
	var mats []Material

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: unnamed material", ErrModel)
			}
			mats = append(mats, Material{Name: fields[1], Diffuse: Vec3{1, 1, 1}})
		case "Kd":
			if len(mats) == 0 {
				return nil, fmt.Errorf("%w: diffuse colour before newmtl", ErrModel)
			}
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrModel, err)
			}
			mats[len(mats)-1].Diffuse = v
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}

	return mats, nil
}

func parseVec3(fields []string) (Vec3, error) {
	var v Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("expected three components")
	}
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parse a face corner of the form v, v/t, v//n or v/t/n. returns zero based
// indices. the normal index is negative if there is no normal
func parseFaceIndex(s string, numVertices int, numNormals int) (int, int, error) {
	parts := strings.Split(s, "/")

	vi, err := resolveIndex(parts[0], numVertices)
	if err != nil {
		return 0, 0, err
	}

	ni := -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], numNormals)
		if err != nil {
			return 0, 0, err
		}
	}

	return vi, ni, nil
}

// OBJ indices are one based. negative indices count back from the most
// recent element
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range", s)
	}
	return i, nil
}
