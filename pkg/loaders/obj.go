package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/geometry"
	"github.com/ngrafx/nray/pkg/log"
)

var logger = log.New("loaders")

// ErrMalformedOBJ is wrapped by every parse error LoadOBJ returns
var ErrMalformedOBJ = errors.New("loaders: malformed OBJ")

// objVertex is one "v/vt/vn" reference of a face, already resolved to
// zero-based indices. normal is -1 when the reference carries none.
type objVertex struct {
	position int
	normal   int
}

type objReader struct {
	name      string
	positions []core.Vec3
	normals   []core.Vec3
	faces     [][3]objVertex
}

// LoadOBJFile parses the Wavefront OBJ file at path
func LoadOBJFile(path string) (*geometry.TriangleMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	return LoadOBJ(file, path)
}

// LoadOBJ parses the geometry of a Wavefront OBJ stream into a single
// triangle mesh. Only v, vn and f statements are used; polygons are fan
// triangulated. Per-vertex normals are kept only when every face vertex
// references one. name is used in error messages.
func LoadOBJ(r io.Reader, name string) (*geometry.TriangleMesh, error) {
	start := time.Now()
	reader := &objReader{name: name}
	if err := reader.parse(r); err != nil {
		return nil, err
	}
	if len(reader.faces) == 0 {
		return nil, fmt.Errorf("%w: %s contains no faces", ErrMalformedOBJ, name)
	}

	mesh, err := reader.buildMesh()
	if err != nil {
		return nil, err
	}

	logger.Noticef("parsed %s: %d vertices, %d triangles in %d ms",
		name, len(mesh.Positions), mesh.NumTriangles(), time.Since(start).Nanoseconds()/1e6)
	return mesh, nil
}

func (r *objReader) parse(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(lineNum, err)
			}
			r.positions = append(r.positions, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(lineNum, err)
			}
			r.normals = append(r.normals, v)
		case "f":
			tris, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(lineNum, err)
			}
			r.faces = append(r.faces, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", r.name, err)
	}
	return nil
}

func (r *objReader) emitError(lineNum int, err error) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrMalformedOBJ, r.name, lineNum, err.Error())
}

// parseFace resolves the references of an "f" statement and fans the polygon
// into triangles around its first vertex
func (r *objReader) parseFace(lineTokens []string) ([][3]objVertex, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`"f" expects at least 3 vertices; got %d`, len(lineTokens)-1)
	}

	refs := make([]objVertex, 0, len(lineTokens)-1)
	for arg, token := range lineTokens[1:] {
		vTokens := strings.Split(token, "/")
		if len(vTokens) > 3 || vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d (%q) is not a v, v/vt, v//vn or v/vt/vn reference", arg, token)
		}

		position, err := resolveIndex(vTokens[0], len(r.positions))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex index for face argument %d: %s", arg, err.Error())
		}
		ref := objVertex{position: position, normal: -1}

		if len(vTokens) == 3 && vTokens[2] != "" {
			ref.normal, err = resolveIndex(vTokens[2], len(r.normals))
			if err != nil {
				return nil, fmt.Errorf("could not parse normal index for face argument %d: %s", arg, err.Error())
			}
		}
		refs = append(refs, ref)
	}

	tris := make([][3]objVertex, 0, len(refs)-2)
	for i := 1; i+1 < len(refs); i++ {
		tris = append(tris, [3]objVertex{refs[0], refs[i], refs[i+1]})
	}
	return tris, nil
}

// buildMesh emits the mesh buffers. Without complete normal references the
// OBJ positions are used as is; otherwise every distinct position/normal pair
// becomes one mesh vertex.
func (r *objReader) buildMesh() (*geometry.TriangleMesh, error) {
	smooth := true
	for _, tri := range r.faces {
		for _, ref := range tri {
			if ref.normal < 0 {
				smooth = false
			}
		}
	}

	indices := make([]int, 0, len(r.faces)*3)
	if !smooth {
		for _, tri := range r.faces {
			indices = append(indices, tri[0].position, tri[1].position, tri[2].position)
		}
		return geometry.NewTriangleMesh(r.positions, nil, indices)
	}

	var positions, normals []core.Vec3
	remap := make(map[objVertex]int)
	for _, tri := range r.faces {
		for _, ref := range tri {
			idx, ok := remap[ref]
			if !ok {
				idx = len(positions)
				remap[ref] = idx
				positions = append(positions, r.positions[ref.position])
				normals = append(normals, r.normals[ref.normal].Normalize())
			}
			indices = append(indices, idx)
		}
	}
	return geometry.NewTriangleMesh(positions, normals, indices)
}

// resolveIndex converts a 1-based or negative (relative to the end) OBJ index
// into a zero-based index into a list of count entries
func resolveIndex(token string, count int) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return -1, err
	}

	switch {
	case index > 0 && index <= count:
		return index - 1, nil
	case index < 0 && -index <= count:
		return count + index, nil
	}
	return -1, fmt.Errorf("index %d out of bounds; %d entries defined so far", index, count)
}

func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf(`"%s" expects 3 components; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("could not parse component %d of %q: %s", i, lineTokens[0], err.Error())
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}
