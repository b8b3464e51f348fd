package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngrafx/nray/pkg/core"
)

const quadOBJ = `# unit quad in the XY plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0

f 1 2 3 4
`

func TestLoadOBJ_FanTriangulation(t *testing.T) {
	mesh, err := LoadOBJ(strings.NewReader(quadOBJ), "quad.obj")
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	if mesh.NumTriangles() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.NumTriangles())
	}
	expected := []int{0, 1, 2, 0, 2, 3}
	for i, idx := range expected {
		if mesh.Indices[i] != idx {
			t.Errorf("Index %d: expected %d, got %d", i, idx, mesh.Indices[i])
		}
	}
	if mesh.Normals != nil {
		t.Error("Expected no normals for a face without vn references")
	}
}

func TestLoadOBJ_ReferenceForms(t *testing.T) {
	tests := []struct {
		name      string
		face      string
		smooth    bool
		triangles int
	}{
		{"positions only", "f 1 2 3", false, 1},
		{"with texture coords", "f 1/1 2/2 3/3", false, 1},
		{"position and normal", "f 1//1 2//1 3//1", true, 1},
		{"full reference", "f 1/1/1 2/2/1 3/3/1", true, 1},
		{"negative indices", "f -3//-1 -2//-1 -1//-1", true, 1},
		{"partial normals", "f 1//1 2 3", false, 1},
		{"pentagon", "f 1 2 3 1 2", false, 3},
	}

	header := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 2\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := LoadOBJ(strings.NewReader(header+tt.face+"\n"), tt.name)
			if err != nil {
				t.Fatalf("LoadOBJ failed: %v", err)
			}
			if mesh.NumTriangles() != tt.triangles {
				t.Errorf("Expected %d triangles, got %d", tt.triangles, mesh.NumTriangles())
			}
			if (mesh.Normals != nil) != tt.smooth {
				t.Errorf("Expected smooth=%t, got normals %v", tt.smooth, mesh.Normals)
			}
			for _, n := range mesh.Normals {
				if !n.ApproxEqual(core.NewVec3(0, 0, 1), 1e-12) {
					t.Errorf("Expected normalized +Z normal, got %v", n)
				}
			}
		})
	}
}

func TestLoadOBJ_SharedVerticesAreMerged(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\nf 1//1 3//1 4//1\n"
	mesh, err := LoadOBJ(strings.NewReader(src), "merged.obj")
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(mesh.Positions) != 4 || len(mesh.Normals) != 4 {
		t.Errorf("Expected 4 merged vertices, got %d positions and %d normals", len(mesh.Positions), len(mesh.Normals))
	}
}

func TestLoadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"no faces", "v 0 0 0\n", ""},
		{"short vertex", "v 0 0\n", ":1:"},
		{"bad float", "v 0 x 0\n", ":1:"},
		{"too few face vertices", "v 0 0 0\nv 1 0 0\nf 1 2\n", ":3:"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ":4:"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ":4:"},
		{"missing normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n", ":4:"},
		{"empty position", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf /1 2 3\n", ":4:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJ(strings.NewReader(tt.src), "bad.obj")
			if !errors.Is(err, ErrMalformedOBJ) {
				t.Fatalf("Expected ErrMalformedOBJ, got %v", err)
			}
			if tt.line != "" && !strings.Contains(err.Error(), "bad.obj"+tt.line) {
				t.Errorf("Expected error to name bad.obj%s, got %q", tt.line, err.Error())
			}
		})
	}
}

func TestLoadOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	mesh, err := LoadOBJFile(path)
	if err != nil {
		t.Fatalf("LoadOBJFile failed: %v", err)
	}
	if mesh.NumTriangles() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.NumTriangles())
	}

	if _, err := LoadOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
