// Package scene builds the built-in test scenes. Every builder returns a
// renderer.Scene whose root is already a BVH.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/geometry"
	"github.com/ngrafx/nray/pkg/lights"
	"github.com/ngrafx/nray/pkg/loaders"
	"github.com/ngrafx/nray/pkg/log"
	"github.com/ngrafx/nray/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

var logger = log.New("scene")

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrMissingMesh  = errors.New("scene: no mesh file given")
)

// Options are the inputs shared by every scene builder
type Options struct {
	Settings        renderer.Settings
	MeshPath        string // OBJ file for the mesh scene
	EnvironmentPath string // Equirectangular panorama replacing the scene's own environment
	Seed            int64  // Seeds scene generation and the BVH axis choice
}

// Builder assembles the primitives, camera and environment of a scene
type Builder func(opts Options) (*Description, error)

// Description is what a builder produces before the BVH is built
type Description struct {
	Primitives  []core.Primitive
	Camera      renderer.CameraConfig
	Environment core.Environment
}

// Info names a registered scene
type Info struct {
	Name        string
	Description string
	build       Builder
}

var registry = map[string]Info{}

// Register adds a builder under name, replacing any previous one
func Register(name, description string, build Builder) {
	registry[name] = Info{Name: name, Description: description, build: build}
}

func init() {
	Register("spheres", "Ground sphere with a random field of small spheres and implicit boxes", NewRandomSpheres)
	Register("sphere", "Single diffuse sphere under a uniform sky", NewSingleSphere)
	Register("mirror-box", "Diffuse and emissive spheres inside a box of triangle mirrors", NewMirrorBox)
	Register("mesh", "OBJ mesh on a ground sphere, requires a mesh file", NewMeshScene)
}

// List returns the registered scenes sorted by name
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Build runs the named builder, wraps its primitives in a BVH and returns
// the scene ready to render along with the BVH statistics
func Build(name string, opts Options) (*renderer.Scene, geometry.BVHStats, error) {
	info, ok := registry[name]
	if !ok {
		return nil, geometry.BVHStats{}, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}

	start := time.Now()
	desc, err := info.build(opts)
	if err != nil {
		return nil, geometry.BVHStats{}, err
	}

	camera := desc.Camera
	camera.AspectRatio = opts.Settings.AspectRatio()
	root, err := geometry.NewBVH(desc.Primitives, geometry.BVHOptions{
		Seed:  opts.Seed,
		Time0: camera.Time0,
		Time1: camera.Time1,
	})
	if err != nil {
		return nil, geometry.BVHStats{}, fmt.Errorf("scene %s: %w", name, err)
	}
	stats := root.Stats()

	env := desc.Environment
	if opts.EnvironmentPath != "" {
		panorama, err := loaders.LoadImage(opts.EnvironmentPath, true)
		if err != nil {
			return nil, geometry.BVHStats{}, fmt.Errorf("scene %s: %w", name, err)
		}
		env = lights.NewEquirect(panorama)
	}

	logger.Noticef("built scene %s: %d primitives, BVH depth %d in %d ms",
		name, stats.Primitives, stats.MaxDepth, time.Since(start).Nanoseconds()/1e6)

	return &renderer.Scene{
		Root:        root,
		Camera:      renderer.NewCamera(camera),
		Settings:    opts.Settings,
		Environment: env,
	}, stats, nil
}

// BVHTable renders BVH statistics as a text table
func BVHTable(stats geometry.BVHStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Primitives", "Nodes", "Leaves", "Max depth", "Avg depth"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		strconv.Itoa(stats.Primitives),
		strconv.Itoa(stats.Nodes),
		strconv.Itoa(stats.Leaves),
		strconv.Itoa(stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AvgDepth),
	})
	table.Render()
	return buf.String()
}
