package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ngrafx/nray/pkg/integrator"
	"github.com/olekukonko/tablewriter"
)

// Settings controls a render
type Settings struct {
	Width                int
	Height               int
	TileSize             int
	SamplesPerPixel      int
	MaxDiffuseDepth      int
	MaxReflectDepth      int
	MaxRefractDepth      int
	ColorLimit           float64 // Per-sample channel ceiling, <= 0 disables clamping
	MaxThreads           int     // Worker cap, 0 for no cap beyond the CPU count
	UseBackgroundAtLimit bool
	NormalsOnly          bool  // Shade with surface normals instead of path tracing
	Iterative            bool  // Use the loop form of the path tracer
	Seed                 int64 // Master seed the per-tile generators derive from
}

// DefaultSettings returns the settings used when nothing is overridden
func DefaultSettings() Settings {
	return Settings{
		Width:           200,
		Height:          100,
		TileSize:        32,
		SamplesPerPixel: 10,
		MaxDiffuseDepth: 15,
		MaxReflectDepth: 15,
		MaxRefractDepth: 15,
		ColorLimit:      16,
	}
}

// Validate reports the first problem with s
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidSettings, s.Width, s.Height)
	case s.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidSettings, s.TileSize)
	case s.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidSettings, s.SamplesPerPixel)
	case s.MaxDiffuseDepth < 0 || s.MaxReflectDepth < 0 || s.MaxRefractDepth < 0:
		return fmt.Errorf("%w: negative depth ceiling (%d/%d/%d)", ErrInvalidSettings,
			s.MaxDiffuseDepth, s.MaxReflectDepth, s.MaxRefractDepth)
	case s.MaxThreads < 0:
		return fmt.Errorf("%w: thread cap %d", ErrInvalidSettings, s.MaxThreads)
	}
	return nil
}

// AspectRatio returns width over height
func (s Settings) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}

// IntegratorConfig extracts the path tracer configuration
func (s Settings) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MaxDiffuseDepth:      s.MaxDiffuseDepth,
		MaxReflectDepth:      s.MaxReflectDepth,
		MaxRefractDepth:      s.MaxRefractDepth,
		UseBackgroundAtLimit: s.UseBackgroundAtLimit,
		Iterative:            s.Iterative,
	}
}

// Table renders the settings as a two column text table
func (s Settings) Table() string {
	threads := "auto"
	if s.MaxThreads > 0 {
		threads = strconv.Itoa(s.MaxThreads)
	}
	colorLimit := "off"
	if s.ColorLimit > 0 {
		colorLimit = strconv.FormatFloat(s.ColorLimit, 'g', -1, 64)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Setting", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)},
		{"Tile size", strconv.Itoa(s.TileSize)},
		{"Samples per pixel", strconv.Itoa(s.SamplesPerPixel)},
		{"Depth (diffuse/reflect/refract)", fmt.Sprintf("%d/%d/%d", s.MaxDiffuseDepth, s.MaxReflectDepth, s.MaxRefractDepth)},
		{"Color limit", colorLimit},
		{"Threads", threads},
		{"Background at limit", strconv.FormatBool(s.UseBackgroundAtLimit)},
		{"Normals only", strconv.FormatBool(s.NormalsOnly)},
		{"Iterative", strconv.FormatBool(s.Iterative)},
		{"Seed", strconv.FormatInt(s.Seed, 10)},
	})
	table.Render()
	return buf.String()
}
