package renderer

import (
	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/integrator"
)

// TileRenderer renders the pixels of one tile into a shared image. Tiles are
// disjoint, so concurrent calls for different tiles need no locking.
type TileRenderer struct {
	camera     core.Camera
	integrator integrator.Integrator
	settings   Settings
	img        *core.Image
}

// NewTileRenderer creates a renderer writing into img
func NewTileRenderer(camera core.Camera, integratorInst integrator.Integrator, settings Settings, img *core.Image) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
		settings:   settings,
		img:        img,
	}
}

// RenderTile takes SamplesPerPixel jittered samples for every pixel of tile
// and writes their average
func (tr *TileRenderer) RenderTile(tile *Tile, sampler core.Sampler) RenderStats {
	stats := RenderStats{Tiles: 1}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			color, nans := tr.samplePixel(x, y, sampler)
			tr.img.SetPixel(x, y, color)

			stats.TotalPixels++
			stats.TotalSamples += tr.settings.SamplesPerPixel
			stats.NaNSamples += nans
		}
	}

	return stats
}

// samplePixel averages the samples for pixel (x, y), clamping each sample to
// the color limit first. It also reports how many samples carried a NaN.
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) (core.Vec3, int) {
	width := float64(tr.img.Width)
	height := float64(tr.img.Height)

	var sum core.Vec3
	nans := 0
	for s := 0; s < tr.settings.SamplesPerPixel; s++ {
		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) / width
		v := 1.0 - (float64(y)+jitter.Y)/height

		ray := tr.camera.GetRay(u, v, sampler)
		color := tr.integrator.RayColor(ray, sampler)
		if color.HasNaN() {
			nans++
		}
		if tr.settings.ColorLimit > 0 {
			color = color.ClampMax(tr.settings.ColorLimit)
		}
		sum = sum.Add(color)
	}

	return sum.Multiply(1.0 / float64(tr.settings.SamplesPerPixel)), nans
}
