package renderer

import (
	"fmt"
	"time"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/integrator"
	"github.com/ngrafx/nray/pkg/log"
)

var logger = log.New("renderer")

// Scene is everything needed to render an image: the geometry root (usually
// a BVH), the camera, the settings and an optional environment
type Scene struct {
	Root        core.Primitive
	Camera      core.Camera
	Settings    Settings
	Environment core.Environment // nil renders a black background

	// Observer, when set, is handed to the path tracer. It runs on every
	// worker concurrently.
	Observer integrator.BounceObserver
}

// Integrator returns the integrator the settings select
func (s *Scene) Integrator() integrator.Integrator {
	if s.Settings.NormalsOnly {
		return integrator.NewNormals(s.Root)
	}
	pt := integrator.NewPathTracing(s.Root, s.Environment, s.Settings.IntegratorConfig())
	pt.Observer = s.Observer
	return pt
}

// Render runs the full tile schedule and blocks until the image is complete
func (s *Scene) Render() (*core.Image, RenderStats, error) {
	if err := s.Settings.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if s.Root == nil || s.Camera == nil {
		return nil, RenderStats{}, ErrIncompleteScene
	}

	settings := s.Settings
	img := core.NewImage(settings.Width, settings.Height)
	tiles := NewTileGrid(settings.Width, settings.Height, settings.TileSize)
	tileRenderer := NewTileRenderer(s.Camera, s.Integrator(), settings, img)

	pool := NewWorkerPool(WorkerCount(len(tiles), settings.MaxThreads))
	logger.Infof("rendering %dx%d at %d spp: %d tiles on %d workers",
		settings.Width, settings.Height, settings.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	lastPercent := 0
	pool.OnProgress(func(p TileProgress) {
		logger.Debugf("worker %d finished tile %d %v (%d/%d)", p.WorkerID, p.Tile.ID, p.Tile.Bounds, p.Completed, p.Total)
		if percent := p.Completed * 100 / p.Total; percent/10 > lastPercent/10 {
			lastPercent = percent
			logger.Infof("rendered %d%%", percent)
		}
	})

	start := time.Now()
	stats := pool.Run(tiles, func(workerID int, tile *Tile) RenderStats {
		sampler := core.NewSeededSampler(settings.Seed, tile.ID)
		return tileRenderer.RenderTile(tile, sampler)
	})
	stats.Workers = pool.GetNumWorkers()
	stats.RenderTime = time.Since(start)
	stats.Luminance = img.AverageLuminance()

	if err := checkCoverage(stats, settings); err != nil {
		return nil, stats, err
	}
	if stats.NaNSamples > 0 {
		logger.Warningf("%d samples produced NaN; the affected pixel channels were written as zero", stats.NaNSamples)
	}
	logger.Noticef("rendered %d samples in %v", stats.TotalSamples, stats.RenderTime.Round(time.Millisecond))

	return img, stats, nil
}

// checkCoverage verifies that the tiles covered every pixel exactly once
func checkCoverage(stats RenderStats, settings Settings) error {
	if want := settings.Width * settings.Height; stats.TotalPixels != want {
		return fmt.Errorf("%w: rendered %d of %d pixels", ErrIncompleteRender, stats.TotalPixels, want)
	}
	return nil
}
