package cmd

import (
	"fmt"

	"github.com/ngrafx/nray/pkg/loaders"
	"github.com/ngrafx/nray/pkg/renderer"
	"github.com/ngrafx/nray/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command. Their defaults
// mirror renderer.DefaultSettings.
func RenderFlags() []cli.Flag {
	defaults := renderer.DefaultSettings()
	return []cli.Flag{
		cli.IntFlag{Name: "width", Value: defaults.Width, Usage: "frame width"},
		cli.IntFlag{Name: "height", Value: defaults.Height, Usage: "frame height"},
		cli.IntFlag{Name: "tile", Value: defaults.TileSize, Usage: "tile edge in pixels"},
		cli.IntFlag{Name: "spp", Value: defaults.SamplesPerPixel, Usage: "samples per pixel"},
		cli.IntFlag{Name: "max-diffuse", Value: defaults.MaxDiffuseDepth, Usage: "diffuse bounce ceiling"},
		cli.IntFlag{Name: "max-reflect", Value: defaults.MaxReflectDepth, Usage: "reflection bounce ceiling"},
		cli.IntFlag{Name: "max-refract", Value: defaults.MaxRefractDepth, Usage: "refraction bounce ceiling"},
		cli.Float64Flag{Name: "color-limit", Value: defaults.ColorLimit, Usage: "per-sample channel ceiling, 0 disables clamping"},
		cli.IntFlag{Name: "threads, t", Value: defaults.MaxThreads, Usage: "worker cap, 0 uses every CPU"},
		cli.BoolFlag{Name: "background-at-limit", Usage: "return the environment instead of black when a path hits its depth ceiling"},
		cli.BoolFlag{Name: "normals", Usage: "shade surface normals instead of path tracing"},
		cli.BoolFlag{Name: "iterative", Usage: "use the loop form of the path tracer"},
		cli.Int64Flag{Name: "seed", Value: defaults.Seed, Usage: "seed for scene generation, BVH construction and sampling"},
		cli.StringFlag{Name: "mesh, m", Usage: "wavefront OBJ file for the mesh scene"},
		cli.StringFlag{Name: "env, e", Usage: "equirectangular PNG or JPEG used as the environment"},
		cli.StringFlag{Name: "out, o", Value: "frame.png", Usage: "image filename for the rendered frame"},
	}
}

// settingsFromContext applies the render flags on top of the defaults
func settingsFromContext(ctx *cli.Context) renderer.Settings {
	settings := renderer.DefaultSettings()
	settings.Width = ctx.Int("width")
	settings.Height = ctx.Int("height")
	settings.TileSize = ctx.Int("tile")
	settings.SamplesPerPixel = ctx.Int("spp")
	settings.MaxDiffuseDepth = ctx.Int("max-diffuse")
	settings.MaxReflectDepth = ctx.Int("max-reflect")
	settings.MaxRefractDepth = ctx.Int("max-refract")
	settings.ColorLimit = ctx.Float64("color-limit")
	settings.MaxThreads = ctx.Int("threads")
	settings.UseBackgroundAtLimit = ctx.Bool("background-at-limit")
	settings.NormalsOnly = ctx.Bool("normals")
	settings.Iterative = ctx.Bool("iterative")
	settings.Seed = ctx.Int64("seed")
	return settings
}

// RenderFrame builds the scene named by the first argument (spheres by
// default), renders it and writes a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() > 1 {
		return fmt.Errorf("expected at most one scene name; got %d arguments", ctx.NArg())
	}
	name := "spheres"
	if ctx.NArg() == 1 {
		name = ctx.Args().First()
	}

	settings := settingsFromContext(ctx)
	if err := settings.Validate(); err != nil {
		return err
	}
	logger.Infof("render settings\n%s", settings.Table())

	sc, bvhStats, err := scene.Build(name, scene.Options{
		Settings:        settings,
		MeshPath:        ctx.String("mesh"),
		EnvironmentPath: ctx.String("env"),
		Seed:            settings.Seed,
	})
	if err != nil {
		return err
	}
	logger.Infof("BVH statistics\n%s", scene.BVHTable(bvhStats))

	img, stats, err := sc.Render()
	if err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", stats.Table())

	out := ctx.String("out")
	if err := loaders.SavePNG(out, img); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return nil
}
