package main

import (
	"os"

	"github.com/ngrafx/nray/cmd"
	"github.com/ngrafx/nray/pkg/log"
	"github.com/ngrafx/nray/pkg/renderer"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultSettings()

	app := cli.NewApp()
	app.Name = "nray"
	app.Usage = "render scenes with a tiled CPU path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a PNG file",
			Description: `
Build one of the built-in scenes, wrap it in a BVH and render it with the
tiled path tracer. The scene defaults to "spheres"; the "mesh" scene needs
an OBJ file passed with --mesh.`,
			ArgsUsage: "[scene]",
			Flags:     cmd.RenderFlags(),
			Action:    cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "info",
			Usage: "show host resources and worker pool sizing",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Value: defaults.Width, Usage: "frame width"},
				cli.IntFlag{Name: "height", Value: defaults.Height, Usage: "frame height"},
				cli.IntFlag{Name: "tile", Value: defaults.TileSize, Usage: "tile edge in pixels"},
			},
			Action: cmd.ShowInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("nray").Errorf("%v", err)
		os.Exit(1)
	}
}
