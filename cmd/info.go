package cmd

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"

	"github.com/ngrafx/nray/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// hostInfo is what the info command reports about the machine
type hostInfo struct {
	Model        string
	LogicalCPUs  int
	ClockGHz     float64
	TotalMemory  uint64
	FreeMemory   uint64
	UsedPercent  float64
	RuntimeCPUs  int
	MaxProcesses int
}

func readHostInfo() (hostInfo, error) {
	info := hostInfo{
		RuntimeCPUs:  runtime.NumCPU(),
		MaxProcesses: runtime.GOMAXPROCS(0),
	}

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, fmt.Errorf("failed to read cpu info: %w", err)
	}
	if len(cpuInfo) > 0 {
		info.Model = cpuInfo[0].ModelName
		info.ClockGHz = cpuInfo[0].Mhz / 1000
	}
	if info.LogicalCPUs, err = cpu.Counts(true); err != nil {
		return info, fmt.Errorf("failed to count cpus: %w", err)
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("failed to read memory info: %w", err)
	}
	info.TotalMemory = memInfo.Total
	info.FreeMemory = memInfo.Available
	info.UsedPercent = memInfo.UsedPercent
	return info, nil
}

// workerTable lists the worker count the scheduler would pick for the given
// frame at a few thread caps
func workerTable(settings renderer.Settings) string {
	tiles := len(renderer.NewTileGrid(settings.Width, settings.Height, settings.TileSize))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Thread cap", "Tiles", "Workers"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, limit := range []int{0, 1, 2, 4, 8, 16} {
		label := strconv.Itoa(limit)
		if limit == 0 {
			label = "none"
		}
		table.Append([]string{label, strconv.Itoa(tiles), strconv.Itoa(renderer.WorkerCount(tiles, limit))})
	}
	table.Render()
	return buf.String()
}

// ShowInfo prints the host resources and how the tile scheduler sizes its
// worker pool for a frame of the requested size
func ShowInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	host, err := readHostInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Resource", "Value"})
	table.AppendBulk([][]string{
		{"CPU model", host.Model},
		{"Clock", fmt.Sprintf("%.2f GHz", host.ClockGHz)},
		{"Logical CPUs", strconv.Itoa(host.LogicalCPUs)},
		{"runtime.NumCPU", strconv.Itoa(host.RuntimeCPUs)},
		{"GOMAXPROCS", strconv.Itoa(host.MaxProcesses)},
		{"Memory", fmt.Sprintf("%d MiB total, %d MiB available (%.1f%% used)",
			host.TotalMemory>>20, host.FreeMemory>>20, host.UsedPercent)},
	})
	table.Render()
	logger.Noticef("host\n%s", buf.String())

	settings := renderer.DefaultSettings()
	settings.Width = ctx.Int("width")
	settings.Height = ctx.Int("height")
	settings.TileSize = ctx.Int("tile")
	if err := settings.Validate(); err != nil {
		return err
	}
	logger.Noticef("workers for a %dx%d frame\n%s", settings.Width, settings.Height, workerTable(settings))
	return nil
}
