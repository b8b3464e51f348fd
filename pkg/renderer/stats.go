package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Tiles        int           // Tiles rendered
	Workers      int           // Workers the tiles were spread over
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	NaNSamples   int           // Samples whose color had a NaN channel
	RenderTime   time.Duration // Wall time spent rendering
	Luminance    float64       // Average linear luminance of the finished image
}

// Merge adds the counters of other to s
func (s RenderStats) Merge(other RenderStats) RenderStats {
	s.Tiles += other.Tiles
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.NaNSamples += other.NaNSamples
	return s
}

// AverageSamples returns samples per pixel over the whole render
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// SamplesPerSecond returns the sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}

// Table renders the stats as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Tiles", "Workers", "Pixels", "Samples", "Avg SPP", "NaN samples", "Luminance", "Time", "Samples/s"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		strconv.Itoa(s.Tiles),
		strconv.Itoa(s.Workers),
		strconv.Itoa(s.TotalPixels),
		strconv.Itoa(s.TotalSamples),
		fmt.Sprintf("%.1f", s.AverageSamples()),
		strconv.Itoa(s.NaNSamples),
		fmt.Sprintf("%.4f", s.Luminance),
		s.RenderTime.Round(time.Millisecond).String(),
		fmt.Sprintf("%.0f", s.SamplesPerSecond()),
	})
	table.Render()
	return buf.String()
}
