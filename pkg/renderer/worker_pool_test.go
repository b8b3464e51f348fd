package renderer

import (
	"runtime"
	"sync"
	"testing"
)

func TestWorkerCount(t *testing.T) {
	cpus := runtime.NumCPU()

	tests := []struct {
		name       string
		tiles      int
		maxThreads int
		want       int
	}{
		{"fewer tiles than cpus", 1, 0, 1},
		{"no cap", 10000, 0, cpus},
		{"cap below cpus", 10000, 1, 1},
		{"cap above cpus", 10000, cpus + 8, cpus},
		{"no tiles", 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkerCount(tt.tiles, tt.maxThreads); got != tt.want {
				t.Errorf("Expected %d workers, got %d", tt.want, got)
			}
		})
	}
}

func TestWorkerPool_RendersEveryTileOnce(t *testing.T) {
	tiles := NewTileGrid(97, 61, 8)

	var mu sync.Mutex
	seen := make(map[int]int)
	var progress []int

	pool := NewWorkerPool(4)
	pool.OnProgress(func(p TileProgress) {
		progress = append(progress, p.Completed)
		if p.Total != len(tiles) {
			t.Errorf("Expected total %d, got %d", len(tiles), p.Total)
		}
	})

	stats := pool.Run(tiles, func(workerID int, tile *Tile) RenderStats {
		mu.Lock()
		seen[tile.ID]++
		mu.Unlock()
		return RenderStats{Tiles: 1, TotalPixels: tile.Bounds.Dx() * tile.Bounds.Dy()}
	})

	if len(seen) != len(tiles) {
		t.Fatalf("Expected %d tiles rendered, got %d", len(tiles), len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("Tile %d rendered %d times", id, n)
		}
	}
	if stats.Tiles != len(tiles) || stats.TotalPixels != 97*61 {
		t.Errorf("Unexpected merged stats %+v", stats)
	}
	for i, c := range progress {
		if c != i+1 {
			t.Fatalf("Progress counter not monotonic: %v", progress)
		}
	}
}

func TestWorkerPool_SingleWorkerIsFIFO(t *testing.T) {
	tiles := NewTileGrid(40, 40, 8)
	var order []int

	NewWorkerPool(1).Run(tiles, func(workerID int, tile *Tile) RenderStats {
		order = append(order, tile.ID)
		return RenderStats{}
	})

	for i, id := range order {
		if id != i {
			t.Fatalf("Expected queue order, got %v", order)
		}
	}
	if len(order) != len(tiles) {
		t.Errorf("Expected %d tiles, got %d", len(tiles), len(order))
	}
}
