package renderer

import (
	"runtime"
	"sync"
)

// TileProgress is reported each time a worker finishes a tile
type TileProgress struct {
	Tile      *Tile
	WorkerID  int
	Completed int // Tiles finished so far, this one included
	Total     int
}

// TileFunc renders one tile on behalf of worker workerID
type TileFunc func(workerID int, tile *Tile) RenderStats

// WorkerCount sizes the pool: one worker per tile at most, no more than the
// CPU count, and no more than maxThreads when it is positive
func WorkerCount(tiles, maxThreads int) int {
	n := min(tiles, runtime.NumCPU())
	if maxThreads > 0 {
		n = min(n, maxThreads)
	}
	return max(n, 0)
}

// WorkerPool drains a FIFO queue of tiles with a fixed set of workers
type WorkerPool struct {
	numWorkers int
	taskQueue  chan *Tile
	wg         sync.WaitGroup

	mu         sync.Mutex // Guards the fields below
	completed  int
	total      int
	stats      RenderStats
	onProgress func(TileProgress)
}

// NewWorkerPool creates a pool with numWorkers workers, at least one
func NewWorkerPool(numWorkers int) *WorkerPool {
	return &WorkerPool{numWorkers: max(numWorkers, 1)}
}

// OnProgress installs a callback run under the progress lock after every tile
func (wp *WorkerPool) OnProgress(fn func(TileProgress)) {
	wp.onProgress = fn
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run queues every tile in order, starts the workers and blocks until the
// queue is drained. It returns the merged stats of all tiles.
func (wp *WorkerPool) Run(tiles []*Tile, render TileFunc) RenderStats {
	wp.taskQueue = make(chan *Tile, len(tiles))
	for _, tile := range tiles {
		wp.taskQueue <- tile
	}
	close(wp.taskQueue)

	wp.completed = 0
	wp.total = len(tiles)
	wp.stats = RenderStats{}

	for id := 0; id < wp.numWorkers; id++ {
		wp.wg.Add(1)
		go wp.work(id, render)
	}
	wp.wg.Wait()

	return wp.stats
}

// work is the main worker loop
func (wp *WorkerPool) work(id int, render TileFunc) {
	defer wp.wg.Done()

	for tile := range wp.taskQueue {
		stats := render(id, tile)
		wp.finish(id, tile, stats)
	}
}

// finish records a completed tile
func (wp *WorkerPool) finish(workerID int, tile *Tile, stats RenderStats) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	wp.completed++
	wp.stats = wp.stats.Merge(stats)
	if wp.onProgress != nil {
		wp.onProgress(TileProgress{Tile: tile, WorkerID: workerID, Completed: wp.completed, Total: wp.total})
	}
}
