package bramble

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats holds per-frame timing and draw metrics.
type FrameStats struct {
	Update    time.Duration
	Render    time.Duration
	Draw      time.Duration
	Tiles     int
	DrawCalls int
	Batches   int
}

// Total returns the summed frame time.
func (s FrameStats) Total() time.Duration {
	return s.Update + s.Render + s.Draw
}

// Log writes the stats to l at debug level.
func (s FrameStats) Log(l *zap.Logger) {
	l.Debug("frame",
		zap.Duration("update", s.Update),
		zap.Duration("render", s.Render),
		zap.Duration("draw", s.Draw),
		zap.Duration("total", s.Total()),
		zap.Int("tiles", s.Tiles),
		zap.Int("drawCalls", s.DrawCalls),
		zap.Int("batches", s.Batches),
	)
}

// countBatches counts contiguous runs of tiles sharing an atlas page.
// This reports how many draw calls a true batching implementation would produce.
func countBatches(tiles []*tile, atlas *Atlas) int {
	if len(tiles) == 0 {
		return 0
	}
	pageOf := func(t *tile) uint16 {
		if r, ok := atlas.RegionByID(t.Region); ok {
			return r.Page
		}
		return whitePixelPage
	}
	count := 1
	prev := pageOf(tiles[0])
	for _, t := range tiles[1:] {
		cur := pageOf(t)
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}
