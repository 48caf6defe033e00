package bramble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrameStatsTotal(t *testing.T) {
	s := FrameStats{Update: 2 * time.Millisecond, Render: 3 * time.Millisecond, Draw: 5 * time.Millisecond}
	assert.Equal(t, 10*time.Millisecond, s.Total())
}

func TestFrameStatsLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	FrameStats{Tiles: 12, DrawCalls: 10, Batches: 2}.Log(zap.New(core))

	entries := logs.FilterMessage("frame").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(12), fields["tiles"])
	assert.Equal(t, int64(2), fields["batches"])
}

func TestCountBatches(t *testing.T) {
	atlas := NewAtlas()
	p0 := atlas.AddRegion("p0", TextureRegion{Page: 0, Width: 1, Height: 1})
	p1 := atlas.AddRegion("p1", TextureRegion{Page: 1, Width: 1, Height: 1})

	mk := func(regions ...RegionID) []*tile {
		out := make([]*tile, len(regions))
		for i, r := range regions {
			out[i] = &tile{Tile: Tile{Region: r}}
		}
		return out
	}

	tests := []struct {
		name  string
		tiles []*tile
		want  int
	}{
		{"empty", nil, 0},
		{"one page", mk(p0, p0, p0), 1},
		{"alternating", mk(p0, p1, p0), 3},
		{"grouped", mk(p0, p0, p1, p1), 2},
		{"fallback counts as a page", mk(p0, FallbackRegion, 99), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countBatches(tt.tiles, atlas))
		})
	}
}
