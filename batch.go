package bramble

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// TileHandle identifies a tile in a TileBatch. Zero is never issued.
type TileHandle uint32

// Tile is the renderer-side record behind a handle.
type Tile struct {
	X, Y, W, H float64
	Region     RegionID
	Color      Color
	Visible    bool
	Layer      int // tiles draw in ascending layer, then insertion order
}

// TileBatch is the renderer as seen by entities and controls. Each owner
// mutates only the handles it created.
type TileBatch interface {
	// AddTile creates a visible white-tinted tile and returns its handle, or
	// 0 when the batch is full.
	AddTile(x, y, w, h float64, region RegionID) TileHandle
	// UpdateTile calls fn with the tile record. Fields fn leaves alone keep
	// their previous values.
	UpdateTile(h TileHandle, fn func(t *Tile))
	// RemoveTile deletes the tile. Unknown handles are ignored.
	RemoveTile(h TileHandle)
	// HasTile reports whether h refers to a live tile.
	HasTile(h TileHandle) bool
}

// tile is a pooled batch entry.
type tile struct {
	ListSlot
	Tile
	handle TileHandle
	order  int
	active bool
}

func (t *tile) IsActive() bool { return t.active }
func (t *tile) Init()          { t.active = true }
func (t *tile) Release()       { t.active = false }

// Batch is the ebiten-backed TileBatch. Tiles live in a pooled List; handles
// map to pool entries so they stay valid across swap-removes.
type Batch struct {
	atlas *Atlas
	pages []*ebiten.Image

	tiles    *List[*tile]
	byHandle map[TileHandle]*tile
	next     TileHandle
	seq      int

	drawBuf []*tile
	sortBuf []*tile

	white     *ebiten.Image
	warned    map[RegionID]bool
	drawCalls int
	batches   int
}

var _ TileBatch = (*Batch)(nil)

// NewBatch creates a batch holding at most capacity tiles. Regions resolve
// through atlas; a nil atlas only knows the fallback region.
func NewBatch(atlas *Atlas, capacity int) *Batch {
	if atlas == nil {
		atlas = NewAtlas()
	}
	return &Batch{
		atlas:    atlas,
		tiles:    NewList[*tile](capacity),
		byHandle: make(map[TileHandle]*tile, capacity),
		warned:   map[RegionID]bool{},
	}
}

// Atlas returns the atlas used to resolve regions.
func (b *Batch) Atlas() *Atlas {
	return b.atlas
}

// SetAtlas replaces the atlas. Existing tiles keep their region ids.
func (b *Batch) SetAtlas(a *Atlas) {
	if a == nil {
		a = NewAtlas()
	}
	b.atlas = a
	clear(b.warned)
}

// RegisterPage stores an atlas page image at the given index.
func (b *Batch) RegisterPage(index int, img *ebiten.Image) {
	for len(b.pages) <= index {
		b.pages = append(b.pages, nil)
	}
	b.pages[index] = img
}

// Len returns the number of live tiles.
func (b *Batch) Len() int {
	return b.tiles.Len()
}

// Cap returns the tile capacity.
func (b *Batch) Cap() int {
	return b.tiles.Cap()
}

// DrawCalls returns the number of DrawImage calls made by the last Draw.
func (b *Batch) DrawCalls() int {
	return b.drawCalls
}

// Batches returns the number of atlas page switches in the last Draw.
func (b *Batch) Batches() int {
	return b.batches
}

// AddTile implements TileBatch.
func (b *Batch) AddTile(x, y, w, h float64, region RegionID) TileHandle {
	t := &tile{Tile: Tile{X: x, Y: y, W: w, H: h, Region: region, Color: ColorWhite, Visible: true}}
	if !b.tiles.Add(t) {
		return 0
	}
	b.next++
	b.seq++
	t.handle = b.next
	t.order = b.seq
	b.byHandle[t.handle] = t
	return t.handle
}

// UpdateTile implements TileBatch.
func (b *Batch) UpdateTile(h TileHandle, fn func(t *Tile)) {
	t, ok := b.byHandle[h]
	if !ok {
		logger.Warn("update of unknown tile", zap.Uint32("tile", uint32(h)))
		return
	}
	fn(&t.Tile)
}

// RemoveTile implements TileBatch.
func (b *Batch) RemoveTile(h TileHandle) {
	t, ok := b.byHandle[h]
	if !ok {
		return
	}
	delete(b.byHandle, h)
	b.tiles.Remove(t)
}

// HasTile implements TileBatch.
func (b *Batch) HasTile(h TileHandle) bool {
	_, ok := b.byHandle[h]
	return ok
}

// Tile returns a copy of the tile record for h.
func (b *Batch) Tile(h TileHandle) (Tile, bool) {
	t, ok := b.byHandle[h]
	if !ok {
		return Tile{}, false
	}
	return t.Tile, true
}

// Clear removes every tile. Outstanding handles become invalid.
func (b *Batch) Clear() {
	b.tiles.Clear()
	clear(b.byHandle)
}

// sorted returns visible tiles in draw order.
func (b *Batch) sorted() []*tile {
	b.drawBuf = b.drawBuf[:0]
	b.tiles.ForEach(func(t *tile) bool {
		if t.Visible && t.W != 0 && t.H != 0 {
			b.drawBuf = append(b.drawBuf, t)
		}
		return true
	})
	b.mergeSort()
	return b.drawBuf
}

// Draw submits every visible tile to target.
func (b *Batch) Draw(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	b.drawCalls = 0
	tiles := b.sorted()
	for _, t := range tiles {
		if b.drawTile(target, t, &op) {
			b.drawCalls++
		}
	}
	b.batches = countBatches(tiles, b.atlas)
}

// drawTile draws a single tile using DrawImage, stretching the region to the
// tile rectangle.
func (b *Batch) drawTile(target *ebiten.Image, t *tile, op *ebiten.DrawImageOptions) bool {
	r, ok := b.atlas.RegionByID(t.Region)
	if !ok {
		if !b.warned[t.Region] {
			b.warned[t.Region] = true
			logger.Warn("tile region out of range, using fallback",
				zap.Int("region", int(t.Region)), zap.Uint32("tile", uint32(t.handle)))
		}
		r = whitePixelRegion()
	}

	// Resolve the atlas page image.
	var page *ebiten.Image
	if r.Page == whitePixelPage {
		page = b.whitePixel()
	} else if int(r.Page) < len(b.pages) {
		page = b.pages[r.Page]
	}
	if page == nil {
		return false
	}

	var subRect image.Rectangle
	if r.Rotated {
		subRect = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Height), int(r.Y)+int(r.Width))
	} else {
		subRect = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
	}
	subImg := page.SubImage(subRect).(*ebiten.Image)

	op.GeoM.Reset()

	// Rotated regions in atlas are stored rotated 90° CW.
	if r.Rotated {
		op.GeoM.Rotate(-1.5707963267948966) // -π/2
		op.GeoM.Translate(0, float64(r.Width))
	}
	if r.OffsetX != 0 || r.OffsetY != 0 {
		op.GeoM.Translate(float64(r.OffsetX), float64(r.OffsetY))
	}

	srcW, srcH := float64(r.OriginalW), float64(r.OriginalH)
	if srcW == 0 || srcH == 0 {
		srcW, srcH = float64(r.Width), float64(r.Height)
	}
	if srcW > 0 && srcH > 0 {
		op.GeoM.Scale(t.W/srcW, t.H/srcH)
	}
	op.GeoM.Translate(t.X, t.Y)

	// Premultiplied color scale.
	op.ColorScale.Reset()
	a := float32(t.Color.A)
	op.ColorScale.Scale(float32(t.Color.R)*a, float32(t.Color.G)*a, float32(t.Color.B)*a, a)

	target.DrawImage(subImg, op)
	return true
}

func (b *Batch) whitePixel() *ebiten.Image {
	if b.white == nil {
		b.white = ebiten.NewImage(1, 1)
		b.white.Fill(color.White)
	}
	return b.white
}

// tileLessOrEqual returns true if a should draw before or with b.
// Using <= for order keeps the sort stable.
func tileLessOrEqual(a, b *tile) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.order <= b.order
}

// mergeSort sorts b.drawBuf in place using b.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (b *Batch) mergeSort() {
	n := len(b.drawBuf)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]*tile, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.drawBuf
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.drawBuf, b.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []*tile, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if tileLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
