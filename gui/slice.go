package gui

import "github.com/phanxgames/bramble"

// SliceRole tags a slice segment with how it reacts to resizing.
type SliceRole uint8

const (
	RoleFixed    SliceRole = iota // never stretches (ThreeSlice ends, NineSlice corners)
	RoleStretchX                  // stretches horizontally
	RoleStretchY                  // stretches vertically
	RoleStretch                   // stretches both ways
)

// Segment is one tile of a slice.
type Segment struct {
	Role       SliceRole
	X, Y, W, H float64
	Region     bramble.RegionID
	handle     bramble.TileHandle
}

// Handle returns the segment's tile handle, or 0 when detached.
func (s Segment) Handle() bramble.TileHandle { return s.handle }

// sliceTiles is the tile bookkeeping shared by ThreeSlice and NineSlice.
type sliceTiles struct {
	batch   bramble.TileBatch
	layer   int
	color   bramble.Color
	visible bool
}

func (st *sliceTiles) attach(segs []Segment, batch bramble.TileBatch, layer int) {
	if batch == nil || st.batch != nil {
		return
	}
	st.batch, st.layer = batch, layer
	for i := range segs {
		s := &segs[i]
		s.handle = batch.AddTile(s.X, s.Y, s.W, s.H, s.Region)
		if s.handle == 0 {
			continue
		}
		batch.UpdateTile(s.handle, func(t *bramble.Tile) {
			t.Color = st.color
			t.Visible = st.visible
			t.Layer = layer
		})
	}
}

func (st *sliceTiles) release(segs []Segment) {
	if st.batch == nil {
		return
	}
	for i := range segs {
		if segs[i].handle != 0 {
			st.batch.RemoveTile(segs[i].handle)
			segs[i].handle = 0
		}
	}
	st.batch = nil
}

func (st *sliceTiles) push(segs []Segment) {
	if st.batch == nil {
		return
	}
	for _, s := range segs {
		if s.handle == 0 {
			continue
		}
		st.batch.UpdateTile(s.handle, func(t *bramble.Tile) {
			t.X, t.Y, t.W, t.H = s.X, s.Y, s.W, s.H
			t.Region = s.Region
		})
	}
}

func (st *sliceTiles) update(segs []Segment, fn func(t *bramble.Tile)) {
	if st.batch == nil {
		return
	}
	for _, s := range segs {
		if s.handle != 0 {
			st.batch.UpdateTile(s.handle, fn)
		}
	}
}

// ThreeSlice is a horizontal strip: a fixed left end, a stretching center
// and a fixed right end, all one height. When the requested width is
// smaller than both ends, the center collapses to zero width.
type ThreeSlice struct {
	sliceTiles
	segs [3]Segment

	x, y          float64
	width, height float64
	left, right   float64
}

// NewThreeSlice creates a strip skinned with regions (left, center, right).
func NewThreeSlice(regions [3]bramble.RegionID, leftWidth, rightWidth, height float64) *ThreeSlice {
	t := &ThreeSlice{
		sliceTiles: sliceTiles{color: bramble.ColorWhite, visible: true},
		left:       leftWidth,
		right:      rightWidth,
		height:     height,
		width:      leftWidth + rightWidth,
	}
	t.segs[0].Role = RoleFixed
	t.segs[1].Role = RoleStretchX
	t.segs[2].Role = RoleFixed
	for i := range t.segs {
		t.segs[i].Region = regions[i]
	}
	t.layout()
	return t
}

func (t *ThreeSlice) visual() {}

func (t *ThreeSlice) layout() {
	center := max(0, t.width-t.left-t.right)
	t.segs[0].X, t.segs[0].W = t.x, t.left
	t.segs[1].X, t.segs[1].W = t.x+t.left, center
	t.segs[2].X, t.segs[2].W = t.x+t.left+center, t.right
	for i := range t.segs {
		t.segs[i].Y, t.segs[i].H = t.y, t.height
	}
	t.push(t.segs[:])
}

// Width returns the requested total width.
func (t *ThreeSlice) Width() float64 { return t.width }

// Height returns the shared height.
func (t *ThreeSlice) Height() float64 { return t.height }

// CenterWidth returns the stretched center width.
func (t *ThreeSlice) CenterWidth() float64 { return t.segs[1].W }

// Segment returns segment i: 0 left, 1 center, 2 right.
func (t *ThreeSlice) Segment(i int) Segment { return t.segs[i] }

// Iterate calls fn for each segment from left to right.
func (t *ThreeSlice) Iterate(fn func(i int, s Segment)) {
	for i, s := range t.segs {
		fn(i, s)
	}
}

// SetWidth stretches the center so the strip is w wide.
func (t *ThreeSlice) SetWidth(w float64) {
	t.width = w
	t.layout()
}

// SetHeight changes the shared height.
func (t *ThreeSlice) SetHeight(h float64) {
	t.height = h
	t.layout()
}

// SetX moves the strip horizontally.
func (t *ThreeSlice) SetX(x float64) {
	t.x = x
	t.layout()
}

// SetY moves the strip vertically.
func (t *ThreeSlice) SetY(y float64) {
	t.y = y
	t.layout()
}

// SetPosition moves the strip.
func (t *ThreeSlice) SetPosition(x, y float64) {
	t.x, t.y = x, y
	t.layout()
}

// SetRegions re-skins the strip.
func (t *ThreeSlice) SetRegions(regions [3]bramble.RegionID) {
	for i := range t.segs {
		t.segs[i].Region = regions[i]
	}
	t.push(t.segs[:])
}

// SetVisible shows or hides every segment.
func (t *ThreeSlice) SetVisible(visible bool) {
	t.visible = visible
	t.update(t.segs[:], func(tl *bramble.Tile) { tl.Visible = visible })
}

// SetColor tints every segment.
func (t *ThreeSlice) SetColor(c bramble.Color) {
	t.color = c
	t.update(t.segs[:], func(tl *bramble.Tile) { tl.Color = c })
}

// Attach adds the three tiles to batch.
func (t *ThreeSlice) Attach(batch bramble.TileBatch, layer int) {
	t.attach(t.segs[:], batch, layer)
}

// Release removes the three tiles from the batch.
func (t *ThreeSlice) Release() {
	t.release(t.segs[:])
}

// NineSlice is a 3×3 grid: four fixed corners, four edges stretching along
// their side and a center stretching both ways. Stretch sizes never go
// below zero.
type NineSlice struct {
	sliceTiles
	segs [9]Segment

	x, y          float64
	width, height float64
	corner        float64
}

// NewNineSlice creates a grid skinned with regions in row-major order
// (top-left, top, top-right, left, center, right, bottom-left, bottom,
// bottom-right) and square corners of the given size.
func NewNineSlice(regions [9]bramble.RegionID, corner float64) *NineSlice {
	n := &NineSlice{
		sliceTiles: sliceTiles{color: bramble.ColorWhite, visible: true},
		corner:     corner,
		width:      2 * corner,
		height:     2 * corner,
	}
	roles := [9]SliceRole{
		RoleFixed, RoleStretchX, RoleFixed,
		RoleStretchY, RoleStretch, RoleStretchY,
		RoleFixed, RoleStretchX, RoleFixed,
	}
	for i := range n.segs {
		n.segs[i].Role = roles[i]
		n.segs[i].Region = regions[i]
	}
	n.layout()
	return n
}

func (n *NineSlice) visual() {}

func (n *NineSlice) layout() {
	c := n.corner
	midW := max(0, n.width-2*c)
	midH := max(0, n.height-2*c)
	xs := [3]float64{n.x, n.x + c, n.x + c + midW}
	ws := [3]float64{c, midW, c}
	ys := [3]float64{n.y, n.y + c, n.y + c + midH}
	hs := [3]float64{c, midH, c}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			s := &n.segs[row*3+col]
			s.X, s.W = xs[col], ws[col]
			s.Y, s.H = ys[row], hs[row]
		}
	}
	n.push(n.segs[:])
}

// Width returns the requested total width.
func (n *NineSlice) Width() float64 { return n.width }

// Height returns the requested total height.
func (n *NineSlice) Height() float64 { return n.height }

// Corner returns the corner size.
func (n *NineSlice) Corner() float64 { return n.corner }

// Segment returns segment i in row-major order.
func (n *NineSlice) Segment(i int) Segment { return n.segs[i] }

// Iterate calls fn for each segment in row-major order.
func (n *NineSlice) Iterate(fn func(i int, s Segment)) {
	for i, s := range n.segs {
		fn(i, s)
	}
}

// SetWidth recomputes every segment for a total width of w.
func (n *NineSlice) SetWidth(w float64) {
	n.width = w
	n.layout()
}

// SetHeight recomputes every segment for a total height of h.
func (n *NineSlice) SetHeight(h float64) {
	n.height = h
	n.layout()
}

// SetBounds moves and resizes the grid.
func (n *NineSlice) SetBounds(x, y, w, h float64) {
	n.x, n.y, n.width, n.height = x, y, w, h
	n.layout()
}

// SetX moves the grid horizontally.
func (n *NineSlice) SetX(x float64) {
	n.x = x
	n.layout()
}

// SetY moves the grid vertically.
func (n *NineSlice) SetY(y float64) {
	n.y = y
	n.layout()
}

// SetPosition moves the grid.
func (n *NineSlice) SetPosition(x, y float64) {
	n.x, n.y = x, y
	n.layout()
}

// SetRegions re-skins the grid.
func (n *NineSlice) SetRegions(regions [9]bramble.RegionID) {
	for i := range n.segs {
		n.segs[i].Region = regions[i]
	}
	n.push(n.segs[:])
}

// SetVisible shows or hides every segment.
func (n *NineSlice) SetVisible(visible bool) {
	n.visible = visible
	n.update(n.segs[:], func(tl *bramble.Tile) { tl.Visible = visible })
}

// SetColor tints every segment.
func (n *NineSlice) SetColor(c bramble.Color) {
	n.color = c
	n.update(n.segs[:], func(tl *bramble.Tile) { tl.Color = c })
}

// Attach adds the nine tiles to batch.
func (n *NineSlice) Attach(batch bramble.TileBatch, layer int) {
	n.attach(n.segs[:], batch, layer)
}

// Release removes the nine tiles from the batch.
func (n *NineSlice) Release() {
	n.release(n.segs[:])
}
