package components

import (
	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
)

// SpriteKey is the component key of Sprite.
var SpriteKey = ecs.KeyOf("sprite")

// Sprite draws one tile that follows the entity's Transform. It is both a
// component and the entity's render attachment; use AttachSprite to set
// both at once.
type Sprite struct {
	ecs.BaseComponent

	batch  bramble.TileBatch
	handle bramble.TileHandle

	region           bramble.RegionID
	width, height    float64
	offsetX, offsetY float64
	color            bramble.Color
	visible          bool
	layer            int
}

var _ ecs.RenderAttachment = (*Sprite)(nil)

// NewSprite creates a visible white-tinted sprite.
func NewSprite(region bramble.RegionID, width, height float64) *Sprite {
	return &Sprite{
		region:  region,
		width:   width,
		height:  height,
		color:   bramble.ColorWhite,
		visible: true,
	}
}

// AttachSprite adds s to e as a component and as its render attachment.
func AttachSprite(e *ecs.Entity, s *Sprite) error {
	if err := e.AddComponent(s); err != nil {
		return err
	}
	e.SetRender(s)
	return nil
}

// Key returns SpriteKey.
func (s *Sprite) Key() ecs.ComponentKey { return SpriteKey }

// Handle returns the tile handle, or 0 when not rendering.
func (s *Sprite) Handle() bramble.TileHandle { return s.handle }

// RenderActive reports whether the sprite owns a tile.
func (s *Sprite) RenderActive() bool { return s.handle != 0 }

// InitRender adds the sprite's tile to batch.
func (s *Sprite) InitRender(batch bramble.TileBatch) {
	if s.handle != 0 {
		return
	}
	x, y, w, h := s.rect()
	s.batch = batch
	s.handle = batch.AddTile(x, y, w, h, s.region)
	if s.handle == 0 {
		return
	}
	batch.UpdateTile(s.handle, func(t *bramble.Tile) {
		t.Color = s.color
		t.Visible = s.visible
		t.Layer = s.layer
	})
}

// ReleaseRender removes the sprite's tile.
func (s *Sprite) ReleaseRender() {
	if s.handle == 0 {
		return
	}
	s.batch.RemoveTile(s.handle)
	s.handle = 0
}

// LateUpdate moves the tile to the entity's Transform.
func (s *Sprite) LateUpdate(dt float64) {
	s.sync()
}

// Cleanup releases the tile.
func (s *Sprite) Cleanup() {
	s.ReleaseRender()
}

func (s *Sprite) rect() (x, y, w, h float64) {
	w, h = s.width, s.height
	if t := TransformOf(s.Entity()); t != nil {
		return t.X + s.offsetX, t.Y + s.offsetY, w * t.ScaleX, h * t.ScaleY
	}
	return s.offsetX, s.offsetY, w, h
}

func (s *Sprite) sync() {
	if s.handle == 0 {
		return
	}
	x, y, w, h := s.rect()
	s.batch.UpdateTile(s.handle, func(t *bramble.Tile) {
		t.X, t.Y, t.W, t.H = x, y, w, h
	})
}

// SetRegion changes the drawn region.
func (s *Sprite) SetRegion(region bramble.RegionID) {
	s.region = region
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Region = region })
	}
}

// SetSize changes the unscaled size.
func (s *Sprite) SetSize(width, height float64) {
	s.width, s.height = width, height
	s.sync()
}

// SetOffset sets the tile position relative to the Transform.
func (s *Sprite) SetOffset(x, y float64) {
	s.offsetX, s.offsetY = x, y
	s.sync()
}

// SetColor sets the tint.
func (s *Sprite) SetColor(c bramble.Color) {
	s.color = c
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Color = c })
	}
}

// SetVisible shows or hides the tile.
func (s *Sprite) SetVisible(visible bool) {
	s.visible = visible
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Visible = visible })
	}
}

// SetLayer sets the draw layer.
func (s *Sprite) SetLayer(layer int) {
	s.layer = layer
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Layer = layer })
	}
}
