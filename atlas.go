package bramble

import (
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      uint16 // atlas page index (references Batch pages)
	X, Y      uint16 // top-left corner of the sub-image rect within the atlas page
	Width     uint16 // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16 // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset from TexturePacker
	OffsetY   int16  // vertical trim offset from TexturePacker
	Rotated   bool   // true if the region is stored 90 degrees clockwise in the atlas
}

// RegionID is a dense index into an Atlas. Region 0 always exists and is a
// solid white pixel.
type RegionID int

// FallbackRegion is the region used for solid tiles and missing lookups.
const FallbackRegion RegionID = 0

// whitePixelPage is a sentinel page index for the fallback region.
// It's high enough to never collide with real atlas pages.
const whitePixelPage = 0xFFFF

func whitePixelRegion() TextureRegion {
	return TextureRegion{
		Page:      whitePixelPage,
		Width:     1,
		Height:    1,
		OriginalW: 1,
		OriginalH: 1,
	}
}

// Atlas maps region names to RegionIDs.
type Atlas struct {
	names   map[string]RegionID
	regions []TextureRegion
}

// NewAtlas returns an atlas holding only the fallback region.
func NewAtlas() *Atlas {
	return &Atlas{
		names:   map[string]RegionID{},
		regions: []TextureRegion{whitePixelRegion()},
	}
}

// Len returns the number of regions, including the fallback.
func (a *Atlas) Len() int {
	return len(a.regions)
}

// Region returns the RegionID for name. Missing names log a warning and
// resolve to FallbackRegion.
func (a *Atlas) Region(name string) RegionID {
	if id, ok := a.names[name]; ok {
		return id
	}
	logger.Warn("atlas region not found", zap.String("region", name))
	return FallbackRegion
}

// Lookup returns the RegionID for name without logging.
func (a *Atlas) Lookup(name string) (RegionID, bool) {
	id, ok := a.names[name]
	return id, ok
}

// RegionByID returns the texture region for id.
func (a *Atlas) RegionByID(id RegionID) (TextureRegion, bool) {
	if id < 0 || int(id) >= len(a.regions) {
		return TextureRegion{}, false
	}
	return a.regions[id], true
}

// AddRegion registers r under name and returns its id. Re-adding a name
// replaces the region but keeps the id.
func (a *Atlas) AddRegion(name string, r TextureRegion) RegionID {
	if id, ok := a.names[name]; ok {
		a.regions[id] = r
		return id
	}
	id := RegionID(len(a.regions))
	a.regions = append(a.regions, r)
	if name != "" {
		a.names[name] = id
	}
	return id
}

// LoadAtlas parses TexturePacker JSON data into a new Atlas. Supports both
// the hash format (single "frames" object) and the array format ("textures"
// array with per-page frame lists).
func LoadAtlas(jsonData []byte) (*Atlas, error) {
	a := NewAtlas()
	if err := a.LoadJSON(jsonData, 0); err != nil {
		return nil, err
	}
	return a, nil
}

// LoadJSON adds the regions of a TexturePacker document to a. Page indices in
// the document are shifted by firstPage.
func (a *Atlas) LoadJSON(jsonData []byte, firstPage uint16) error {
	// Peek at the top-level keys to detect the format.
	var shape struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &shape); err != nil {
		return fmt.Errorf("bramble: failed to parse atlas JSON: %w", err)
	}

	switch {
	case shape.Textures != nil:
		return a.parseArrayFormat(shape.Textures, firstPage)
	case shape.Frames != nil:
		return a.parseHashFrames(shape.Frames, firstPage)
	default:
		return fmt.Errorf("bramble: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func (a *Atlas) parseHashFrames(raw json.RawMessage, page uint16) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("bramble: failed to parse atlas frames: %w", err)
	}
	a.addFrames(frames, page)
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func (a *Atlas) parseArrayFormat(raw json.RawMessage, firstPage uint16) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("bramble: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		a.addFrames(tex.Frames, firstPage+uint16(i))
	}
	return nil
}

// addFrames registers frames in name order so ids are deterministic.
func (a *Atlas) addFrames(frames map[string]jsonFrame, page uint16) {
	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		a.AddRegion(name, frameToRegion(frames[name], page))
	}
}

func frameToRegion(f jsonFrame, page uint16) TextureRegion {
	w, h := f.SourceSize.W, f.SourceSize.H
	if w == 0 && h == 0 {
		w, h = f.Frame.W, f.Frame.H
	}
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(w),
		OriginalH: uint16(h),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}
