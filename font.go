package bramble

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// Glyph is one character of a BitmapFont.
type Glyph struct {
	ID       rune
	Region   RegionID
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	XAdvance int
}

// GlyphPlacement is a laid-out glyph relative to the text origin.
type GlyphPlacement struct {
	X, Y, W, H float64
	Region     RegionID
}

const asciiGlyphCount = 128

// BitmapFont renders text from pre-rasterized glyphs stored in an atlas page.
type BitmapFont struct {
	lineHeight float64
	base       float64

	asciiGlyphs [asciiGlyphCount]Glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool  // which ASCII entries are populated
	extGlyphs   map[rune]*Glyph        // extended Unicode

	kernings map[[2]rune]int
}

var _ Font = (*BitmapFont)(nil)

type jsonFont struct {
	LineHeight float64       `json:"lineHeight"`
	Base       float64       `json:"base"`
	Chars      []jsonChar    `json:"chars"`
	Kernings   []jsonKerning `json:"kernings"`
}

type jsonChar struct {
	ID       int `json:"id"`
	X        int `json:"x"`
	Y        int `json:"y"`
	Width    int `json:"width"`
	Height   int `json:"height"`
	XOffset  int `json:"xoffset"`
	YOffset  int `json:"yoffset"`
	XAdvance int `json:"xadvance"`
}

type jsonKerning struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Amount int `json:"amount"`
}

// LoadBitmapFont parses a BMFont-style JSON font description. Every glyph is
// registered in atlas as a region on the given page, named "font:<page>:<id>".
func LoadBitmapFont(data []byte, atlas *Atlas, page uint16) (*BitmapFont, error) {
	var jf jsonFont
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("bramble: parse font JSON: %w", err)
	}
	if jf.LineHeight <= 0 {
		return nil, fmt.Errorf("bramble: font JSON missing lineHeight")
	}
	if len(jf.Chars) == 0 {
		return nil, fmt.Errorf("bramble: font JSON has no chars")
	}
	if atlas == nil {
		return nil, fmt.Errorf("bramble: font needs an atlas")
	}

	f := &BitmapFont{lineHeight: jf.LineHeight, base: jf.Base}
	for _, c := range jf.Chars {
		g := Glyph{
			ID:       rune(c.ID),
			Width:    c.Width,
			Height:   c.Height,
			XOffset:  c.XOffset,
			YOffset:  c.YOffset,
			XAdvance: c.XAdvance,
		}
		if c.Width > 0 && c.Height > 0 {
			g.Region = atlas.AddRegion(fmt.Sprintf("font:%d:%d", page, c.ID), TextureRegion{
				Page:      page,
				X:         uint16(c.X),
				Y:         uint16(c.Y),
				Width:     uint16(c.Width),
				Height:    uint16(c.Height),
				OriginalW: uint16(c.Width),
				OriginalH: uint16(c.Height),
			})
		}
		if g.ID >= 0 && g.ID < asciiGlyphCount {
			f.asciiGlyphs[g.ID] = g
			f.asciiSet[g.ID] = true
		} else {
			if f.extGlyphs == nil {
				f.extGlyphs = make(map[rune]*Glyph)
			}
			f.extGlyphs[g.ID] = &g
		}
	}
	for _, k := range jf.Kernings {
		if f.kernings == nil {
			f.kernings = make(map[[2]rune]int)
		}
		f.kernings[[2]rune{rune(k.First), rune(k.Second)}] = k.Amount
	}
	return f, nil
}

// LineHeight returns the vertical distance between baselines.
func (f *BitmapFont) LineHeight() float64 {
	return f.lineHeight
}

// Base returns the distance from the top of a line to the baseline.
func (f *BitmapFont) Base() float64 {
	return f.base
}

// Glyph returns the glyph for r.
func (f *BitmapFont) Glyph(r rune) (Glyph, bool) {
	if g := f.glyph(r); g != nil {
		return *g, true
	}
	return Glyph{}, false
}

func (f *BitmapFont) glyph(r rune) *Glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	return f.extGlyphs[r]
}

// kern returns the kerning amount for the given rune pair.
func (f *BitmapFont) kern(first, second rune) int {
	if f.kernings == nil {
		return 0
	}
	return f.kernings[[2]rune{first, second}]
}

// MeasureString returns the width and height of the rendered text.
func (f *BitmapFont) MeasureString(s string) (width, height float64) {
	var maxW float64
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		maxW = max(maxW, f.lineWidth(line))
	}
	return maxW, float64(len(lines)) * f.lineHeight
}

// MeasureWrapped returns the size of s laid out with the given wrap width.
func (f *BitmapFont) MeasureWrapped(s string, wrapWidth float64) (width, height float64) {
	lines := f.wrap(s, wrapWidth)
	for _, line := range lines {
		width = max(width, f.lineWidth(line))
	}
	return width, float64(len(lines)) * f.lineHeight
}

func (f *BitmapFont) lineWidth(line string) float64 {
	var cursorX float64
	var prev rune
	var hasPrev bool
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		i += size
		g := f.glyph(r)
		if g == nil {
			hasPrev = false
			continue
		}
		if hasPrev {
			cursorX += float64(f.kern(prev, r))
		}
		cursorX += float64(g.XAdvance)
		prev = r
		hasPrev = true
	}
	return cursorX
}

// Layout positions the glyphs of s. When wrapWidth is positive, lines break
// at spaces so they fit within it and alignment is relative to wrapWidth;
// otherwise alignment is relative to the widest line.
func (f *BitmapFont) Layout(s string, align TextAlign, wrapWidth float64) []GlyphPlacement {
	lines := f.wrap(s, wrapWidth)

	alignW := wrapWidth
	if alignW <= 0 {
		for _, line := range lines {
			alignW = max(alignW, f.lineWidth(line))
		}
	}

	var out []GlyphPlacement
	for li, line := range lines {
		var cursorX float64
		switch align {
		case TextAlignLeft:
			// No offset needed for left alignment.
		case TextAlignCenter:
			cursorX = (alignW - f.lineWidth(line)) / 2
		case TextAlignRight:
			cursorX = alignW - f.lineWidth(line)
		}
		lineY := float64(li) * f.lineHeight

		var prev rune
		var hasPrev bool
		for i := 0; i < len(line); {
			r, size := utf8.DecodeRuneInString(line[i:])
			i += size
			g := f.glyph(r)
			if g == nil {
				hasPrev = false
				continue
			}
			if hasPrev {
				cursorX += float64(f.kern(prev, r))
			}
			if g.Width > 0 && g.Height > 0 {
				out = append(out, GlyphPlacement{
					X:      cursorX + float64(g.XOffset),
					Y:      lineY + float64(g.YOffset),
					W:      float64(g.Width),
					H:      float64(g.Height),
					Region: g.Region,
				})
			}
			cursorX += float64(g.XAdvance)
			prev = r
			hasPrev = true
		}
	}
	return out
}

// wrap splits s into lines on newlines and, when wrapWidth is positive, on
// spaces. A single word wider than wrapWidth stays on its own line.
func (f *BitmapFont) wrap(s string, wrapWidth float64) []string {
	paragraphs := strings.Split(s, "\n")
	if wrapWidth <= 0 {
		return paragraphs
	}
	var lines []string
	for _, p := range paragraphs {
		var cur string
		for i, word := range strings.Split(p, " ") {
			if i == 0 {
				cur = word
				continue
			}
			candidate := cur + " " + word
			if f.lineWidth(candidate) > wrapWidth {
				lines = append(lines, cur)
				cur = word
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}
