package bramble

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/go-restruct/restruct"
)

// Errors returned by DecodeTGA.
var (
	ErrUnsupportedTGA = errors.New("bramble: unsupported TGA")
	ErrCorruptTGA     = errors.New("bramble: corrupt TGA")
)

// TextureData is a decoded image: RGBA8 pixels in top-down row order.
type TextureData struct {
	Pixels        []byte
	BytesPerPixel int
	Width         int
	Height        int
	HasAlpha      bool
}

// Image copies the pixels into an *image.NRGBA.
func (t *TextureData) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	copy(img.Pix, t.Pixels)
	return img
}

// NewTextureData converts any image into RGBA8 TextureData.
func NewTextureData(img image.Image) *TextureData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	td := &TextureData{
		Pixels:        make([]byte, w*h*4),
		BytesPerPixel: 4,
		Width:         w,
		Height:        h,
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			td.Pixels[i], td.Pixels[i+1], td.Pixels[i+2], td.Pixels[i+3] = c.R, c.G, c.B, c.A
			if c.A != 0xFF {
				td.HasAlpha = true
			}
			i += 4
		}
	}
	return td
}

// tgaHeader is the fixed 18-byte header at the start of every TGA file.
type tgaHeader struct {
	IDLength       uint8
	ColorMapType   uint8
	ImageType      uint8
	ColorMapOrigin uint16
	ColorMapLength uint16
	ColorMapDepth  uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	PixelDepth     uint8
	Descriptor     uint8
}

const tgaHeaderSize = 18

const (
	tgaColorMapped    = 1
	tgaTrueColor      = 2
	tgaGrayscale      = 3
	tgaRLEColorMapped = 9
	tgaRLETrueColor   = 10
	tgaRLEGrayscale   = 11

	tgaRightToLeft = 0x10
	tgaTopToBottom = 0x20
	tgaAlphaMask   = 0x0F
)

// DecodeTGA decodes an uncompressed or RLE TGA image (types 1, 2, 3, 9, 10
// and 11) into RGBA8 TextureData.
func DecodeTGA(r io.Reader) (*TextureData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bramble: read TGA: %w", err)
	}
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrCorruptTGA, len(data))
	}
	var hdr tgaHeader
	if err := restruct.Unpack(data[:tgaHeaderSize], binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorruptTGA, err)
	}
	if hdr.Width == 0 || hdr.Height == 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrCorruptTGA, hdr.Width, hdr.Height)
	}

	var rle bool
	switch hdr.ImageType {
	case tgaColorMapped, tgaTrueColor, tgaGrayscale:
	case tgaRLEColorMapped, tgaRLETrueColor, tgaRLEGrayscale:
		rle = true
	default:
		return nil, fmt.Errorf("%w: image type %d", ErrUnsupportedTGA, hdr.ImageType)
	}
	kind := hdr.ImageType &^ 8
	mapped := kind == tgaColorMapped

	switch kind {
	case tgaColorMapped:
		if hdr.ColorMapType != 1 {
			return nil, fmt.Errorf("%w: color-mapped image without a color map", ErrCorruptTGA)
		}
		if hdr.PixelDepth != 8 && hdr.PixelDepth != 16 {
			return nil, fmt.Errorf("%w: %d-bit color map index", ErrUnsupportedTGA, hdr.PixelDepth)
		}
		switch hdr.ColorMapDepth {
		case 15, 16, 24, 32:
		default:
			return nil, fmt.Errorf("%w: %d-bit color map entries", ErrUnsupportedTGA, hdr.ColorMapDepth)
		}
	case tgaTrueColor:
		switch hdr.PixelDepth {
		case 15, 16, 24, 32:
		default:
			return nil, fmt.Errorf("%w: %d-bit true-color", ErrUnsupportedTGA, hdr.PixelDepth)
		}
	case tgaGrayscale:
		if hdr.PixelDepth != 8 && hdr.PixelDepth != 16 {
			return nil, fmt.Errorf("%w: %d-bit grayscale", ErrUnsupportedTGA, hdr.PixelDepth)
		}
	}

	attrBits := hdr.Descriptor & tgaAlphaMask
	var hasAlpha bool
	switch kind {
	case tgaColorMapped:
		hasAlpha = hdr.ColorMapDepth == 32 || (hdr.ColorMapDepth == 16 && attrBits > 0)
	case tgaGrayscale:
		hasAlpha = hdr.PixelDepth == 16
	default:
		hasAlpha = hdr.PixelDepth == 32 || (hdr.PixelDepth == 16 && attrBits > 0)
	}

	off := tgaHeaderSize + int(hdr.IDLength)

	// The color map is present whenever the header says so, even for
	// true-color images that do not use it.
	var palette [][4]byte
	if hdr.ColorMapType == 1 {
		entrySize := (int(hdr.ColorMapDepth) + 7) / 8
		size := int(hdr.ColorMapLength) * entrySize
		if off+size > len(data) {
			return nil, fmt.Errorf("%w: color map truncated", ErrCorruptTGA)
		}
		if mapped {
			palette = make([][4]byte, hdr.ColorMapLength)
			for i := range palette {
				palette[i] = tgaPixel(data[off+i*entrySize:], hdr.ColorMapDepth, hasAlpha)
			}
		}
		off += size
	}

	w, h := int(hdr.Width), int(hdr.Height)
	bpp := (int(hdr.PixelDepth) + 7) / 8
	var raw []byte
	if rle {
		raw, err = tgaUnpackRLE(data[off:], w*h, bpp)
		if err != nil {
			return nil, err
		}
	} else {
		n := w * h * bpp
		if off+n > len(data) {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrCorruptTGA)
		}
		raw = data[off : off+n]
	}

	td := &TextureData{
		Pixels:        make([]byte, w*h*4),
		BytesPerPixel: 4,
		Width:         w,
		Height:        h,
		HasAlpha:      hasAlpha,
	}

	topDown := hdr.Descriptor&tgaTopToBottom != 0
	rightToLeft := hdr.Descriptor&tgaRightToLeft != 0
	for sy := 0; sy < h; sy++ {
		dy := sy
		if !topDown {
			dy = h - 1 - sy
		}
		for sx := 0; sx < w; sx++ {
			dx := sx
			if rightToLeft {
				dx = w - 1 - sx
			}
			src := raw[(sy*w+sx)*bpp:]
			var px [4]byte
			switch kind {
			case tgaColorMapped:
				idx := int(src[0])
				if bpp == 2 {
					idx = int(binary.LittleEndian.Uint16(src))
				}
				idx -= int(hdr.ColorMapOrigin)
				if idx < 0 || idx >= len(palette) {
					return nil, fmt.Errorf("%w: color index %d out of range", ErrCorruptTGA, idx)
				}
				px = palette[idx]
			case tgaGrayscale:
				a := byte(0xFF)
				if bpp == 2 {
					a = src[1]
				}
				px = [4]byte{src[0], src[0], src[0], a}
			default:
				px = tgaPixel(src, hdr.PixelDepth, hasAlpha)
			}
			copy(td.Pixels[(dy*w+dx)*4:], px[:])
		}
	}
	return td, nil
}

// tgaPixel converts one little-endian BGR(A) pixel to RGBA. For 16-bit
// pixels the top bit is alpha only when alpha is set.
func tgaPixel(b []byte, depth uint8, alpha bool) [4]byte {
	switch depth {
	case 15, 16:
		v := binary.LittleEndian.Uint16(b)
		px := [4]byte{
			expand5(byte(v>>10) & 0x1F),
			expand5(byte(v>>5) & 0x1F),
			expand5(byte(v) & 0x1F),
			0xFF,
		}
		if depth == 16 && alpha && v&0x8000 == 0 {
			px[3] = 0
		}
		return px
	case 24:
		return [4]byte{b[2], b[1], b[0], 0xFF}
	default:
		return [4]byte{b[2], b[1], b[0], b[3]}
	}
}

func expand5(v byte) byte {
	return v<<3 | v>>2
}

// tgaUnpackRLE expands run-length packets into count raw pixels of bpp bytes.
func tgaUnpackRLE(src []byte, count, bpp int) ([]byte, error) {
	out := make([]byte, 0, count*bpp)
	i := 0
	for n := 0; n < count; {
		if i >= len(src) {
			return nil, fmt.Errorf("%w: RLE data truncated", ErrCorruptTGA)
		}
		head := src[i]
		i++
		run := int(head&0x7F) + 1
		if n+run > count {
			return nil, fmt.Errorf("%w: RLE packet overruns image", ErrCorruptTGA)
		}
		if head&0x80 != 0 {
			if i+bpp > len(src) {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrCorruptTGA)
			}
			px := src[i : i+bpp]
			i += bpp
			for range run {
				out = append(out, px...)
			}
		} else {
			size := run * bpp
			if i+size > len(src) {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrCorruptTGA)
			}
			out = append(out, src[i:i+size]...)
			i += size
		}
		n += run
	}
	return out, nil
}
