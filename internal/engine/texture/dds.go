package texture

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math/bits"
)

const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 124

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40
	ddpfLuminance   = 0x20000
)

type ddsPixelFormat struct {
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RMask       uint32
	GMask       uint32
	BMask       uint32
	AMask       uint32
}

// DecodeDDS decodes the top mip level of a DirectDraw Surface. Supported
// encodings are DXT1, DXT3, DXT5 and uncompressed 16/24/32-bit RGB(A) or
// luminance with arbitrary channel masks. Cube map and DX10 files are not.
func DecodeDDS(data []byte) (*image.RGBA, error) {
	if len(data) < 4+ddsHeaderSize || string(data[:4]) != ddsMagic {
		return nil, fmt.Errorf("%w: missing DDS header", ErrInvalidImage)
	}
	hdr := data[4 : 4+ddsHeaderSize]
	if binary.LittleEndian.Uint32(hdr[0:]) != ddsHeaderSize {
		return nil, fmt.Errorf("%w: DDS header size", ErrInvalidImage)
	}

	height := int(binary.LittleEndian.Uint32(hdr[8:]))
	width := int(binary.LittleEndian.Uint32(hdr[12:]))
	if width == 0 || height == 0 || width > 1<<15 || height > 1<<15 {
		return nil, fmt.Errorf("%w: DDS size %dx%d", ErrInvalidImage, width, height)
	}

	pf := hdr[72:104]
	format := ddsPixelFormat{
		Flags:       binary.LittleEndian.Uint32(pf[4:]),
		RGBBitCount: binary.LittleEndian.Uint32(pf[12:]),
		RMask:       binary.LittleEndian.Uint32(pf[16:]),
		GMask:       binary.LittleEndian.Uint32(pf[20:]),
		BMask:       binary.LittleEndian.Uint32(pf[24:]),
		AMask:       binary.LittleEndian.Uint32(pf[28:]),
	}
	copy(format.FourCC[:], pf[8:12])

	body := data[4+ddsHeaderSize:]
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	switch {
	case format.Flags&ddpfFourCC != 0:
		var blockSize int
		var decode func(block []byte, out *[16]color.RGBA)
		switch string(format.FourCC[:]) {
		case "DXT1":
			blockSize, decode = 8, decodeDXT1Block
		case "DXT3":
			blockSize, decode = 16, decodeDXT3Block
		case "DXT5":
			blockSize, decode = 16, decodeDXT5Block
		default:
			return nil, fmt.Errorf("%w: DDS fourCC %q", ErrUnsupportedFormat, format.FourCC[:])
		}
		if err := decodeBlocks(img, body, blockSize, decode); err != nil {
			return nil, err
		}

	case format.Flags&(ddpfRGB|ddpfLuminance) != 0:
		if err := decodeMasked(img, body, format); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: DDS pixel format flags 0x%x", ErrUnsupportedFormat, format.Flags)
	}
	return img, nil
}

func decodeBlocks(img *image.RGBA, body []byte, blockSize int, decode func([]byte, *[16]color.RGBA)) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	blocksX := (w + 3) / 4
	blocksY := (h + 3) / 4
	if len(body) < blocksX*blocksY*blockSize {
		return fmt.Errorf("%w: DDS block data truncated", ErrInvalidImage)
	}

	var texels [16]color.RGBA
	for by := range blocksY {
		for bx := range blocksX {
			off := (by*blocksX + bx) * blockSize
			decode(body[off:off+blockSize], &texels)
			for i, c := range texels {
				x := bx*4 + i%4
				y := by*4 + i/4
				if x < w && y < h {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	return nil
}

func rgb565(c uint16) color.RGBA {
	r := uint8(c >> 11 & 0x1f)
	g := uint8(c >> 5 & 0x3f)
	b := uint8(c & 0x1f)
	return color.RGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 255}
}

func mix(a, b color.RGBA, wa, wb, div uint16) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R)*wa + uint16(b.R)*wb) / div),
		G: uint8((uint16(a.G)*wa + uint16(b.G)*wb) / div),
		B: uint8((uint16(a.B)*wa + uint16(b.B)*wb) / div),
		A: 255,
	}
}

// decodeColorBlock decodes the 8-byte colour part shared by DXT1/3/5.
// forceFour disables DXT1's 3-colour + transparent mode.
func decodeColorBlock(block []byte, out *[16]color.RGBA, forceFour bool) {
	c0 := binary.LittleEndian.Uint16(block[0:])
	c1 := binary.LittleEndian.Uint16(block[2:])
	lookup := binary.LittleEndian.Uint32(block[4:])

	var palette [4]color.RGBA
	palette[0] = rgb565(c0)
	palette[1] = rgb565(c1)
	if c0 > c1 || forceFour {
		palette[2] = mix(palette[0], palette[1], 2, 1, 3)
		palette[3] = mix(palette[0], palette[1], 1, 2, 3)
	} else {
		palette[2] = mix(palette[0], palette[1], 1, 1, 2)
		palette[3] = color.RGBA{}
	}

	for i := range 16 {
		out[i] = palette[lookup>>(2*i)&3]
	}
}

func decodeDXT1Block(block []byte, out *[16]color.RGBA) {
	decodeColorBlock(block, out, false)
}

func decodeDXT3Block(block []byte, out *[16]color.RGBA) {
	decodeColorBlock(block[8:], out, true)
	alpha := binary.LittleEndian.Uint64(block[0:])
	for i := range 16 {
		a := uint8(alpha >> (4 * i) & 0xf)
		out[i].A = a<<4 | a
	}
}

func decodeDXT5Block(block []byte, out *[16]color.RGBA) {
	decodeColorBlock(block[8:], out, true)

	a0, a1 := block[0], block[1]
	var alphas [8]uint8
	alphas[0], alphas[1] = a0, a1
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			alphas[i+1] = uint8((uint16(a0)*uint16(7-i) + uint16(a1)*uint16(i)) / 7)
		}
	} else {
		for i := 1; i <= 4; i++ {
			alphas[i+1] = uint8((uint16(a0)*uint16(5-i) + uint16(a1)*uint16(i)) / 5)
		}
		alphas[6], alphas[7] = 0, 255
	}

	var lookup uint64
	for i := range 6 {
		lookup |= uint64(block[2+i]) << (8 * i)
	}
	for i := range 16 {
		out[i].A = alphas[lookup>>(3*i)&7]
	}
}

// channel extracts a masked channel and scales it to 8 bits.
func channel(v, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	max := mask >> shift
	return uint8((v & mask >> shift) * 255 / max)
}

func decodeMasked(img *image.RGBA, body []byte, f ddsPixelFormat) error {
	bpp := int(f.RGBBitCount / 8)
	if bpp < 1 || bpp > 4 {
		return fmt.Errorf("%w: DDS bit count %d", ErrUnsupportedFormat, f.RGBBitCount)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	// Rows are packed to whole bytes; no extra pitch padding.
	if len(body) < w*h*bpp {
		return fmt.Errorf("%w: DDS pixel data truncated", ErrInvalidImage)
	}

	luminance := f.Flags&ddpfLuminance != 0
	hasAlpha := f.Flags&ddpfAlphaPixels != 0 && f.AMask != 0

	for y := range h {
		for x := range w {
			off := (y*w + x) * bpp
			var v uint32
			for k := range bpp {
				v |= uint32(body[off+k]) << (8 * k)
			}

			var c color.RGBA
			if luminance {
				l := channel(v, f.RMask)
				c = color.RGBA{R: l, G: l, B: l}
			} else {
				c = color.RGBA{R: channel(v, f.RMask), G: channel(v, f.GMask), B: channel(v, f.BMask)}
			}
			c.A = 255
			if hasAlpha {
				c.A = channel(v, f.AMask)
			}
			img.SetRGBA(x, y, c)
		}
	}
	return nil
}
