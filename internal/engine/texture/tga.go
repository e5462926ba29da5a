package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA image file.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// images at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: TGA data too short", ErrInvalidImage)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupportedFormat)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedFormat, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: TGA bit depth %d", ErrUnsupportedFormat, bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: TGA has zero size", ErrInvalidImage)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: TGA data truncated", ErrInvalidImage)
	}

	d := tgaDecoder{
		img:           image.NewRGBA(image.Rect(0, 0, width, height)),
		pix:           data[offset:],
		width:         width,
		height:        height,
		bytesPerPixel: bpp / 8,
		// Bit 5 of the descriptor marks top-to-bottom row order.
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if err := d.decodeRaw(); err != nil {
			return nil, err
		}
	} else {
		d.decodeRLE()
	}
	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	pix           []byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
}

// pixel reads one BGR(A) pixel at byte offset i.
func (d *tgaDecoder) pixel(i int) color.RGBA {
	c := color.RGBA{B: d.pix[i], G: d.pix[i+1], R: d.pix[i+2], A: 255}
	if d.bytesPerPixel == 4 {
		c.A = d.pix[i+3]
	}
	return c
}

// set stores the n-th pixel in file order into the top-down image.
func (d *tgaDecoder) set(n int, c color.RGBA) {
	x := n % d.width
	y := n / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	count := d.width * d.height
	if len(d.pix) < count*d.bytesPerPixel {
		return fmt.Errorf("%w: TGA pixel data truncated", ErrInvalidImage)
	}
	for n := range count {
		d.set(n, d.pixel(n*d.bytesPerPixel))
	}
	return nil
}

// decodeRLE stops quietly at the end of the data; missing pixels stay
// transparent black.
func (d *tgaDecoder) decodeRLE() {
	pixelCount := d.width * d.height
	n, i := 0, 0

	for n < pixelCount && i < len(d.pix) {
		packet := d.pix[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+d.bytesPerPixel > len(d.pix) {
				return
			}
			c := d.pixel(i)
			i += d.bytesPerPixel
			for k := 0; k < count && n < pixelCount; k++ {
				d.set(n, c)
				n++
			}
			continue
		}

		for k := 0; k < count && n < pixelCount; k++ {
			if i+d.bytesPerPixel > len(d.pix) {
				return
			}
			d.set(n, d.pixel(i))
			i += d.bytesPerPixel
			n++
		}
	}
}
