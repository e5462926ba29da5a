// Package texture decodes image files into RGBA pixel buffers ready for GPU
// upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path"
	"strings"

	// Registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoding errors.
var (
	ErrInvalidImage      = errors.New("invalid image data")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Decode decodes an image file, choosing the decoder from the file
// extension for formats the standard registry does not know (TGA, DDS).
// The result is top-down like any image.Image.
func Decode(name string, data []byte) (*image.RGBA, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".tga":
		return DecodeTGA(data)
	case ".dds":
		return DecodeDDS(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrInvalidImage, name, err)
	}
	return ImageToRGBA(img), nil
}

// DecodeForGL decodes an image and flips it so the first row is the bottom
// of the picture, which is the row order glTexImage2D expects.
func DecodeForGL(name string, data []byte) (*image.RGBA, error) {
	img, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	return FlipVertical(img), nil
}

// FlipVertical returns a vertically mirrored copy of img.
func FlipVertical(img *image.RGBA) *image.RGBA {
	g := gift.New(gift.FlipVertical())
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// ImageToRGBA converts any image.Image to an *image.RGBA anchored at the
// origin. RGBA images already in that shape are returned as is.
func ImageToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == b.Dx()*4 {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if _, ok := img.(*image.NRGBA); ok {
		// draw.Draw premultiplies; keep straight alpha for textures.
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				rgba.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA(c))
			}
		}
		return rgba
	}
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
