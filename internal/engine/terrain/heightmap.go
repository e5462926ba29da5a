package terrain

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/gift"
)

// HeightMap is a tightly packed RGBA image whose red channel encodes height.
type HeightMap struct {
	Pix    []byte // 4 bytes per pixel, row-major, no padding
	Width  int
	Height int
}

// NewHeightMap copies img into a tightly packed height map.
func NewHeightMap(img image.Image) (*HeightMap, error) {
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, errors.New("terrain: empty heightmap image")
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	pix := make([]byte, len(rgba.Pix))
	copy(pix, rgba.Pix)
	return &HeightMap{Pix: pix, Width: b.Dx(), Height: b.Dy()}, nil
}

// Image returns the height map as an *image.RGBA sharing its pixels.
func (h *HeightMap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    h.Pix,
		Stride: h.Width * 4,
		Rect:   image.Rect(0, 0, h.Width, h.Height),
	}
}

// At returns the red byte of pixel (x, y).
func (h *HeightMap) At(x, y int) (byte, error) {
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return 0, fmt.Errorf("terrain: pixel (%d,%d) outside %dx%d heightmap", x, y, h.Width, h.Height)
	}
	return h.Pix[(x+y*h.Width)*4], nil
}

// Smooth returns a copy of the height map blurred with a Gaussian of the
// given sigma. A non-positive sigma returns the receiver unchanged.
func (h *HeightMap) Smooth(sigma float32) *HeightMap {
	if sigma <= 0 {
		return h
	}
	src := h.Image()
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return &HeightMap{Pix: dst.Pix, Width: h.Width, Height: h.Height}
}

// SampleHeight returns the elevation for grid vertex (x, z) of a grid with
// numVertX by numVertZ vertices. The X axis is sampled in reverse. Image
// coordinates are clamped to the map, so the error is always nil for a
// valid HeightMap; it is kept to surface HeightMap.At failures.
func SampleHeight(h *HeightMap, x, z, numVertX, numVertZ int) (byte, error) {
	if h == nil {
		return 0, nil
	}
	scaleX := float32(h.Width-1) / float32(numVertX)
	scaleZ := float32(h.Height-1) / float32(numVertZ)

	imageX := int(scaleX * float32(numVertX-x))
	imageZ := int(scaleZ * float32(z))

	// Float truncation can land one past the last pixel on odd sizes.
	imageX = clampi(imageX, 0, h.Width-1)
	imageZ = clampi(imageZ, 0, h.Height-1)

	return h.At(imageX, imageZ)
}

// HeightAt returns the bilinearly interpolated terrain height at a world
// position. Positions outside the mesh are clamped to the nearest edge.
func (m *Mesh) HeightAt(worldX, worldZ float32) float32 {
	if m == nil || len(m.Vertices) == 0 {
		return 0
	}
	o := Options{CellsX: m.CellsX, CellsZ: m.CellsZ}

	cellFX := worldX / CellSize
	cellFZ := worldZ / CellSize
	cellX := clampi(int(cellFX), 0, m.CellsX-1)
	cellZ := clampi(int(cellFZ), 0, m.CellsZ-1)

	fracX := clampf(cellFX-float32(cellX), 0, 1)
	fracZ := clampf(cellFZ-float32(cellZ), 0, 1)

	h00 := m.Vertices[o.index(cellX, cellZ)].Position.Y()
	h10 := m.Vertices[o.index(cellX+1, cellZ)].Position.Y()
	h01 := m.Vertices[o.index(cellX, cellZ+1)].Position.Y()
	h11 := m.Vertices[o.index(cellX+1, cellZ+1)].Position.Y()

	near := h00*(1-fracX) + h10*fracX
	far := h01*(1-fracX) + h11*fracX
	return near*(1-fracZ) + far*fracZ
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
