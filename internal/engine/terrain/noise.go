package terrain

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// noiseOffset lifts the hash noise so most displacement is upward.
const noiseOffset = 1.25 / 2

// perlinFrequency maps grid coordinates into perlin space. Integer lattice
// points are zeros of the gradient noise, so the grid is sampled between them.
const perlinFrequency = 0.0731

// Noise returns the deterministic integer-hash noise for grid (i, j), in
// roughly [-1, 1]. Arithmetic wraps at 32 bits.
func Noise(i, j int32) float32 {
	n := i + j*57
	n = (n >> 13) ^ n
	m := (n*(n*n*60493+19990303) + 1376312589) & 0x7fffffff
	return 1.0 - float32(m)/1073741824.0
}

// Displacer produces the raw noise value for grid (i, j).
type Displacer interface {
	Displacement(i, j int) float32
}

// HashNoise is the Displacer backed by Noise.
type HashNoise struct{}

// Displacement implements Displacer.
func (HashNoise) Displacement(i, j int) float32 {
	return Noise(int32(i), int32(j))
}

// PerlinNoise is a seeded gradient-noise Displacer.
type PerlinNoise struct {
	p *perlin.Perlin
}

// NewPerlinNoise returns a PerlinNoise for the given seed.
func NewPerlinNoise(seed int64) *PerlinNoise {
	return &PerlinNoise{p: perlin.NewPerlin(2.0, 2.0, 3, seed)}
}

// Displacement implements Displacer.
func (n *PerlinNoise) Displacement(i, j int) float32 {
	return float32(n.p.Noise2D(float64(i)*perlinFrequency, float64(j)*perlinFrequency))
}

// NewDisplacer returns the Displacer selected by opts.NoiseSource.
func NewDisplacer(opts Options) (Displacer, error) {
	switch opts.NoiseSource {
	case "", NoiseHash:
		return HashNoise{}, nil
	case NoisePerlin:
		return NewPerlinNoise(opts.PerlinSeed), nil
	default:
		return nil, fmt.Errorf("terrain: unknown noise source %q", opts.NoiseSource)
	}
}

// Offset converts a raw noise value into the height offset added to y.
func Offset(raw float32, extraNoise bool) float32 {
	v := raw + noiseOffset
	if !extraNoise {
		v *= 2
	}
	return v
}

// ApplyNoise displaces every vertex height by the noise for its grid
// coordinate. The vertex is addressed directly from (i, j).
func ApplyNoise(vertices []Vertex, opts Options, d Displacer) {
	for i := range opts.vertsX() {
		for j := range opts.vertsZ() {
			v := &vertices[opts.index(i, j)]
			v.Position[1] += Offset(d.Displacement(i, j), opts.ExtraNoise)
		}
	}
}
