package terrain

// Triangulate emits two triangles per cell, alternating the split diagonal
// between neighbouring cells and rows (herringbone). The swap flag flips
// after every cell and once more at the end of every row.
func Triangulate(opts Options) []uint32 {
	stride := opts.vertsZ()
	indices := make([]uint32, 0, opts.CellsX*opts.CellsZ*6)

	swap := false
	for x := range opts.CellsX {
		for z := range opts.CellsZ {
			tl := uint32(opts.index(x, z))
			tr := tl + 1
			bl := tl + uint32(stride)
			br := bl + 1

			if swap {
				indices = append(indices,
					tl, tr, bl,
					tr, br, bl,
				)
			} else {
				indices = append(indices,
					tl, br, bl,
					tr, br, tl,
				)
			}
			swap = !swap
		}
		swap = !swap
	}
	return indices
}
