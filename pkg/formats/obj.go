package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJ parsing errors.
var (
	ErrInvalidOBJ    = errors.New("invalid OBJ data")
	ErrOBJIndexRange = errors.New("OBJ index out of range")
)

// OBJ is a parsed Wavefront OBJ file. Attribute arrays are shared by all
// objects; faces reference them by 0-based index.
type OBJ struct {
	MaterialLib string
	Positions   [][3]float32
	TexCoords   [][2]float32
	Normals     [][3]float32
	Objects     []OBJObject
}

// OBJObject is a named run of faces using one material.
type OBJObject struct {
	Name     string
	Material string
	Faces    []OBJFace
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners []OBJIndex
}

// OBJIndex references one corner's attributes. TexCoord and Normal are -1
// when the corner has none.
type OBJIndex struct {
	Position int
	TexCoord int
	Normal   int
}

// Triangles fan-triangulates the face around its first corner.
func (f OBJFace) Triangles() [][3]OBJIndex {
	if len(f.Corners) < 3 {
		return nil
	}
	tris := make([][3]OBJIndex, 0, len(f.Corners)-2)
	for i := 1; i+1 < len(f.Corners); i++ {
		tris = append(tris, [3]OBJIndex{f.Corners[0], f.Corners[i], f.Corners[i+1]})
	}
	return tris
}

// TriangleCount returns the number of triangles after fan triangulation.
func (o *OBJObject) TriangleCount() int {
	n := 0
	for _, f := range o.Faces {
		if len(f.Corners) >= 3 {
			n += len(f.Corners) - 2
		}
	}
	return n
}

// ParseOBJ parses Wavefront OBJ text. Unsupported statements (lines,
// points, smoothing groups, free-form geometry) are ignored.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	cur := &OBJObject{}

	flush := func() {
		if len(cur.Faces) > 0 {
			obj.Objects = append(obj.Objects, *cur)
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, [3]float32{v[0], v[1], v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			obj.TexCoords = append(obj.TexCoords, [2]float32{v[0], v[1]})

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, [3]float32{v[0], v[1], v[2]})

		case "f":
			face, err := obj.parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			cur.Faces = append(cur.Faces, face)

		case "o", "g":
			flush()
			name := strings.Join(fields[1:], " ")
			cur = &OBJObject{Name: name, Material: cur.Material}

		case "usemtl":
			mtl := strings.Join(fields[1:], " ")
			if len(cur.Faces) > 0 && cur.Material != mtl {
				flush()
				cur = &OBJObject{Name: cur.Name}
			}
			cur.Material = mtl

		case "mtllib":
			obj.MaterialLib = strings.Join(fields[1:], " ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	flush()
	if len(obj.Objects) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrInvalidOBJ)
	}
	return obj, nil
}

func (obj *OBJ) parseFace(fields []string) (OBJFace, error) {
	if len(fields) < 3 {
		return OBJFace{}, fmt.Errorf("%w: face needs 3 corners, got %d", ErrInvalidOBJ, len(fields))
	}
	face := OBJFace{Corners: make([]OBJIndex, len(fields))}
	for i, f := range fields {
		idx, err := obj.parseCorner(f)
		if err != nil {
			return OBJFace{}, err
		}
		face.Corners[i] = idx
	}
	return face, nil
}

// parseCorner handles "v", "v/vt", "v//vn" and "v/vt/vn", with negative
// indices counting back from the latest element.
func (obj *OBJ) parseCorner(s string) (OBJIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJIndex{}, fmt.Errorf("%w: corner %q", ErrInvalidOBJ, s)
	}

	idx := OBJIndex{TexCoord: -1, Normal: -1}
	var err error
	if idx.Position, err = resolveIndex(parts[0], len(obj.Positions)); err != nil {
		return OBJIndex{}, fmt.Errorf("position of %q: %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.TexCoord, err = resolveIndex(parts[1], len(obj.TexCoords)); err != nil {
			return OBJIndex{}, fmt.Errorf("texcoord of %q: %w", s, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.Normal, err = resolveIndex(parts[2], len(obj.Normals)); err != nil {
			return OBJIndex{}, fmt.Errorf("normal of %q: %w", s, err)
		}
	}
	return idx, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, fmt.Errorf("%w: %d of %d", ErrOBJIndexRange, n, count)
	}
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: expected %d components, got %d", ErrInvalidOBJ, want, len(fields))
	}
	out := make([]float32, want)
	for i := range want {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// WriteOBJ writes obj as Wavefront OBJ text with 1-based indices.
func WriteOBJ(w io.Writer, obj *OBJ) error {
	bw := bufio.NewWriter(w)

	if obj.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", obj.MaterialLib)
	}
	for _, p := range obj.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, t := range obj.TexCoords {
		fmt.Fprintf(bw, "vt %g %g\n", t[0], t[1])
	}
	for _, n := range obj.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	for _, o := range obj.Objects {
		if o.Name != "" {
			fmt.Fprintf(bw, "o %s\n", o.Name)
		}
		if o.Material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", o.Material)
		}
		for _, f := range o.Faces {
			bw.WriteString("f")
			for _, c := range f.Corners {
				bw.WriteByte(' ')
				bw.WriteString(formatCorner(c))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func formatCorner(c OBJIndex) string {
	p := strconv.Itoa(c.Position + 1)
	switch {
	case c.TexCoord >= 0 && c.Normal >= 0:
		return p + "/" + strconv.Itoa(c.TexCoord+1) + "/" + strconv.Itoa(c.Normal+1)
	case c.TexCoord >= 0:
		return p + "/" + strconv.Itoa(c.TexCoord+1)
	case c.Normal >= 0:
		return p + "//" + strconv.Itoa(c.Normal+1)
	default:
		return p
	}
}
