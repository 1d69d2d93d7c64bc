package pattern

import "fmt"

// Orientation is one of the 8 symmetries of the square.
type Orientation uint8

const (
	Identity Orientation = iota
	Rot90
	Rot180
	Rot270
	// ReflectRotN rotates by N degrees and then mirrors columns.
	Reflect
	ReflectRot90
	ReflectRot180
	ReflectRot270
)

// AllOrientations lists every orientation in index order.
var AllOrientations = [8]Orientation{
	Identity, Rot90, Rot180, Rot270,
	Reflect, ReflectRot90, ReflectRot180, ReflectRot270,
}

var orientationNames = [8]string{
	"identity", "rot90", "rot180", "rot270",
	"reflect", "reflect+rot90", "reflect+rot180", "reflect+rot270",
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// matrix maps (r, c) to (m[0]*r + m[1]*c, m[2]*r + m[3]*c).
type matrix [4]int

var (
	rot90Matrix   = matrix{0, 1, -1, 0}
	reflectMatrix = matrix{1, 0, 0, -1}
)

func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2], m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2], m[2]*n[1] + m[3]*n[3],
	}
}

func (m matrix) apply(c Cell) Cell {
	return Cell{Row: m[0]*c.Row + m[1]*c.Col, Col: m[2]*c.Row + m[3]*c.Col}
}

var orientationMatrices = buildOrientationMatrices()

func buildOrientationMatrices() [8]matrix {
	var out [8]matrix
	m := matrix{1, 0, 0, 1}
	for i := 0; i < 4; i++ {
		out[i] = m
		out[i+4] = reflectMatrix.mul(m)
		m = rot90Matrix.mul(m)
	}
	return out
}

func (o Orientation) matrix() matrix { return orientationMatrices[o%8] }

// Valid reports whether o is one of the 8 defined orientations.
func (o Orientation) Valid() bool { return o < 8 }

// Apply transforms the shape and re-normalizes the result.
func (o Orientation) Apply(s Shape) Shape {
	if s.Empty() {
		return Shape{}
	}
	m := o.matrix()
	out := make(CellSet, len(s.cells))
	for _, c := range s.cells {
		out.Add(m.apply(c))
	}
	return Normalize(out)
}

// Compose returns the orientation equivalent to applying o and then next.
func (o Orientation) Compose(next Orientation) Orientation {
	want := next.matrix().mul(o.matrix())
	for _, cand := range AllOrientations {
		if cand.matrix() == want {
			return cand
		}
	}
	panic("pattern: orientation group is not closed")
}

// Inverse returns the orientation that undoes o.
func (o Orientation) Inverse() Orientation {
	for _, cand := range AllOrientations {
		if o.Compose(cand) == Identity {
			return cand
		}
	}
	panic("pattern: orientation has no inverse")
}

// Orientations returns the shape under all 8 orientations, in index order.
// Symmetric shapes produce repeated entries.
func Orientations(s Shape) [8]Shape {
	var out [8]Shape
	for i, o := range AllOrientations {
		out[i] = o.Apply(s)
	}
	return out
}

// Rotate90 applies (r, c) -> (c, -r) and re-normalizes.
func Rotate90(s Shape) Shape { return Rot90.Apply(s) }

// ReflectCols applies (r, c) -> (r, -c) and re-normalizes.
func ReflectCols(s Shape) Shape { return Reflect.Apply(s) }
