package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	aliveChar   = 'O'
	deadChar    = '.'
	commentChar = '!'
	namePrefix  = "!Name:"

	// PlaintextExt is the file extension of plaintext pattern files.
	PlaintextExt = ".cells"
)

var (
	// ErrMalformed marks a pattern file that cannot be parsed.
	ErrMalformed = errors.New("malformed pattern")
	// ErrEmpty marks a pattern file without live cells.
	ErrEmpty = errors.New("pattern has no live cells")
)

// Definition is a named pattern read from the corpus.
type Definition struct {
	Name   string
	Shape  Shape
	Source string
}

// Bounds returns the definition's bounding box.
func (d Definition) Bounds() BoundingBox { return d.Shape.Bounds() }

// NewDefinition normalizes cells into a Definition.
func NewDefinition(name string, cells ...Cell) Definition {
	return Definition{Name: name, Shape: NormalizeCells(cells)}
}

// ParsePlaintext reads a plaintext (.cells) pattern. Lines starting with '!'
// are comments, and "!Name:" overrides fallbackName. 'O' marks a live cell,
// '.' a dead one; short rows are padded with dead cells.
func ParsePlaintext(r io.Reader, fallbackName string) (Definition, error) {
	def := Definition{Name: fallbackName}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	var cells []Cell
	row := 0
	started := false
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, string(commentChar)) {
			if name, ok := strings.CutPrefix(line, namePrefix); ok {
				if name = strings.TrimSpace(name); name != "" {
					def.Name = name
				}
			}
			continue
		}
		line = strings.TrimRight(line, " \t")
		if line == "" && !started {
			continue
		}
		started = true
		for col, ch := range []byte(line) {
			switch ch {
			case aliveChar:
				cells = append(cells, Cell{Row: row, Col: col})
			case deadChar:
			default:
				return Definition{}, fmt.Errorf("%w: line %d: unexpected %q", ErrMalformed, lineNo, ch)
			}
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if def.Name == "" {
		return Definition{}, fmt.Errorf("%w: no name", ErrMalformed)
	}
	if len(cells) == 0 {
		return Definition{}, ErrEmpty
	}
	def.Shape = NormalizeCells(cells)
	return def, nil
}

// NameFromFile derives a pattern name from a file name.
func NameFromFile(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
