package pattern

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Hash is the canonical digest of a normalized shape.
type Hash [sha256.Size]byte

// HashShape digests the shape's sorted cells. The encoding is a big-endian
// uint32 cell count followed by each cell as two big-endian int32 values.
func HashShape(s Shape) Hash {
	buf := make([]byte, 0, 4+8*len(s.cells))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s.cells)))
	for _, c := range s.cells {
		buf = binary.BigEndian.AppendUint32(buf, uint32(int32(c.Row)))
		buf = binary.BigEndian.AppendUint32(buf, uint32(int32(c.Col)))
	}
	return sha256.Sum256(buf)
}

// HashCells normalizes the set and hashes it.
func HashCells(s CellSet) Hash { return HashShape(Normalize(s)) }

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Short returns the first 16 hex characters, for log output.
func (h Hash) Short() string { return hex.EncodeToString(h[:8]) }
