package editdist

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Largest sequence length a Matrix can count to without overflowing int32
const MaxLen = math.MaxInt32 - 1

var ErrTooLong = errors.New("sequence too long for distance matrix")

// Matrix is the (len(a)+1) x (len(b)+1) levenshtein table. Cell [i][j] is the
// distance between a[:i] and b[:j].
type Matrix [][]int32

func min3(a, b, c int32) int32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Distance builds the full levenshtein table of a and b with unit costs
func Distance[T comparable](a, b []T) (Matrix, error) {
	if len(a) > MaxLen || len(b) > MaxLen {
		return nil, fmt.Errorf("%w: %d x %d", ErrTooLong, len(a), len(b))
	}
	dist := make(Matrix, len(a)+1)
	dist[0] = make([]int32, len(b)+1)
	for j := range dist[0] {
		dist[0][j] = int32(j) // First row
	}
	for i := 1; i < len(a)+1; i++ {
		dist[i] = make([]int32, len(b)+1)
		dist[i][0] = int32(i) // First col
		for j := 1; j < len(b)+1; j++ {
			if a[i-1] == b[j-1] {
				dist[i][j] = dist[i-1][j-1]
				continue
			}
			dist[i][j] = 1 + min3(dist[i-1][j-1], dist[i][j-1], dist[i-1][j])
		}
	}
	return dist, nil
}

func (m Matrix) Rows() int {
	return len(m)
}

func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m Matrix) At(i, j int) int {
	return int(m[i][j])
}

// Dist returns the bottom right cell, the edit distance of the whole sequences
func (m Matrix) Dist() int {
	if len(m) == 0 {
		return 0
	}
	last := m[len(m)-1]
	return int(last[len(last)-1])
}

// String prints the table, one row per line
func (m Matrix) String() string {
	var c strings.Builder
	for i, row := range m {
		if i > 0 {
			c.WriteByte('\n')
		}
		for _, v := range row {
			fmt.Fprintf(&c, " %3d", v)
		}
	}
	return c.String()
}

// Levenshtein is the byte level edit distance of a and b
func Levenshtein(a []byte, b []byte) int {
	dist, err := Distance(a, b)
	if err != nil {
		// Byte slices that long cannot fit in memory as a table anyway
		panic(err)
	}
	return dist.Dist()
}

// CER is the character error rate of dist edits against a reference of
// length blen. An empty reference counts as a 100% error if dist > 0.
func CER(dist int, blen int) float64 {
	if dist == 0 {
		return 0.0 // Perfect match
	} else if blen == 0 {
		return 1.0 // 100% error if should be empty and not
	} else {
		return float64(dist) / float64(blen)
	}
}
