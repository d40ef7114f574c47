package editdist

import (
	"errors"
	"fmt"
)

// Op is a single step of an edit script turning a into b
type Op uint8

const (
	Equal Op = iota
	Substitute
	Insert
	Delete
)

var opNames = [...]string{"equal", "substitute", "insert", "delete"}

var opTags = [...]byte{' ', 'S', 'I', 'D'}

// ErrInconsistentMatrix means a table was not built from the given sequences
var ErrInconsistentMatrix = errors.New("distance matrix inconsistent with sequences")

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Tag is the evaluation letter printed under the column
func (o Op) Tag() byte {
	if int(o) < len(opTags) {
		return opTags[o]
	}
	return '?'
}

// Advances reports which of the two sequences the op consumes a token from
func (o Op) Advances() (a, b bool) {
	switch o {
	case Equal, Substitute:
		return true, true
	case Insert:
		return false, true
	case Delete:
		return true, false
	}
	return false, false
}

func (o Op) MarshalText() ([]byte, error) {
	if int(o) >= len(opNames) {
		return nil, fmt.Errorf("invalid op %d", uint8(o))
	}
	return []byte(opNames[o]), nil
}

func (o *Op) UnmarshalText(text []byte) error {
	for i, name := range opNames {
		if name == string(text) {
			*o = Op(i)
			return nil
		}
	}
	return fmt.Errorf("unknown op %q", text)
}

// Backtrack recovers one optimal edit script from m, walking from the bottom
// right cell back to the origin. Ties prefer Equal, then Insert, then
// Substitute, then Delete. The result is in forward order.
func Backtrack[T comparable](a, b []T, m Matrix) ([]Op, error) {
	if m.Rows() != len(a)+1 || m.Cols() != len(b)+1 {
		return nil, fmt.Errorf("%w: table is %dx%d, sequences are %d and %d",
			ErrInconsistentMatrix, m.Rows(), m.Cols(), len(a), len(b))
	}
	x, y := len(a), len(b)
	ops := make([]Op, 0, max(x, y))
	for x > 0 || y > 0 {
		switch {
		case x >= 1 && y >= 1 && m[x][y] == m[x-1][y-1] && a[x-1] == b[y-1]:
			ops = append(ops, Equal)
			x, y = x-1, y-1
		case y >= 1 && m[x][y] == m[x][y-1]+1:
			ops = append(ops, Insert)
			y--
		case x >= 1 && y >= 1 && m[x][y] == m[x-1][y-1]+1:
			ops = append(ops, Substitute)
			x, y = x-1, y-1
		case x >= 1 && m[x][y] == m[x-1][y]+1:
			ops = append(ops, Delete)
			x--
		default:
			return nil, fmt.Errorf("%w: no predecessor of cell (%d, %d)",
				ErrInconsistentMatrix, x, y)
		}
	}
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops, nil
}

// Apply replays ops on a. Inserted and substituted tokens are taken from b,
// so a correct script reproduces b.
func Apply[T comparable](a, b []T, ops []Op) ([]T, error) {
	out := make([]T, 0, len(b))
	i, j := 0, 0
	for k, op := range ops {
		ua, ub := op.Advances()
		if (ua && i >= len(a)) || (ub && j >= len(b)) {
			return nil, fmt.Errorf("step %d (%v) runs past the end", k, op)
		}
		switch op {
		case Equal:
			if a[i] != b[j] {
				return nil, fmt.Errorf("step %d: equal on differing tokens", k)
			}
			out = append(out, a[i])
		case Substitute, Insert:
			out = append(out, b[j])
		case Delete:
		default:
			return nil, fmt.Errorf("step %d: invalid op %d", k, uint8(op))
		}
		if ua {
			i++
		}
		if ub {
			j++
		}
	}
	if i != len(a) {
		return nil, fmt.Errorf("%d tokens of a left unconsumed", len(a)-i)
	}
	return out, nil
}

// Counts tallies the ops of a script by kind
type Counts struct {
	Equal      int `json:"equal"`
	Substitute int `json:"substitutions"`
	Insert     int `json:"insertions"`
	Delete     int `json:"deletions"`
}

// Errors is the number of edits, S + I + D
func (c Counts) Errors() int {
	return c.Substitute + c.Insert + c.Delete
}

func Count(ops []Op) Counts {
	var c Counts
	for _, op := range ops {
		switch op {
		case Equal:
			c.Equal++
		case Substitute:
			c.Substitute++
		case Insert:
			c.Insert++
		case Delete:
			c.Delete++
		}
	}
	return c
}
