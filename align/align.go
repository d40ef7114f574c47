// Package align lays an edit script out as three column aligned rows: the
// reference, the hypothesis and the evaluation tags between them.
package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ughe/wer/editdist"
)

var (
	// ErrUndefinedRate is returned for an empty reference, where the error
	// rate would divide by zero
	ErrUndefinedRate = errors.New("error rate undefined for empty reference")

	ErrInconsistentPath = errors.New("edit script inconsistent with sequences")
)

// Row is one rendered line, one cell per edit step
type Row []string

// Line joins the cells with a single space
func (r Row) Line() string {
	return strings.Join(r, " ")
}

type Alignment struct {
	Percentage string
	Errors     int
	Reference  Row
	Hypothesis Row
	Evaluation Row
}

// Lines returns the reference, hypothesis and evaluation lines
func (a *Alignment) Lines() (string, string, string) {
	return a.Reference.Line(), a.Hypothesis.Line(), a.Evaluation.Line()
}

func (a *Alignment) String() string {
	ref, hyp, eva := a.Lines()
	return fmt.Sprintf("REF: %s\nHYP: %s\nEVA: %s\nWER: %s", ref, hyp, eva, a.Percentage)
}

// Percentage formats 100 * errs / n with two decimals
func Percentage(errs, n int) (string, error) {
	if n == 0 {
		return "", ErrUndefinedRate
	}
	return fmt.Sprintf("%.2f%%", float64(errs)/float64(n)*100), nil
}

// Render lays out ops against ref and hyp. Every column is as wide as the
// widest token shown in it, so the three rows stay aligned when stacked.
func Render(ref, hyp []string, ops []editdist.Op) (*Alignment, error) {
	if len(ref) == 0 {
		return nil, ErrUndefinedRate
	}
	a := &Alignment{
		Reference:  make(Row, 0, len(ops)),
		Hypothesis: make(Row, 0, len(ops)),
		Evaluation: make(Row, 0, len(ops)),
	}
	i, j := 0, 0 // ref and hyp cursors
	for k, op := range ops {
		ua, ub := op.Advances()
		if !ua && !ub {
			return nil, fmt.Errorf("%w: invalid op %d at step %d", ErrInconsistentPath, uint8(op), k)
		}
		if (ua && i >= len(ref)) || (ub && j >= len(hyp)) {
			return nil, fmt.Errorf("%w: step %d (%v) runs past the end", ErrInconsistentPath, k, op)
		}
		var r, h string
		var w int
		switch op {
		case editdist.Equal:
			r, h = ref[i], hyp[j]
			w = Width(r)
		case editdist.Substitute:
			r, h = ref[i], hyp[j]
			w = max(Width(r), Width(h))
		case editdist.Insert:
			h = hyp[j]
			w = Width(h)
		case editdist.Delete:
			r = ref[i]
			w = Width(r)
		}
		eva := ""
		if op != editdist.Equal {
			eva = string(op.Tag())
			w = max(w, 1)
			a.Errors++
		}
		a.Reference = append(a.Reference, Pad(r, w))
		a.Hypothesis = append(a.Hypothesis, Pad(h, w))
		a.Evaluation = append(a.Evaluation, Pad(eva, w))
		if ua {
			i++
		}
		if ub {
			j++
		}
	}
	if i != len(ref) || j != len(hyp) {
		return nil, fmt.Errorf("%w: %d reference and %d hypothesis tokens left over",
			ErrInconsistentPath, len(ref)-i, len(hyp)-j)
	}
	pct, err := Percentage(a.Errors, len(ref))
	if err != nil {
		return nil, err
	}
	a.Percentage = pct
	return a, nil
}
