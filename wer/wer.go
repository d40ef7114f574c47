// Package wer computes the word error rate of a hypothesis transcript against
// a reference and renders the aligned edit script between them.
//
//	res, err := wer.Compute(strings.Fields("what is it"), strings.Fields("what is"))
//	// res.Percentage == "33.33%"
//	// res.Ops == [equal equal delete]
package wer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ughe/wer/align"
	"github.com/ughe/wer/editdist"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUndefinedRate = align.ErrUndefinedRate
)

// Result is the outcome of comparing one reference with one hypothesis
type Result struct {
	Percentage string          `json:"wer"`
	Distance   int             `json:"distance"`
	Ops        []editdist.Op   `json:"ops"`
	Counts     editdist.Counts `json:"counts"`
	Reference  align.Row       `json:"-"`
	Hypothesis align.Row       `json:"-"`
	Evaluation align.Row       `json:"-"`
}

// Rate is the error rate as a fraction, the value behind Percentage
func (r *Result) Rate() float64 {
	n := r.Counts.Equal + r.Counts.Substitute + r.Counts.Delete
	if n == 0 {
		return 0
	}
	return float64(r.Distance) / float64(n)
}

// Alignment returns the rendered rows of the result
func (r *Result) Alignment() *align.Alignment {
	return &align.Alignment{
		Percentage: r.Percentage,
		Errors:     r.Distance,
		Reference:  r.Reference,
		Hypothesis: r.Hypothesis,
		Evaluation: r.Evaluation,
	}
}

func (r *Result) String() string {
	return r.Alignment().String()
}

func validate(side string, words []string) error {
	for i, w := range words {
		if w == "" {
			return fmt.Errorf("%w: %s word %d is empty", ErrInvalidInput, side, i)
		}
		if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: %s word %d %q contains whitespace", ErrInvalidInput, side, i, w)
		}
	}
	return nil
}

// Distance builds the word level edit distance table of ref and hyp.
// Words must be non-empty and free of whitespace.
func Distance(ref, hyp []string) (editdist.Matrix, error) {
	if err := validate("reference", ref); err != nil {
		return nil, err
	}
	if err := validate("hypothesis", hyp); err != nil {
		return nil, err
	}
	m, err := editdist.Distance(ref, hyp)
	if err != nil {
		return nil, invalid(err)
	}
	return m, nil
}

// invalid marks err as bad input while keeping its own sentinel reachable
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Compute runs the whole pipeline: distance table, edit script and
// alignment. An empty reference yields ErrUndefinedRate.
func Compute(ref, hyp []string) (*Result, error) {
	m, err := Distance(ref, hyp)
	if err != nil {
		return nil, err
	}
	ops, err := editdist.Backtrack(ref, hyp, m)
	if err != nil {
		return nil, err
	}
	a, err := align.Render(ref, hyp, ops)
	if err != nil {
		return nil, err
	}
	if a.Errors != m.Dist() {
		return nil, fmt.Errorf("%w: script has %d edits, table %d",
			editdist.ErrInconsistentMatrix, a.Errors, m.Dist())
	}
	return &Result{
		Percentage: a.Percentage,
		Distance:   m.Dist(),
		Ops:        ops,
		Counts:     editdist.Count(ops),
		Reference:  a.Reference,
		Hypothesis: a.Hypothesis,
		Evaluation: a.Evaluation,
	}, nil
}
