package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"strconv"

	"github.com/ughe/explorer"
	"golang.org/x/sync/errgroup"

	"github.com/ughe/wer/source"
	"github.com/ughe/wer/wer"
)

type pair struct {
	name, ref, hyp string
}

// One results.csv row
type outcome struct {
	pair
	res  *wer.Result
	dist int
	err  error
}

var resultsHeader = []string{
	"name", "wer", "distance", "substitutions", "insertions", "deletions",
	"reference", "hypothesis", "evaluation", "error",
}

func (o outcome) record() []string {
	if o.res == nil {
		rate := "undefined"
		dist := strconv.Itoa(o.dist)
		if !errors.Is(o.err, wer.ErrUndefinedRate) {
			rate, dist = "", ""
		}
		return []string{o.name, rate, dist, "", "", "", "", "", "", o.err.Error()}
	}
	r, h, e := o.res.Alignment().Lines()
	c := o.res.Counts
	return []string{
		o.name, o.res.Percentage, strconv.Itoa(o.res.Distance),
		strconv.Itoa(c.Substitute), strconv.Itoa(c.Insert), strconv.Itoa(c.Delete),
		r, h, e, "",
	}
}

func readPairs(r io.Reader) ([]pair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.Comment = '#'
	var pairs []pair
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{record[0], record[1], record[2]})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("No pairs found")
	}
	return pairs, nil
}

func comparePair(ctx context.Context, in inputFlags, p pair) outcome {
	o := outcome{pair: p}
	ref, hyp, err := in.words(ctx, p.ref, p.hyp)
	if err != nil {
		o.err = err
		return o
	}
	o.res, o.err = wer.Compute(ref, hyp)
	if errors.Is(o.err, wer.ErrUndefinedRate) {
		if m, err := wer.Distance(ref, hyp); err == nil {
			o.dist = m.Dist()
		}
	}
	return o
}

// Compares every pair, at most jobs at a time. A failing pair is reported
// in its row and does not stop the others.
func comparePairs(ctx context.Context, in inputFlags, pairs []pair, jobs int) ([]outcome, error) {
	outcomes := make([]outcome, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = comparePair(ctx, in, p)
			if err := outcomes[i].err; err != nil {
				fmt.Fprintf(os.Stderr, "%v: %v\n", p.name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func writeResults(dst string, outcomes []outcome) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write(resultsHeader)
	for _, o := range outcomes {
		w.Write(o.record())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Copy explorer static files
func writeExplorer(dir string) error {
	files := []struct {
		name string
		buf  []byte
	}{
		{"index.html", explorer.Index},
		{"style.css", explorer.Style},
		{path.Join("js", "main.js"), explorer.Main},
		{path.Join("js", "grid.js"), explorer.Grid},
	}
	if err := os.MkdirAll(path.Join(dir, "js"), 0755); err != nil {
		return err
	}
	for _, f := range files {
		if err := ioutil.WriteFile(path.Join(dir, f.name), f.buf, 0644); err != nil {
			return err
		}
	}
	return nil
}

func exploreCommand(ctx context.Context, in inputFlags, pairsFilename, dir string, jobs int) error {
	buf, err := source.ReadFile(pairsFilename)
	if err != nil {
		return err
	}
	pairs, err := readPairs(bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("%v: %v", pairsFilename, err)
	}

	fmt.Printf("[INFO] Comparing %d pairs ...\n", len(pairs))
	outcomes, err := comparePairs(ctx, in, pairs, jobs)
	if err != nil {
		return err
	}

	dataDir := path.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	results := path.Join(dataDir, "results.csv")
	if err := writeResults(results, outcomes); err != nil {
		return err
	}
	fmt.Printf("[INFO] Wrote results: %v\n", results)

	if err := writeExplorer(dir); err != nil {
		return err
	}
	fmt.Printf("[DONE] Run: %s serve -static %s\n", os.Args[0], dir)
	return nil
}
