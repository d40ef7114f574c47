package main

import (
	"context"
	"fmt"

	"github.com/ughe/wer/wer"
)

// Prints the REF/HYP/EVA rows and the word error rate
func alignCommand(ctx context.Context, in inputFlags, refArg, hypArg string, width int) error {
	ref, hyp, err := in.words(ctx, refArg, hypArg)
	if err != nil {
		return err
	}
	res, err := wer.Compute(ref, hyp)
	if err != nil {
		return err
	}
	a := res.Alignment()
	if width <= 0 {
		fmt.Println(a)
		return nil
	}
	for _, b := range a.Wrap(width) {
		fmt.Printf("REF: %s\nHYP: %s\nEVA: %s\n\n", b.Reference.Line(), b.Hypothesis.Line(), b.Evaluation.Line())
	}
	fmt.Printf("WER: %s\n", a.Percentage)
	return nil
}
