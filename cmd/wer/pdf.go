package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ughe/wer/report"
	"github.com/ughe/wer/wer"
)

func pdfCommand(ctx context.Context, in inputFlags, refArg, hypArg, dstFilename, title, font string) error {
	ref, hyp, err := in.words(ctx, refArg, hypArg)
	if err != nil {
		return err
	}
	res, err := wer.Compute(ref, hyp)
	if err != nil {
		return err
	}
	f, err := os.Create(dstFilename)
	if err != nil {
		return err
	}
	if err := report.WritePDF(f, res.Alignment(), report.Options{Title: title, Compress: true, FontFile: font}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("[INFO] Wrote alignment (WER %s): %v\n", res.Percentage, dstFilename)
	return nil
}
