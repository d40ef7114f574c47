package main

import (
	"context"
	"fmt"

	"github.com/ughe/wer/editdist"
	"github.com/ughe/wer/source"
	"github.com/ughe/wer/wer"
)

func editdistCommand(ctx context.Context, keys, srcFilename, dstFilename string, cer, words bool) error {
	l := &source.Loader{CredentialsPath: keys}
	bufa, err := l.Read(ctx, srcFilename)
	if err != nil {
		return err
	}
	bufb, err := l.Read(ctx, dstFilename)
	if err != nil {
		return err
	}
	var dist, blen int
	if words {
		a := wer.Fields(string(bufa), wer.TokenizeOptions{})
		b := wer.Fields(string(bufb), wer.TokenizeOptions{})
		m, err := wer.Distance(a, b)
		if err != nil {
			return err
		}
		dist, blen = m.Dist(), len(b)
	} else {
		dist, blen = editdist.Levenshtein(bufa, bufb), len(bufb)
	}
	if cer {
		fmt.Printf("%.5f\n", editdist.CER(dist, blen))
	} else {
		fmt.Printf("%d\n", dist)
	}
	return nil
}
