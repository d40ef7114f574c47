package wer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type TokenizeOptions struct {
	Normalize bool // NFKC before splitting
	Lowercase bool
}

// Fields splits text into words on whitespace
func Fields(text string, opts TokenizeOptions) []string {
	if opts.Normalize {
		text = norm.NFKC.String(text)
	}
	if opts.Lowercase {
		text = strings.ToLower(text)
	}
	return strings.Fields(text)
}
