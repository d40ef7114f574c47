package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"os/user"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/ughe/wer/internal/env"
	"github.com/ughe/wer/source"
	"github.com/ughe/wer/wer"
)

// Flags shared by the commands that read a reference and a hypothesis
type inputFlags struct {
	keys  *string
	text  *bool
	norm  *bool
	lower *bool
}

func addInputFlags(set *flag.FlagSet, home string) inputFlags {
	return inputFlags{
		keys:  set.String("keys", path.Join(home, ".aws"), "Path to credentials directory (aws credentials/config, gcp.json) for s3:// and gs:// sources"),
		text:  set.Bool("text", false, "Treat the arguments as literal text instead of sources"),
		norm:  set.Bool("norm", false, "Apply unicode NFKC normalization before splitting words"),
		lower: set.Bool("lower", false, "Lowercase both texts before comparing"),
	}
}

func (f inputFlags) tokenize() wer.TokenizeOptions {
	return wer.TokenizeOptions{Normalize: *f.norm, Lowercase: *f.lower}
}

// Reads the reference and hypothesis named by the two arguments and splits
// them into words
func (f inputFlags) words(ctx context.Context, refArg, hypArg string) ([]string, []string, error) {
	ref, hyp := refArg, hypArg
	if !*f.text {
		l := &source.Loader{CredentialsPath: *f.keys}
		var err error
		ref, hyp, err = l.ReadPair(ctx, refArg, hypArg)
		if err != nil {
			return nil, nil, err
		}
	}
	opts := f.tokenize()
	return wer.Fields(ref, opts), wer.Fields(hyp, opts), nil
}

func main() {
	log.SetFlags(0)
	home := "."
	if usr, err := user.Current(); err == nil {
		home = usr.HomeDir
	}
	srcHelp := "Sources are file paths, - for stdin, s3://bucket/key or gs://bucket/object"

	// align command
	alignSet := flag.NewFlagSet("align", flag.ExitOnError)
	alignIn := addInputFlags(alignSet, home)
	wrapo := alignSet.Int("width", 0, "Wrap the aligned rows at this many columns (0 = no wrap)")
	alignSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-text] [-norm] [-lower] [-width=n] ref hyp\n%s\n\n", os.Args[0], os.Args[1], srcHelp)
		alignSet.PrintDefaults()
	}

	// editdist command
	editdistSet := flag.NewFlagSet("editdist", flag.ExitOnError)
	editdistKeys := editdistSet.String("keys", path.Join(home, ".aws"), "Path to credentials directory")
	cero := editdistSet.Bool("c", false, "Output character error rate instead of levenshtein dist")
	wordo := editdistSet.Bool("w", false, "Count edits between words instead of bytes")
	editdistSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-c] [-w] test.txt truth.txt\n\n", os.Args[0], os.Args[1])
		editdistSet.PrintDefaults()
	}

	// pdf command
	pdfSet := flag.NewFlagSet("pdf", flag.ExitOnError)
	pdfIn := addInputFlags(pdfSet, home)
	pdfOut := pdfSet.String("o", "alignment.pdf", "Output PDF file")
	pdfTitle := pdfSet.String("title", "", "Title printed above the alignment")
	pdfFont := pdfSet.String("font", "", "Monospaced UTF-8 .ttf font for text outside cp1252 (default Courier)")
	pdfSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-o out.pdf] [-title t] [-font f.ttf] [-text] [-norm] [-lower] ref hyp\n%s\n\n", os.Args[0], os.Args[1], srcHelp)
		pdfSet.PrintDefaults()
	}

	// explore command
	exploreSet := flag.NewFlagSet("explore", flag.ExitOnError)
	exploreIn := addInputFlags(exploreSet, home)
	jobso := exploreSet.Int("j", 4, "Number of pairs compared concurrently")
	exploreDir := exploreSet.String("dir", "explorer", "Output directory")
	exploreSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-j n] [-dir explorer] pairs.csv\n"+
			"Each csv line is: name,ref,hyp\n%s\n\n", os.Args[0], os.Args[1], srcHelp)
		exploreSet.PrintDefaults()
	}

	// serve command
	serveSet := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := serveSet.String("addr", env.Str("WER_ADDR", ":8080"), "Listen address (env WER_ADDR)")
	static := serveSet.String("static", "", "Directory served for paths outside the API, e.g. an explore output")
	readTimeout := serveSet.Duration("read-timeout", env.Duration("WER_READ_TIMEOUT", 15*time.Second), "HTTP read timeout (env WER_READ_TIMEOUT)")
	serveSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s %s [-addr :8080] [-static dir]\n\n", os.Args[0], os.Args[1])
		serveSet.PrintDefaults()
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <command> [arguments]\n\nThe commands are:\n\n"+
			strings.Repeat("\t%v\n", 5)+"\n", os.Args[0],
			"align   \t print the aligned reference, hypothesis and word error rate",
			"editdist\t calculate levenshtein distance of two text files",
			"pdf     \t write the alignment to a pdf",
			"explore \t compare many pairs into a browsable explorer directory",
			"serve   \t serve the word error rate http api",
		)
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "align":
		alignSet.Parse(os.Args[2:])
		if alignSet.NArg() != 2 {
			alignSet.Usage()
			os.Exit(1)
		}
		err = alignCommand(ctx, alignIn, alignSet.Arg(0), alignSet.Arg(1), *wrapo)
	case "editdist":
		editdistSet.Parse(os.Args[2:])
		if editdistSet.NArg() != 2 {
			editdistSet.Usage()
			os.Exit(1)
		}
		srcFilename := editdistSet.Arg(0)
		dstFilename := editdistSet.Arg(1)
		err = editdistCommand(ctx, *editdistKeys, srcFilename, dstFilename, *cero, *wordo)
	case "pdf":
		pdfSet.Parse(os.Args[2:])
		if pdfSet.NArg() != 2 {
			pdfSet.Usage()
			os.Exit(1)
		}
		err = pdfCommand(ctx, pdfIn, pdfSet.Arg(0), pdfSet.Arg(1), *pdfOut, *pdfTitle, *pdfFont)
	case "explore":
		exploreSet.Parse(os.Args[2:])
		if exploreSet.NArg() != 1 {
			exploreSet.Usage()
			os.Exit(1)
		}
		if *jobso < 1 {
			fmt.Fprintf(os.Stderr, "Error: -j must be at least 1.\n\n")
			exploreSet.Usage()
			os.Exit(1)
		}
		err = exploreCommand(ctx, exploreIn, exploreSet.Arg(0), *exploreDir, *jobso)
	case "serve":
		serveSet.Parse(os.Args[2:])
		err = serveCommand(ctx, *addr, *static, *readTimeout)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
