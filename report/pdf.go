// Package report writes an alignment as a PDF document
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ughe/wer/align"
)

type rgb struct{ r, g, b int }

var (
	black  = rgb{0, 0, 0}
	blue   = rgb{0, 0, 255}
	red    = rgb{255, 0, 0}
	orange = rgb{255, 165, 0}
)

// Evaluation tag colors
var tagColors = map[string]rgb{
	"S": red,
	"I": blue,
	"D": orange,
}

const (
	margin  = 36.0 // pt
	label   = "REF: "
	leading = 1.4 // line height as a multiple of the font size
)

type Options struct {
	Title    string
	FontSize float64 // pt, 10 when zero
	Compress bool

	// Monospaced TrueType font loaded with full UTF-8 support. The built in
	// Courier only covers cp1252, so CJK and other wide tokens need one.
	FontFile string
}

const utf8Family = "Mono"

// WritePDF lays a out as REF/HYP/EVA blocks in a monospaced font, wrapping to
// the page width, and writes the document to w
func WritePDF(w io.Writer, a *align.Alignment, opts Options) error {
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 10
	}
	pdf := gofpdf.New("L", "pt", "Letter", "")
	pdf.SetCompression(opts.Compress)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	family := "Courier"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontFile != "" {
		pdf.AddUTF8Font(utf8Family, "", opts.FontFile)
		if pdf.Err() {
			return fmt.Errorf("pdf font %v: %v", opts.FontFile, pdf.Error())
		}
		family = utf8Family
		tr = func(s string) string { return s }
	}
	pdf.SetFont(family, "", fontSize)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	charW := pdf.GetStringWidth(" ")
	cols := int((pageW-2*margin)/charW) - len(label)
	lineH := fontSize * leading
	y := margin + fontSize

	newline := func(n float64) {
		y += n * lineH
		if y > pageH-margin {
			pdf.AddPage()
			y = margin + fontSize
		}
	}

	if opts.Title != "" {
		pdf.Text(margin, y, tr(opts.Title))
		newline(2)
	}
	pdf.Text(margin, y, "WER: "+a.Percentage)
	newline(2)

	for _, b := range a.Wrap(cols) {
		if y+2*lineH > pageH-margin {
			pdf.AddPage()
			y = margin + fontSize
		}
		rows := []struct {
			name  string
			cells align.Row
		}{
			{"REF: ", b.Reference},
			{"HYP: ", b.Hypothesis},
			{"EVA: ", b.Evaluation},
		}
		for _, row := range rows {
			pdf.Text(margin, y, row.name)
			x := margin + float64(len(row.name))*charW
			for k, cell := range row.cells {
				col := black
				if c, ok := tagColors[strings.TrimSpace(b.Evaluation[k])]; ok {
					col = c
				}
				pdf.SetTextColor(col.r, col.g, col.b)
				pdf.Text(x, y, tr(cell))
				x += float64(align.Width(cell)+1) * charW
			}
			pdf.SetTextColor(black.r, black.g, black.b)
			newline(1)
		}
		newline(1)
	}

	if pdf.Err() {
		return fmt.Errorf("pdf: %v", pdf.Error())
	}
	return pdf.Output(w)
}
