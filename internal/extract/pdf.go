// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfDocument is the page-level view of a parsed PDF that PDFText needs.
type pdfDocument interface {
	NumPage() int
	// PageText returns the plain text of page i (1-based).
	PageText(i int) (string, error)
}

// ledongthucDocument adapts *pdf.Reader to pdfDocument.
type ledongthucDocument struct {
	r *pdf.Reader
}

func (d ledongthucDocument) NumPage() int { return d.r.NumPage() }

func (d ledongthucDocument) PageText(i int) (string, error) {
	p := d.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

// openPDF parses raw PDF bytes. Tests substitute a fake document.
var openPDF = func(data []byte) (pdfDocument, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return ledongthucDocument{r: r}, nil
}

// PDFText extracts text page by page in document order. Pages without text
// are skipped and the remaining pages are joined by a blank line. Corrupt
// input, including input that makes the parser panic, yields "".
func PDFText(data []byte) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	doc, err := openPDF(data)
	if err != nil {
		return ""
	}

	var parts []string
	for i := 1; i <= doc.NumPage(); i++ {
		pageText, err := doc.PageText(i)
		if err != nil {
			return ""
		}
		if t := strings.TrimSpace(pageText); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
