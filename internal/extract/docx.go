// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// documentPart is the main story part of a WordprocessingML package.
const documentPart = "word/document.xml"

// DOCXText extracts the text of a Word document: every body paragraph in
// order, then every table cell in table order and row-major order within each
// table. Fragments are trimmed, empty ones dropped, and the rest joined with
// single newlines. Paragraphs and tables are not interleaved.
func DOCXText(data []byte) string {
	paragraphs, cells, err := parseDOCX(data)
	if err != nil {
		return ""
	}

	parts := make([]string, 0, len(paragraphs)+len(cells))
	for _, frag := range append(paragraphs, cells...) {
		if t := strings.TrimSpace(frag); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// parseDOCX opens the OOXML zip package and walks word/document.xml.
func parseDOCX(data []byte) (paragraphs, cells []string, err error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, err
	}

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, nil, err
		}
		defer rc.Close()
		return walkDocument(rc)
	}
	return nil, nil, errors.New("missing " + documentPart)
}

// docWalker tracks where the decoder is inside the document tree.
//
// Body paragraphs are w:p elements outside any table. Cell text comes from
// w:p elements directly inside a top-level table's w:tc; the paragraphs of a
// cell are joined by newlines. Nested tables and text boxes are ignored, as
// are tab stops and breaks declared in paragraph properties (w:pPr).
type docWalker struct {
	tblDepth   int
	pDepth     int
	propsDepth int
	inCell     bool
	inText     bool

	para      strings.Builder
	cellParas []string

	paragraphs []string
	cells      []string
}

func walkDocument(r io.Reader) ([]string, []string, error) {
	dec := xml.NewDecoder(r)
	w := &docWalker{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			w.start(t.Name.Local)
		case xml.EndElement:
			w.end(t.Name.Local)
		case xml.CharData:
			if w.inText && w.collecting() {
				w.para.Write(t)
			}
		}
	}
	return w.paragraphs, w.cells, nil
}

// collecting reports whether the current paragraph contributes text.
func (w *docWalker) collecting() bool {
	if w.pDepth != 1 {
		return false
	}
	return w.tblDepth == 0 || (w.tblDepth == 1 && w.inCell)
}

func (w *docWalker) start(name string) {
	switch name {
	case "tbl":
		w.tblDepth++
	case "tc":
		if w.tblDepth == 1 {
			w.inCell = true
			w.cellParas = nil
		}
	case "p":
		w.pDepth++
		if w.pDepth == 1 {
			w.para.Reset()
		}
	case "pPr":
		w.propsDepth++
	case "t":
		w.inText = true
	case "tab":
		if w.propsDepth == 0 && w.collecting() {
			w.para.WriteByte('\t')
		}
	case "br", "cr":
		if w.propsDepth == 0 && w.collecting() {
			w.para.WriteByte('\n')
		}
	}
}

func (w *docWalker) end(name string) {
	switch name {
	case "tbl":
		w.tblDepth--
	case "tc":
		if w.tblDepth == 1 && w.inCell {
			w.cells = append(w.cells, strings.Join(w.cellParas, "\n"))
			w.inCell = false
		}
	case "p":
		if w.pDepth == 1 {
			switch {
			case w.tblDepth == 0:
				w.paragraphs = append(w.paragraphs, w.para.String())
			case w.tblDepth == 1 && w.inCell:
				w.cellParas = append(w.cellParas, w.para.String())
			}
		}
		w.pDepth--
	case "pPr":
		w.propsDepth--
	case "t":
		w.inText = false
	}
}
