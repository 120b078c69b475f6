// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns uploaded transcript files (plain text, PDF, Word)
// into plain text. Extraction never fails loudly: any parse failure yields an
// empty string and the caller decides how to warn the user.
package extract

import (
	"mime"
	"path/filepath"
	"strings"
)

// Declared content types accepted by Text.
const (
	TypePlain = "text/plain"
	TypePDF   = "application/pdf"
	TypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Kind is the document family a declared content type maps to.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlain
	KindPDF
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "text"
	case KindPDF:
		return "pdf"
	case KindWord:
		return "docx"
	default:
		return "unknown"
	}
}

// Extractor converts raw document bytes into plain text. Implementations
// return "" on any failure instead of an error.
type Extractor interface {
	Extract(data []byte, contentType string) string
}

// Native extracts text in-process.
type Native struct{}

// Extract dispatches on the declared content type.
func (Native) Extract(data []byte, contentType string) string {
	switch Classify(contentType) {
	case KindPlain:
		return DecodePlain(data)
	case KindPDF:
		return PDFText(data)
	case KindWord:
		return DOCXText(data)
	default:
		return ""
	}
}

// Text extracts plain text from data using the native extractor.
func Text(data []byte, contentType string) string {
	return Native{}.Extract(data, contentType)
}

// Classify maps a declared MIME-like content type to a document Kind.
// Parameters such as "; charset=utf-8" are ignored. Any type containing
// "wordprocessingml" is treated as a Word document.
func Classify(contentType string) Kind {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}

	switch {
	case mediaType == TypePlain:
		return KindPlain
	case mediaType == TypePDF:
		return KindPDF
	case strings.Contains(mediaType, "wordprocessingml"):
		return KindWord
	default:
		return KindUnknown
	}
}

// ContentTypeForPath returns the declared content type for a file path based
// on its extension, or "" when the extension is not supported.
func ContentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		return TypePlain
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	default:
		return ""
	}
}

// DecodePlain decodes data as UTF-8, dropping invalid byte sequences.
func DecodePlain(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
