// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/pdiddy/minutes-engine/internal/markdown"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// DefaultTitle heads exported Word documents.
const DefaultTitle = "Meeting Minutes"

const (
	fontName    = "Calibri"
	fontSize    = 11
	titleSize   = 18
	headingSize = 14
	textColor   = "000000"
	bulletMark  = "• "
)

// SaveDOCX writes r as a Word document at path. Sections follow the
// Markdown layout: empty sections are omitted.
func SaveDOCX(path, title string, r types.MinutesRecord) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	if strings.TrimSpace(title) != "" {
		addRun(doc.AddParagraph(""), title, true, titleSize)
	}

	for _, s := range markdown.Sections(r) {
		if s.Body() == "" {
			continue
		}
		addRun(doc.AddParagraph(""), s.Title, true, headingSize)
		if s.Paragraph != "" {
			addRun(doc.AddParagraph(""), s.Paragraph, false, fontSize)
		}
		for _, item := range s.Items {
			addRun(doc.AddParagraph(""), bulletMark+item, false, fontSize)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}
