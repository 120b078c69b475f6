// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders a MinutesRecord as a Markdown document and as
// per-section display blocks.
package markdown

import (
	"strings"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// Section headers, in output order.
const (
	HeaderSummary     = "## 📝 Summary"
	HeaderParticipant = "## 👥 Participants"
	HeaderDiscussion  = "## 🗣️ Discussion Points"
	HeaderOutcomes    = "## ✅ Outcomes or Decisions"
	HeaderNextSteps   = "## 🚀 Next Steps"
)

// DownloadName is the suggested file name for exported Markdown.
const DownloadName = "meeting_minutes.md"

// Section is one titled block of a record.
type Section struct {
	// Title is the plain section name, e.g. "Participants".
	Title string
	// Header is the Markdown header line.
	Header string
	// Paragraph holds the summary text; empty for list sections.
	Paragraph string
	// Items holds list entries in original order.
	Items []string
	// EmptyCaption is shown in structured views when the section is empty.
	EmptyCaption string
}

// Body renders the section content without its header.
func (s Section) Body() string {
	if s.Items == nil {
		return s.Paragraph
	}
	return bullets(s.Items)
}

// Sections returns the five sections of r in fixed order. Blank text is
// trimmed away so an all-whitespace field counts as empty.
func Sections(r types.MinutesRecord) []Section {
	return []Section{
		{Title: "Summary", Header: HeaderSummary, Paragraph: strings.TrimSpace(r.Summary), EmptyCaption: "Not available."},
		{Title: "Participants", Header: HeaderParticipant, Items: clean(r.Participants), EmptyCaption: "No participants identified."},
		{Title: "Discussion Points", Header: HeaderDiscussion, Items: clean(r.DiscussionPoints), EmptyCaption: "No key topics identified."},
		{Title: "Outcomes or Decisions", Header: HeaderOutcomes, Items: clean(r.OutcomesOrDecisions), EmptyCaption: "No outcomes or decisions identified."},
		{Title: "Next Steps", Header: HeaderNextSteps, Items: clean(r.NextSteps), EmptyCaption: "No next steps identified."},
	}
}

// Format renders r as Markdown. Each non-empty section is a header line
// followed by its body; empty sections are omitted and the rest are joined
// by a blank line. A record with no content renders as "".
func Format(r types.MinutesRecord) string {
	var blocks []string
	for _, s := range Sections(r) {
		body := s.Body()
		if body == "" {
			continue
		}
		blocks = append(blocks, s.Header+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

// Structured renders r for interactive display: every section appears,
// empty ones carrying their caption instead of content.
func Structured(r types.MinutesRecord) string {
	var b strings.Builder
	for i, s := range Sections(r) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len(s.Title)))
		b.WriteString("\n")
		if body := s.Body(); body != "" {
			b.WriteString(body)
		} else {
			b.WriteString(s.EmptyCaption)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// clean trims items and drops blank ones; the result is never nil.
func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}
