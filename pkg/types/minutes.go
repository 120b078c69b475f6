// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// FallbackSummary is the sentinel summary carried by a record that could not
// be generated. Callers detect it with IsFallback.
const FallbackSummary = "Could not automatically generate minutes. Manual review required."

// fallbackPhrase is the part of FallbackSummary that callers match on.
const fallbackPhrase = "Could not automatically generate minutes"

// EmptySummary replaces a summary that is blank after trimming.
const EmptySummary = "No summary available."

// MinutesRecord is the canonical, five-field representation of meeting
// minutes. A record is built fresh for every generation and replaces the
// previous one entirely.
type MinutesRecord struct {
	// Summary is a short paragraph describing the meeting.
	Summary string `json:"summary" yaml:"summary"`

	// Participants lists attendee names, each optionally followed by a
	// parenthetical role, e.g. "Cate (Material Science)".
	Participants []string `json:"participants" yaml:"participants"`

	// DiscussionPoints lists the topics and questions raised.
	DiscussionPoints []string `json:"discussion_points" yaml:"discussion_points"`

	// OutcomesOrDecisions lists conclusions reached in the meeting.
	OutcomesOrDecisions []string `json:"outcomes_or_decisions" yaml:"outcomes_or_decisions"`

	// NextSteps lists follow-up actions mentioned in the meeting.
	NextSteps []string `json:"next_steps" yaml:"next_steps"`
}

// FallbackRecord returns the sentinel record used whenever generation cannot
// complete. It uses the same five fields as every other record.
func FallbackRecord() MinutesRecord {
	return MinutesRecord{
		Summary:             FallbackSummary,
		Participants:        []string{},
		DiscussionPoints:    []string{},
		OutcomesOrDecisions: []string{},
		NextSteps:           []string{"Review transcript manually"},
	}
}

// IsFallback reports whether r carries the fallback sentinel summary.
func IsFallback(r MinutesRecord) bool {
	return strings.Contains(r.Summary, fallbackPhrase)
}

// IsEmpty reports whether every field of r is empty.
func (r MinutesRecord) IsEmpty() bool {
	return strings.TrimSpace(r.Summary) == "" &&
		len(r.Participants) == 0 &&
		len(r.DiscussionPoints) == 0 &&
		len(r.OutcomesOrDecisions) == 0 &&
		len(r.NextSteps) == 0
}
