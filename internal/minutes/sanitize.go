// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// JSON keys of the canonical record.
const (
	keySummary      = "summary"
	keyParticipants = "participants"
	keyDiscussion   = "discussion_points"
	keyOutcomes     = "outcomes_or_decisions"
	keyNextSteps    = "next_steps"
)

// ParseResponse decodes a completion body into a sanitized record. Bodies
// that are not a single JSON document fail with ErrGeneration; documents
// that are not a JSON object, or whose fields have the wrong shape, fail
// with ErrSchema.
func ParseResponse(body string) (types.MinutesRecord, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return types.MinutesRecord{}, newError(ErrGeneration, "parsing response JSON", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return types.MinutesRecord{}, newError(ErrGeneration, "parsing response JSON: trailing data after document", nil)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return types.MinutesRecord{}, newError(ErrSchema, fmt.Sprintf("response is a JSON %s, want object", jsonKind(doc)), nil)
	}
	return Sanitize(obj)
}

// Sanitize coerces a decoded JSON object into a canonical record.
//
// Missing or null fields are empty. List elements are converted to strings
// (numbers and booleans by their JSON text, nested values as compact JSON,
// nulls dropped), trimmed, and dropped when blank. A bare string where a list
// is expected becomes a one-element list. Any other shape is an ErrSchema.
func Sanitize(obj map[string]any) (types.MinutesRecord, error) {
	var r types.MinutesRecord

	summary, err := coerceScalar(obj[keySummary])
	if err != nil {
		return types.MinutesRecord{}, newError(ErrSchema, fmt.Sprintf("field %q", keySummary), err)
	}
	r.Summary = summary

	lists := []struct {
		key string
		dst *[]string
	}{
		{keyParticipants, &r.Participants},
		{keyDiscussion, &r.DiscussionPoints},
		{keyOutcomes, &r.OutcomesOrDecisions},
		{keyNextSteps, &r.NextSteps},
	}
	for _, l := range lists {
		items, err := coerceList(obj[l.key])
		if err != nil {
			return types.MinutesRecord{}, newError(ErrSchema, fmt.Sprintf("field %q", l.key), err)
		}
		*l.dst = items
	}

	return SanitizeRecord(r), nil
}

// SanitizeRecord trims every field of r, drops blank list entries, and
// substitutes types.EmptySummary for a blank summary. It is idempotent.
func SanitizeRecord(r types.MinutesRecord) types.MinutesRecord {
	summary := strings.TrimSpace(r.Summary)
	if summary == "" {
		summary = types.EmptySummary
	}
	return types.MinutesRecord{
		Summary:             summary,
		Participants:        trimAll(r.Participants),
		DiscussionPoints:    trimAll(r.DiscussionPoints),
		OutcomesOrDecisions: trimAll(r.OutcomesOrDecisions),
		NextSteps:           trimAll(r.NextSteps),
	}
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func coerceList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, elem := range t {
			s, err := coerceElement(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("got %s, want array of strings", jsonKind(v))
	}
}

// coerceScalar converts a summary value; arrays and objects are rejected.
func coerceScalar(v any) (string, error) {
	switch v.(type) {
	case []any, map[string]any:
		return "", fmt.Errorf("got %s, want string", jsonKind(v))
	}
	return coerceElement(v)
}

func coerceElement(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
