package domain

import (
	"fmt"
	"strings"
)

// Minimum lengths (after trimming) for the required brief fields. The form
// UI enforces the same floors client-side; the pipeline never trusts it.
const (
	minFieldLen    = 3
	minDurationLen = 2
)

// BriefInput is the raw, untrusted request payload. Unknown fields in the
// incoming JSON are ignored by decoding.
type BriefInput struct {
	Topic           string   `json:"topic"`
	TargetAudience  string   `json:"targetAudience"`
	ContentGoal     string   `json:"contentGoal"`
	Tone            string   `json:"tone"`
	Duration        string   `json:"duration"`
	PlatformFocus   string   `json:"platformFocus"`
	CallToAction    string   `json:"callToAction"`
	IncludeResearch bool     `json:"includeResearch"`
	Keywords        []string `json:"keywords"`
	Competitors     []string `json:"competitors"`
}

// Brief is the validated, canonical creative input driving a blueprint run.
type Brief struct {
	Topic           string   `json:"topic"`
	TargetAudience  string   `json:"targetAudience"`
	ContentGoal     string   `json:"contentGoal"`
	Tone            string   `json:"tone"`
	Duration        string   `json:"duration"`
	PlatformFocus   string   `json:"platformFocus"`
	CallToAction    string   `json:"callToAction"`
	IncludeResearch bool     `json:"includeResearch"`
	Keywords        []string `json:"keywords"`
	Competitors     []string `json:"competitors"`
}

// NormalizeBrief validates and canonicalizes a raw brief. It is the single
// validation point for briefs: downstream components assume the returned
// Brief holds every invariant and never re-check it.
func NormalizeBrief(in BriefInput) (Brief, error) {
	b := Brief{
		Topic:           strings.TrimSpace(in.Topic),
		TargetAudience:  strings.TrimSpace(in.TargetAudience),
		ContentGoal:     strings.TrimSpace(in.ContentGoal),
		Tone:            strings.TrimSpace(in.Tone),
		Duration:        strings.TrimSpace(in.Duration),
		PlatformFocus:   strings.TrimSpace(in.PlatformFocus),
		CallToAction:    strings.TrimSpace(in.CallToAction),
		IncludeResearch: in.IncludeResearch,
		Keywords:        NormalizeList(in.Keywords),
		Competitors:     NormalizeList(in.Competitors),
	}

	required := []struct {
		field string
		value string
		min   int
	}{
		{"topic", b.Topic, minFieldLen},
		{"targetAudience", b.TargetAudience, minFieldLen},
		{"contentGoal", b.ContentGoal, minFieldLen},
		{"tone", b.Tone, minFieldLen},
		{"duration", b.Duration, minDurationLen},
	}
	for _, r := range required {
		if len(r.value) <= r.min {
			return Brief{}, &ValidationError{
				Field:  r.field,
				Reason: fmt.Sprintf("must be longer than %d characters", r.min),
			}
		}
	}

	if b.PlatformFocus == "" {
		b.PlatformFocus = "YouTube"
	}

	return b, nil
}

// NormalizeList trims entries, drops empties, lower-cases, and collapses
// duplicates while preserving first-seen order. Applying it to an already
// normalized list yields the same list.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		cleaned := strings.ToLower(strings.TrimSpace(item))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
