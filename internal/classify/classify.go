// Package classify implements the lead classification rule. It is a pure
// keyword match with no external calls: every input maps to exactly one of
// Hot, Warm or Cold.
package classify

import "strings"

// urgencyKeywords mark a lead as Hot. Checked before hesitationKeywords, so a
// text containing both classifies Hot.
var urgencyKeywords = []string{
	"urgent",
	"asap",
	"immediately",
	"right away",
	"emergency",
	"today",
}

var hesitationKeywords = []string{
	"maybe",
	"not sure",
	"thinking",
	"someday",
	"eventually",
	"just looking",
}

// Result is a classification with its fixed confidence.
type Result struct {
	Classification string
	Confidence     float64
}

// Lead classifies free text. Matching is case-insensitive substring
// membership.
func Lead(text string) Result {
	t := strings.ToLower(text)
	for _, kw := range urgencyKeywords {
		if strings.Contains(t, kw) {
			return Result{Classification: "Hot", Confidence: 0.9}
		}
	}
	for _, kw := range hesitationKeywords {
		if strings.Contains(t, kw) {
			return Result{Classification: "Warm", Confidence: 0.7}
		}
	}
	return Result{Classification: "Cold", Confidence: 0.8}
}
