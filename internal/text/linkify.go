package text

import (
	"regexp"
	"strings"
)

const (
	PartText = "text"
	PartURL  = "url"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// Part is a run of plain text or a single URL.
type Part struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SplitURLs cuts s into ordered text and url parts. Concatenating the values
// gives s back. Blank input yields nil.
func SplitURLs(s string) []Part {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var parts []Part
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			parts = append(parts, Part{Type: PartText, Value: s[last:loc[0]]})
		}
		parts = append(parts, Part{Type: PartURL, Value: s[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(s) {
		parts = append(parts, Part{Type: PartText, Value: s[last:]})
	}
	return parts
}
