package llm

import (
	"regexp"
	"strings"

	"github.com/mpetrov/code-critic/internal/core"
)

// Section marker forms the parser accepts, all case-insensitive:
//   ## Quality            (markdown heading, colon optional)
//   **Security Feedback** (bold, colon optional)
//   Quality: fine         (bare line prefix, colon required)
// The bare form requires a colon so that prose lines starting with the word
// "security" are not mistaken for markers.
var (
	headingMarkerRegexp = regexp.MustCompile(`(?i)^#{1,6}\s*\*{0,2}(quality|security)(?:\s+(?:feedback|analysis|assessment|review))?\*{0,2}\s*:?\s*(.*)$`)
	boldMarkerRegexp    = regexp.MustCompile(`(?i)^\*\*(quality|security)(?:\s+(?:feedback|analysis|assessment|review))?\s*:?\*\*\s*:?\s*(.*)$`)
	bareMarkerRegexp    = regexp.MustCompile(`(?i)^(quality|security)(?:\s+(?:feedback|analysis|assessment|review))?\s*:\s*(.*)$`)
)

// SplitFeedback splits a single model reply into quality and security
// feedback. It is a pure function and deliberately defensive: a missing
// section degrades to an empty string, and a reply without any recognized
// marker is kept in full as quality feedback rather than dropped.
func SplitFeedback(reply string) core.Feedback {
	body := stripMarkdownFence(reply)

	var quality, security strings.Builder
	var current *strings.Builder
	foundMarker := false

	lines := strings.Split(body, "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if section, rest, ok := matchSectionMarker(line); ok {
			foundMarker = true
			if section == "quality" {
				current = &quality
			} else {
				current = &security
			}
			if rest != "" {
				current.WriteString(rest)
				current.WriteString("\n")
			}
			continue
		}

		// Preserve original indentation inside a section.
		if current != nil {
			current.WriteString(raw)
			current.WriteString("\n")
		}
	}

	if !foundMarker {
		return core.Feedback{Quality: strings.TrimSpace(body)}
	}

	return core.Feedback{
		Quality:  strings.TrimSpace(quality.String()),
		Security: strings.TrimSpace(security.String()),
	}
}

// matchSectionMarker reports whether line opens a feedback section, returning
// the lowercased section name and any content following the marker on the
// same line.
func matchSectionMarker(line string) (section, rest string, ok bool) {
	for _, re := range []*regexp.Regexp{headingMarkerRegexp, boldMarkerRegexp, bareMarkerRegexp} {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}

// stripMarkdownFence removes a ```markdown ... ``` wrapper that some models
// add around their whole output.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```markdown") && !strings.HasPrefix(trimmed, "```md") {
		return s
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
