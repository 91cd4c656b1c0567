package normalizer

import (
	"regexp"
	"strings"

	"ai-promptcraft-be/internal/constant"
)

// Normalizer deterministically post-processes raw model replies: it strips
// conversational wrapping, and for modes with a structural contract it
// reconstructs that structure from noisy, possibly-duplicated output.
type Normalizer struct{}

func New() *Normalizer {
	return &Normalizer{}
}

// Conversational boilerplate the models like to wrap answers in. Prefixes are
// anchored at the start, suffixes at the end; both lists are applied
// repeatedly until nothing matches.
var prefixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(sure|certainly|of course|absolutely)[,!.]?\s+`),
	regexp.MustCompile(`(?i)^here('s| is)( (the|your|an?))?( (rewritten|improved|optimized|revised|updated|polished|refined|structured))? ?(prompt|version|text|output|article|report|question|document|summary|digest)\s*:?\s*`),
	regexp.MustCompile(`(?i)^the (rewritten|improved|optimized|revised|updated|polished|refined) (prompt|version|text|output|question) is\s*:?\s*`),
	regexp.MustCompile(`(?i)^as requested[,:]?\s+`),
}

var suffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*i hope (this|that) helps[.!]?\s*$`),
	regexp.MustCompile(`(?i)\s*hope (this|that) helps[.!]?\s*$`),
	regexp.MustCompile(`(?i)\s*let me know if you[^.\n]*[.!]?\s*$`),
	regexp.MustCompile(`(?i)\s*feel free to (ask|adjust|modify|reach out)[^.\n]*[.!]?\s*$`),
}

var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'`':  '`',
	'“': '”', // curly double quotes
	'‘': '’', // curly single quotes
}

// excessBlankLines matches runs of blank lines longer than one separator.
var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// Normalize applies the staged pipeline for the given mode. It never fails;
// an empty result is the caller's signal that the reply was unusable.
func (n *Normalizer) Normalize(rawText string, mode constant.Mode) string {
	text := strings.TrimSpace(rawText)
	text = stripConversationalWrapping(text)
	text = unwrapOuterQuotes(text)
	text = strings.TrimSpace(text)

	switch {
	case mode.IsStructured:
		text = reconstructSections(text, constant.StructuredSectionLabels)
	case mode.IsReportStyle:
		text = splitReportHeadings(text, constant.ReportHeadings)
	}

	return strings.TrimSpace(text)
}

func stripConversationalWrapping(text string) string {
	for {
		stripped := text
		for _, p := range prefixPatterns {
			stripped = p.ReplaceAllString(stripped, "")
		}
		for _, p := range suffixPatterns {
			stripped = p.ReplaceAllString(stripped, "")
		}
		stripped = strings.TrimSpace(stripped)
		if stripped == text {
			return text
		}
		text = stripped
	}
}

// unwrapOuterQuotes removes exactly one pair of matching quotes wrapping the
// entire text. Quotes that close before the end are left alone.
func unwrapOuterQuotes(text string) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	closing, ok := quotePairs[runes[0]]
	if !ok || runes[len(runes)-1] != closing {
		return text
	}
	inner := runes[1 : len(runes)-1]
	// The pair must actually wrap everything. For symmetric quotes the inner
	// text may not contain the character again.
	if runes[0] == closing {
		for _, r := range inner {
			if r == closing {
				return text
			}
		}
		return string(inner)
	}
	// For asymmetric quotes the opening quote must stay open until the final
	// character; if its balance reaches zero early the text holds separate
	// quoted phrases, not one wrapping pair.
	depth := 1
	for _, r := range inner {
		switch r {
		case runes[0]:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text
			}
		}
	}
	return string(inner)
}

// scanner states for structured reconstruction.
type scanState int

const (
	beforeFirstLabel scanState = iota
	inSection
	done
)

// reconstructSections rebuilds the one-each-label structure from a noisy
// reply. Preamble before the first required label is dropped, a repeated
// label ends the scan (caps runaway repetition), and flush-left prose after
// the structure has started ends it too (trailing commentary).
func reconstructSections(text string, labels []string) string {
	if len(labels) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")

	// Anchor on the first occurrence of the first required label.
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimRight(line, " \t"), labels[0]) {
			start = i
			break
		}
	}
	if start < 0 {
		// Nothing to anchor a reconstruction on; leave the text as-is.
		return text
	}

	seen := make(map[string]bool, len(labels))
	var sections [][]string
	var current []string
	state := beforeFirstLabel

	flush := func() {
		if current != nil {
			sections = append(sections, current)
			current = nil
		}
	}

	for _, line := range lines[start:] {
		if state == done {
			break
		}

		if label, ok := matchLabel(line, labels); ok {
			if seen[label] {
				// The model echoed the structure; everything after is noise.
				state = done
				break
			}
			seen[label] = true
			flush()
			current = []string{line}
			state = inSection
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			current = append(current, "")
		case isContinuation(line):
			current = append(current, line)
		default:
			// Flush-left prose that opens no section: trailing commentary.
			state = done
		}
	}
	flush()

	var parts []string
	for _, section := range sections {
		part := strings.Join(section, "\n")
		part = excessBlankLines.ReplaceAllString(part, "\n\n")
		part = strings.TrimRight(part, " \t\n")
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}

func matchLabel(line string, labels []string) (string, bool) {
	for _, label := range labels {
		if strings.HasPrefix(line, label) {
			return label, true
		}
	}
	return "", false
}

// isContinuation reports whether a non-blank line extends the open section:
// indented or bullet-prefixed lines do, flush-left prose does not.
func isContinuation(line string) bool {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return true
	}
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

var inlineBullet = regexp.MustCompile(`(?m)^[ \t]*[•*][ \t]+`)

// splitReportHeadings separates headings the model ran together with prose:
// a sentence end directly followed by a known heading gets a paragraph break,
// inline bullet markers are normalized, and blank-line runs collapse.
func splitReportHeadings(text string, headings []string) string {
	for _, heading := range headings {
		pattern := regexp.MustCompile(`([.!?])[ \t]+` + regexp.QuoteMeta(heading))
		text = pattern.ReplaceAllString(text, "$1\n\n"+heading)
	}
	text = inlineBullet.ReplaceAllString(text, "- ")
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	return text
}
