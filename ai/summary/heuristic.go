package summary

import (
	"strings"
	"unicode/utf8"
)

const (
	// heuristicMaxLen caps the summary of text that has at most one period.
	heuristicMaxLen = 300
	// degradedExcerptLen is the excerpt length appended after FallbackMarker.
	degradedExcerptLen = 200
)

// FallbackMarker prefixes summaries produced when the remote call failed.
const FallbackMarker = "(openai-fallback)"

// HeuristicSummarize returns the first two period-delimited sentences of text.
// Text with at most one period is returned as is, capped at 300 characters.
// Only '.' terminates a sentence.
func HeuristicSummarize(text string) string {
	sentences := strings.Split(strings.TrimSpace(text), ".")
	if len(sentences) <= 2 {
		return truncateRunes(text, heuristicMaxLen)
	}
	return strings.TrimSpace(strings.Join(sentences[:2], ".")) + "."
}

// degradedSummary is returned when a remote call was attempted and failed.
func degradedSummary(text string) string {
	return FallbackMarker + " " + truncateRunes(text, degradedExcerptLen)
}

// truncateRunes cuts s to at most maxLen characters without splitting a rune.
func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}
