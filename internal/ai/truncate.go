package ai

import "log"

// TruncateToLimit caps content that must fit in a single prompt
// (transcripts and course excerpts can blow past provider token limits).
func TruncateToLimit(content string, maxChars int) string {
	if len(content) <= maxChars {
		return content
	}
	log.Printf("[Truncate] Truncating from %d to %d chars (~%d to ~%d tokens)",
		len(content), maxChars, EstimateTokens(content), EstimateTokens(content[:maxChars]))
	return content[:maxChars] + "\n...[truncated]"
}

// EstimateTokens provides a rough token count (4 chars ~= 1 token)
func EstimateTokens(content string) int {
	return len(content) / 4
}
