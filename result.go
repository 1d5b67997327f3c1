package secagent

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxResultSize bounds the rendered tool output embedded in the conversation.
const DefaultMaxResultSize = 32 * 1024

func toolResultEntry(tool, text string) string {
	return fmt.Sprintf("System: result of tool %s: %s", tool, text)
}

func toolErrorEntry(err error) string {
	return fmt.Sprintf("System: error executing tool: %s", err.Error())
}

// truncate cuts text to at most limit bytes on a rune boundary. limit <= 0 disables it.
func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return fmt.Sprintf("%s\n... (truncated %d bytes)", text[:cut], len(text)-cut)
}
