package service

import (
	"strings"
	"unicode"
)

// NormalizeAnswerText canonicalizes answer text for display and comparison.
// A `;`-separated meaning list is cut down to its first clause, then sentence
// case is applied. Every answer string the engine produces (correct answers
// and distractors alike) goes through this, so equality checks always compare
// normalized forms. The function is idempotent.
func NormalizeAnswerText(text string) string {
	if idx := strings.Index(text, ";"); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	first := unicode.ToUpper(runes[0])
	rest := strings.ToLower(string(runes[1:]))
	return string(first) + rest
}
