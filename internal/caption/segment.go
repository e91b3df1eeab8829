package caption

import "unicode/utf8"

// SegmentWords groups words into display lines with a greedy single
// pass. A line closes once adding the next word would exceed either the
// word count or the character budget; the limits are only checked when
// the line already holds a word, so a single overlong word still gets a
// line of its own. The character count is the sum of word lengths plus
// one separator space per word.
func SegmentWords(words []Word, wordsPerLine, maxCharsPerLine int) []Line {
	if len(words) == 0 {
		return nil
	}

	var lines []Line
	var current []Word
	chars := 0

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word.Text)

		exceedsWords := len(current) >= wordsPerLine
		exceedsChars := chars+wordLen+1 > maxCharsPerLine

		if len(current) > 0 && (exceedsWords || exceedsChars) {
			lines = append(lines, Line{Words: current})
			current = nil
			chars = 0
		}

		current = append(current, word)
		chars += wordLen + 1
	}

	return append(lines, Line{Words: current})
}
