package caption

import (
	"strings"
)

// a single transcribed word with timing in seconds
type Word struct {
	Text       string
	Start      float64
	End        float64
	Confidence float64
}

// duration in seconds
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// duration in centiseconds, truncated (karaoke tags count in centiseconds)
func (w Word) DurationCS() int {
	return int(w.Duration() * 100)
}

// a display line of consecutive words
type Line struct {
	Words []Word
}

// start time of the first word
func (l Line) Start() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	return l.Words[0].Start
}

// end time of the last word
func (l Line) End() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	return l.Words[len(l.Words)-1].End
}

// combined text of all words
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// loosely typed word record as produced by transcription providers
// and word files; normalized into Word at the generator boundary
type WordInput struct {
	Text       string   `json:"text" yaml:"text"`
	Start      float64  `json:"start" yaml:"start"`
	End        float64  `json:"end" yaml:"end"`
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// NormalizeWords converts loose word records into canonical Words,
// defaulting confidence to 1.0 when absent.
func NormalizeWords(in []WordInput) []Word {
	words := make([]Word, len(in))
	for i, w := range in {
		confidence := 1.0
		if w.Confidence != nil {
			confidence = *w.Confidence
		}
		words[i] = Word{
			Text:       w.Text,
			Start:      w.Start,
			End:        w.End,
			Confidence: confidence,
		}
	}
	return words
}
