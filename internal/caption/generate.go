package caption

import (
	"fmt"
	"strings"
)

// DefaultPadding is the extra display time, in seconds, added at each
// line boundary so captions don't cut exactly on the word edge.
const DefaultPadding = 0.1

// overlapTolerance is how far a word's start may precede the previous
// word's end before it counts as a timing error. Transcription
// providers commonly emit overlaps of a few hundredths of a second.
const overlapTolerance = 0.1

// ThemeRef selects the theme for a generation call: a catalog preset
// name, a full Theme value, or a preset plus field overrides. Theme
// wins over Overrides, Overrides over plain Name.
type ThemeRef struct {
	Name      string
	Theme     *Theme
	Overrides *ThemeOverrides
}

// Config carries the per-call settings that sit outside the theme.
// Zero values keep the defaults; PositionY is a pointer because 0 is a
// valid position.
type Config struct {
	VideoWidth  int
	VideoHeight int

	// documented theme overrides, applied after theme resolution
	WordsPerLine    int
	MaxCharsPerLine int
	AnimationStyle  AnimationStyle
	PositionY       *int

	Padding float64
}

// DefaultConfig returns the settings used when the caller passes none.
func DefaultConfig() Config {
	return Config{
		VideoWidth:  1920,
		VideoHeight: 1080,
		Padding:     DefaultPadding,
	}
}

// Generate converts a time-stamped word sequence and a theme reference
// into a complete ASS document. The call is pure and synchronous: it
// validates, normalizes, segments, pads, and builds, touching no state
// outside its arguments.
func Generate(words []WordInput, theme ThemeRef, cfg Config) (string, error) {
	if cfg.VideoWidth <= 0 {
		cfg.VideoWidth = 1920
	}
	if cfg.VideoHeight <= 0 {
		cfg.VideoHeight = 1080
	}

	lines, resolved, err := prepare(words, theme, cfg)
	if err != nil {
		return "", err
	}

	return BuildDocument(lines, resolved, cfg.VideoWidth, cfg.VideoHeight)
}

// GenerateLines runs the same validation, segmentation, and padding as
// Generate but returns the timed lines instead of an ASS document, for
// callers exporting plain-text formats.
func GenerateLines(words []WordInput, theme ThemeRef, cfg Config) ([]Line, error) {
	lines, _, err := prepare(words, theme, cfg)
	return lines, err
}

func prepare(words []WordInput, theme ThemeRef, cfg Config) ([]Line, Theme, error) {
	issues := ValidateWords(words)

	resolved, err := resolveTheme(theme)
	if err != nil {
		verr, ok := err.(*ValidationError)
		if !ok {
			return nil, Theme{}, err
		}
		issues = append(issues, verr.Issues...)
	} else {
		resolved = applyConfigOverrides(resolved, cfg)
		issues = append(issues, ValidateTheme(resolved)...)
	}

	if len(issues) > 0 {
		return nil, Theme{}, &ValidationError{Issues: issues}
	}

	normalized := NormalizeWords(words)
	lines := SegmentWords(normalized, resolved.WordsPerLine, resolved.MaxCharsPerLine)
	if cfg.Padding > 0 {
		lines = padLines(lines, cfg.Padding)
	}

	return lines, resolved, nil
}

// ValidateWords checks the word sequence and returns every issue found.
func ValidateWords(words []WordInput) []string {
	if len(words) == 0 {
		return []string{"word list is empty"}
	}

	var issues []string
	prevEnd := 0.0

	for i, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			issues = append(issues, fmt.Sprintf("word %d: text is empty", i))
		}
		if w.Start < 0 {
			issues = append(issues, fmt.Sprintf("word %d: start time is negative", i))
		}
		if w.End < w.Start {
			issues = append(issues, fmt.Sprintf("word %d: end time before start time", i))
		}
		if i > 0 && w.Start < prevEnd-overlapTolerance {
			issues = append(issues, fmt.Sprintf("word %d: overlaps previous word by more than %.1fs", i, overlapTolerance))
		}
		if w.Confidence != nil && (*w.Confidence < 0 || *w.Confidence > 1) {
			issues = append(issues, fmt.Sprintf("word %d: confidence %.2f outside [0, 1]", i, *w.Confidence))
		}
		prevEnd = w.End
	}

	return issues
}

func resolveTheme(ref ThemeRef) (Theme, error) {
	switch {
	case ref.Theme != nil:
		return *ref.Theme, nil
	case ref.Overrides != nil:
		base := ref.Name
		if base == "" {
			base = DefaultThemeName
		}
		return ThemeFromPreset(base, *ref.Overrides)
	case ref.Name != "":
		return GetTheme(ref.Name)
	default:
		return GetTheme(DefaultThemeName)
	}
}

// applyConfigOverrides layers the documented per-call overrides onto a
// copy of the resolved theme.
func applyConfigOverrides(theme Theme, cfg Config) Theme {
	if cfg.WordsPerLine > 0 {
		theme.WordsPerLine = cfg.WordsPerLine
	}
	if cfg.MaxCharsPerLine > 0 {
		theme.MaxCharsPerLine = cfg.MaxCharsPerLine
	}
	if cfg.AnimationStyle != "" {
		theme.AnimationStyle = cfg.AnimationStyle
	}
	if cfg.PositionY != nil {
		theme.PositionY = *cfg.PositionY
	}
	return theme
}

// padLines widens each line's display window: the first word starts
// earlier (clamped at zero) and the last word ends later. Interior word
// timings stay untouched so animation offsets keep their sync.
func padLines(lines []Line, padding float64) []Line {
	padded := make([]Line, len(lines))
	for i, line := range lines {
		words := make([]Word, len(line.Words))
		copy(words, line.Words)

		if len(words) > 0 {
			words[0].Start = max(0, words[0].Start-padding)
			words[len(words)-1].End += padding
		}

		padded[i] = Line{Words: words}
	}
	return padded
}

// PreviewTheme renders sample text with evenly spread word timings,
// for showing what a theme looks like before any transcription exists.
func PreviewTheme(theme ThemeRef, sampleText string, duration float64, width, height int) (string, error) {
	fields := strings.Fields(sampleText)
	if len(fields) == 0 {
		return "", newValidationError("sample text is empty")
	}
	if duration <= 0 {
		return "", newValidationError("preview duration must be positive")
	}

	perWord := duration / float64(len(fields))
	words := make([]WordInput, len(fields))
	current := 0.0
	for i, text := range fields {
		words[i] = WordInput{
			Text:  text,
			Start: current,
			End:   current + perWord,
		}
		current += perWord
	}

	cfg := DefaultConfig()
	cfg.VideoWidth = width
	cfg.VideoHeight = height
	return Generate(words, theme, cfg)
}
