package caption

import (
	"fmt"
	"strings"
)

// per-word animation applied to dialogue text
type AnimationStyle string

const (
	AnimationNone       AnimationStyle = "none"
	AnimationKaraoke    AnimationStyle = "karaoke"
	AnimationBounce     AnimationStyle = "bounce"
	AnimationPop        AnimationStyle = "pop"
	AnimationGlow       AnimationStyle = "glow"
	AnimationWave       AnimationStyle = "wave"
	AnimationTypewriter AnimationStyle = "typewriter"
)

// AnimationStyles returns every supported style name.
func AnimationStyles() []string {
	return []string{
		string(AnimationNone),
		string(AnimationKaraoke),
		string(AnimationBounce),
		string(AnimationPop),
		string(AnimationGlow),
		string(AnimationWave),
		string(AnimationTypewriter),
	}
}

// ValidAnimationStyle reports whether the style is one of the closed set.
func ValidAnimationStyle(style AnimationStyle) bool {
	switch style {
	case AnimationNone, AnimationKaraoke, AnimationBounce, AnimationPop,
		AnimationGlow, AnimationWave, AnimationTypewriter:
		return true
	}
	return false
}

// animateLine renders one line's words as ASS dialogue text with the
// theme's animation tags. Styles are a closed set; unknown styles are
// rejected during validation, so the default branch only fires if a
// caller bypassed Generate.
func animateLine(words []Word, theme Theme) (string, error) {
	switch theme.AnimationStyle {
	case AnimationNone:
		return animateNone(words, theme), nil
	case AnimationKaraoke:
		return animateKaraoke(words, theme), nil
	case AnimationBounce:
		return animateBounce(words, theme), nil
	case AnimationPop:
		return animatePop(words, theme), nil
	case AnimationGlow:
		return animateGlow(words, theme), nil
	case AnimationWave:
		return animateWave(words, theme), nil
	case AnimationTypewriter:
		return animateTypewriter(words, theme), nil
	default:
		return "", newValidationError(fmt.Sprintf(
			"unknown animation style %q: available styles: %s",
			theme.AnimationStyle, strings.Join(AnimationStyles(), ", "),
		))
	}
}

// displayText escapes a word for ASS and applies the theme's case.
// Escaping runs first so inserted control characters stay intact.
func displayText(w Word, theme Theme) string {
	text := escapeASSText(w.Text)
	if theme.Uppercase {
		text = strings.ToUpper(text)
	}
	return text
}

// plain text, no override tags
func animateNone(words []Word, theme Theme) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = displayText(w, theme)
	}
	return strings.Join(parts, " ")
}

// animateKaraoke wraps each word in a smooth-fill timing tag. \kf fills
// the word with the style's secondary color over the word's spoken
// duration, measured in centiseconds.
func animateKaraoke(words []Word, theme Theme) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf(`{\kf%d}%s`, w.DurationCS(), displayText(w, theme))
	}
	return strings.Join(parts, " ")
}

// animateBounce scales each word from 80% up to 110% and settles at
// 100%, staggered 50ms per word index.
func animateBounce(words []Word, theme Theme) string {
	const (
		stagger        = 50
		bounceDuration = 200
		settleDuration = 100
	)

	parts := make([]string, len(words))
	for i, w := range words {
		delay := i * stagger
		parts[i] = fmt.Sprintf(
			`{\fscx80\fscy80\t(%d,%d,\fscx110\fscy110)\t(%d,%d,\fscx100\fscy100)}%s`,
			delay, delay+bounceDuration,
			delay+bounceDuration, delay+bounceDuration+settleDuration,
			displayText(w, theme),
		)
	}
	return strings.Join(parts, " ")
}

// animatePop keeps each word invisible (scale 0) until its start time
// relative to the line's first word, pops it to 115% and settles at
// 100%. Offsets are milliseconds from the line start, which is what
// keeps the pop in sync with the audio.
func animatePop(words []Word, theme Theme) string {
	const (
		popDuration    = 100
		settleDuration = 80
	)

	lineStart := 0.0
	if len(words) > 0 {
		lineStart = words[0].Start
	}

	parts := make([]string, len(words))
	for i, w := range words {
		relStart := int((w.Start - lineStart) * 1000)
		parts[i] = fmt.Sprintf(
			`{\fscx0\fscy0\t(0,%d,\fscx0\fscy0)\t(%d,%d,\fscx115\fscy115)\t(%d,%d,\fscx100\fscy100)}%s`,
			relStart,
			relStart, relStart+popDuration,
			relStart+popDuration, relStart+popDuration+settleDuration,
			displayText(w, theme),
		)
	}
	return strings.Join(parts, " ")
}

// animateGlow pulses each word by raising blur and outline width while
// switching to the highlight color, then reverting, staggered 100ms per
// word index.
func animateGlow(words []Word, theme Theme) string {
	const (
		stagger  = 100
		pulseIn  = 150
		pulseOut = 150
	)

	highlight := hexToASSColor(theme.HighlightColor)
	base := hexToASSColor(theme.TextColor)

	parts := make([]string, len(words))
	for i, w := range words {
		delay := i * stagger
		parts[i] = fmt.Sprintf(
			`{\blur0\bord%d\t(%d,%d,\blur3\bord%d\c%s)\t(%d,%d,\blur0\bord%d\c%s)}%s`,
			theme.OutlineWidth,
			delay, delay+pulseIn, theme.OutlineWidth+2, highlight,
			delay+pulseIn, delay+pulseIn+pulseOut, theme.OutlineWidth, base,
			displayText(w, theme),
		)
	}
	return strings.Join(parts, " ")
}

// animateWave oscillates each word's vertical scale 100%→110%→100%,
// staggered 100ms per word index so the motion travels across the line.
func animateWave(words []Word, theme Theme) string {
	const (
		stagger  = 100
		waveUp   = 200
		waveDown = 200
	)

	parts := make([]string, len(words))
	for i, w := range words {
		offset := i * stagger
		parts[i] = fmt.Sprintf(
			`{\fscy100\t(%d,%d,\fscy110)\t(%d,%d,\fscy100)}%s`,
			offset, offset+waveUp,
			offset+waveUp, offset+waveUp+waveDown,
			displayText(w, theme),
		)
	}
	return strings.Join(parts, " ")
}

// animateTypewriter keeps each word fully transparent until its start
// time relative to the line start, then fades it in over 50ms.
func animateTypewriter(words []Word, theme Theme) string {
	const fadeDuration = 50

	lineStart := 0.0
	if len(words) > 0 {
		lineStart = words[0].Start
	}

	parts := make([]string, len(words))
	for i, w := range words {
		relStart := int((w.Start - lineStart) * 1000)
		parts[i] = fmt.Sprintf(
			`{\alpha&HFF\t(0,%d,\alpha&HFF)\t(%d,%d,\alpha&H00)}%s`,
			relStart,
			relStart, relStart+fadeDuration,
			displayText(w, theme),
		)
	}
	return strings.Join(parts, " ")
}
