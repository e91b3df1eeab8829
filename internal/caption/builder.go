package caption

import (
	"fmt"
	"strings"
)

// field order is positional; downstream renderers index by these headers
const (
	styleFormatLine = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	eventFormatLine = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"
)

// Builder assembles an ASS document: script info, one style table row
// per added theme, and one dialogue row per caption line.
type Builder struct {
	Width  int
	Height int
	Title  string

	styleRows    []string
	dialogueRows []string
}

func NewBuilder(width, height int) *Builder {
	return &Builder{
		Width:  width,
		Height: height,
		Title:  "subnow captions",
	}
}

// AddStyle derives a style table row from the theme.
func (b *Builder) AddStyle(theme Theme, name string) {
	bold := 0
	if theme.FontWeight >= 700 {
		bold = -1
	}

	row := fmt.Sprintf(
		"Style: %s,%s,%d,%s,%s,%s,%s,%d,0,0,0,100,100,%d,0,1,%d,%d,%d,20,20,%d,1",
		name,
		theme.FontFamily,
		theme.FontSize,
		hexToASSColor(theme.TextColor),
		hexToASSColor(theme.HighlightColor), // secondary: karaoke fill
		hexToASSColor(theme.OutlineColor),
		hexToASSColor(theme.ShadowColor),
		bold,
		theme.LetterSpacing,
		theme.OutlineWidth,
		theme.ShadowOffset,
		alignmentCode(theme.Alignment, theme.PositionY),
		marginV(theme.PositionY, b.Height),
	)

	b.styleRows = append(b.styleRows, row)
}

// AddDialogue appends one event row. The text is expected to already
// carry its animation tags.
func (b *Builder) AddDialogue(text string, start, end float64, style string) {
	row := fmt.Sprintf(
		"Dialogue: 0,%s,%s,%s,,0,0,0,,%s",
		secondsToASSTime(start),
		secondsToASSTime(end),
		style,
		text,
	)
	b.dialogueRows = append(b.dialogueRows, row)
}

// Build concatenates the three sections into the final document.
func (b *Builder) Build() string {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	fmt.Fprintf(&sb, "Title: %s\n", b.Title)
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("WrapStyle: 0\n")
	sb.WriteString("ScaledBorderAndShadow: yes\n")
	sb.WriteString("YCbCr Matrix: TV.601\n")
	fmt.Fprintf(&sb, "PlayResX: %d\n", b.Width)
	fmt.Fprintf(&sb, "PlayResY: %d\n", b.Height)
	sb.WriteString("\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString(styleFormatLine + "\n")
	for _, row := range b.styleRows {
		sb.WriteString(row + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString(eventFormatLine + "\n")
	for _, row := range b.dialogueRows {
		sb.WriteString(row + "\n")
	}

	return sb.String()
}

// BuildDocument renders the lines with the theme's animation and
// assembles a complete document with a single Default style.
func BuildDocument(lines []Line, theme Theme, width, height int) (string, error) {
	b := NewBuilder(width, height)
	b.AddStyle(theme, "Default")

	for _, line := range lines {
		text, err := animateLine(line.Words, theme)
		if err != nil {
			return "", err
		}
		b.AddDialogue(text, line.Start(), line.End(), "Default")
	}

	return b.Build(), nil
}
