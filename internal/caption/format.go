package caption

import (
	"fmt"
	"strconv"
	"strings"
)

// hexToASSColor converts "#RRGGBB" or "#RGB" to an opaque ASS color.
// ASS stores colors as &HAABBGGRR, so the byte order is reversed.
// Input is validated by the theme validator before it reaches here.
func hexToASSColor(hex string) string {
	c := strings.TrimPrefix(hex, "#")
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	v, _ := strconv.ParseUint(c, 16, 32)
	r := v >> 16 & 0xFF
	g := v >> 8 & 0xFF
	b := v & 0xFF
	return fmt.Sprintf("&H00%02X%02X%02X", b, g, r)
}

// secondsToASSTime formats seconds as an ASS timestamp "H:MM:SS.CC".
// Centiseconds are truncated, not rounded.
func secondsToASSTime(seconds float64) string {
	// epsilon keeps values stored just below a centisecond
	// boundary (3723.45*100 = 372344.999...) from truncating down
	cs := int64(seconds*100 + 1e-6)
	hours := cs / 360000
	minutes := cs % 360000 / 6000
	secs := cs % 6000 / 100
	centis := cs % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// alignmentCode maps alignment and vertical position to the ASS
// numpad-style grid:
//
//	7 8 9  (top)
//	4 5 6  (middle)
//	1 2 3  (bottom)
func alignmentCode(alignment Alignment, positionY int) int {
	var vOffset int
	switch {
	case positionY < 33:
		vOffset = 6
	case positionY < 66:
		vOffset = 3
	default:
		vOffset = 0
	}

	hBase := 2
	switch alignment {
	case AlignLeft:
		hBase = 1
	case AlignRight:
		hBase = 3
	}

	return vOffset + hBase
}

// marginV computes the vertical margin in pixels. Text in the bottom
// half measures from the bottom edge, top half from the top edge.
func marginV(positionY, videoHeight int) int {
	if positionY > 50 {
		return videoHeight * (100 - positionY) / 100
	}
	return videoHeight * positionY / 100
}

// escapeASSText escapes characters that are significant in ASS dialogue text.
func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "{", `\{`)
	text = strings.ReplaceAll(text, "}", `\}`)
	text = strings.ReplaceAll(text, "\n", `\N`)
	return text
}
