package caption

import (
	"fmt"
	"strings"
)

// plain-text exports of segmented lines, for callers that want the
// line grouping without ASS styling

// ExportSRT renders the lines as a SubRip document.
func ExportSRT(lines []Line) string {
	var sb strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", srtTime(line.Start()), srtTime(line.End()))
		sb.WriteString(line.Text())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// ExportVTT renders the lines as a WebVTT document.
func ExportVTT(lines []Line) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", vttTime(line.Start()), vttTime(line.End()))
		sb.WriteString(line.Text())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func srtTime(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func vttTime(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func clockParts(seconds float64) (h, m, s, ms int64) {
	total := int64(seconds*1000 + 1e-6)
	return total / 3600000, total % 3600000 / 60000, total % 60000 / 1000, total % 1000
}
