package caption

import "testing"

func TestHexToASSColor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#FFFFFF", "&H00FFFFFF"},
		{"#FF0000", "&H000000FF"},
		{"#00FF00", "&H0000FF00"},
		{"#0000FF", "&H00FF0000"},
		{"#000000", "&H00000000"},
		{"#FFFF00", "&H0000FFFF"},
		{"#4ECDC4", "&H00C4CD4E"},
		// 3-digit shorthand doubles each digit
		{"#F0A", "&H00AA00FF"},
		{"#FFF", "&H00FFFFFF"},
		{"#abc", "&H00CCBBAA"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got := hexToASSColor(tt.hex)
			if got != tt.want {
				t.Errorf("hexToASSColor(%q) = %q, want %q", tt.hex, got, tt.want)
			}
		})
	}
}

func TestSecondsToASSTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00.00"},
		{0.4, "0:00:00.40"},
		{65.5, "0:01:05.50"},
		{3723.45, "1:02:03.45"},
		{59.999, "0:00:59.99"},
		// centiseconds truncate, never round
		{0.456, "0:00:00.45"},
		{36000, "10:00:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := secondsToASSTime(tt.seconds)
			if got != tt.want {
				t.Errorf("secondsToASSTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestAlignmentCode(t *testing.T) {
	tests := []struct {
		name      string
		alignment Alignment
		positionY int
		want      int
	}{
		{"bottom center", AlignCenter, 70, 2},
		{"bottom left", AlignLeft, 70, 1},
		{"bottom right", AlignRight, 70, 3},
		{"middle center", AlignCenter, 50, 5},
		{"middle left", AlignLeft, 40, 4},
		{"top center", AlignCenter, 20, 8},
		{"top left", AlignLeft, 0, 7},
		{"top right", AlignRight, 32, 9},
		// band boundaries: 33 is middle, 66 is bottom
		{"boundary 33", AlignCenter, 33, 5},
		{"boundary 66", AlignCenter, 66, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alignmentCode(tt.alignment, tt.positionY)
			if got != tt.want {
				t.Errorf("alignmentCode(%q, %d) = %d, want %d", tt.alignment, tt.positionY, got, tt.want)
			}
		})
	}
}

func TestMarginV(t *testing.T) {
	tests := []struct {
		name      string
		positionY int
		height    int
		want      int
	}{
		{"bottom half measures from bottom", 70, 1080, 324},
		{"very bottom", 100, 1920, 0},
		{"top half measures from top", 20, 1080, 216},
		{"very top", 0, 1080, 0},
		{"midpoint counts as top half", 50, 1080, 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marginV(tt.positionY, tt.height)
			if got != tt.want {
				t.Errorf("marginV(%d, %d) = %d, want %d", tt.positionY, tt.height, got, tt.want)
			}
		})
	}
}

func TestEscapeASSText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"braces", "a{b}c", `a\{b\}c`},
		{"backslash", `a\b`, `a\\b`},
		{"newline", "a\nb", `a\Nb`},
		{"backslash before brace", `\{`, `\\\{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeASSText(tt.input)
			if got != tt.want {
				t.Errorf("escapeASSText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
