package caption

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func mustTheme(t *testing.T, name string) Theme {
	t.Helper()
	theme, err := GetTheme(name)
	if err != nil {
		t.Fatalf("GetTheme(%q): %v", name, err)
	}
	return theme
}

func TestAnimateNone(t *testing.T) {
	theme := mustTheme(t, "clean")
	words := []Word{
		{Text: "plain", Start: 0, End: 0.4},
		{Text: "text", Start: 0.4, End: 0.8},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}
	if got != "plain text" {
		t.Errorf("got %q, want plain joined words", got)
	}
}

func TestAnimateKaraoke(t *testing.T) {
	theme := mustTheme(t, "hormozi") // karaoke, uppercase
	words := []Word{
		{Text: "Hello", Start: 0.0, End: 0.4},
		{Text: "world", Start: 0.4, End: 0.8},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	want := `{\kf40}HELLO {\kf40}WORLD`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnimateKaraokeFillMatchesWordDuration(t *testing.T) {
	theme := mustTheme(t, "sara") // karaoke, no uppercase
	words := []Word{
		{Text: "slow", Start: 0.0, End: 1.25},
		{Text: "quick", Start: 1.25, End: 1.3},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(got, `{\kf125}slow`) {
		t.Errorf("missing 125cs fill: %q", got)
	}
	if !strings.Contains(got, `{\kf5}quick`) {
		t.Errorf("missing 5cs fill: %q", got)
	}
}

func TestAnimateBounce(t *testing.T) {
	theme := mustTheme(t, "bold") // bounce, uppercase
	words := []Word{
		{Text: "Big", Start: 2.0, End: 2.3},
		{Text: "news", Start: 2.3, End: 2.7},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	// stagger is 50ms per word index, independent of word timing
	first := `{\fscx80\fscy80\t(0,200,\fscx110\fscy110)\t(200,300,\fscx100\fscy100)}BIG`
	second := `{\fscx80\fscy80\t(50,250,\fscx110\fscy110)\t(250,350,\fscx100\fscy100)}NEWS`
	if got != first+" "+second {
		t.Errorf("got %q", got)
	}
}

func TestAnimatePopUsesLineRelativeOffsets(t *testing.T) {
	theme := mustTheme(t, "beast") // pop, uppercase
	words := []Word{
		{Text: "Go", Start: 1.0, End: 1.2},
		{Text: "now", Start: 1.5, End: 1.8},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	// first word pops at line start, second 500ms in
	first := `{\fscx0\fscy0\t(0,0,\fscx0\fscy0)\t(0,100,\fscx115\fscy115)\t(100,180,\fscx100\fscy100)}GO`
	second := `{\fscx0\fscy0\t(0,500,\fscx0\fscy0)\t(500,600,\fscx115\fscy115)\t(600,680,\fscx100\fscy100)}NOW`
	if got != first+" "+second {
		t.Errorf("got %q", got)
	}
}

func TestAnimateGlow(t *testing.T) {
	theme := mustTheme(t, "neon") // glow, outline width 3
	words := []Word{
		{Text: "shine", Start: 0, End: 0.5},
		{Text: "on", Start: 0.5, End: 0.9},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	// highlight #FF00FF and text #00FF00 in BGR
	first := `{\blur0\bord3\t(0,150,\blur3\bord5\c&H00FF00FF)\t(150,300,\blur0\bord3\c&H0000FF00)}shine`
	second := `{\blur0\bord3\t(100,250,\blur3\bord5\c&H00FF00FF)\t(250,400,\blur0\bord3\c&H0000FF00)}on`
	if got != first+" "+second {
		t.Errorf("got %q", got)
	}
}

func TestAnimateWave(t *testing.T) {
	theme := mustTheme(t, "gradient") // wave
	words := []Word{
		{Text: "up", Start: 0, End: 0.3},
		{Text: "down", Start: 0.3, End: 0.6},
		{Text: "up", Start: 0.6, End: 0.9},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	for i, offset := range []int{0, 100, 200} {
		tag := fmt.Sprintf(`\t(%d,%d,\fscy110)`, offset, offset+200)
		if !strings.Contains(got, tag) {
			t.Errorf("word %d missing wave tag %q in %q", i, tag, got)
		}
	}
}

func TestAnimateTypewriter(t *testing.T) {
	theme := mustTheme(t, "minimal")
	theme.AnimationStyle = AnimationTypewriter
	words := []Word{
		{Text: "type", Start: 3.0, End: 3.2},
		{Text: "it", Start: 3.25, End: 3.4},
	}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}

	first := `{\alpha&HFF\t(0,0,\alpha&HFF)\t(0,50,\alpha&H00)}type`
	second := `{\alpha&HFF\t(0,250,\alpha&HFF)\t(250,300,\alpha&H00)}it`
	if got != first+" "+second {
		t.Errorf("got %q", got)
	}
}

func TestAnimateEscapesBeforeUppercasing(t *testing.T) {
	theme := mustTheme(t, "hormozi")
	words := []Word{{Text: "a{b}", Start: 0, End: 0.4}}

	got, err := animateLine(words, theme)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `A\{B\}`) {
		t.Errorf("braces not escaped or case not applied: %q", got)
	}
}

func TestAnimateUnknownStyle(t *testing.T) {
	theme := mustTheme(t, "clean")
	theme.AnimationStyle = "spin"

	_, err := animateLine([]Word{{Text: "x", Start: 0, End: 1}}, theme)
	if err == nil {
		t.Fatal("expected error for unknown style")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(verr.Issues[0], `unknown animation style "spin"`) {
		t.Errorf("issue = %q", verr.Issues[0])
	}
}

func TestValidAnimationStyle(t *testing.T) {
	for _, style := range AnimationStyles() {
		if !ValidAnimationStyle(AnimationStyle(style)) {
			t.Errorf("%q should be valid", style)
		}
	}
	if ValidAnimationStyle("spin") {
		t.Error("spin should not be valid")
	}
}
