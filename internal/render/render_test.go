package render

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestFilterEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain path", "/tmp/captions.ass", "/tmp/captions.ass"},
		{"windows drive", `C:\videos\captions.ass`, `C\:\\videos\\captions.ass`},
		{"apostrophe", "/tmp/it's.ass", `/tmp/it\'s.ass`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filterEscape(tt.input); got != tt.want {
				t.Errorf("filterEscape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseProgressTime(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   time.Duration
		wantOK bool
	}{
		{
			name:   "typical status line",
			line:   "frame= 1234 fps= 56 q=28.0 size=  5120KiB time=00:01:23.45 bitrate= 503.1kbits/s speed=1.87x",
			want:   83450 * time.Millisecond,
			wantOK: true,
		},
		{
			name:   "hour-long timestamp",
			line:   "time=01:02:03.00",
			want:   time.Hour + 2*time.Minute + 3*time.Second,
			wantOK: true,
		},
		{
			name: "no timestamp",
			line: "Stream mapping: Stream #0:0 -> #0:0 (h264 (native) -> h264 (libx264))",
		},
		{
			name: "empty line",
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseProgressTime(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanProgressLines(t *testing.T) {
	input := "line one\nstatus time=00:00:01.00\rstatus time=00:00:02.00\rlast line"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanProgressLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	want := []string{
		"line one",
		"status time=00:00:01.00",
		"status time=00:00:02.00",
		"last line",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Codec != "libx264" {
		t.Errorf("codec: got %q, want libx264", opts.Codec)
	}
	if opts.CRF != 18 {
		t.Errorf("crf: got %d, want 18", opts.CRF)
	}
	if opts.AudioCodec != "copy" {
		t.Errorf("audio codec: got %q, want copy", opts.AudioCodec)
	}
}
