package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWordsFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "bare array",
			content:   `[{"text": "hello", "start": 0.0, "end": 0.4}, {"text": "world", "start": 0.4, "end": 0.8}]`,
			wantCount: 2,
		},
		{
			name:      "wrapped object",
			content:   `{"words": [{"text": "hello", "start": 0.0, "end": 0.4}]}`,
			wantCount: 1,
		},
		{
			name:      "with confidence",
			content:   `[{"text": "hello", "start": 0.0, "end": 0.4, "confidence": 0.93}]`,
			wantCount: 1,
		},
		{
			name:    "malformed JSON",
			content: `[{"text": "hello"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "words.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write words file: %v", err)
			}

			words, err := readWordsFile(path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(words) != tt.wantCount {
				t.Errorf("got %d words, want %d", len(words), tt.wantCount)
			}
		})
	}
}

func TestReadWordsFileMissing(t *testing.T) {
	if _, err := readWordsFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
