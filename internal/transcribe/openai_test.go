package transcribe

import (
	"context"
	"testing"
)

func TestParseVerboseJSONResponse(t *testing.T) {
	tests := []struct {
		name      string
		rawJSON   string
		wantCount int
		wantLang  string
		wantErr   bool
	}{
		{
			name: "valid verbose_json with words",
			rawJSON: `{
				"text": "Hello world",
				"words": [
					{"word": "Hello", "start": 0.0, "end": 0.4},
					{"word": "world", "start": 0.4, "end": 0.8}
				],
				"language": "english",
				"duration": 0.8
			}`,
			wantCount: 2,
			wantLang:  "english",
		},
		{
			name: "whitespace-padded words trimmed",
			rawJSON: `{
				"text": "Hello world",
				"words": [
					{"word": " Hello", "start": 0.0, "end": 0.4},
					{"word": " world", "start": 0.4, "end": 0.8}
				],
				"language": "en"
			}`,
			wantCount: 2,
			wantLang:  "en",
		},
		{
			name: "blank words filtered out",
			rawJSON: `{
				"text": "Hello",
				"words": [
					{"word": "   ", "start": 0.0, "end": 0.2},
					{"word": "Hello", "start": 0.2, "end": 0.6}
				],
				"language": "en"
			}`,
			wantCount: 1,
			wantLang:  "en",
		},
		{
			name:    "empty response",
			rawJSON: "",
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			rawJSON: `{"text": "incomplete`,
			wantErr: true,
		},
		{
			name: "no word timestamps",
			rawJSON: `{
				"text": "Segment-only response",
				"words": [],
				"language": "en"
			}`,
			wantErr: true,
		},
		{
			name: "real whisper word response format",
			rawJSON: `{
				"task": "transcribe",
				"language": "english",
				"duration": 8.47,
				"text": "The stale smell of old beer lingers.",
				"words": [
					{"word": "The", "start": 0.0, "end": 0.23999999463558197},
					{"word": "stale", "start": 0.23999999463558197, "end": 0.6399999856948853},
					{"word": "smell", "start": 0.6399999856948853, "end": 1.0},
					{"word": "of", "start": 1.0, "end": 1.2400000095367432},
					{"word": "old", "start": 1.2400000095367432, "end": 1.5},
					{"word": "beer", "start": 1.5, "end": 1.88},
					{"word": "lingers", "start": 1.88, "end": 2.36}
				]
			}`,
			wantCount: 7,
			wantLang:  "english",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, lang, err := parseVerboseJSONResponse(tt.rawJSON)
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
			if lang != tt.wantLang {
				t.Errorf("language: got %q, want %q", lang, tt.wantLang)
			}
			for i, w := range words {
				if w.Text == "" {
					t.Errorf("word %d has empty text", i)
				}
			}
		})
	}
}

func TestParseVerboseJSONResponseTimestamps(t *testing.T) {
	rawJSON := `{
		"text": "Hello world",
		"words": [
			{"word": " Hello", "start": 1.5, "end": 3.0},
			{"word": " world", "start": 3.0, "end": 5.5}
		],
		"language": "en",
		"duration": 5.5
	}`

	words, _, err := parseVerboseJSONResponse(rawJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}

	if words[0].Text != "Hello" {
		t.Errorf("word 0 text: got %q, want %q", words[0].Text, "Hello")
	}
	if words[0].Start != 1.5 {
		t.Errorf("word 0 start: got %v, want 1.5", words[0].Start)
	}
	if words[0].End != 3.0 {
		t.Errorf("word 0 end: got %v, want 3.0", words[0].End)
	}

	if words[1].Text != "world" {
		t.Errorf("word 1 text: got %q, want %q", words[1].Text, "world")
	}
	if words[1].Start != 3.0 {
		t.Errorf("word 1 start: got %v, want 3.0", words[1].Start)
	}
	if words[1].End != 5.5 {
		t.Errorf("word 1 end: got %v, want 5.5", words[1].End)
	}
}

func TestNewOpenAITranscriberRequiresKey(t *testing.T) {
	if _, err := NewOpenAITranscriber(context.Background(), "", Options{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewOpenAITranscriberDefaultModel(t *testing.T) {
	tr, err := NewOpenAITranscriber(context.Background(), "test-key", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.model != "whisper-1" {
		t.Errorf("default model: got %q, want %q", tr.model, "whisper-1")
	}

	tr, err = NewOpenAITranscriber(context.Background(), "test-key", Options{Model: "gpt-4o-transcribe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.model != "gpt-4o-transcribe" {
		t.Errorf("custom model: got %q, want %q", tr.model, "gpt-4o-transcribe")
	}
}
