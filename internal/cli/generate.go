package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hamedtrades1-cmyk/subnow/internal/audio"
	"github.com/hamedtrades1-cmyk/subnow/internal/caption"
	"github.com/hamedtrades1-cmyk/subnow/internal/config"
	"github.com/hamedtrades1-cmyk/subnow/internal/render"
	"github.com/hamedtrades1-cmyk/subnow/internal/transcribe"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Generate animated captions for an audio or video file",
	Long: `Generate word-timed captions for the specified audio or video file.

The command accepts both audio files (mp3, wav, aac, etc.) and video files
(mp4, mkv, etc.). For video files, audio is automatically extracted before
transcription and the caption canvas matches the video dimensions.

Already-timed words can be supplied with --words instead of a media file,
skipping transcription entirely.

Examples:
  subnow generate video.mp4
  subnow generate video.mp4 --theme beast --animation pop
  subnow generate audio.mp3 --format srt
  subnow generate --words words.json --width 1080 --height 1920
  subnow generate video.mp4 --burn -o captioned.mp4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		String("words", "", "JSON file of pre-timed words (skips transcription)")
	generateCmd.Flags().
		StringP("theme", "t", "", "Theme preset name (see 'subnow themes')")
	generateCmd.Flags().
		String("theme-file", "", "YAML file of theme overrides applied on the preset")
	generateCmd.Flags().
		Int("words-per-line", 0, "Maximum words per caption line")
	generateCmd.Flags().
		Int("max-chars", 0, "Maximum characters per caption line")
	generateCmd.Flags().
		String("animation", "", "Animation style (none, karaoke, bounce, pop, glow, wave, typewriter)")
	generateCmd.Flags().
		Int("position-y", -1, "Vertical caption position as percent of frame height (0-100)")
	generateCmd.Flags().
		Float64("padding", -1, "Seconds of display padding at sequence boundaries")
	generateCmd.Flags().
		Int("width", 0, "Canvas width in pixels (defaults to the video's width)")
	generateCmd.Flags().
		Int("height", 0, "Canvas height in pixels (defaults to the video's height)")
	generateCmd.Flags().
		StringP("provider", "p", "", "Transcription provider (openai, gemini)")
	generateCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or OPENAI_API_KEY / GEMINI_API_KEY env var)")
	generateCmd.Flags().
		String("model", "", "Transcription model")
	generateCmd.Flags().
		StringP("language", "l", "", "Language code of the audio (e.g., en, es, fr)")
	generateCmd.Flags().
		IntP("chunk-duration", "d", 0, "Chunk duration in minutes for splitting audio")
	generateCmd.Flags().
		Int("concurrency", 0, "Number of parallel transcription workers")
	generateCmd.Flags().
		StringP("format", "f", "ass", "Output caption format (ass, srt, vtt)")
	generateCmd.Flags().
		Bool("burn", false, "Burn the captions into the video (requires a video input)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	wordsPath, _ := cmd.Flags().GetString("words")
	if wordsPath == "" && len(args) == 0 {
		return fmt.Errorf("either a media file or --words is required")
	}

	var mediaPath string
	if len(args) == 1 {
		mediaPath = args[0]
		if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", mediaPath)
		}
		if !audio.IsMediaFile(mediaPath) {
			return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
		}
	}

	formatStr, _ := cmd.Flags().GetString("format")
	formatStr = strings.ToLower(formatStr)
	switch formatStr {
	case "ass", "srt", "vtt":
	default:
		return fmt.Errorf("unsupported format %q: use ass, srt, or vtt", formatStr)
	}

	burn, _ := cmd.Flags().GetBool("burn")
	if burn && (mediaPath == "" || !audio.IsVideoFile(mediaPath)) {
		return fmt.Errorf("--burn requires a video input file")
	}
	if burn && formatStr != "ass" {
		return fmt.Errorf("--burn requires the ass format")
	}

	captionCfg, themeRef, err := buildCaptionConfig(cmd, cfg)
	if err != nil {
		return err
	}

	// match the video's canvas unless dimensions were given explicitly
	if mediaPath != "" && audio.IsVideoFile(mediaPath) {
		if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") {
			if info, err := render.Probe(mediaPath); err == nil {
				captionCfg.VideoWidth = info.Width
				captionCfg.VideoHeight = info.Height
			}
		}
	}

	var words []caption.WordInput
	if wordsPath != "" {
		words, err = readWordsFile(wordsPath)
		if err != nil {
			return err
		}
	} else {
		words, err = transcribeMedia(ctx, cmd, cfg, mediaPath)
		if err != nil {
			return err
		}
	}

	logger.Infow("Generating captions",
		"words", len(words),
		"theme", themeRef.Name,
		"format", formatStr,
	)

	var document string
	switch formatStr {
	case "ass":
		document, err = caption.Generate(words, themeRef, captionCfg)
	case "srt":
		var lines []caption.Line
		lines, err = caption.GenerateLines(words, themeRef, captionCfg)
		if err == nil {
			document = caption.ExportSRT(lines)
		}
	case "vtt":
		var lines []caption.Line
		lines, err = caption.GenerateLines(words, themeRef, captionCfg)
		if err == nil {
			document = caption.ExportVTT(lines)
		}
	}
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	captionPath := outputPath
	if burn || captionPath == "" {
		base := "captions"
		if mediaPath != "" {
			base = strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		} else if wordsPath != "" {
			base = strings.TrimSuffix(wordsPath, filepath.Ext(wordsPath))
		}
		captionPath = base + "." + formatStr
	}

	if err := os.WriteFile(captionPath, []byte(document), 0644); err != nil {
		return fmt.Errorf("failed to write captions: %w", err)
	}

	absCaption, _ := filepath.Abs(captionPath)
	fmt.Printf("Captions generated: %s\n", absCaption)

	if burn {
		videoOut := outputPath
		if videoOut == "" {
			base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
			videoOut = base + "_captioned" + filepath.Ext(mediaPath)
		}

		logger.Infow("Burning captions into video",
			"video", mediaPath,
			"output", videoOut,
		)

		opts := render.DefaultOptions()
		if err := render.Burn(ctx, mediaPath, captionPath, videoOut, opts); err != nil {
			return err
		}

		absVideo, _ := filepath.Abs(videoOut)
		fmt.Printf("Captioned video written: %s\n", absVideo)
	}

	return nil
}

// buildCaptionConfig merges the config file and command flags into the
// caption settings and theme reference.
func buildCaptionConfig(cmd *cobra.Command, cfg config.Config) (caption.Config, caption.ThemeRef, error) {
	captionCfg := caption.DefaultConfig()
	captionCfg.VideoWidth = cfg.Video.Width
	captionCfg.VideoHeight = cfg.Video.Height
	captionCfg.WordsPerLine = cfg.Captions.WordsPerLine
	captionCfg.MaxCharsPerLine = cfg.Captions.MaxCharsPerLine
	captionCfg.AnimationStyle = caption.AnimationStyle(cfg.Captions.Animation)
	captionCfg.Padding = cfg.Captions.Padding

	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		captionCfg.VideoWidth = v
	}
	if v, _ := cmd.Flags().GetInt("height"); v > 0 {
		captionCfg.VideoHeight = v
	}
	if v, _ := cmd.Flags().GetInt("words-per-line"); v > 0 {
		captionCfg.WordsPerLine = v
	}
	if v, _ := cmd.Flags().GetInt("max-chars"); v > 0 {
		captionCfg.MaxCharsPerLine = v
	}
	if v, _ := cmd.Flags().GetString("animation"); v != "" {
		captionCfg.AnimationStyle = caption.AnimationStyle(v)
	}
	if v, _ := cmd.Flags().GetInt("position-y"); v >= 0 {
		captionCfg.PositionY = &v
	}
	if v, _ := cmd.Flags().GetFloat64("padding"); v >= 0 {
		captionCfg.Padding = v
	}

	themeName, _ := cmd.Flags().GetString("theme")
	if themeName == "" {
		themeName = cfg.Captions.Theme
	}

	themeRef := caption.ThemeRef{Name: themeName}

	themeFile, _ := cmd.Flags().GetString("theme-file")
	if themeFile != "" {
		data, err := os.ReadFile(themeFile)
		if err != nil {
			return captionCfg, themeRef, fmt.Errorf("failed to read theme file: %w", err)
		}
		var overrides caption.ThemeOverrides
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return captionCfg, themeRef, fmt.Errorf("failed to parse theme file: %w", err)
		}
		themeRef.Overrides = &overrides
	}

	return captionCfg, themeRef, nil
}

// wordsFile is the JSON shape accepted by --words: either a bare array
// of words or an object with a "words" key.
type wordsFile struct {
	Words []caption.WordInput `json:"words"`
}

func readWordsFile(path string) ([]caption.WordInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}

	var words []caption.WordInput
	if err := json.Unmarshal(data, &words); err == nil {
		return words, nil
	}

	var wrapped wordsFile
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse words file: %w", err)
	}

	return wrapped.Words, nil
}

// transcribeMedia prepares the audio and runs chunked transcription.
func transcribeMedia(ctx context.Context, cmd *cobra.Command, cfg config.Config, mediaPath string) ([]caption.WordInput, error) {
	providerStr, _ := cmd.Flags().GetString("provider")
	if providerStr == "" {
		providerStr = cfg.Transcription.Provider
	}
	provider := transcribe.Provider(strings.ToLower(providerStr))

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.Transcription.APIKey
	}
	if apiKey == "" {
		switch provider {
		case transcribe.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case transcribe.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required: use --api-key, the config file, or the provider's environment variable")
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.Transcription.Model
	}

	chunkMinutes, _ := cmd.Flags().GetInt("chunk-duration")
	if chunkMinutes <= 0 {
		chunkMinutes = cfg.Transcription.ChunkMinutes
	}
	if chunkMinutes <= 0 {
		chunkMinutes = 10
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Transcription.Concurrency
	}

	language, _ := cmd.Flags().GetString("language")

	tempDir, err := os.MkdirTemp("", "subnow-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Infow("Preparing audio for transcription",
		"input", mediaPath,
	)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	if err := audio.Extract(ctx, mediaPath, audioPath, audio.DefaultExtractOptions()); err != nil {
		return nil, fmt.Errorf("failed to prepare audio: %w", err)
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}

	logger.Infow("Audio prepared",
		"duration", duration.String(),
	)

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(chunkMinutes) * time.Minute

	chunks, err := audio.Chunk(ctx, audioPath, chunkDur, chunkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}
	defer audio.CleanupChunks(chunks)

	logger.Infow("Created audio chunks",
		"count", len(chunks),
	)

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribe.Options{
		Language: language,
		Model:    model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"provider", string(provider),
		"concurrency", concurrency,
	)

	result, err := transcribe.TranscribeChunks(ctx, transcriber, chunks, concurrency)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	logger.Infow("Transcription complete",
		"words", len(result.Words),
	)

	return result.Words, nil
}
