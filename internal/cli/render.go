package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamedtrades1-cmyk/subnow/internal/audio"
	"github.com/hamedtrades1-cmyk/subnow/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [video_file] [caption_file]",
	Short: "Burn an existing caption file into a video",
	Long: `Burn a previously generated ASS caption file into a video with libass.

Examples:
  subnow render video.mp4 video.ass
  subnow render video.mp4 video.ass -o captioned.mp4 --crf 20`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("codec", "libx264", "Video codec")
	renderCmd.Flags().String("preset", "medium", "Encoder preset")
	renderCmd.Flags().Int("crf", 18, "Constant rate factor (lower is higher quality)")
	renderCmd.Flags().String("audio-codec", "copy", "Audio codec")
}

func runRender(cmd *cobra.Command, args []string) error {
	videoPath, captionPath := args[0], args[1]

	if !audio.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported video type: %s", filepath.Ext(videoPath))
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		outputPath = base + "_captioned" + filepath.Ext(videoPath)
	}

	opts := render.DefaultOptions()
	opts.Codec, _ = cmd.Flags().GetString("codec")
	opts.Preset, _ = cmd.Flags().GetString("preset")
	opts.CRF, _ = cmd.Flags().GetInt("crf")
	opts.AudioCodec, _ = cmd.Flags().GetString("audio-codec")

	if verbose {
		opts.Progress = func(fraction float64) {
			fmt.Fprintf(os.Stderr, "\rrendering: %3.0f%%", fraction*100)
		}
	}

	logger.Infow("Burning captions into video",
		"video", videoPath,
		"captions", captionPath,
		"output", outputPath,
	)

	if err := render.Burn(context.Background(), videoPath, captionPath, outputPath, opts); err != nil {
		return err
	}
	if opts.Progress != nil {
		fmt.Fprintln(os.Stderr)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captioned video written: %s\n", absOutput)
	return nil
}
