package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hamedtrades1-cmyk/subnow/internal/caption"
)

var previewCmd = &cobra.Command{
	Use:   "preview [theme]",
	Short: "Write a sample caption document for a theme",
	Long: `Write an ASS document rendering sample text with the given theme,
so the styling can be inspected in a subtitle player without running
a transcription first.

Examples:
  subnow preview beast
  subnow preview neon --text "Glowing caption preview" -o neon.ass
  subnow preview hormozi --width 1080 --height 1920`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().
		String("text", "This is what your captions will look like", "Sample text to render")
	previewCmd.Flags().
		Float64("duration", 5.0, "Seconds the sample text spans")
	previewCmd.Flags().
		String("theme-file", "", "YAML file of theme overrides applied on the preset")
	previewCmd.Flags().Int("width", 1920, "Canvas width in pixels")
	previewCmd.Flags().Int("height", 1080, "Canvas height in pixels")
}

func runPreview(cmd *cobra.Command, args []string) error {
	themeName := caption.DefaultThemeName
	if len(args) == 1 {
		themeName = args[0]
	}

	text, _ := cmd.Flags().GetString("text")
	duration, _ := cmd.Flags().GetFloat64("duration")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	themeRef := caption.ThemeRef{Name: themeName}

	themeFile, _ := cmd.Flags().GetString("theme-file")
	if themeFile != "" {
		data, err := os.ReadFile(themeFile)
		if err != nil {
			return fmt.Errorf("failed to read theme file: %w", err)
		}
		var overrides caption.ThemeOverrides
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return fmt.Errorf("failed to parse theme file: %w", err)
		}
		themeRef.Overrides = &overrides
	}

	document, err := caption.PreviewTheme(themeRef, text, duration, width, height)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = themeName + "_preview.ass"
	}

	if err := os.WriteFile(outputPath, []byte(document), 0644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Preview written: %s\n", absOutput)
	return nil
}
