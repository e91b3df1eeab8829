package cli

import (
	"github.com/spf13/cobra"

	"github.com/hamedtrades1-cmyk/subnow/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subnow",
	Short: "Animated caption generator for short-form video",
	Long: `Subnow turns spoken audio into styled, word-timed captions.

It transcribes media with AI, groups the timed words into short lines,
and writes an ASS subtitle document with karaoke-style animation that
can be burned into the video.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		String("config", "", "Config file path (default ~/.config/subnow/config.toml)")
}
