package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hamedtrades1-cmyk/subnow/internal/caption"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in caption themes",
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Font", "Size", "Color", "Highlight", "Animation", "Uppercase"})

	for _, name := range caption.ListThemes() {
		theme, err := caption.GetTheme(name)
		if err != nil {
			return err
		}
		tw.AppendRow(table.Row{
			name,
			theme.FontFamily,
			strconv.Itoa(theme.FontSize),
			theme.TextColor,
			theme.HighlightColor,
			string(theme.AnimationStyle),
			theme.Uppercase,
		})
	}

	fmt.Println(tw.Render())
	return nil
}
