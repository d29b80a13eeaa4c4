package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/compiler"
	"github.com/VoxDroid/recipr/internal/security"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the compiled script for the current recipe",
	Long: `Print the compiled script for the current recipe. Items with unfilled
parameters are compiled with their [Placeholder] text and reported on stderr.
  recipr preview
  recipr preview --markdown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		markdown, _ := cmd.Flags().GetBool("markdown")
		lang, _ := cmd.Flags().GetString("lang")
		return withSession(false, func(s *session) error {
			frags := s.store.SetPreview()
			script := compiler.Script(frags)
			if markdown {
				script = compiler.Markdown(script, lang)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), script)
			printWarnings(cmd.ErrOrStderr(), s.store.Warnings())
			printFindings(cmd.ErrOrStderr(), security.Scan(frags))
			return nil
		})
	},
}

func init() {
	previewCmd.Flags().BoolP("markdown", "m", false, "Wrap the script in a fenced code block")
	previewCmd.Flags().String("lang", "bat", "Code block language used with --markdown")
	rootCmd.AddCommand(previewCmd)
}
