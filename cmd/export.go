package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/exporter"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export library templates to a YAML file",
	Long: `Export library templates to a YAML file.
  recipr export --dst lib.yaml
  recipr export --dst ping.yaml --name ping`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dst, _ := cmd.Flags().GetString("dst")
		name, _ := cmd.Flags().GetString("name")
		// default destination: ./recipr-YYYY-MM-DD.yaml, suffixed to avoid overwrites
		if dst == "" {
			date := time.Now().UTC().Format("2006-01-02")
			dst = filepath.Join(".", fmt.Sprintf("recipr-%s.yaml", date))
			for si := 1; ; si++ {
				if _, err := os.Stat(dst); os.IsNotExist(err) {
					break
				}
				dst = filepath.Join(".", fmt.Sprintf("recipr-%s-%d.yaml", date, si))
			}
		}
		return withSession(false, func(s *session) error {
			cmds := s.store.Library()
			if name != "" {
				tpl, err := findTemplate(s.store, name)
				if err != nil {
					return err
				}
				cmds = []command.Command{tpl}
			}
			if err := exporter.ExportFile(dst, cmds); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d template(s) to %s\n", len(cmds), dst)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().String("dst", "", "Destination file path")
	exportCmd.Flags().String("name", "", "Export a single template by id or name")
	rootCmd.AddCommand(exportCmd)
}
