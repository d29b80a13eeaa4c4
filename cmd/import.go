package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import templates from a YAML file",
	Long: `Import templates from a YAML file written by 'recipr export'.
  recipr import lib.yaml
  recipr import lib.yaml --on-conflict rename`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policyRaw, _ := cmd.Flags().GetString("on-conflict")
		policy, err := importer.ParsePolicy(policyRaw)
		if err != nil {
			return err
		}
		doc, err := importer.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withSession(true, func(s *session) error {
			sum, err := importer.Merge(s.store, doc, policy)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d, overwrote %d, skipped %d\n", len(sum.Added), len(sum.Overwritten), len(sum.Skipped))
			for _, n := range sum.Skipped {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped '%s': name already exists\n", n)
			}
			return nil
		})
	},
}

func init() {
	importCmd.Flags().String("on-conflict", string(importer.Skip), "What to do when a name exists: skip, overwrite or rename")
	rootCmd.AddCommand(importCmd)
}
