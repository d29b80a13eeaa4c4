package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/security"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Assemble the recipe from library templates",
}

var recipeAddCmd = &cobra.Command{
	Use:   "add <template>",
	Short: "Append a copy of a template to the recipe",
	Long:  "Append a copy of a template to the recipe. The copy can be filled in without touching the template. Example:\n  recipr recipe add ping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(true, func(s *session) error {
			tpl, err := findTemplate(s.store, args[0])
			if err != nil {
				return err
			}
			inst, err := s.store.AddToRecipe(tpl.ID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added '%s' at #%d (%s)\n", inst.Name, len(s.store.Recipe()), inst.ID)
			return nil
		})
	},
}

var recipeRemoveCmd = &cobra.Command{
	Use:   "remove <position|id>",
	Short: "Remove an item from the recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(true, func(s *session) error {
			inst, err := resolveInstance(s.store, args[0])
			if err != nil {
				return err
			}
			if err := s.store.RemoveFromRecipe(inst.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed '%s'\n", inst.Name)
			return nil
		})
	},
}

var recipeMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a recipe item to another position",
	Long:  "Move a recipe item to another position (1-based). Example:\n  recipr recipe move 3 1",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		return withSession(true, func(s *session) error {
			s.store.Reorder(from-1, to-1)
			printRecipe(cmd.OutOrStdout(), s.store.Recipe())
			return nil
		})
	},
}

var recipeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every item from the recipe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(true, func(s *session) error {
			s.store.ClearRecipe()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "recipe cleared")
			return nil
		})
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recipe and flag items with unfilled parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(false, func(s *session) error {
			printRecipe(cmd.OutOrStdout(), s.store.Recipe())
			printWarnings(cmd.ErrOrStderr(), s.store.Warnings())
			return nil
		})
	},
}

var recipeSetCmd = &cobra.Command{
	Use:   "set <position|id> <param>=<value>...",
	Short: "Fill parameters of a recipe item",
	Long:  "Fill parameters of a recipe item. Example:\n  recipr recipe set 1 Host=10.0.0.1",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}
		return withSession(true, func(s *session) error {
			inst, err := resolveInstance(s.store, args[0])
			if err != nil {
				return err
			}
			for _, p := range pairs {
				if err := s.store.SetParameter(inst.ID, p[0], p[1]); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated '%s'\n", inst.Name)
			return nil
		})
	},
}

var recipeOptionCmd = &cobra.Command{
	Use:   "option <position|id> <option>",
	Short: "Toggle an option of a recipe item and fill its parameters",
	Long:  "Toggle an option of a recipe item and fill its parameters. Example:\n  recipr recipe option 1 count --enable --param Count=4",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enable, _ := cmd.Flags().GetBool("enable")
		disable, _ := cmd.Flags().GetBool("disable")
		if enable && disable {
			return fmt.Errorf("--enable and --disable are mutually exclusive")
		}
		params, _ := cmd.Flags().GetStringArray("param")
		pairs, err := parseAssignments(params)
		if err != nil {
			return err
		}
		return withSession(true, func(s *session) error {
			inst, err := resolveInstance(s.store, args[0])
			if err != nil {
				return err
			}
			if enable || disable {
				if err := s.store.SetOption(inst.ID, args[1], enable); err != nil {
					return err
				}
			}
			for _, p := range pairs {
				if err := s.store.SetOptionParameter(inst.ID, args[1], p[0], p[1]); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated option '%s' of '%s'\n", args[1], inst.Name)
			return nil
		})
	},
}

func printRecipe(w io.Writer, items []command.Command) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "recipe is empty")
		return
	}
	for i, c := range items {
		mark := " "
		if !command.Ready(c) {
			mark = "!"
		}
		_, _ = fmt.Fprintf(w, "%s #%d %s (%s)\n", mark, i+1, c.Name, c.ID)
	}
}

var warnLabel = color.New(color.FgYellow, color.Bold)

func printWarnings(w io.Writer, warnings []command.Warning) {
	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", warnLabel.Sprint("warning:"), warn)
	}
}

func printFindings(w io.Writer, findings []security.Finding) {
	for _, f := range findings {
		_, _ = fmt.Fprintf(w, "%s %s\n", warnLabel.Sprint("warning:"), f)
	}
}

func init() {
	recipeOptionCmd.Flags().Bool("enable", false, "Enable the option")
	recipeOptionCmd.Flags().Bool("disable", false, "Disable the option")
	recipeOptionCmd.Flags().StringArray("param", nil, "Option parameter as name=value (repeatable)")

	recipeCmd.AddCommand(recipeAddCmd, recipeRemoveCmd, recipeMoveCmd, recipeClearCmd, recipeListCmd, recipeSetCmd, recipeOptionCmd)
	rootCmd.AddCommand(recipeCmd)
}
