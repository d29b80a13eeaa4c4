package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/draft"
	"github.com/VoxDroid/recipr/internal/recorder"
	"github.com/VoxDroid/recipr/internal/utils"
)

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Manage command templates in the library",
}

var commandNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a command template",
	Long: `Create a command template. Examples:
  recipr command new --name cls --payload cls
  recipr command new --name ping --type advanced --payload 'ping -n 4 [Host]'
  recipr command new --name ping --type advanced --payload 'ping [Host]' --option 'count=-n [Count]'

Advanced payloads may reference [Placeholders]; a parameter is created for each one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		typeRaw, _ := cmd.Flags().GetString("type")
		t, err := command.ParseType(typeRaw)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		payload, _, err := readPayload(cmd, "")
		if err != nil {
			return err
		}
		optSpecs, _ := cmd.Flags().GetStringArray("option")
		opts := make([]command.Option, 0, len(optSpecs))
		for _, pair := range optSpecs {
			optName, optPayload, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid option %q: expected name=payload", pair)
			}
			opts = append(opts, newOption(optName, optPayload, nil))
		}

		return withSession(true, func(s *session) error {
			m := draft.NewManager(s.store)
			if err := m.BeginCreate(t); err != nil {
				return err
			}
			_ = m.Update(func(d *command.Command) {
				d.Name = strings.TrimSpace(name)
				d.Description = desc
				d.SetPayload(payload)
				d.Options = append(d.Options, opts...)
			})
			saved, err := m.Save()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created '%s' (%s)\n", saved.Name, saved.ID)
			return nil
		})
	},
}

var commandEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Edit a command template",
	Long: `Edit a command template. Only the flags you pass are changed; recipe items
created from the template earlier keep their own copy. Example:
  recipr command edit ping --payload 'ping -n 8 [Host]'
  recipr command edit ping --editor`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(true, func(s *session) error {
			tpl, err := findTemplate(s.store, args[0])
			if err != nil {
				return err
			}
			payload, payloadSet, err := readPayload(cmd, tpl.Payload)
			if err != nil {
				return err
			}
			m := draft.NewManager(s.store)
			if err := m.BeginEdit(tpl); err != nil {
				return err
			}
			_ = m.Update(func(d *command.Command) {
				if cmd.Flags().Changed("name") {
					name, _ := cmd.Flags().GetString("name")
					d.Name = strings.TrimSpace(name)
				}
				if cmd.Flags().Changed("description") {
					d.Description, _ = cmd.Flags().GetString("description")
				}
				if payloadSet {
					d.SetPayload(payload)
				}
			})
			saved, err := m.Save()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated '%s'\n", saved.Name)
			return nil
		})
	},
}

var commandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List command templates",
	Long:  "List command templates. Example:\n  recipr command list --search ping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, _ := cmd.Flags().GetString("search")
		return withSession(false, func(s *session) error {
			lib := s.store.Library()
			if query != "" {
				lib = s.store.SearchTemplates(query)
			}
			for _, c := range lib {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s] %s\n", c.Name, c.Type, c.ID)
			}
			return nil
		})
	},
}

var commandShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show a command template and a sample rendering",
	Long:  "Show a command template. Use --fill to try out parameter values without changing the template:\n  recipr command show ping --fill Host=10.0.0.1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fills, _ := cmd.Flags().GetStringArray("fill")
		pairs, err := parseAssignments(fills)
		if err != nil {
			return err
		}
		fill := make(map[string]string, len(pairs))
		for _, p := range pairs {
			fill[p[0]] = p[1]
		}
		return withSession(false, func(s *session) error {
			tpl, err := findTemplate(s.store, args[0])
			if err != nil {
				return err
			}
			m := draft.NewManager(s.store)
			if err := m.BeginEdit(tpl); err != nil {
				return err
			}
			defer m.Cancel()
			rendered, err := m.PreviewDraft(fill)
			if err != nil {
				return err
			}
			printTemplate(cmd.OutOrStdout(), tpl)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview:\n%s\n", rendered)
			return nil
		})
	},
}

var commandDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a command template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return withSession(true, func(s *session) error {
			tpl, err := findTemplate(s.store, args[0])
			if err != nil {
				return err
			}
			if !yes && !utils.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete '%s' permanently?", tpl.Name)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			if err := s.store.RemoveTemplate(tpl.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted '%s'\n", tpl.Name)
			return nil
		})
	},
}

var commandOptionCmd = &cobra.Command{
	Use:   "option",
	Short: "Manage the options of a command template",
}

var commandOptionAddCmd = &cobra.Command{
	Use:   "add <id|name>",
	Short: "Add an option to a command template",
	Long: `Add an option to a command template. The option payload is appended on its
own line when the option is enabled on a recipe item. Example:
  recipr command option add ping --name count --payload '-n [Count]'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		payload, _ := cmd.Flags().GetString("payload")
		params, _ := cmd.Flags().GetStringSlice("param")
		enabled, _ := cmd.Flags().GetBool("enabled")
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		return withSession(true, func(s *session) error {
			tpl, err := findTemplate(s.store, args[0])
			if err != nil {
				return err
			}
			if tpl.Option(name) != nil {
				return fmt.Errorf("option %q already exists on '%s'", name, tpl.Name)
			}
			opt := newOption(name, payload, params)
			opt.Enabled = enabled
			m := draft.NewManager(s.store)
			if err := m.BeginEdit(tpl); err != nil {
				return err
			}
			_ = m.Update(func(d *command.Command) { d.Options = append(d.Options, opt) })
			if _, err := m.Save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added option '%s' to '%s'\n", name, tpl.Name)
			return nil
		})
	},
}

// newOption builds an option whose parameters are params, or the placeholders
// of payload when params is empty.
func newOption(name, payload string, params []string) command.Option {
	if len(params) == 0 {
		params = command.ExtractPlaceholders(payload)
	}
	o := command.Option{
		ID:         command.NewID(),
		Name:       strings.TrimSpace(name),
		Payload:    payload,
		Parameters: command.ReconcileParameters(nil, params),
	}
	o.ParameterRequired = len(o.Parameters) > 0
	return o
}

// readPayload returns the payload from --payload-file, --editor or --payload,
// in that order. set is false when none of them was given.
func readPayload(cmd *cobra.Command, current string) (payload string, set bool, err error) {
	if path, _ := cmd.Flags().GetString("payload-file"); path != "" {
		if path == "-" {
			payload, err = recorder.RecordPayload(cmd.InOrStdin())
			return payload, err == nil, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("read payload: %w", err)
		}
		return strings.TrimRight(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n"), true, nil
	}
	if useEditor, _ := cmd.Flags().GetBool("editor"); useEditor {
		text, err := utils.EditText(current)
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	}
	if cmd.Flags().Changed("payload") {
		payload, _ = cmd.Flags().GetString("payload")
		return payload, true, nil
	}
	return current, false, nil
}

func printTemplate(w io.Writer, c command.Command) {
	_, _ = fmt.Fprintf(w, "Name: %s\nID: %s\nType: %s\n", c.Name, c.ID, c.Type)
	if c.Description != "" {
		_, _ = fmt.Fprintf(w, "Description: %s\n", c.Description)
	}
	_, _ = fmt.Fprintf(w, "Payload:\n%s\n", c.Payload)
	if len(c.Parameters) > 0 {
		_, _ = fmt.Fprintln(w, "Parameters:")
		for _, p := range c.Parameters {
			_, _ = fmt.Fprintf(w, "  %s = %s\n", p.Name, p.Payload)
		}
	}
	if len(c.Options) > 0 {
		_, _ = fmt.Fprintln(w, "Options:")
		for _, o := range c.Options {
			state := "off"
			if o.Enabled {
				state = "on"
			}
			_, _ = fmt.Fprintf(w, "  [%s] %s: %s", state, o.Name, o.Payload)
			if len(o.Parameters) > 0 {
				_, _ = fmt.Fprintf(w, " (%s)", command.FormatOptionParameters(o.Parameters))
			}
			_, _ = fmt.Fprintln(w)
		}
	}
}

func addPayloadFlags(c *cobra.Command) {
	c.Flags().StringP("payload", "p", "", "Command text; advanced payloads may contain [Placeholders]")
	c.Flags().String("payload-file", "", "Read the payload from a file ('-' reads lines from stdin until EOF or Ctrl+Z)")
	c.Flags().Bool("editor", false, "Edit the payload in $EDITOR")
}

func init() {
	commandNewCmd.Flags().StringP("name", "n", "", "Template name")
	commandNewCmd.Flags().StringP("type", "t", string(command.Basic), "Template type: basic or advanced")
	commandNewCmd.Flags().StringP("description", "d", "", "Template description")
	commandNewCmd.Flags().StringArray("option", nil, "Option as name=payload (repeatable)")
	addPayloadFlags(commandNewCmd)

	commandEditCmd.Flags().StringP("name", "n", "", "New template name")
	commandEditCmd.Flags().StringP("description", "d", "", "New description")
	addPayloadFlags(commandEditCmd)

	commandListCmd.Flags().StringP("search", "s", "", "Fuzzy search by name")
	commandShowCmd.Flags().StringArray("fill", nil, "Sample parameter value as name=value (repeatable)")
	commandDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	commandOptionAddCmd.Flags().String("name", "", "Option name")
	commandOptionAddCmd.Flags().StringP("payload", "p", "", "Text appended when the option is enabled")
	commandOptionAddCmd.Flags().StringSlice("param", nil, "Option parameter names (default: placeholders in the payload)")
	commandOptionAddCmd.Flags().Bool("enabled", false, "Enable the option by default")
	commandOptionCmd.AddCommand(commandOptionAddCmd)

	commandCmd.AddCommand(commandNewCmd, commandEditCmd, commandListCmd, commandShowCmd, commandDeleteCmd, commandOptionCmd)
	rootCmd.AddCommand(commandCmd)
}
