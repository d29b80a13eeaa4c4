package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/compiler"
	"github.com/VoxDroid/recipr/internal/config"
	"github.com/VoxDroid/recipr/internal/publish"
	"github.com/VoxDroid/recipr/internal/security"
	"github.com/VoxDroid/recipr/internal/utils"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the compiled recipe as a script file",
	Long: `Publish the compiled recipe as a script file under a directory name.
When the file already exists you are asked before it is overwritten; when
the target reports another failure you are offered a retry.
  recipr publish --dir tools --file netcheck.bat
  recipr publish --dir tools --file netcheck.bat --yes
  recipr publish --dir tools --file netcheck.bat --remote http://host:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		file, _ := cmd.Flags().GetString("file")
		yes, _ := cmd.Flags().GetBool("yes")
		remote, _ := cmd.Flags().GetString("remote")
		if remote == "" {
			remote = config.RemoteURL()
		}
		// one buffered reader serves every prompt of this invocation
		in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()
		if dir == "" {
			dir = utils.Prompt(in, out, "Directory name")
		}
		if file == "" {
			file = utils.Prompt(in, out, "File name")
		}

		pub, err := newPublisher(remote)
		if err != nil {
			return err
		}
		return withSession(false, func(s *session) error {
			frags := s.store.SetPreview()
			lines := compiler.Lines(frags)
			printWarnings(cmd.ErrOrStderr(), s.store.Warnings())
			printFindings(cmd.ErrOrStderr(), security.Scan(frags))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c := publish.NewCoordinator(pub)
			_, err := c.Publish(ctx, dir, file, lines)
			for err != nil {
				var conflict *publish.ConflictError
				switch {
				case errors.As(err, &conflict):
					msg := fmt.Sprintf("'%s' already exists in '%s'. Overwrite?", conflict.FileName, conflict.DirectoryName)
					if !yes && !utils.Confirm(in, out, msg) {
						c.Abandon()
						_, _ = fmt.Fprintln(out, "aborted")
						return nil
					}
					_, err = c.ConfirmOverwrite(ctx)
				case c.State() == publish.Failed && utils.Confirm(in, out, fmt.Sprintf("Publish failed: %v. Retry?", c.Err())):
					_, err = c.Retry(ctx)
				default:
					return err
				}
			}
			_, _ = fmt.Fprintf(out, "published %s\n", c.Result().FilePath)
			return nil
		})
	},
}

// newPublisher returns an HTTP publisher for remote, or a filesystem
// publisher rooted at the configured publish root.
func newPublisher(remote string) (publish.Publisher, error) {
	if remote != "" {
		return publish.NewHTTPPublisher(remote, nil), nil
	}
	root, err := config.PublishRoot()
	if err != nil {
		return nil, err
	}
	return publish.NewOsPublisher(root), nil
}

func init() {
	publishCmd.Flags().String("dir", "", "Directory name the script is published under")
	publishCmd.Flags().String("file", "", "Script file name")
	publishCmd.Flags().BoolP("yes", "y", false, "Overwrite an existing file without asking")
	publishCmd.Flags().String("remote", "", "Base URL of a remote recipr server (default $RECIPR_REMOTE)")
	rootCmd.AddCommand(publishCmd)
}
