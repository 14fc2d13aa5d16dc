package cmd

import (
	"errors"

	"github.com/dendrascience/fastdl/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the fastdl CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fastdl",
		Short: "fastdl - prepare game content directories for FastDL hosting",
		Long: `fastdl mirrors addon and gamemode content into a FastDL output directory.

Every content file gets a lowercase-named copy and a bzip2-compressed copy,
ready to be served over HTTP for client auto-download. Existing output files
are never overwritten, so runs are incremental.

Use subcommands to perform different operations:
  - process: Build or update a FastDL output directory
  - verify: Check compressed artifacts in an output directory`,
		Version:       version.GetFullVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Help()
			return errors.New("a command is required")
		},
	}

	groupContent := "content"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupContent,
		Title: "Content Commands",
	})

	processCmd := NewProcessCmd()
	verifyCmd := NewVerifyCmd()

	processCmd.GroupID = groupContent
	verifyCmd.GroupID = groupContent

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(verifyCmd)

	return rootCmd
}
