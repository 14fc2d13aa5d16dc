package cmd

import (
	"fmt"

	"github.com/dendrascience/fastdl/fastdl"
	"github.com/dendrascience/fastdl/util"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates and returns the verify subcommand.
// It checks an output tree without modifying it.
func NewVerifyCmd() *cobra.Command {
	var (
		outDir    string
		logFormat string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check compressed artifacts in a FastDL output directory",
		Long: `Check that every .bz2 artifact in a FastDL output directory decompresses
to exactly the bytes of the uncompressed file next to it.

Nothing is written. Mismatched artifacts are listed and make the command fail;
since process never overwrites, delete a bad pair and run process again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.OutOrStdout(), logFormat, quiet)
			if err != nil {
				return err
			}
			report, err := fastdl.Verify(outDir, util.BZip2{}, logger)
			logger.Info().
				Int("checked", report.Checked).
				Int("orphans", len(report.Orphans)).
				Int("mismatched", len(report.Mismatched)).
				Msg("summary")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "completed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "outdir", "o", "", "FastDL output directory to check (required)")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "Progress output format: console or json")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print warnings and errors")

	cmd.MarkFlagRequired("outdir")

	return cmd
}
