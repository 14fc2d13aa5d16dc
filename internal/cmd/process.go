package cmd

import (
	"context"
	"fmt"

	"github.com/dendrascience/fastdl/fastdl"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type processOptions struct {
	outDir         string
	configPath     string
	jobs           int
	level          int
	failFast       bool
	followSymlinks bool
	noRepair       bool
	dryRun         bool
	logFormat      string
	quiet          bool
}

// NewProcessCmd creates and returns the process subcommand.
// It mirrors addon and gamemode content folders into a FastDL output tree.
func NewProcessCmd() *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "process <folders...>",
		Short: "Process addon and gamemode directories for FastDL",
		Long: `Process addon and gamemode directories for FastDL.

Each folder is classified as an addon (it contains addon.json) or a gamemode
(it contains a content/ directory). Every file under materials, models, sound,
maps, particles and resource is copied to the output directory with a
lowercase path, next to a bzip2-compressed copy. Files already present in the
output directory are left alone, so re-runs only add what is new.

Source files whose paths are not lowercase get a lowercase copy written next
to them in the input folder. Pass --no-repair to leave the input untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "outdir", "o", "", "Output directory for FastDL generated files (required)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 1, "Number of files to process at once")
	cmd.Flags().IntVar(&opts.level, "level", 9, "bzip2 compression level (1-9)")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first folder with an unrecognized structure")
	cmd.Flags().BoolVar(&opts.followSymlinks, "follow-symlinks", false, "Follow symbolic links inside content directories")
	cmd.Flags().BoolVar(&opts.noRepair, "no-repair", false, "Do not write lowercase copies of mixed-case source files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without making changes")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "Progress output format: console or json")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print warnings and errors")

	cmd.MarkFlagRequired("outdir")

	return cmd
}

func runProcess(cmd *cobra.Command, folders []string, opts processOptions) error {
	logger, err := newLogger(cmd.OutOrStdout(), opts.logFormat, opts.quiet)
	if err != nil {
		return err
	}

	cfg := fastdl.DefaultConfig(opts.outDir)
	if opts.configPath != "" {
		if err := fastdl.LoadConfigFile(opts.configPath, &cfg); err != nil {
			return err
		}
	}
	applyFlags(cmd.Flags(), opts, &cfg)
	cfg.Logger = logger

	if cfg.RepairSourceCase && !cfg.DryRun {
		logger.Warn().Msg("mixed-case source files will get lowercase copies in their input folders")
	}

	p, err := fastdl.NewProcessor(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	summary, err := p.Run(ctx, folders)
	logger.Info().
		Int("folders", summary.Folders).
		Int("failed", summary.Failed).
		Int("files", summary.Files).
		Int("written", summary.Written).
		Int("skipped", summary.Skipped).
		Msg("summary")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "completed")
	return nil
}

// applyFlags copies explicitly set flags over cfg, so the command line wins
// over the config file.
func applyFlags(flags *pflag.FlagSet, opts processOptions, cfg *fastdl.Config) {
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("level") {
		cfg.Level = opts.level
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = opts.failFast
	}
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks = opts.followSymlinks
	}
	if flags.Changed("no-repair") {
		cfg.RepairSourceCase = !opts.noRepair
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
}
