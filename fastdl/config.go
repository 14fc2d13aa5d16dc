package fastdl

import (
	"fmt"
	"os"
	"slices"

	"github.com/dendrascience/fastdl/util"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Categories is the fixed set of content directories FastDL serves.
var Categories = []string{
	"materials",
	"models",
	"sound",
	"maps",
	"particles",
	"resource",
}

// Compressor produces the compressed variant of an artifact.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Suffix() string
}

// Config carries everything the classifier, walker and materializer need.
// Components never read global state; build one Config per run.
type Config struct {
	OutDir           string   `yaml:"-"`
	Categories       []string `yaml:"categories"`
	Jobs             int      `yaml:"jobs"`
	FailFast         bool     `yaml:"fail_fast"`
	FollowSymlinks   bool     `yaml:"follow_symlinks"`
	RepairSourceCase bool     `yaml:"repair_source_case"`
	DryRun           bool     `yaml:"dry_run"`
	Level            int      `yaml:"level"`

	Logger     zerolog.Logger `yaml:"-"`
	Compressor Compressor     `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig(outDir string) Config {
	return Config{
		OutDir:           outDir,
		Categories:       slices.Clone(Categories),
		Jobs:             1,
		RepairSourceCase: true,
		Level:            9,
		Logger:           zerolog.Nop(),
	}
}

// LoadConfigFile overlays the YAML file at path onto cfg. Keys missing from
// the file keep their current values.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config %s: %w", util.ErrIOFailure, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %w", util.ErrInvalidConfig, path, err)
	}
	return nil
}

// Validate checks cfg and fills in the compressor when none was supplied.
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("%w: output directory is required", util.ErrInvalidConfig)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no content categories", util.ErrInvalidConfig)
	}
	for _, cat := range c.Categories {
		if !slices.Contains(Categories, cat) {
			return fmt.Errorf("%w: unknown category %q", util.ErrInvalidConfig, cat)
		}
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", util.ErrInvalidConfig, c.Jobs)
	}
	if c.Level < 1 || c.Level > 9 {
		return fmt.Errorf("%w: compression level must be 1-9, got %d", util.ErrInvalidConfig, c.Level)
	}
	if c.Compressor == nil {
		c.Compressor = util.BZip2{Level: c.Level}
	}
	return nil
}
