package fastdl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dendrascience/fastdl/util"
	"github.com/rs/zerolog"
)

// Result reports what Materialize did for one source file.
type Result struct {
	Copied     bool // normalized original written
	Compressed bool // compressed variant written
	Repaired   bool // lowercase sibling written into the source tree
	Skipped    int  // artifacts that already existed
}

// Writes counts the files this call created.
func (r Result) Writes() int {
	n := 0
	for _, wrote := range []bool{r.Copied, r.Compressed, r.Repaired} {
		if wrote {
			n++
		}
	}
	return n
}

// Materializer produces the output artifacts of a source file.
type Materializer struct {
	OutDir           string
	Compressor       Compressor
	RepairSourceCase bool
	DryRun           bool
	Logger           zerolog.Logger
}

// NewMaterializer returns a materializer for cfg. cfg must have been validated.
func NewMaterializer(cfg Config) *Materializer {
	return &Materializer{
		OutDir:           cfg.OutDir,
		Compressor:       cfg.Compressor,
		RepairSourceCase: cfg.RepairSourceCase,
		DryRun:           cfg.DryRun,
		Logger:           cfg.Logger,
	}
}

// Targets returns the normalized original and compressed artifact paths for f.
func (m *Materializer) Targets(f SourceFile) (string, string) {
	out := filepath.Join(m.OutDir, f.Category, util.LowerPath(f.Rel))
	return out, out + m.Compressor.Suffix()
}

// Materialize writes whichever of the artifacts for f are missing.
// Existing artifacts are never rewritten, whatever their content.
//
// When the source path is not all lowercase and RepairSourceCase is set, a
// lowercase copy of the source is also written next to it inside the input
// tree. This is the only place fastdl writes to its input.
func (m *Materializer) Materialize(f SourceFile) (Result, error) {
	var res Result
	src := f.Path()
	out, compressedOut := m.Targets(f)

	needOut, err := m.missing(out, &res)
	if err != nil {
		return res, err
	}
	needCompressed, err := m.missing(compressedOut, &res)
	if err != nil {
		return res, err
	}

	var lowerSrc string
	needRepair := false
	if m.RepairSourceCase && !util.IsLowerPath(filepath.Join(f.CategoryDir(), f.Rel)) {
		lowerSrc = filepath.Join(f.Root, f.Category, util.LowerPath(f.Rel))
		exists, err := util.Exists(lowerSrc)
		if err != nil {
			return res, err
		}
		if exists {
			m.Logger.Debug().Str("path", lowerSrc).Msg("lowercase source exists")
		}
		needRepair = !exists
	}

	if !needOut && !needCompressed && !needRepair {
		return res, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return res, fmt.Errorf("%w: read %s: %w", util.ErrIOFailure, src, err)
	}

	if needOut {
		res.Copied, err = m.publish(src, out, data, "copied", &res)
		if err != nil {
			return res, err
		}
	}

	if needCompressed {
		compressed, err := m.Compressor.Compress(data)
		if err != nil {
			return res, fmt.Errorf("compress %s: %w", src, err)
		}
		res.Compressed, err = m.publish(src, compressedOut, compressed, "compressed", &res)
		if err != nil {
			return res, err
		}
	}

	if needRepair {
		res.Repaired, err = m.publish(src, lowerSrc, data, "repaired source case", &res)
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

func (m *Materializer) missing(path string, res *Result) (bool, error) {
	exists, err := util.Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		m.Logger.Info().Str("path", path).Msg("exists, skipping")
		res.Skipped++
	}
	return !exists, nil
}

func (m *Materializer) publish(src, dst string, data []byte, msg string, res *Result) (bool, error) {
	if m.DryRun {
		m.Logger.Info().Str("src", src).Str("dst", dst).Msg("would write")
		return false, nil
	}
	created, err := util.PublishExclusive(dst, data)
	if err != nil {
		return false, err
	}
	if !created {
		m.Logger.Info().Str("path", dst).Msg("exists, skipping")
		res.Skipped++
		return false, nil
	}
	m.Logger.Info().Str("src", src).Str("dst", dst).Msg(msg)
	return true, nil
}
