package fastdl

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/fastdl/util"
	"github.com/rs/zerolog"
)

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
	Suffix() string
}

// VerifyReport lists the outcome of Verify.
type VerifyReport struct {
	Checked    int
	Orphans    []string // compressed artifacts with no uncompressed sibling
	Mismatched []string // compressed artifacts that do not decompress to their sibling
}

// Verify checks every compressed artifact under outDir against its
// uncompressed sibling. It never writes. The returned error wraps
// util.ErrArtifactMismatch when any artifact is bad.
func Verify(outDir string, codec Decompressor, logger zerolog.Logger) (VerifyReport, error) {
	var report VerifyReport
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walk %s: %w", util.ErrIOFailure, path, err)
		}
		if d.IsDir() || util.IsTempArtifact(d.Name()) || !strings.HasSuffix(path, codec.Suffix()) {
			return nil
		}

		original := strings.TrimSuffix(path, codec.Suffix())
		want, err := os.ReadFile(original)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Msg("no uncompressed sibling")
			report.Orphans = append(report.Orphans, path)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read %s: %w", util.ErrIOFailure, original, err)
		}

		compressed, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: read %s: %w", util.ErrIOFailure, path, err)
		}
		report.Checked++
		got, err := codec.Decompress(compressed)
		if err != nil || !bytes.Equal(got, want) {
			logger.Error().Err(err).Str("path", path).Msg("artifact mismatch")
			report.Mismatched = append(report.Mismatched, path)
			return nil
		}
		logger.Debug().Str("path", path).Msg("ok")
		return nil
	})
	if err != nil {
		return report, err
	}
	if len(report.Mismatched) > 0 {
		return report, fmt.Errorf("%w: %d of %d artifacts", util.ErrArtifactMismatch, len(report.Mismatched), report.Checked)
	}
	return report, nil
}
