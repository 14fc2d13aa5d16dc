package fastdl

import (
	"context"
	"errors"
	"sync"

	"github.com/dendrascience/fastdl/util"
	"golang.org/x/sync/errgroup"
)

// Summary totals a run.
type Summary struct {
	Folders int // folders fully processed
	Failed  int // folders skipped because their structure was unrecognized
	Files   int
	Written int
	Skipped int
}

// Processor runs classify, walk and materialize over a list of folders.
type Processor struct {
	cfg          Config
	walker       *Walker
	materializer *Materializer

	mu      sync.Mutex
	summary Summary
}

// NewProcessor validates cfg and builds the components it drives.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Processor{
		cfg:          cfg,
		walker:       NewWalker(cfg),
		materializer: NewMaterializer(cfg),
	}, nil
}

// Run processes folders in order. A folder whose structure is unrecognized
// is reported and skipped unless FailFast is set; every other error stops
// the run. Skipped folders still make Run return an error once all other
// folders are done.
func (p *Processor) Run(ctx context.Context, folders []string) (Summary, error) {
	p.summary = Summary{}
	var failures []error
	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return p.summary, errors.Join(append(failures, err)...)
		}
		err := p.processFolder(ctx, folder)
		if err == nil {
			p.summary.Folders++
			continue
		}
		if errors.Is(err, util.ErrStructureUnrecognized) && !p.cfg.FailFast {
			p.cfg.Logger.Error().Err(err).Str("folder", folder).Msg("skipping folder")
			p.summary.Failed++
			failures = append(failures, err)
			continue
		}
		return p.summary, errors.Join(append(failures, err)...)
	}
	return p.summary, errors.Join(failures...)
}

func (p *Processor) processFolder(ctx context.Context, folder string) error {
	root, _, err := Classify(folder, p.cfg.Logger)
	if err != nil {
		return err
	}

	if p.cfg.Jobs == 1 {
		for f, err := range p.walker.Walk(root) {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.materialize(f); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Jobs)
	var walkErr error
	for f, err := range p.walker.Walk(root) {
		if err != nil {
			walkErr = err
			break
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return p.materialize(f)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if walkErr != nil {
		return walkErr
	}
	return ctx.Err()
}

func (p *Processor) materialize(f SourceFile) error {
	res, err := p.materializer.Materialize(f)

	p.mu.Lock()
	p.summary.Files++
	p.summary.Written += res.Writes()
	p.summary.Skipped += res.Skipped
	p.mu.Unlock()

	return err
}
