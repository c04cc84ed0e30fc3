package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// RunBatch processes independent CVs concurrently, one full pipeline instance
// per CV. Each run owns its own recorder, so no mutable state is shared
// between instances, and writes into its own subdirectory so timestamped
// output names cannot collide. The first failure cancels the remaining runs.
func RunBatch(ctx context.Context, cvPaths []string, base RunOptions) ([]*Result, error) {
	g, gCtx := errgroup.WithContext(ctx)
	results := make([]*Result, len(cvPaths))

	for i, cvPath := range cvPaths {
		g.Go(func() error {
			opts := base
			opts.CVPath = cvPath
			opts.OutputDir = filepath.Join(base.OutputDir, cvStem(cvPath))
			if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory for %s: %w", cvPath, err)
			}
			result, err := Run(gCtx, opts)
			if err != nil {
				return fmt.Errorf("pipeline failed for %s: %w", cvPath, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// cvStem returns the CV file name without its extension.
func cvStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
