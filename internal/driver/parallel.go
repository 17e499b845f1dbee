package driver

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InspectAll runs Inspect over jobs in parallel. Results keep the order of
// jobs. The first failure cancels the remaining jobs and is returned alone.
func InspectAll(ctx context.Context, jobs []Job, opts Options) ([]*Result, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	for _, job := range jobs {
		opts.emit(job.TracePath, StageDecode, StatusQueued, nil)
	}

	results := make([]*Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(jobs)))

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := Inspect(gctx, job, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	opts.logger().Debug("traces inspected", zap.Int("count", len(results)), zap.Int("workers", workers))
	return results, nil
}
