package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/repository"
)

const defaultReconcileWorkers = 4

// Reconciler is the periodic corrective sweep for aggregation failures: it
// recomputes every movie's aggregate from its review set, repairing any
// staleness left behind when a post-mutation recompute failed.
type Reconciler struct {
	repo    *repository.Repository
	agg     *Aggregator
	logger  *log.Logger
	workers int
}

// NewReconciler constructs a Reconciler over the shared repositories.
func NewReconciler(repo *repository.Repository, agg *Aggregator, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{repo: repo, agg: agg, logger: logger, workers: defaultReconcileWorkers}
}

// Run recomputes aggregates for the whole catalog with bounded concurrency.
// Per-movie failures are logged and do not stop the sweep; only a cancelled
// context aborts it.
func (r *Reconciler) Run(ctx context.Context) error {
	ids, err := r.repo.Movies.ListIDs(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.agg.Recompute(ctx, id); err != nil {
				r.logger.Printf("reconcile: movie %s: %v", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.logger.Printf("reconcile: swept %d movies", len(ids))
	return nil
}
