package service

import (
	"context"
	"log"
	"sync"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/repository"
)

// Aggregator is the sole writer of movie aggregate fields. Every review
// mutation ends with a Recompute for the affected movie; each call reads the
// movie's full review set and writes the one-decimal mean and exact count, so
// repeated calls with no intervening mutation are idempotent.
type Aggregator struct {
	repo   *repository.Repository
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAggregator constructs an Aggregator over the shared repositories.
func NewAggregator(repo *repository.Repository, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		repo:   repo,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Recompute reads the movie's current review set and persists its average
// rating and review count. Recomputes are serialized per movie so the final
// stored aggregate always matches the final review set, regardless of how
// concurrent mutations interleave.
func (a *Aggregator) Recompute(ctx context.Context, movieID string) error {
	lock := a.movieLock(movieID)
	lock.Lock()
	defer lock.Unlock()

	agg, err := a.repo.Reviews.AggregateByMovie(ctx, movieID)
	if err != nil {
		return &AggregationError{MovieID: movieID, Err: err}
	}
	if err := a.repo.Movies.SetAggregate(ctx, movieID, agg.Average, agg.Count); err != nil {
		return &AggregationError{MovieID: movieID, Err: err}
	}
	return nil
}

// movieLock returns the mutex serializing aggregation for one movie. Entries
// are never evicted; the table grows with the catalog, which stays small
// enough for that to be a non-issue.
func (a *Aggregator) movieLock(movieID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.locks[movieID]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[movieID] = lock
	}
	return lock
}
