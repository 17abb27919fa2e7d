package jobs

import (
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	userRepo   repository.UserRepository
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	statsRepo  repository.StatsRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	pool *worker.Pool,
	userRepo repository.UserRepository,
	cardRepo repository.CardRepository,
	reviewRepo repository.ReviewRepository,
	statsRepo repository.StatsRepository,
) JobQueue {
	return &WorkerQueue{
		pool:       pool,
		userRepo:   userRepo,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		statsRepo:  statsRepo,
	}
}

// EnqueueStatsRefresh schedules a recompute of the user's cached stats.
// A full queue drops the job; the next submission catches the cache up.
func (q *WorkerQueue) EnqueueStatsRefresh(userID string) error {
	q.pool.TrySubmit(&worker.RefreshStatsJob{
		UserID:     userID,
		UserRepo:   q.userRepo,
		CardRepo:   q.cardRepo,
		ReviewRepo: q.reviewRepo,
		StatsRepo:  q.statsRepo,
	})
	return nil
}
