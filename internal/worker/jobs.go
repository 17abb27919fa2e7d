package worker

import (
	"context"
	"time"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/srs"
)

// RefreshStatsJob recomputes a user's cached aggregates after a review
// submission. It also keeps the user's stored streak in sync so that
// profile reads stay cheap.
type RefreshStatsJob struct {
	UserID     string
	UserRepo   repository.UserRepository
	CardRepo   repository.CardRepository
	ReviewRepo repository.ReviewRepository
	StatsRepo  repository.StatsRepository
	Now        func() time.Time
}

func (j *RefreshStatsJob) Name() string { return "refresh_stats" }

func (j *RefreshStatsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)

	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	scope := models.DueScope{UserID: j.UserID}

	avg, err := j.ReviewRepo.AverageScore(ctx, scope)
	if err != nil {
		return err
	}
	mastered, err := j.CardRepo.CountByMastery(ctx, scope, true)
	if err != nil {
		return err
	}
	total, err := j.ReviewRepo.CountForUser(ctx, j.UserID)
	if err != nil {
		return err
	}
	days, err := j.ReviewRepo.ReviewDays(ctx, scope)
	if err != nil {
		return err
	}

	at := now().UTC()
	streak := srs.StreakFromDays(days, at)

	if err := j.StatsRepo.UpsertCache(ctx, models.UserStatsCache{
		UserID:             j.UserID,
		AverageScore:       avg,
		FullyReviewedCards: mastered,
		TotalReviews:       total,
		StudyStreak:        streak,
		RefreshedAt:        at,
	}); err != nil {
		return err
	}

	var lastStudy *time.Time
	if len(days) > 0 {
		lastStudy = &days[0]
	}
	if err := j.UserRepo.UpdateStudyStreak(ctx, j.UserID, streak, lastStudy); err != nil {
		return err
	}

	log.Debug("stats refreshed: avg=%.1f, mastered=%d, streak=%d", avg, mastered, streak)
	return nil
}
