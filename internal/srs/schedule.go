package srs

import (
	"time"

	"github.com/hailem/recallbox/internal/models"
)

// MasteryThreshold is the number of completed review cycles after which a
// card is mastered and leaves the review rotation.
const MasteryThreshold = 3

// reviewIntervals holds the gap, in days, before the next review after the
// Nth completed review. A new card gets its first review after one day,
// then a week, then three weeks.
var reviewIntervals = [MasteryThreshold]int{1, 7, 21}

// Stage is the explicit mastery state of a card, derived from its review
// count.
type Stage int

const (
	StageLearning Stage = iota
	StageMastered
)

func (s Stage) String() string {
	if s == StageMastered {
		return "Mastered"
	}
	return "Learning"
}

// StageOf returns the mastery stage for a review count.
func StageOf(reviewCount int) Stage {
	if reviewCount >= MasteryThreshold {
		return StageMastered
	}
	return StageLearning
}

// StageLabel returns the display label for a review count, matching the
// progress copy shown to users.
func StageLabel(reviewCount int) string {
	switch reviewCount {
	case 0:
		return "New"
	case 1:
		return "First Review"
	case 2:
		return "Second Review"
	default:
		if reviewCount >= MasteryThreshold {
			return "Fully Reviewed"
		}
		return "Unknown"
	}
}

// IsDue reports whether a card is eligible for review at the given time.
// Mastered cards are never due; an unset next review time means due
// immediately. The time boundary is inclusive.
func IsDue(card models.Card, now time.Time) bool {
	if card.IsFullyReviewed {
		return false
	}
	if card.NextReviewAt == nil {
		return true
	}
	return !card.NextReviewAt.After(now)
}

// ApplyReview advances a card's mastery state for one submitted review and
// returns the updated copy. The review count increments on every submission
// regardless of score; low scores do not reset progress. Once the count
// reaches MasteryThreshold the card is marked fully reviewed and drops out
// of scheduling. Otherwise the next review is anchored at the review time,
// which keeps next_review_at from falling behind last_reviewed_at even for
// cards reviewed late.
func ApplyReview(card models.Card, now time.Time) models.Card {
	card.ReviewCount++
	reviewedAt := now
	card.LastReviewedAt = &reviewedAt

	if card.ReviewCount >= MasteryThreshold {
		card.IsFullyReviewed = true
		card.NextReviewAt = nil
		return card
	}

	next := now.AddDate(0, 0, reviewIntervals[card.ReviewCount])
	card.NextReviewAt = &next
	return card
}

// ReviewsRemaining returns how many review cycles are left before mastery,
// never negative.
func ReviewsRemaining(reviewCount int) int {
	if remaining := MasteryThreshold - reviewCount; remaining > 0 {
		return remaining
	}
	return 0
}

// FirstReviewAt returns when a freshly created card should first come due.
func FirstReviewAt(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 0, reviewIntervals[0])
}
