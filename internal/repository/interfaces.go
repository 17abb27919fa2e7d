package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hailem/recallbox/internal/models"
)

// ErrStaleCard is returned when a review-state update loses an optimistic
// concurrency check, i.e. another submission advanced the card first.
var ErrStaleCard = errors.New("card review state changed concurrently")

// UserRepository handles user account data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	UpdateStudyStreak(ctx context.Context, id string, streak int, lastStudyDate *time.Time) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// FolderRepository handles folder data access
type FolderRepository interface {
	Insert(ctx context.Context, folder models.Folder) (int64, error)
	GetOwned(ctx context.Context, id int64, userID string) (*models.Folder, error)
	ListSummaries(ctx context.Context, userID string) ([]models.FolderSummary, error)
	Update(ctx context.Context, folder models.Folder) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, userID, name string, excludeID int64) (bool, error)
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	GetOwned(ctx context.Context, id int64, userID string) (*models.Deck, error)
	ListByFolder(ctx context.Context, folderID int64) ([]models.DeckSummary, error)
	Update(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, folderID int64, name string, excludeID int64) (bool, error)
}

// CardRepository handles card data access, including the due-query and the
// transactional review-state update.
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	GetOwned(ctx context.Context, id int64, userID string) (*models.Card, error)
	ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	Update(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id int64) error
	QuestionExists(ctx context.Context, deckID int64, question string, excludeID int64) (bool, error)

	// DueCards returns cards due for review in the given scope at now,
	// ordered by next_review_at ascending with NULLs first.
	DueCards(ctx context.Context, scope models.DueScope, now time.Time, limit int) ([]models.Card, error)
	// CountDueBetween counts non-mastered cards whose next review falls in
	// (after, until]. A nil after means "any time up to until", and a NULL
	// next_review_at only matches when after is nil.
	CountDueBetween(ctx context.Context, userID string, after *time.Time, until time.Time) (int, error)
	CountByMastery(ctx context.Context, scope models.DueScope, mastered bool) (int, error)

	// SubmitReview persists one review event and the card's advanced state
	// in a single transaction. The card row is matched on its previous
	// review count; ErrStaleCard is returned when the match fails.
	SubmitReview(ctx context.Context, card models.Card, prevReviewCount int, review models.Review) (int64, error)
}

// ReviewRepository handles the append-only review log and the aggregates
// derived from it.
type ReviewRepository interface {
	HistoryForCard(ctx context.Context, cardID int64, userID string, limit int) ([]models.Review, error)
	AverageScore(ctx context.Context, scope models.DueScope) (float64, error)
	CountForUser(ctx context.Context, userID string) (int, error)
	// ScoreSeries returns the chronological score history for one deck.
	ScoreSeries(ctx context.Context, deckID int64) ([]models.ScorePoint, error)
	// ScoreSeriesByDeck returns score histories keyed by deck name for all
	// decks in a folder.
	ScoreSeriesByDeck(ctx context.Context, folderID int64) (map[string][]models.ScorePoint, error)
	// ScoreSeriesByFolder returns score histories keyed by folder name for
	// all of a user's folders.
	ScoreSeriesByFolder(ctx context.Context, userID string) (map[string][]models.ScorePoint, error)
	// ReviewDays returns the distinct UTC dates with at least one review,
	// most recent first, for streak computation.
	ReviewDays(ctx context.Context, scope models.DueScope) ([]time.Time, error)
}

// ConversationRepository handles stored AI chat exchanges
type ConversationRepository interface {
	Insert(ctx context.Context, conv models.Conversation) (int64, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
}

// StatsRepository handles the per-user stats cache and the aggregate
// queries backing AI chat context.
type StatsRepository interface {
	GetCache(ctx context.Context, userID string) (*models.UserStatsCache, error)
	UpsertCache(ctx context.Context, cache models.UserStatsCache) error
	// StrugglingCards returns cards whose average over their three most
	// recent reviews falls below the given score, lowest first.
	StrugglingCards(ctx context.Context, userID string, belowScore float64, limit int) ([]models.StrugglingCard, error)
	// MasteredDecks returns names of non-empty decks whose cards are all
	// fully reviewed.
	MasteredDecks(ctx context.Context, userID string) ([]string, error)
	// KnowledgeGaps returns decks ranked by lowest mastery completion rate.
	KnowledgeGaps(ctx context.Context, userID string, limit int) ([]models.KnowledgeGap, error)
	CountFolders(ctx context.Context, userID string) (int, error)
	CountDecks(ctx context.Context, userID string) (int, error)
	CountCards(ctx context.Context, userID string) (int, error)
}
