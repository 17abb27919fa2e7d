package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/repository/sqlite"
	"github.com/hailem/recallbox/internal/testutil"
)

type FolderRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FolderRepository
}

func (s *FolderRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFolderRepository(s.db)
}

func (s *FolderRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FolderRepositorySuite) TestInsertGetUpdateDelete() {
	ctx := context.Background()
	userID := testutil.SeedUser(s.T(), s.db, "user-1", "alice")

	id, err := s.repo.Insert(ctx, models.Folder{
		UserID:      userID,
		Name:        "Languages",
		Description: "Vocabulary folders",
	})
	s.Require().NoError(err)

	folder, err := s.repo.GetOwned(ctx, id, userID)
	s.Require().NoError(err)
	s.Require().NotNil(folder)
	s.Assert().Equal("Languages", folder.Name)

	folder.Name = "World Languages"
	s.Require().NoError(s.repo.Update(ctx, *folder))

	folder, err = s.repo.GetOwned(ctx, id, userID)
	s.Require().NoError(err)
	s.Assert().Equal("World Languages", folder.Name)

	s.Require().NoError(s.repo.Delete(ctx, id))
	folder, err = s.repo.GetOwned(ctx, id, userID)
	s.Require().NoError(err)
	s.Assert().Nil(folder)
}

func (s *FolderRepositorySuite) TestGetOwnedScopedToUser() {
	ctx := context.Background()
	alice := testutil.SeedUser(s.T(), s.db, "user-1", "alice")
	bob := testutil.SeedUser(s.T(), s.db, "user-2", "bob")

	id := testutil.SeedFolder(s.T(), s.db, alice, "Private")

	folder, err := s.repo.GetOwned(ctx, id, bob)
	s.Require().NoError(err)
	s.Assert().Nil(folder)
}

func (s *FolderRepositorySuite) TestListSummariesCounts() {
	ctx := context.Background()
	userID := testutil.SeedUser(s.T(), s.db, "user-1", "alice")

	folderID := testutil.SeedFolder(s.T(), s.db, userID, "Science")
	testutil.SeedFolder(s.T(), s.db, userID, "Empty")

	deckID := testutil.SeedDeck(s.T(), s.db, folderID, "Physics")
	testutil.SeedDeck(s.T(), s.db, folderID, "Chemistry")
	testutil.SeedCard(s.T(), s.db, deckID, "q1", 0, false, nil)
	testutil.SeedCard(s.T(), s.db, deckID, "q2", 0, false, nil)

	summaries, err := s.repo.ListSummaries(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)

	byName := map[string]models.FolderSummary{}
	for _, f := range summaries {
		byName[f.Name] = f
	}
	s.Assert().Equal(2, byName["Science"].DeckCount)
	s.Assert().Equal(2, byName["Science"].CardCount)
	s.Assert().Equal(0, byName["Empty"].DeckCount)
	s.Assert().Equal(0, byName["Empty"].CardCount)
}

func (s *FolderRepositorySuite) TestNameExistsCaseInsensitive() {
	ctx := context.Background()
	userID := testutil.SeedUser(s.T(), s.db, "user-1", "alice")
	id := testutil.SeedFolder(s.T(), s.db, userID, "Math")

	exists, err := s.repo.NameExists(ctx, userID, "math", 0)
	s.Require().NoError(err)
	s.Assert().True(exists)

	exists, err = s.repo.NameExists(ctx, userID, "math", id)
	s.Require().NoError(err)
	s.Assert().False(exists)

	other := testutil.SeedUser(s.T(), s.db, "user-2", "bob")
	exists, err = s.repo.NameExists(ctx, other, "Math", 0)
	s.Require().NoError(err)
	s.Assert().False(exists)
}

func (s *FolderRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	userID := testutil.SeedUser(s.T(), s.db, "user-1", "alice")
	folderID := testutil.SeedFolder(s.T(), s.db, userID, "Science")
	deckID := testutil.SeedDeck(s.T(), s.db, folderID, "Physics")
	testutil.SeedCard(s.T(), s.db, deckID, "q", 0, false, nil)

	s.Require().NoError(s.repo.Delete(ctx, folderID))

	var count int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&count))
	s.Assert().Zero(count)
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&count))
	s.Assert().Zero(count)
}

func TestFolderRepositorySuite(t *testing.T) {
	suite.Run(t, new(FolderRepositorySuite))
}
