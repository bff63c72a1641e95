package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamestore/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) createUser(email string) model.UserID {
	id, err := s.storage.CreateUser(s.ctx, &model.User{Name: "alice", Email: email, PasswordHash: "hash"})
	s.Require().NoError(err)
	return id
}

func (s *StorageSuite) saveGame(name string, price float64) model.GameID {
	id, err := s.storage.SaveGame(s.ctx, &model.Game{Name: name, Price: price})
	s.Require().NoError(err)
	return id
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	id := s.createUser("a@x.com")

	byID, err := s.storage.GetUser(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("a@x.com", byID.Email)

	byEmail, err := s.storage.GetUserByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal(id, byEmail.ID)
}

func (s *StorageSuite) TestCreateUserAssignsIncreasingIDs() {
	first := s.createUser("a@x.com")
	second := s.createUser("b@x.com")
	s.Greater(second, first)
}

func (s *StorageSuite) TestCreateUserDuplicateEmail() {
	s.createUser("a@x.com")

	_, err := s.storage.CreateUser(s.ctx, &model.User{Name: "bob", Email: "a@x.com", PasswordHash: "hash"})
	s.ErrorIs(err, model.ErrDuplicateEmail)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByEmail(s.ctx, "nobody@x.com")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUser(s.ctx, 42)
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Catalog tests

func (s *StorageSuite) TestListGamesOrderedByName() {
	s.saveGame("Zelda", 59.99)
	s.saveGame("Celeste", 19.99)
	s.saveGame("Hades", 24.99)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal("Celeste", games[0].Name)
	s.Equal("Hades", games[1].Name)
	s.Equal("Zelda", games[2].Name)
}

func (s *StorageSuite) TestListGamesEmpty() {
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestGetGameDetailJoinsNames() {
	pubID, _ := s.storage.SavePublisher(s.ctx, &model.Publisher{Name: "Annapurna"})
	devID, _ := s.storage.SaveDeveloper(s.ctx, &model.Developer{Studio: "Mobius"})
	release := time.Date(2019, 5, 28, 0, 0, 0, 0, time.UTC)
	gameID, _ := s.storage.SaveGame(s.ctx, &model.Game{
		Name:        "Outer Wilds",
		ReleaseDate: &release,
		Price:       24.99,
		AgeRating:   "E10+",
		PublisherID: &pubID,
		DeveloperID: &devID,
	})

	detail, err := s.storage.GetGameDetail(s.ctx, gameID)
	s.Require().NoError(err)
	s.Equal("Annapurna", detail.PublisherOrNA())
	s.Equal("Mobius", detail.DeveloperOrNA())
	s.Equal("2019-05-28", detail.ReleaseDateOrNA())
}

func (s *StorageSuite) TestGetGameDetailWithoutPublisherOrDeveloper() {
	gameID := s.saveGame("Indie Thing", 4.99)

	detail, err := s.storage.GetGameDetail(s.ctx, gameID)
	s.Require().NoError(err)
	s.Nil(detail.PublisherName)
	s.Nil(detail.DeveloperName)
	s.Equal(model.NotAvailable, detail.PublisherOrNA())
}

func (s *StorageSuite) TestGetGameDetailNotFound() {
	_, err := s.storage.GetGameDetail(s.ctx, 99)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGamesByPublisherAndDeveloper() {
	pubID, _ := s.storage.SavePublisher(s.ctx, &model.Publisher{Name: "Nintendo"})
	devID, _ := s.storage.SaveDeveloper(s.ctx, &model.Developer{Studio: "Retro"})
	_, _ = s.storage.SaveGame(s.ctx, &model.Game{Name: "Metroid", PublisherID: &pubID, DeveloperID: &devID})
	_, _ = s.storage.SaveGame(s.ctx, &model.Game{Name: "Mario", PublisherID: &pubID})
	s.saveGame("Other", 1)

	byPub, err := s.storage.ListGamesByPublisher(s.ctx, pubID)
	s.Require().NoError(err)
	s.Len(byPub, 2)
	s.Equal("Mario", byPub[0].Name)

	byDev, err := s.storage.ListGamesByDeveloper(s.ctx, devID)
	s.Require().NoError(err)
	s.Require().Len(byDev, 1)
	s.Equal("Metroid", byDev[0].Name)
}

func (s *StorageSuite) TestSearchGamesIsCaseInsensitive() {
	s.saveGame("Hollow Knight", 14.99)
	s.saveGame("Knights of Pen", 9.99)
	s.saveGame("Celeste", 19.99)

	games, err := s.storage.SearchGames(s.ctx, "KNIGHT")
	s.Require().NoError(err)
	s.Len(games, 2)
}

// Library tests

func (s *StorageSuite) TestAddLibraryEntryAndList() {
	userID := s.createUser("a@x.com")
	gameID := s.saveGame("Celeste", 19.99)
	purchased := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	err := s.storage.AddLibraryEntry(s.ctx, model.LibraryEntry{UserID: userID, GameID: gameID, PurchasedAt: purchased})
	s.Require().NoError(err)

	items, err := s.storage.ListLibrary(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Celeste", items[0].Game.Name)
	s.Equal(purchased, items[0].PurchasedAt)
}

func (s *StorageSuite) TestAddLibraryEntryTwiceIsAlreadyOwned() {
	userID := s.createUser("a@x.com")
	gameID := s.saveGame("Celeste", 19.99)
	entry := model.LibraryEntry{UserID: userID, GameID: gameID, PurchasedAt: time.Now()}

	s.Require().NoError(s.storage.AddLibraryEntry(s.ctx, entry))
	s.ErrorIs(s.storage.AddLibraryEntry(s.ctx, entry), model.ErrAlreadyOwned)

	items, err := s.storage.ListLibrary(s.ctx, userID)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *StorageSuite) TestAddLibraryEntryUnknownGame() {
	userID := s.createUser("a@x.com")

	err := s.storage.AddLibraryEntry(s.ctx, model.LibraryEntry{UserID: userID, GameID: 7, PurchasedAt: time.Now()})
	s.ErrorIs(err, model.ErrGameNotFound)
}
