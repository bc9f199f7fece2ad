package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"bookswap/db"
	"bookswap/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var userSeq int64

// setupTestDB инициализирует тестовую базу данных SQLite в памяти
func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// У каждого соединения sqlite своя :memory: база
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))
	db.ORM = database
}

func seedUser(t *testing.T) *models.User {
	t.Helper()

	user := &models.User{
		Username: fmt.Sprintf("%s_%d", gofakeit.Username(), atomic.AddInt64(&userSeq, 1)),
		FullName: gofakeit.Name(),
		Password: "irrelevant",
	}
	require.NoError(t, db.ORM.Create(user).Error)
	return user
}

func seedBook(t *testing.T, ownerID int64) *models.Book {
	t.Helper()

	book, err := NewLibraryService().SaveBook(ownerID, BookInput{
		Title:  gofakeit.BookTitle(),
		Author: gofakeit.BookAuthor(),
	})
	require.NoError(t, err)
	return book
}

func seedOffer(t *testing.T, ownerID int64) *models.TradeOffer {
	t.Helper()

	var genre models.Genre
	require.NoError(t, db.ORM.First(&genre).Error)

	offer, err := NewTradeService().CreateOffer(ownerID, OfferInput{
		Title:       gofakeit.BookTitle(),
		Condition:   7,
		Description: gofakeit.Sentence(8),
		GenreID:     genre.ID,
	})
	require.NoError(t, err)
	return offer
}
