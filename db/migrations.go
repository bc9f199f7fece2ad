package db

import (
	"fmt"

	"bookswap/models"

	"gorm.io/gorm"
)

// defaultGenres - справочник жанров для формы создания предложения
var defaultGenres = []string{
	"Fiction",
	"Non-fiction",
	"Mystery",
	"Science Fiction",
	"Fantasy",
	"Romance",
	"Biography",
	"History",
	"Poetry",
	"Children",
}

// Migrate выполняет автомиграцию моделей, создает индексы, которые
// нельзя выразить тегами, и наполняет справочники.
// Используется и при старте сервера, и в тестовой инициализации БД.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.UserTokens{},
		&models.Genre{},
		&models.Book{},
		&models.TradeOffer{},
		&models.TradeRequest{},
		&models.Friendship{},
	)
	if err != nil {
		return err
	}

	if err := createTradeIndexes(database); err != nil {
		return err
	}
	if err := createFriendshipPairIndex(database); err != nil {
		return err
	}

	return seedGenres(database)
}

// createTradeIndexes создает частичный уникальный индекс: на одно
// предложение не может приходиться больше одной принятой заявки.
func createTradeIndexes(database *gorm.DB) error {
	createIndexSQL := `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_trade_requests_one_accepted
		ON trade_requests (offer_id) WHERE status = 'accepted';
	`
	if err := database.Exec(createIndexSQL).Error; err != nil {
		return fmt.Errorf("failed to create accepted-request index: %w", err)
	}
	return nil
}

// createFriendshipPairIndex создает уникальный индекс по неупорядоченной
// паре пользователей: встречные заявки, поданные одновременно, не могут
// оставить два ребра. Имена функций зависят от диалекта.
func createFriendshipPairIndex(database *gorm.DB) error {
	expr := "(LEAST(user1, user2)), (GREATEST(user1, user2))"
	if database.Dialector.Name() == "sqlite" {
		expr = "(MIN(user1, user2)), (MAX(user1, user2))"
	}
	createIndexSQL := fmt.Sprintf(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_friendships_unordered_pair
		ON friendships (%s);
	`, expr)
	if err := database.Exec(createIndexSQL).Error; err != nil {
		return fmt.Errorf("failed to create friendship pair index: %w", err)
	}
	return nil
}

func seedGenres(database *gorm.DB) error {
	for _, name := range defaultGenres {
		genre := models.Genre{Name: name}
		if err := database.Where("name = ?", name).FirstOrCreate(&genre).Error; err != nil {
			return fmt.Errorf("failed to seed genre %s: %w", name, err)
		}
	}
	return nil
}
