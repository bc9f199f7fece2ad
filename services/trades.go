package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookswap/db"
	"bookswap/models"

	"gorm.io/gorm"
)

// TradeService - жизненный цикл предложений и заявок на обмен.
// Все мутации принимают ID аутентифицированного вызывающего явно.
type TradeService struct {
	library *LibraryService
}

func NewTradeService() *TradeService {
	return &TradeService{
		library: NewLibraryService(),
	}
}

type OfferInput struct {
	Title       string `json:"title"`
	Condition   int    `json:"condition"`
	Edition     string `json:"edition"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	GenreID     int64  `json:"genre_id"`
}

// CreateOffer - выставить книгу на обмен
func (s *TradeService) CreateOffer(ownerID int64, input OfferInput) (*models.TradeOffer, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if input.Title == "" || input.Description == "" || input.GenreID == 0 {
		return nil, fmt.Errorf("%w: title, description and genre are required", ErrValidation)
	}
	if input.Condition < 1 || input.Condition > 10 {
		return nil, fmt.Errorf("%w: condition must be between 1 and 10", ErrValidation)
	}

	var genreCount int64
	err := db.GetReadOnlyDB(context.Background()).
		Model(&models.Genre{}).
		Where("id = ?", input.GenreID).
		Count(&genreCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check genre: %w", err)
	}
	if genreCount == 0 {
		return nil, fmt.Errorf("%w: genre %d", ErrNotFound, input.GenreID)
	}

	now := time.Now()
	offer := models.TradeOffer{
		UserID:      ownerID,
		Title:       input.Title,
		Condition:   input.Condition,
		Edition:     input.Edition,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		GenreID:     input.GenreID,
		Status:      models.OfferStatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.GetWriteDB(context.Background()).Create(&offer).Error; err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return &offer, nil
}

// RequestTrade - предложить свою книгу в обмен на выставленную.
// Недоступное предложение для заявителя неотличимо от отсутствующего.
func (s *TradeService) RequestTrade(requesterID, offerID, offeredBookID int64) (*models.TradeRequest, error) {
	if requesterID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var offer models.TradeOffer
	err := db.GetReadOnlyDB(context.Background()).First(&offer, offerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: offer %d", ErrNotFound, offerID)
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer.Status != models.OfferStatusAvailable {
		return nil, fmt.Errorf("%w: offer %d", ErrNotFound, offerID)
	}
	if offer.UserID == requesterID {
		return nil, ErrSelfTrade
	}

	book, err := s.library.GetBook(offeredBookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != requesterID {
		return nil, fmt.Errorf("%w: book %d", ErrNotOwner, offeredBookID)
	}

	// Повторная заявка того же пользователя на то же предложение
	var existingCount int64
	err = db.GetReadOnlyDB(context.Background()).
		Model(&models.TradeRequest{}).
		Where("offer_id = ? AND requester_id = ? AND status = ?",
			offerID, requesterID, models.RequestStatusPending).
		Count(&existingCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if existingCount > 0 {
		return nil, fmt.Errorf("%w: trade request", ErrAlreadyExists)
	}

	now := time.Now()
	request := models.TradeRequest{
		OfferID:       offerID,
		RequesterID:   requesterID,
		OfferedBookID: offeredBookID,
		Status:        models.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.GetWriteDB(context.Background()).Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create trade request: %w", err)
	}

	notifyUser(offer.UserID, EventTradeRequested, request.ID)
	return &request, nil
}

// RespondToRequest - принять или отклонить заявку. Принятие переводит
// предложение в traded и отклоняет остальные ожидающие заявки одной
// транзакцией; условный UPDATE по статусу сериализует гонки на одном
// предложении - проигравший получает ErrInvalidState.
func (s *TradeService) RespondToRequest(ownerID, requestID int64, decision string) error {
	if decision != models.RequestStatusAccepted && decision != models.RequestStatusDeclined {
		return fmt.Errorf("%w: decision must be accepted or declined", ErrValidation)
	}

	var request models.TradeRequest
	err := db.GetWriteDB(context.Background()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: trade request %d", ErrNotFound, requestID)
			}
			return fmt.Errorf("failed to get trade request: %w", err)
		}

		var offer models.TradeOffer
		if err := tx.First(&offer, request.OfferID).Error; err != nil {
			return fmt.Errorf("failed to get offer: %w", err)
		}
		if offer.UserID != ownerID {
			return fmt.Errorf("%w: only the offer owner can respond", ErrNotAuthorized)
		}
		if request.Status != models.RequestStatusPending {
			return fmt.Errorf("%w: request is not pending", ErrInvalidState)
		}

		now := time.Now()

		if decision == models.RequestStatusDeclined {
			if offer.Status != models.OfferStatusAvailable {
				return fmt.Errorf("%w: offer is not available", ErrInvalidState)
			}
			return tx.Model(&models.TradeRequest{}).
				Where("id = ?", request.ID).
				Updates(map[string]interface{}{
					"status":     models.RequestStatusDeclined,
					"updated_at": now,
				}).Error
		}

		// Принятие: сначала условный переход предложения available -> traded
		res := tx.Model(&models.TradeOffer{}).
			Where("id = ? AND status = ?", offer.ID, models.OfferStatusAvailable).
			Updates(map[string]interface{}{
				"status":     models.OfferStatusTraded,
				"updated_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update offer: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: offer is no longer available", ErrInvalidState)
		}

		err := tx.Model(&models.TradeRequest{}).
			Where("id = ?", request.ID).
			Updates(map[string]interface{}{
				"status":     models.RequestStatusAccepted,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to accept request: %w", err)
		}

		// Каскадное отклонение конкурирующих заявок
		err = tx.Model(&models.TradeRequest{}).
			Where("offer_id = ? AND id <> ? AND status = ?",
				offer.ID, request.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":     models.RequestStatusDeclined,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to decline sibling requests: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if decision == models.RequestStatusAccepted {
		notifyUser(request.RequesterID, EventTradeAccepted, request.ID)
	} else {
		notifyUser(request.RequesterID, EventTradeDeclined, request.ID)
	}
	return nil
}

// WithdrawOffer - снять предложение с обмена. Ожидающие заявки удаляются
// вместе с листингом, сама запись остается в терминальном withdrawn.
func (s *TradeService) WithdrawOffer(ownerID, offerID int64) error {
	return db.GetWriteDB(context.Background()).Transaction(func(tx *gorm.DB) error {
		var offer models.TradeOffer
		if err := tx.First(&offer, offerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: offer %d", ErrNotFound, offerID)
			}
			return fmt.Errorf("failed to get offer: %w", err)
		}
		if offer.UserID != ownerID {
			return fmt.Errorf("%w: only the offer owner can withdraw it", ErrNotAuthorized)
		}

		res := tx.Model(&models.TradeOffer{}).
			Where("id = ? AND status = ?", offerID, models.OfferStatusAvailable).
			Updates(map[string]interface{}{
				"status":     models.OfferStatusWithdrawn,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to withdraw offer: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: offer is not available", ErrInvalidState)
		}

		return tx.Where("offer_id = ?", offerID).
			Delete(&models.TradeRequest{}).Error
	})
}

// SearchOffers - доступные предложения других пользователей,
// опционально с фильтром по названию
func (s *TradeService) SearchOffers(callerID int64, title string) ([]models.TradeOffer, error) {
	query := db.GetReadOnlyDB(context.Background()).
		Where("status = ? AND user_id <> ?", models.OfferStatusAvailable, callerID)
	if title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}

	var offers []models.TradeOffer
	err := query.Order("created_at DESC").Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search offers: %w", err)
	}
	return offers, nil
}

// MyOffers - предложения владельца вместе с заявками на них и краткой
// информацией о предложенных взамен книгах
func (s *TradeService) MyOffers(ownerID int64) ([]models.TradeOffer, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	readDB := db.GetReadOnlyDB(context.Background())

	var offers []models.TradeOffer
	err := readDB.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	for i := range offers {
		var requests []models.TradeRequest
		err = readDB.Where("offer_id = ?", offers[i].ID).
			Order("created_at DESC").
			Find(&requests).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list requests: %w", err)
		}
		for j := range requests {
			if book, err := s.library.GetBook(requests[j].OfferedBookID); err == nil {
				requests[j].OfferedBook = book
			}
		}
		offers[i].Requests = requests
	}
	return offers, nil
}

// MyRequests - заявки пользователя с вложенными предложениями
func (s *TradeService) MyRequests(requesterID int64) ([]models.TradeRequest, error) {
	if requesterID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	readDB := db.GetReadOnlyDB(context.Background())

	var requests []models.TradeRequest
	err := readDB.Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	for i := range requests {
		var offer models.TradeOffer
		if err := readDB.First(&offer, requests[i].OfferID).Error; err == nil {
			requests[i].Offer = &offer
		}
		if book, err := s.library.GetBook(requests[i].OfferedBookID); err == nil {
			requests[i].OfferedBook = book
		}
	}
	return requests, nil
}

// ListGenres - справочник жанров
func (s *TradeService) ListGenres() ([]models.Genre, error) {
	var genres []models.Genre
	err := db.GetReadOnlyDB(context.Background()).Order("name").Find(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}
