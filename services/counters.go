package services

import (
	"context"
	"fmt"

	"bookswap/db"
	"bookswap/models"
)

// CounterType тип счетчика
type CounterType string

const (
	CounterTypeTradeRequests  CounterType = "trade_requests"
	CounterTypeFriendRequests CounterType = "friend_requests"
)

var ValidCounterTypes = map[CounterType]bool{
	CounterTypeTradeRequests:  true,
	CounterTypeFriendRequests: true,
}

// CounterService - проекция счетчиков ожидающих заявок для бейджей UI.
// Значения каждый раз пересчитываются из исходных таблиц и нигде не
// хранятся, поэтому расходиться с ними не могут.
type CounterService struct{}

func NewCounterService() *CounterService {
	return &CounterService{}
}

// PendingCount возвращает число ожидающих заявок, адресованных
// пользователю: заявки на его доступные предложения либо входящие
// заявки в друзья
func (s *CounterService) PendingCount(userID int64, counterType CounterType) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	readDB := db.GetReadOnlyDB(context.Background())
	var count int64

	switch counterType {
	case CounterTypeTradeRequests:
		// Считаются только заявки на еще доступные предложения
		err := readDB.Model(&models.TradeRequest{}).
			Joins("JOIN trade_offers ON trade_offers.id = trade_requests.offer_id").
			Where("trade_offers.user_id = ? AND trade_offers.status = ? AND trade_requests.status = ?",
				userID, models.OfferStatusAvailable, models.RequestStatusPending).
			Count(&count).Error
		if err != nil {
			return 0, fmt.Errorf("failed to count trade requests: %w", err)
		}
	case CounterTypeFriendRequests:
		err := readDB.Model(&models.Friendship{}).
			Where("user2 = ? AND status = ?", userID, models.FriendshipStatusPending).
			Count(&count).Error
		if err != nil {
			return 0, fmt.Errorf("failed to count friend requests: %w", err)
		}
	default:
		return 0, fmt.Errorf("%w: unknown counter type %q", ErrValidation, counterType)
	}

	return count, nil
}

// AllCounters возвращает все счетчики пользователя
func (s *CounterService) AllCounters(userID int64) (map[CounterType]int64, error) {
	counters := make(map[CounterType]int64, len(ValidCounterTypes))
	for counterType := range ValidCounterTypes {
		count, err := s.PendingCount(userID, counterType)
		if err != nil {
			return nil, err
		}
		counters[counterType] = count
	}
	return counters, nil
}
