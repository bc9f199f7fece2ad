package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookswap/db"
	"bookswap/models"

	"gorm.io/gorm"
)

// FriendService - граф дружбы: направленные заявки, которые после
// принятия становятся симметричной связью
type FriendService struct{}

func NewFriendService() *FriendService {
	return &FriendService{}
}

// SendRequest - отправить заявку в друзья. Активная связь (pending или
// accepted) в любом направлении между парой пользователей блокирует
// новую; оставшаяся declined запись заменяется новой заявкой.
func (s *FriendService) SendRequest(initiatorID, recipientID int64) (*models.Friendship, error) {
	if initiatorID <= 0 || recipientID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if initiatorID == recipientID {
		return nil, ErrSelfFriend
	}

	var recipientCount int64
	err := db.GetReadOnlyDB(context.Background()).
		Model(&models.User{}).
		Where("id = ?", recipientID).
		Count(&recipientCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check recipient: %w", err)
	}
	if recipientCount == 0 {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, recipientID)
	}

	now := time.Now()
	friendship := models.Friendship{
		User1:     initiatorID,
		User2:     recipientID,
		Status:    models.FriendshipStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = db.GetWriteDB(context.Background()).Transaction(func(tx *gorm.DB) error {
		// Проверка пары в обоих направлениях
		var existing models.Friendship
		err := tx.Where(
			"(user1 = ? AND user2 = ?) OR (user1 = ? AND user2 = ?)",
			initiatorID, recipientID, recipientID, initiatorID,
		).First(&existing).Error
		if err == nil {
			if existing.Status != models.FriendshipStatusDeclined {
				return fmt.Errorf("%w: friend request", ErrAlreadyExists)
			}
			// Повторная заявка после отказа разрешена
			if err := tx.Delete(&models.Friendship{}, existing.ID).Error; err != nil {
				return fmt.Errorf("failed to replace declined request: %w", err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing friendship: %w", err)
		}

		if err := tx.Create(&friendship).Error; err != nil {
			// Единственное ограничение на таблице - уникальность пары,
			// сюда попадает проигравший гонку одновременных заявок
			return fmt.Errorf("%w: friend request", ErrAlreadyExists)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyUser(recipientID, EventFriendRequested, friendship.ID)
	return &friendship, nil
}

// RespondToRequest - принять или отклонить входящую заявку.
// Отвечать может только получатель заявки.
func (s *FriendService) RespondToRequest(recipientID, friendshipID int64, decision string) error {
	if decision != models.FriendshipStatusAccepted && decision != models.FriendshipStatusDeclined {
		return fmt.Errorf("%w: decision must be accepted or declined", ErrValidation)
	}

	var friendship models.Friendship
	err := db.GetWriteDB(context.Background()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&friendship, friendshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: friendship %d", ErrNotFound, friendshipID)
			}
			return fmt.Errorf("failed to get friendship: %w", err)
		}
		if friendship.User2 != recipientID {
			return fmt.Errorf("%w: only the recipient can respond", ErrNotAuthorized)
		}
		if friendship.Status != models.FriendshipStatusPending {
			return fmt.Errorf("%w: request is not pending", ErrInvalidState)
		}

		return tx.Model(&models.Friendship{}).
			Where("id = ?", friendshipID).
			Updates(map[string]interface{}{
				"status":     decision,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return err
	}

	if decision == models.FriendshipStatusAccepted {
		notifyUser(friendship.User1, EventFriendAccepted, friendship.ID)
	}
	return nil
}

// RemoveFriend - удалить связь (жесткое удаление), доступно обеим сторонам
func (s *FriendService) RemoveFriend(callerID, friendshipID int64) error {
	var friendship models.Friendship
	err := db.GetReadOnlyDB(context.Background()).First(&friendship, friendshipID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: friendship %d", ErrNotFound, friendshipID)
		}
		return fmt.Errorf("failed to get friendship: %w", err)
	}
	if friendship.User1 != callerID && friendship.User2 != callerID {
		return fmt.Errorf("%w: not a participant of this friendship", ErrNotAuthorized)
	}
	return db.GetWriteDB(context.Background()).
		Delete(&models.Friendship{}, friendshipID).Error
}

// ListPendingIncoming - входящие заявки с профилем инициатора
func (s *FriendService) ListPendingIncoming(userID int64) ([]models.Friendship, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var requests []models.Friendship
	err := db.GetReadOnlyDB(context.Background()).
		Where("user2 = ? AND status = ?", userID, models.FriendshipStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	for i := range requests {
		requests[i].Profile = getProfile(requests[i].User1)
	}
	return requests, nil
}

// ListFriends - принятые связи с профилем второй стороны
func (s *FriendService) ListFriends(userID int64) ([]models.Friendship, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var friendships []models.Friendship
	err := db.GetReadOnlyDB(context.Background()).
		Where("(user1 = ? OR user2 = ?) AND status = ?",
			userID, userID, models.FriendshipStatusAccepted).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	for i := range friendships {
		counterpart := friendships[i].User1
		if counterpart == userID {
			counterpart = friendships[i].User2
		}
		friendships[i].Profile = getProfile(counterpart)
	}
	return friendships, nil
}

// getProfile получает краткий профиль пользователя
func getProfile(userID int64) *models.UserProfile {
	var user models.User
	err := db.GetReadOnlyDB(context.Background()).First(&user, userID).Error
	if err != nil {
		return nil
	}
	return &models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}
