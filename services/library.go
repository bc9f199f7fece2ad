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

// LibraryService - сервис личной библиотеки. Торговый движок читает
// библиотеку только через GetBook/IsOwnedBy и никогда не меняет ее.
type LibraryService struct{}

func NewLibraryService() *LibraryService {
	return &LibraryService{}
}

type BookInput struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Genre     string `json:"genre"`
	Synopsis  string `json:"synopsis"`
	Thumbnail string `json:"thumbnail"`
}

// SaveBook - сохранить книгу в библиотеку
func (s *LibraryService) SaveBook(userID int64, input BookInput) (*models.Book, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if input.Title == "" || input.Author == "" {
		return nil, fmt.Errorf("%w: title and author are required", ErrValidation)
	}

	book := models.Book{
		UserID:    userID,
		Title:     input.Title,
		Author:    input.Author,
		ISBN:      input.ISBN,
		Genre:     input.Genre,
		Synopsis:  input.Synopsis,
		Rating:    0,
		Thumbnail: input.Thumbnail,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(context.Background()).Create(&book).Error; err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	return &book, nil
}

// ListBooks - книги пользователя, новые сверху
func (s *LibraryService) ListBooks(userID int64) ([]models.Book, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var books []models.Book
	err := db.GetReadOnlyDB(context.Background()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// RemoveBook - убрать книгу из библиотеки (жесткое удаление)
func (s *LibraryService) RemoveBook(userID, bookID int64) error {
	book, err := s.GetBook(bookID)
	if err != nil {
		return err
	}
	if book.UserID != userID {
		return fmt.Errorf("%w: book belongs to another user", ErrNotAuthorized)
	}
	return db.GetWriteDB(context.Background()).Delete(&models.Book{}, bookID).Error
}

// UpdateRating - поменять оценку книги (0..5)
func (s *LibraryService) UpdateRating(userID, bookID int64, rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	book, err := s.GetBook(bookID)
	if err != nil {
		return err
	}
	if book.UserID != userID {
		return fmt.Errorf("%w: book belongs to another user", ErrNotAuthorized)
	}
	return db.GetWriteDB(context.Background()).
		Model(&models.Book{}).
		Where("id = ?", bookID).
		Update("rating", rating).Error
}

// GetBook - получить книгу по ID
func (s *LibraryService) GetBook(bookID int64) (*models.Book, error) {
	var book models.Book
	err := db.GetReadOnlyDB(context.Background()).First(&book, bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: book %d", ErrNotFound, bookID)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// IsOwnedBy - принадлежит ли книга пользователю
func (s *LibraryService) IsOwnedBy(bookID, userID int64) (bool, error) {
	book, err := s.GetBook(bookID)
	if err != nil {
		return false, err
	}
	return book.UserID == userID, nil
}
