package models

import "time"

// Book - запись в личной библиотеке пользователя.
// Книга принадлежит ровно одному пользователю, торговое состояние
// здесь не хранится.
type Book struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Author    string    `gorm:"size:255" json:"author"`
	ISBN      string    `gorm:"size:32" json:"isbn,omitempty"`
	Genre     string    `gorm:"size:60" json:"genre,omitempty"`
	Synopsis  string    `json:"synopsis,omitempty"`
	Rating    int       `json:"rating"` // 0..5
	Thumbnail string    `gorm:"size:512" json:"thumbnail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "library"
}
