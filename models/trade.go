package models

import "time"

// Статусы предложения обмена. Жизненный цикл односторонний:
// из traded и withdrawn возврата в available нет.
const (
	OfferStatusAvailable = "available"
	OfferStatusTraded    = "traded"
	OfferStatusWithdrawn = "withdrawn"
)

// Статусы заявки на обмен.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

type Genre struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:60;uniqueIndex" json:"name"`
}

// TradeOffer - книга, выставленная владельцем на обмен
type TradeOffer struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"index" json:"user_id"`
	Title       string    `gorm:"size:255" json:"title"`
	Condition   int       `json:"condition"` // 1..10
	Edition     string    `gorm:"size:255" json:"edition,omitempty"`
	Description string    `json:"description"`
	ImageURL    string    `gorm:"size:512" json:"image_url,omitempty"`
	GenreID     int64     `gorm:"index" json:"genre_id"`
	Status      string    `gorm:"size:20;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Дополнительные поля для API
	Requests []TradeRequest `gorm:"-" json:"requests,omitempty"`
}

func (TradeOffer) TableName() string {
	return "trade_offers"
}

// TradeRequest - встречное предложение: заявитель предлагает свою книгу
// из библиотеки в обмен на выставленную
type TradeRequest struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OfferID       int64     `gorm:"index" json:"offer_id"`
	RequesterID   int64     `gorm:"index" json:"requester_id"`
	OfferedBookID int64     `json:"offered_book_id"`
	Status        string    `gorm:"size:20;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Дополнительные поля для API
	Offer       *TradeOffer `gorm:"-" json:"offer,omitempty"`
	OfferedBook *Book       `gorm:"-" json:"offered_book,omitempty"`
}

func (TradeRequest) TableName() string {
	return "trade_requests"
}
