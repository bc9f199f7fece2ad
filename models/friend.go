package models

import "time"

// Статусы дружбы.
const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
	FriendshipStatusDeclined = "declined"
)

// Friendship - направленная заявка в друзья: User1 - инициатор,
// User2 - получатель. После принятия связь симметрична.
// Пара уникальна без учета направления: индекс по (min, max) в миграциях
// не дает встречным заявкам оставить два ребра.
type Friendship struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	User1     int64     `gorm:"index" json:"user1"`
	User2     int64     `gorm:"index" json:"user2"`
	Status    string    `gorm:"size:20;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Дополнительное поле для API: профиль второй стороны
	Profile *UserProfile `gorm:"-" json:"profile,omitempty"`
}

func (Friendship) TableName() string {
	return "friendships"
}
