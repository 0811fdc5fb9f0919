package gorm

import "time"

// ChatMessage exists on the GORM side for schema migration only; runtime
// access goes through the sqlx repository.
type ChatMessage struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	RequestID string    `gorm:"column:request_id;type:uuid;not null;index"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

// TableName specifies the table name for GORM
func (ChatMessage) TableName() string {
	return "chat_messages"
}
