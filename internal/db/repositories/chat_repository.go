package repositories

import (
	"context"

	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type ChatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db}
}

func (r *ChatRepository) InsertMessage(ctx context.Context, msg *entities.ChatMessage) error {
	return r.db.QueryRowxContext(ctx, constants.InsertChatMessage,
		msg.RequestID,
		msg.UserID,
		msg.Message,
	).StructScan(msg)
}

// ListMessages returns the whole log for a request, oldest first
func (r *ChatRepository) ListMessages(ctx context.Context, requestID string) ([]entities.ChatMessage, error) {
	var msgs []entities.ChatMessage
	if err := r.db.SelectContext(ctx, &msgs, constants.ListChatMessages, requestID); err != nil {
		return nil, err
	}
	return msgs, nil
}
