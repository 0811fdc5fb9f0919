package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/logging"
	"ground-experiment/groundlink/internal/models/dtos"
	"ground-experiment/groundlink/internal/models/entities"
)

// ChatStore is the persistence surface the chat subsystem needs
type ChatStore interface {
	InsertMessage(ctx context.Context, msg *entities.ChatMessage) error
	ListMessages(ctx context.Context, requestID string) ([]entities.ChatMessage, error)
}

// RequestReader looks up the request a message belongs to
type RequestReader interface {
	FindRequestByID(ctx context.Context, id string) (*entities.ServiceRequest, error)
}

// ChatService is the append-only per-request message log. Posting is gated
// on the owning request being actively worked (claimed or in_progress).
type ChatService struct {
	store    ChatStore
	requests RequestReader
	hub      EventBroadcaster
}

func NewChatService(store ChatStore, requests RequestReader, hub EventBroadcaster) *ChatService {
	return &ChatService{
		store:    store,
		requests: requests,
		hub:      hub,
	}
}

// PostMessage appends a message to a request's chat log
func (s *ChatService) PostMessage(ctx context.Context, requestID, authorID, text string) (*entities.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("message is required")
	}

	req, err := s.requests.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service request not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("fetch request: %w", err))
	}

	if req.Status != constants.StatusClaimed && req.Status != constants.StatusInProgress {
		return nil, apperrors.InactiveRequest("chat is only open while the request is being worked")
	}

	msg := &entities.ChatMessage{
		RequestID: requestID,
		UserID:    authorID,
		Message:   text,
	}

	if err := s.store.InsertMessage(ctx, msg); err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("insert message: %w", err))
	}

	s.hub.Broadcast(dtos.Event{
		Type: dtos.EventNewMessage,
		Data: dtos.NewMessagePayload{RequestID: requestID, Message: msg},
	})

	logging.Info("Chat message posted",
		"request_id", requestID,
		"message_id", msg.ID,
	)

	return msg, nil
}

// ListMessages returns the full log for a request, oldest first
func (s *ChatService) ListMessages(ctx context.Context, requestID string) ([]entities.ChatMessage, error) {
	msgs, err := s.store.ListMessages(ctx, requestID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("list messages: %w", err))
	}
	return msgs, nil
}
