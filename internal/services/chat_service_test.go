package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/models/dtos"
	"ground-experiment/groundlink/internal/models/entities"
)

type memChatStore struct {
	mu   sync.Mutex
	seq  int
	msgs []entities.ChatMessage
}

func (s *memChatStore) InsertMessage(ctx context.Context, msg *entities.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	msg.ID = fmt.Sprintf("msg-%d", s.seq)
	msg.CreatedAt = time.Now()
	s.msgs = append(s.msgs, *msg)
	return nil
}

func (s *memChatStore) ListMessages(ctx context.Context, requestID string) ([]entities.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.ChatMessage
	for _, m := range s.msgs {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}
	return out, nil
}

// chatFixture wires a chat service over a live request lifecycle so the
// gating tests exercise real status values.
func chatFixture(t *testing.T) (*ChatService, *RequestService, *mockBroadcaster, *memRequestStore) {
	t.Helper()

	requests := newMemRequestStore()
	hub := &mockBroadcaster{}
	reqService := NewRequestService(requests, hub)
	chatService := NewChatService(&memChatStore{}, requests, hub)
	return chatService, reqService, hub, requests
}

func TestChatService_PostMessage_GatedOnActiveRequest(t *testing.T) {
	chat, reqs, _, _ := chatFixture(t)
	ctx := context.Background()

	created, _ := reqs.CreateRequest(ctx, "pilot-1", validCreateReq())

	// open: not actively worked yet
	_, err := chat.PostMessage(ctx, created.ID, "pilot-1", "anyone coming?")
	if apperrors.CodeOf(err) != apperrors.CodeInactiveRequest {
		t.Errorf("Expected inactive-request error on open request, got %v", err)
	}

	reqs.ClaimRequest(ctx, created.ID, "crew-1")

	msg, err := chat.PostMessage(ctx, created.ID, "crew-1", "on my way")
	if err != nil {
		t.Fatalf("Expected post on claimed request to succeed, got %v", err)
	}
	if msg.ID == "" || msg.RequestID != created.ID || msg.UserID != "crew-1" {
		t.Errorf("Unexpected message fields: %+v", msg)
	}

	reqs.UpdateStatus(ctx, created.ID, "crew-1", "in_progress")
	if _, err := chat.PostMessage(ctx, created.ID, "pilot-1", "thanks"); err != nil {
		t.Errorf("Expected post on in_progress request to succeed, got %v", err)
	}

	reqs.UpdateStatus(ctx, created.ID, "crew-1", "completed")
	_, err = chat.PostMessage(ctx, created.ID, "pilot-1", "too late")
	if apperrors.CodeOf(err) != apperrors.CodeInactiveRequest {
		t.Errorf("Expected inactive-request error on completed request, got %v", err)
	}
}

func TestChatService_PostMessage_Validation(t *testing.T) {
	chat, reqs, hub, _ := chatFixture(t)
	ctx := context.Background()

	created, _ := reqs.CreateRequest(ctx, "pilot-1", validCreateReq())
	reqs.ClaimRequest(ctx, created.ID, "crew-1")
	before := len(hub.eventTypes())

	_, err := chat.PostMessage(ctx, created.ID, "crew-1", "   ")
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Errorf("Expected validation error for blank message, got %v", err)
	}
	if len(hub.eventTypes()) != before {
		t.Error("No event must be emitted for a rejected message")
	}

	_, err = chat.PostMessage(ctx, "missing-request", "crew-1", "hello")
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestChatService_PostMessage_EmitsNewMessageEvent(t *testing.T) {
	chat, reqs, hub, _ := chatFixture(t)
	ctx := context.Background()

	created, _ := reqs.CreateRequest(ctx, "pilot-1", validCreateReq())
	reqs.ClaimRequest(ctx, created.ID, "crew-1")

	msg, err := chat.PostMessage(ctx, created.ID, "crew-1", "pushing back the fuel truck")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	last := hub.events[len(hub.events)-1]
	if last.Type != dtos.EventNewMessage {
		t.Fatalf("Expected new_message event, got %s", last.Type)
	}

	payload, ok := last.Data.(dtos.NewMessagePayload)
	if !ok {
		t.Fatalf("Expected NewMessagePayload, got %T", last.Data)
	}
	if payload.RequestID != created.ID || payload.Message.ID != msg.ID {
		t.Errorf("Payload does not reference the stored message: %+v", payload)
	}
}

func TestChatService_ListMessages_OldestFirst(t *testing.T) {
	chat, reqs, _, _ := chatFixture(t)
	ctx := context.Background()

	created, _ := reqs.CreateRequest(ctx, "pilot-1", validCreateReq())
	reqs.ClaimRequest(ctx, created.ID, "crew-1")

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := chat.PostMessage(ctx, created.ID, "crew-1", text); err != nil {
			t.Fatalf("PostMessage(%q): %v", text, err)
		}
	}

	msgs, err := chat.ListMessages(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != len(texts) {
		t.Fatalf("Expected %d messages, got %d", len(texts), len(msgs))
	}
	for i, text := range texts {
		if msgs[i].Message != text {
			t.Errorf("Position %d: expected %q, got %q", i, text, msgs[i].Message)
		}
	}
}
