package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/David-H-L/Backend/internal/apperr"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/store"
)

// Notifier delivers a payload to a user's live websocket connections.
// Returns false when the user has none; the message is still
// persisted either way.
type Notifier interface {
	SendToUser(userID string, payload []byte) bool
}

// Event is the frame format exchanged over the websocket.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ChatService persists direct messages and pushes them to connected
// receivers.
type ChatService struct {
	messages store.MessageStore
	users    store.UserStore
	notifier Notifier
}

func NewChatService(messages store.MessageStore, users store.UserStore, notifier Notifier) *ChatService {
	return &ChatService{messages: messages, users: users, notifier: notifier}
}

// Send stores the message and, if the receiver has live connections,
// pushes a new_message event to them.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if receiverID == "" || content == "" {
		return nil, apperr.New(apperr.Validation, "Missing required fields: receiverId, content")
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		log.Printf("chat send: receiver lookup: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error sending message", err)
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		log.Printf("chat send: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error sending message", err)
	}

	if s.notifier != nil {
		data, err := json.Marshal(msg)
		if err == nil {
			payload, _ := json.Marshal(Event{Type: "new_message", Data: data})
			s.notifier.SendToUser(receiverID, payload)
		}
	}
	return msg, nil
}

// History returns the conversation between two users, oldest first.
func (s *ChatService) History(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if otherID == "" {
		return nil, apperr.New(apperr.Validation, "Missing required field: userId")
	}
	msgs, err := s.messages.Conversation(ctx, userID, otherID, query.FlatListLimit)
	if err != nil {
		log.Printf("chat history: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching messages", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

type inboundChat struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// HandleFrame processes one inbound websocket frame from senderID.
// Unknown or malformed frames are dropped; send failures are logged
// but never close the socket.
func (s *ChatService) HandleFrame(senderID string, frame []byte) {
	var ev Event
	if err := json.Unmarshal(frame, &ev); err != nil || ev.Type != "send_message" {
		return
	}
	var in inboundChat
	if err := json.Unmarshal(ev.Data, &in); err != nil {
		return
	}
	if _, err := s.Send(context.Background(), senderID, in.ReceiverID, in.Content); err != nil {
		log.Printf("ws send_message from %s: %v", senderID, err)
	}
}
