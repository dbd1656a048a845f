package storage

import (
	"sync"
	"time"
)

// MessageRef points at a chat message that is edited in place.
type MessageRef struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// MessageStorage remembers the last quiz message sent to each user.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]MessageRef
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]MessageRef),
	}
}

func (s *MessageStorage) Store(userID int64, chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[userID] = MessageRef{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}
}

func (s *MessageStorage) Get(userID int64) (MessageRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

func (s *MessageStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, userID)
}
