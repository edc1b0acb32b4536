// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"littlehands/internal/models"
)

// ContactStore holds contact form messages in submission order.
type ContactStore struct {
	mu       sync.RWMutex
	messages []models.Contact
	now      func() time.Time
}

// NewContactStore creates an empty ContactStore.
func NewContactStore() *ContactStore {
	return &ContactStore{now: time.Now}
}

// Create stores a new unread message and returns it with its id set.
func (s *ContactStore) Create(name, email, subject, message string) models.Contact {
	c := models.Contact{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     normalizeEmail(email),
		Subject:   strings.TrimSpace(subject),
		Message:   strings.TrimSpace(message),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, c)
	s.mu.Unlock()
	return c
}

// FindByID returns the message with id. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) *models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			c := s.messages[i]
			return &c
		}
	}
	return nil
}

// MarkRead flags the message with id as read.
func (s *ContactStore) MarkRead(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// List returns a copy of every message, oldest first.
func (s *ContactStore) List() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contact, len(s.messages))
	copy(out, s.messages)
	return out
}

// Count returns the number of stored messages.
func (s *ContactStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
