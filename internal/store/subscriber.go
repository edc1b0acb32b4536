// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store keeps newsletter subscribers and contact messages in
// process memory. Nothing survives a restart. Each store struct is safe for
// concurrent use by request handlers.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"littlehands/internal/models"
)

var (
	// ErrAlreadySubscribed is returned when an active subscriber signs up again.
	ErrAlreadySubscribed = errors.New("store: email already subscribed")

	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("store: not found")
)

// SubscribeResult tells the caller whether Subscribe created a new record
// or reactivated an existing one.
type SubscribeResult int

const (
	Created SubscribeResult = iota + 1
	Reactivated
)

// SubscriberStore holds newsletter subscribers keyed by lowercased email.
type SubscriberStore struct {
	mu      sync.RWMutex
	byEmail map[string]*models.Subscriber
	now     func() time.Time
}

// NewSubscriberStore creates an empty SubscriberStore.
func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{
		byEmail: make(map[string]*models.Subscriber),
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Subscribe adds email to the newsletter. An inactive subscriber is
// reactivated with a fresh timestamp; an active one yields
// ErrAlreadySubscribed.
func (s *SubscriberStore) Subscribe(email string) (models.Subscriber, SubscribeResult, error) {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, ok := s.byEmail[key]; ok {
		if sub.Active {
			return *sub, 0, ErrAlreadySubscribed
		}
		sub.Active = true
		sub.SubscribedAt = s.now().UTC()
		return *sub, Reactivated, nil
	}

	sub := &models.Subscriber{
		ID:           uuid.New(),
		Email:        key,
		SubscribedAt: s.now().UTC(),
		Active:       true,
	}
	s.byEmail[key] = sub
	return *sub, Created, nil
}

// Unsubscribe marks email inactive. Unknown addresses yield ErrNotFound.
func (s *SubscriberStore) Unsubscribe(email string) (models.Subscriber, error) {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.byEmail[key]
	if !ok {
		return models.Subscriber{}, ErrNotFound
	}
	sub.Active = false
	return *sub, nil
}

// FindByEmail returns the subscriber for email. Returns nil if not found.
func (s *SubscriberStore) FindByEmail(email string) *models.Subscriber {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil
	}
	out := *sub
	return &out
}

// List returns every subscriber ordered by signup time.
func (s *SubscriberStore) List() []models.Subscriber {
	s.mu.RLock()
	out := make([]models.Subscriber, 0, len(s.byEmail))
	for _, sub := range s.byEmail {
		out = append(out, *sub)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].SubscribedAt.Before(out[j].SubscribedAt) })
	return out
}

// CountActive returns the number of active subscribers.
func (s *SubscriberStore) CountActive() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sub := range s.byEmail {
		if sub.Active {
			n++
		}
	}
	return n
}
