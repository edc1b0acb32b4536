// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactStore_CreateAndRead(t *testing.T) {
	s := NewContactStore()
	s.now = fixedClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	c := s.Create(" Maria ", "Maria@Example.com", "Evaluation", "  Can we book an evaluation for Leo?  ")
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Maria", c.Name)
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, "Can we book an evaluation for Leo?", c.Message)
	assert.False(t, c.Read)

	require.NoError(t, s.MarkRead(c.ID))
	found := s.FindByID(c.ID)
	require.NotNil(t, found)
	assert.True(t, found.Read)

	assert.ErrorIs(t, s.MarkRead(uuid.New()), ErrNotFound)
	assert.Nil(t, s.FindByID(uuid.New()))
}

func TestContactStore_ListOrder(t *testing.T) {
	s := NewContactStore()
	first := s.Create("A", "a@example.com", "One", "first message body")
	second := s.Create("B", "b@example.com", "Two", "second message body")

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	list[0].Name = "changed"
	assert.Equal(t, "A", s.List()[0].Name)
	assert.Equal(t, 2, s.Count())
}
