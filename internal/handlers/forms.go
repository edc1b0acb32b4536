// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"littlehands/internal/models"
	"littlehands/internal/store"
)

// subscriptionResponse is returned by the newsletter endpoints.
type subscriptionResponse struct {
	Message    string            `json:"message"`
	Subscriber models.Subscriber `json:"subscriber"`
}

// decode reads a JSON body into dst and validates it. It writes the 400
// response itself and reports false on failure.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any, normalize func()) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	if normalize != nil {
		normalize()
	}
	if err := a.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, validationFailure{
			Message: "Validation failed",
			Errors:  fieldErrors(err),
		})
		return false
	}
	return true
}

// Subscribe handles POST /api/newsletter/subscribe. A new address is 201,
// a reactivated one 200 and an already active one 409.
func (a *API) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !a.decode(w, r, &req, func() { req.Email = strings.TrimSpace(req.Email) }) {
		return
	}

	sub, result, err := a.subscribers.Subscribe(req.Email)
	switch {
	case errors.Is(err, store.ErrAlreadySubscribed):
		writeMessage(w, http.StatusConflict, "This email is already subscribed.")
		return
	case err != nil:
		slog.Error("subscribe failed", "error", err)
		internalError(w)
		return
	}

	if result == store.Reactivated {
		slog.Info("newsletter subscription reactivated", "subscriber_id", sub.ID)
		writeJSON(w, http.StatusOK, subscriptionResponse{Message: "Welcome back! Your subscription is active again.", Subscriber: sub})
		return
	}
	slog.Info("newsletter subscription created", "subscriber_id", sub.ID)
	writeJSON(w, http.StatusCreated, subscriptionResponse{Message: "Thanks for subscribing!", Subscriber: sub})
}

// Unsubscribe handles POST /api/newsletter/unsubscribe.
func (a *API) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !a.decode(w, r, &req, func() { req.Email = strings.TrimSpace(req.Email) }) {
		return
	}

	sub, err := a.subscribers.Unsubscribe(req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "This email is not subscribed.")
		return
	case err != nil:
		slog.Error("unsubscribe failed", "error", err)
		internalError(w)
		return
	}

	slog.Info("newsletter subscription deactivated", "subscriber_id", sub.ID)
	writeJSON(w, http.StatusOK, subscriptionResponse{Message: "You have been unsubscribed.", Subscriber: sub})
}

// Contact handles POST /api/contact.
func (a *API) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !a.decode(w, r, &req, req.trim) {
		return
	}

	c := a.contacts.Create(req.Name, req.Email, req.Subject, req.Message)
	slog.Info("contact message received", "contact_id", c.ID, "subject", c.Subject)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Thanks for reaching out! We'll be in touch soon.",
		"id":      c.ID,
	})
}
