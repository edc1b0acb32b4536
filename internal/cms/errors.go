// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks every failure to obtain content from the CMS:
	// network errors, timeouts, non-2xx statuses, undecodable bodies and a
	// missing configuration. Callers substitute fallback content for it.
	ErrUnavailable = errors.New("cms: content source unavailable")

	// ErrUnauthorized is matched by status errors for 401 and 403 responses.
	ErrUnauthorized = errors.New("cms: unauthorized")

	// ErrNotConfigured is returned when no space id or access token is set.
	ErrNotConfigured = fmt.Errorf("%w: space id or access token not configured", ErrUnavailable)
)

// StatusError is returned when the CMS answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cms API error (status %d): %s", e.StatusCode, e.Body)
}

// Is makes every StatusError match ErrUnavailable, and 401/403 match
// ErrUnauthorized as well.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
