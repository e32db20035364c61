package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a token matches no saved session.
var ErrNotFound = errors.New("session not found")

// AmbiguousError is returned when an id fragment matches more than one
// session. The resolver never silently picks one; Matches lets the caller
// present the candidates for disambiguation.
type AmbiguousError struct {
	Token   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("token %q is ambiguous: matches %s", e.Token, strings.Join(e.Matches, ", "))
}

// Resolve selects exactly one session for a user token. A positive integer
// within range is a 1-based ordinal into the display ordering of sessions
// (callers must pass a freshly fetched, display-sorted list: ordinals are
// view-time artifacts, not stable keys). Any other token is a case-sensitive
// id substring, which must match exactly one session.
func Resolve(token string, sessions []SavedSession) (*SavedSession, error) {
	if len(sessions) == 0 {
		return nil, ErrNotFound
	}

	if n, err := strconv.Atoi(token); err == nil && n > 0 {
		if n > len(sessions) {
			return nil, ErrNotFound
		}
		return &sessions[n-1], nil
	}

	var matches []*SavedSession
	for i := range sessions {
		if strings.Contains(sessions[i].ID, token) {
			matches = append(matches, &sessions[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, &AmbiguousError{Token: token, Matches: ids}
	}
}
