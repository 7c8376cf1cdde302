package store

import (
	"errors"
	"strings"
)

var (
	// ErrTitleRequired is returned when a title is missing or only whitespace.
	ErrTitleRequired = errors.New("title is required")

	// ErrMessageRequired is returned when a message is missing or only whitespace.
	ErrMessageRequired = errors.New("message is required")
)

// NormalizeAnnouncement trims the user-supplied fields and applies the type
// default. It returns ErrTitleRequired or ErrMessageRequired when a required
// field is blank after trimming.
func NormalizeAnnouncement(title, message, typ string) (string, string, string, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	typ = strings.TrimSpace(typ)

	if title == "" {
		return "", "", "", ErrTitleRequired
	}
	if message == "" {
		return "", "", "", ErrMessageRequired
	}
	if typ == "" {
		typ = DefaultType
	}
	return title, message, typ, nil
}
