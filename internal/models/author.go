package models

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Author is a manifest author entry
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

var authorRegex = regexp.MustCompile(`^(?P<name>[- .,\p{L}\p{N}\p{Mn}'’"()]+) <(?P<email>.+?)>$`)

// ParseAuthor parses an author string of the form "Name <email>"
func ParseAuthor(s string) (*Author, error) {
	s = strings.TrimSpace(s)
	m := authorRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid author string %q, must be in the format: John Smith <john@example.com>",
			ErrInvalidInput, s)
	}

	email := m[2]
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}

	return &Author{
		Name:  strings.TrimSpace(m[1]),
		Email: email,
	}, nil
}

// IsSkipAnswer reports whether the operator asked to leave the author out
func IsSkipAnswer(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "n" || s == "no"
}

// String returns the author as "Name <email>"
func (a *Author) String() string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}
