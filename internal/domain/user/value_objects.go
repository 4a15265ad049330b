package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrEmailDomainNotAllowed = errors.New("email domain is not allowed")
	ErrInvalidRole           = errors.New("invalid role")
	ErrPasswordTooWeak       = errors.New("password must be at least 8 characters long")
	ErrInvalidName           = errors.New("name must be between 1 and 100 characters")
	ErrDescriptionTooLong    = errors.New("description is too long (max 500 characters)")
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

// NewEmailInDomain additionally requires the address to belong to domain.
// An empty domain accepts any well-formed address.
func NewEmailInDomain(s, domain string) (Email, error) {
	email, err := NewEmail(s)
	if err != nil {
		return Email{}, err
	}
	if !email.BelongsTo(domain) {
		return Email{}, ErrEmailDomainNotAllowed
	}
	return email, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

func (e Email) BelongsTo(domain string) bool {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))
	return domain == "" || e.Domain() == domain
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) Value() string {
	return n.value
}

type Description struct {
	value string
}

func NewDescription(s string) (Description, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: s}, nil
}

func (d Description) Value() string {
	return d.value
}
