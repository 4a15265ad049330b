package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	email        Email
	name         Name
	passwordHash string
	role         Role
	description  Description
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, name Name, passwordHash string, role Role, description Description) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		description:  description,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email, name, passwordHash string,
	role Role,
	description string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        Email{value: email},
		name:         Name{value: name},
		passwordHash: passwordHash,
		role:         role,
		description:  Description{value: description},
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) IsTechnician() bool {
	return u.role == RoleLabTechnician
}

func (u *User) ID() uuid.UUID            { return u.id }
func (u *User) Email() Email             { return u.email }
func (u *User) Name() Name               { return u.name }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) Role() Role               { return u.role }
func (u *User) Description() Description { return u.description }
func (u *User) IsActive() bool           { return u.isActive }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }
