package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. The point balance is deliberately absent here: the balance is
// derived from the point ledger, and the persisted users.point column is only
// a read-through cache refreshed by the notification hook.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	name         string
	phoneNumber  string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash, name, phoneNumber string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phoneNumber:  phoneNumber,
		role:         role,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	passwordHash, name, phoneNumber string,
	role Role,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phoneNumber:  phoneNumber,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Name() string         { return u.name }
func (u *User) PhoneNumber() string  { return u.phoneNumber }
func (u *User) Role() Role           { return u.role }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
