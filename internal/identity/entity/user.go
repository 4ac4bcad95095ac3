package entity

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Public strips the credential from u.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// PublicUser is the part of a User that may leave the service.
type PublicUser struct {
	ID       int64
	Username string
}
