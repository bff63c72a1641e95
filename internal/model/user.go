package model

import "time"

// UserID uniquely identifies a registered user
type UserID int64

// User is a registered account as persisted in the store
type User struct {
	ID           UserID
	Name         string
	Email        string // unique across all users
	PasswordHash string // bcrypt hash, never the plain password
	DOB          *time.Time
}

// SessionUser is the identity handed to a session after a successful login.
// It carries no credential material.
type SessionUser struct {
	ID   UserID
	Name string
}

// SessionUser returns the session identity for this user
func (u *User) SessionUser() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name}
}
