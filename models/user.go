package models

import "time"

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) GetID() int   { return u.ID }
func (u *User) SetID(id int) { u.ID = id }

// Identity is the public view of a user; it is what tokens carry and what
// the API returns. The password hash never leaves the store.
type Identity struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Name:     u.Name,
	}
}

type Login struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identifier returns whichever of username or email the client sent.
func (l Login) Identifier() string {
	if l.Username != "" {
		return l.Username
	}
	return l.Email
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
