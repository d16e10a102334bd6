package models

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public projection of a user attached to images, likes
// and comments. Never carries the password hash.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
