package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageFilename(t *testing.T) {
	assert.Equal(t, "abc.png", Image{ObjectKey: "images/abc.png"}.Filename())
	assert.Equal(t, "plain.jpeg", Image{ObjectKey: "plain.jpeg"}.Filename())
}

func TestProfileExcludesSecrets(t *testing.T) {
	user := User{
		ID:           "u1",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: []byte("secret"),
		AvatarURL:    "http://cdn/avatars/u1.png",
	}

	profile := user.Profile()
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "http://cdn/avatars/u1.png", profile.AvatarURL)
}
