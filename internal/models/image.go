package models

import "time"

type Image struct {
	ID        string
	UserID    string
	ObjectKey string
	URL       string
	Format    string
	Width     int
	Height    int
	SizeBytes int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filename is the last path element of the object key, the stable
// client-facing name of the stored blob.
func (i Image) Filename() string {
	for idx := len(i.ObjectKey) - 1; idx >= 0; idx-- {
		if i.ObjectKey[idx] == '/' {
			return i.ObjectKey[idx+1:]
		}
	}
	return i.ObjectKey
}

type Comment struct {
	ID        string
	ImageID   string
	UserID    string
	Username  string
	Text      string
	CreatedAt time.Time
}

// ImageDetail is an image with its social context resolved: owner and
// liker profiles, comments with author profiles, and whether the
// requesting user owns the image.
type ImageDetail struct {
	Image    Image
	Owner    Profile
	Likers   []Profile
	Comments []CommentDetail
	IsOwner  bool
}

type CommentDetail struct {
	Comment Comment
	Author  Profile
}
