package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a feed post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID   `json:"user" bson:"user"` // owner
	Text      string               `json:"text,omitempty" bson:"text,omitempty"`
	Img       string               `json:"img,omitempty" bson:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// IsLikedBy reports whether userID is in the post's likes
func (p *Post) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether userID owns the post
func (p *Post) IsOwnedBy(userID primitive.ObjectID) bool {
	return p.User == userID
}

// CreatePostRequest defines the request body for creating a new post.
// Img is either a data URI or a remote URL the media service can fetch.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required_without=Img"`
	Img  string `json:"img" validate:"required_without=Text"`
}

// HasContent reports whether text or image is present
func (r CreatePostRequest) HasContent() bool {
	return r.Text != "" || r.Img != ""
}

// PostView is a post with its owner and comment authors populated
type PostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	User      *User                `json:"user"`
	Text      string               `json:"text,omitempty"`
	Img       string               `json:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}
