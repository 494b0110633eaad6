package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in a Post; comments are append-only
type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text,omitempty" bson:"text,omitempty"`
	Img       string             `json:"img,omitempty" bson:"img,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required_without=Img"`
	Img  string `json:"img" validate:"required_without=Text"`
}

// HasContent reports whether text or image is present
func (r CreateCommentRequest) HasContent() bool {
	return r.Text != "" || r.Img != ""
}

// CommentView is a comment with its author populated
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      *User              `json:"user"`
	Text      string             `json:"text,omitempty"`
	Img       string             `json:"img,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}
