package services

import "errors"

var (
	ErrEmptyContent = errors.New("text or image is required")
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the post owner")
)
