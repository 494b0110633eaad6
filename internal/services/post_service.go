package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"github.com/anonto42/nano-midea/feed/pkg/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService handles the post lifecycle and comments, including the image
// side effects on the media store
type PostService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	media  media.Store
	logger *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, store media.Store, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, users: users, media: store, logger: logger}
}

// Create stores a new post owned by userID. The image, if any, is uploaded
// first and its durable URL stored in place of the payload.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, req models.CreatePostRequest) (*models.Post, error) {
	if !req.HasContent() {
		return nil, ErrEmptyContent
	}
	if _, err := lookupUser(s.users.GetUserByID(ctx, userID.Hex())); err != nil {
		return nil, err
	}

	post := &models.Post{User: userID, Text: req.Text}
	if req.Img != "" {
		url, err := s.media.Upload(ctx, req.Img)
		if err != nil {
			return nil, err
		}
		post.Img = url
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.discardUpload(ctx, post.Img)
		return nil, err
	}
	return post, nil
}

// Comment appends a comment by userID to the post and returns the updated
// post. Nothing is uploaded when the post does not exist.
func (s *PostService) Comment(ctx context.Context, userID primitive.ObjectID, postID string, req models.CreateCommentRequest) (*models.PostView, error) {
	if !req.HasContent() {
		return nil, ErrEmptyContent
	}
	post, err := lookupPost(s.posts.GetPostByID(ctx, postID))
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if req.Img != "" {
		url, err := s.media.Upload(ctx, req.Img)
		if err != nil {
			return nil, err
		}
		comment.Img = url
	}

	updated, err := lookupPost(s.posts.AddComment(ctx, post.ID, comment))
	if err != nil {
		s.discardUpload(ctx, comment.Img)
		return nil, err
	}

	views, err := populatePosts(ctx, s.users, []models.Post{*updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes a post owned by userID. Existence is checked before
// ownership. A failed image destroy is logged and does not stop the delete.
func (s *PostService) Delete(ctx context.Context, userID primitive.ObjectID, postID string) error {
	post, err := lookupPost(s.posts.GetPostByID(ctx, postID))
	if err != nil {
		return err
	}
	if !post.IsOwnedBy(userID) {
		return ErrNotPostOwner
	}

	if post.Img != "" {
		storageID := media.StorageID(post.Img)
		if err := s.media.Destroy(ctx, storageID); err != nil {
			s.logger.Warn("failed to destroy post image",
				slog.String("post_id", post.ID.Hex()),
				slog.String("storage_id", storageID),
				slog.Any("error", err))
		}
	}

	if err := s.posts.DeletePost(ctx, post.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// discardUpload destroys an image whose owning document was never written
func (s *PostService) discardUpload(ctx context.Context, url string) {
	if url == "" {
		return
	}
	storageID := media.StorageID(url)
	if err := s.media.Destroy(ctx, storageID); err != nil {
		s.logger.Warn("failed to discard uploaded image",
			slog.String("storage_id", storageID),
			slog.Any("error", err))
	}
}

func lookupPost(post *models.Post, err error) (*models.Post, error) {
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
