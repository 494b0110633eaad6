package services

import (
	"context"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeService toggles likes. Each toggle touches the post's likes, the
// user's likedPosts and the owner's "like" notification so that
// postID ∈ user.likedPosts ⇔ userID ∈ post.likes.
type LikeService struct {
	posts         repositories.PostRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	tx            repositories.Transactor
}

// NewLikeService creates a new LikeService
func NewLikeService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	tx repositories.Transactor,
) *LikeService {
	return &LikeService{posts: posts, users: users, notifications: notifications, tx: tx}
}

// Toggle likes the post when userID has not liked it yet and unlikes it
// otherwise. It reports whether the post is liked afterwards. Nothing is
// written unless both the user and the post exist.
func (s *LikeService) Toggle(ctx context.Context, userID primitive.ObjectID, postID string) (bool, error) {
	var liked bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := lookupUser(s.users.GetUserByID(ctx, userID.Hex())); err != nil {
			return err
		}
		post, err := lookupPost(s.posts.GetPostByID(ctx, postID))
		if err != nil {
			return err
		}

		if post.IsLikedBy(userID) {
			liked = false
			return s.unlike(ctx, userID, post)
		}
		liked = true
		return s.like(ctx, userID, post)
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (s *LikeService) like(ctx context.Context, userID primitive.ObjectID, post *models.Post) error {
	if err := s.posts.AddLike(ctx, post.ID, userID); err != nil {
		return err
	}
	if err := s.users.AddLikedPost(ctx, userID, post.ID); err != nil {
		return err
	}
	return s.notifications.CreateNotification(ctx, &models.Notification{
		From: userID,
		To:   post.User,
		Type: models.NotificationLike,
	})
}

func (s *LikeService) unlike(ctx context.Context, userID primitive.ObjectID, post *models.Post) error {
	if err := s.posts.RemoveLike(ctx, post.ID, userID); err != nil {
		return err
	}
	if err := s.users.RemoveLikedPost(ctx, userID, post.ID); err != nil {
		return err
	}
	return s.notifications.DeleteNotification(ctx, userID, post.User, models.NotificationLike)
}
