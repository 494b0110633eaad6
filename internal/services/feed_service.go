package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedService answers post listing queries. Every post comes back with its
// owner and comment authors populated.
type FeedService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(posts repositories.PostRepository, users repositories.UserRepository) *FeedService {
	return &FeedService{posts: posts, users: users}
}

// ListAll returns every post, newest first
func (s *FeedService) ListAll(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

// ListFollowing returns posts from the users userID follows, newest first
func (s *FeedService) ListFollowing(ctx context.Context, userID primitive.ObjectID) ([]models.PostView, error) {
	user, err := lookupUser(s.users.GetUserByID(ctx, userID.Hex()))
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.GetPostsByUserIDs(ctx, user.Following)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

// ListLiked returns the posts liked by the user with the given ID
func (s *FeedService) ListLiked(ctx context.Context, userID string) ([]models.PostView, error) {
	user, err := lookupUser(s.users.GetUserByID(ctx, userID))
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.GetPostsByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

// ListByUsername returns the posts of the named user, newest first
func (s *FeedService) ListByUsername(ctx context.Context, username string) ([]models.PostView, error) {
	user, err := lookupUser(s.users.GetUserByUsername(ctx, username))
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.GetPostsByUserIDs(ctx, []primitive.ObjectID{user.ID})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

func lookupUser(user *models.User, err error) (*models.User, error) {
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *FeedService) populate(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	return populatePosts(ctx, s.users, posts)
}

// populatePosts resolves every referenced user with a single query. Users
// that no longer exist are rendered as null.
func populatePosts(ctx context.Context, userRepo repositories.UserRepository, posts []models.Post) ([]models.PostView, error) {
	seen := map[primitive.ObjectID]bool{}
	var ids []primitive.ObjectID
	collect := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		collect(p.User)
		for _, c := range p.Comments {
			collect(c.User)
		}
	}

	users, err := userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		users[i].Password = ""
		byID[users[i].ID] = &users[i]
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		comments := make([]models.CommentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, models.CommentView{
				ID:        c.ID,
				User:      byID[c.User],
				Text:      c.Text,
				Img:       c.Img,
				CreatedAt: c.CreatedAt,
			})
		}
		likes := p.Likes
		if likes == nil {
			likes = []primitive.ObjectID{}
		}
		views = append(views, models.PostView{
			ID:        p.ID,
			User:      byID[p.User],
			Text:      p.Text,
			Img:       p.Img,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return views, nil
}
