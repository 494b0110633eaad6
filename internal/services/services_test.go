package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"github.com/anonto42/nano-midea/feed/internal/repositories/repotest"
	"github.com/anonto42/nano-midea/feed/pkg/media/mediatest"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	store *repotest.Store
	media *mediatest.Recorder
	feed  *FeedService
	posts *PostService
	likes *LikeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewStore()
	rec := &mediatest.Recorder{}
	logger := slog.New(slog.DiscardHandler)
	return &fixture{
		store: store,
		media: rec,
		feed:  NewFeedService(store, store),
		posts: NewPostService(store, store, rec, logger),
		likes: NewLikeService(store, store, store, repositories.SequentialTransactor{}),
	}
}

func (f *fixture) user(username string) models.User {
	return f.store.AddUser(models.User{Username: username, Password: "hashed-" + username})
}

func (f *fixture) post(owner primitive.ObjectID, text string, age time.Duration) models.Post {
	created := time.Now().UTC().Add(-age)
	return f.store.InsertPost(models.Post{
		User:      owner,
		Text:      text,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: created,
		UpdatedAt: created,
	})
}
