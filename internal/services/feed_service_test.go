package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListAllNewestFirst(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")

	f.post(alice.ID, "oldest", 3*time.Hour)
	f.post(bob.ID, "newest", time.Minute)
	f.post(alice.ID, "middle", time.Hour)

	views, err := f.feed.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)

	for i := 1; i < len(views); i++ {
		assert.False(t, views[i].CreatedAt.After(views[i-1].CreatedAt), "posts must be sorted by createdAt descending")
	}
	assert.Equal(t, "newest", views[0].Text)
	require.NotNil(t, views[0].User)
	assert.Equal(t, "bob", views[0].User.Username)
	assert.Empty(t, views[0].User.Password)
}

func TestListAllEmpty(t *testing.T) {
	f := newFixture(t)

	views, err := f.feed.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestListAllPopulatesCommentAuthors(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")
	post := f.post(alice.ID, "hello", time.Minute)

	_, err := f.posts.Comment(context.Background(), bob.ID, post.ID.Hex(), models.CreateCommentRequest{Text: "nice"})
	require.NoError(t, err)

	views, err := f.feed.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Comments, 1)
	require.NotNil(t, views[0].Comments[0].User)
	assert.Equal(t, "bob", views[0].Comments[0].User.Username)
	assert.Empty(t, views[0].Comments[0].User.Password)
}

func TestListFollowing(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")
	carol := f.user("carol")
	me := f.store.AddUser(models.User{Username: "me", Following: []primitive.ObjectID{alice.ID, bob.ID}})

	f.post(alice.ID, "a1", 2*time.Hour)
	f.post(bob.ID, "b1", time.Hour)
	f.post(carol.ID, "c1", time.Minute)
	f.post(me.ID, "mine", time.Second)

	views, err := f.feed.ListFollowing(context.Background(), me.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "b1", views[0].Text)
	assert.Equal(t, "a1", views[1].Text)
}

func TestListFollowingUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.feed.ListFollowing(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListLiked(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")
	p1 := f.post(alice.ID, "p1", time.Hour)
	f.post(alice.ID, "p2", time.Minute)

	_, err := f.likes.Toggle(context.Background(), bob.ID, p1.ID.Hex())
	require.NoError(t, err)

	views, err := f.feed.ListLiked(context.Background(), bob.ID.Hex())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, p1.ID, views[0].ID)
	assert.Contains(t, views[0].Likes, bob.ID)
}

func TestListLikedErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.feed.ListLiked(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.feed.ListLiked(context.Background(), "not-an-id")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestListByUsername(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")
	f.post(alice.ID, "a-old", time.Hour)
	f.post(bob.ID, "b", time.Minute)
	f.post(alice.ID, "a-new", time.Second)

	views, err := f.feed.ListByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "a-new", views[0].Text)
	assert.Equal(t, "a-old", views[1].Text)

	_, err = f.feed.ListByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
