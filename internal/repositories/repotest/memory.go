// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds posts, users and notifications in memory and implements
// PostRepository, UserRepository and NotificationRepository.
type Store struct {
	mu            sync.Mutex
	posts         []models.Post // insertion order is the natural order
	users         map[primitive.ObjectID]models.User
	notifications []models.Notification

	// Set to make the matching call fail.
	ErrCreatePost   error
	ErrAddComment   error
	ErrAddLikedPost error
}

var (
	_ repositories.PostRepository         = (*Store)(nil)
	_ repositories.UserRepository         = (*Store)(nil)
	_ repositories.NotificationRepository = (*Store)(nil)
)

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{users: map[primitive.ObjectID]models.User{}}
}

// AddUser stores a user, assigning an ID when missing
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return u
}

// User returns the stored user including its password
func (s *Store) User(id primitive.ObjectID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Post returns a copy of a stored post
func (s *Store) Post(id primitive.ObjectID) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	return clonePost(s.posts[i]), true
}

// PostCount returns the number of stored posts
func (s *Store) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// InsertPost stores a post as-is, for seeding fixtures with fixed timestamps
func (s *Store) InsertPost(p models.Post) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts = append(s.posts, clonePost(p))
	return p
}

// Notifications returns the notifications matching (from, to, type)
func (s *Store) Notifications(from, to primitive.ObjectID, typ models.NotificationType) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.From == from && n.To == to && n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrCreatePost != nil {
		return s.ErrCreatePost
	}
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.posts = append(s.posts, clonePost(*post))
	return nil
}

func (s *Store) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(objID)
	if i < 0 {
		return nil, fmt.Errorf("post %s: %w", id, repositories.ErrNotFound)
	}
	p := clonePost(s.posts[i])
	return &p, nil
}

func (s *Store) GetAllPosts(_ context.Context) ([]models.Post, error) {
	return s.filterPosts(func(models.Post) bool { return true }, true), nil
}

func (s *Store) GetPostsByUserIDs(_ context.Context, userIDs []primitive.ObjectID) ([]models.Post, error) {
	set := toSet(userIDs)
	return s.filterPosts(func(p models.Post) bool { return set[p.User] }, true), nil
}

func (s *Store) GetPostsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	set := toSet(ids)
	return s.filterPosts(func(p models.Post) bool { return set[p.ID] }, false), nil
}

func (s *Store) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(postID)
	if i < 0 {
		return fmt.Errorf("post %s: %w", postID.Hex(), repositories.ErrNotFound)
	}
	s.posts[i].Likes = addToSet(s.posts[i].Likes, userID)
	return nil
}

func (s *Store) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(postID)
	if i < 0 {
		return fmt.Errorf("post %s: %w", postID.Hex(), repositories.ErrNotFound)
	}
	s.posts[i].Likes = pull(s.posts[i].Likes, userID)
	return nil
}

func (s *Store) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrAddComment != nil {
		return nil, s.ErrAddComment
	}
	i := s.indexOf(postID)
	if i < 0 {
		return nil, fmt.Errorf("post %s: %w", postID.Hex(), repositories.ErrNotFound)
	}
	s.posts[i].Comments = append(s.posts[i].Comments, comment)
	p := clonePost(s.posts[i])
	return &p, nil
}

func (s *Store) DeletePost(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("post %s: %w", id.Hex(), repositories.ErrNotFound)
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}
	return s.findUser(func(u models.User) bool { return u.ID == objID })
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *Store) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.FirebaseUID != "" && u.FirebaseUID == firebaseUID })
}

func (s *Store) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			u.Password = ""
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Store) AddLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrAddLikedPost != nil {
		return s.ErrAddLikedPost
	}
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID.Hex(), repositories.ErrNotFound)
	}
	u.LikedPosts = addToSet(u.LikedPosts, postID)
	s.users[userID] = u
	return nil
}

func (s *Store) RemoveLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID.Hex(), repositories.ErrNotFound)
	}
	u.LikedPosts = pull(u.LikedPosts, postID)
	s.users[userID] = u
	return nil
}

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now().UTC()
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *Store) DeleteNotification(_ context.Context, from, to primitive.ObjectID, typ models.NotificationType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.From == from && n.To == to && n.Type == typ {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) indexOf(id primitive.ObjectID) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) filterPosts(keep func(models.Post) bool, newestFirst bool) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, clonePost(p))
		}
	}
	if newestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

func (s *Store) findUser(match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			u.Password = ""
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repositories.ErrNotFound)
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]primitive.ObjectID{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return p
}

func toSet(ids []primitive.ObjectID) map[primitive.ObjectID]bool {
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := []primitive.ObjectID{}
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
