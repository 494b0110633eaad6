package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anonto42/nano-midea/feed/internal/middleware"
	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/services"
	"github.com/anonto42/nano-midea/feed/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	feed   *services.FeedService
	posts  *services.PostService
	likes  *services.LikeService
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feed *services.FeedService, posts *services.PostService, likes *services.LikeService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		feed:   feed,
		posts:  posts,
		likes:  likes,
		logger: logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/all", h.GetAllPosts)
	g.GET("/following", h.GetFollowingPosts)
	g.GET("/likes/:id", h.GetLikedPosts)
	g.GET("/user/:username", h.GetUserPosts)
	g.POST("/create", h.CreatePost)
	g.POST("/like/:id", h.LikeUnlikePost)
	g.POST("/comment/:id", h.CommentOnPost)
	g.DELETE("/:id", h.DeletePost)
}

// GetAllPosts returns every post, newest first
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.feed.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, "getAllPosts", err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetFollowingPosts returns posts by the users the caller follows
func (h *PostHandler) GetFollowingPosts(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	posts, err := h.feed.ListFollowing(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, "getFollowingPosts", err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetLikedPosts returns the posts liked by the user in the path
func (h *PostHandler) GetLikedPosts(c echo.Context) error {
	posts, err := h.feed.ListLiked(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "getLikedPosts", err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts returns the posts authored by :username
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.feed.ListByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.fail(c, "getUserPosts", err)
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := h.validate(c, &req, "Text or image is required for a Post"); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			return echo.NewHTTPError(http.StatusBadRequest, "Text or image is required for a Post")
		}
		return h.fail(c, "createPost", err)
	}
	return c.JSON(http.StatusCreated, post)
}

// LikeUnlikePost toggles the caller's like on a post
func (h *PostHandler) LikeUnlikePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	liked, err := h.likes.Toggle(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return h.fail(c, "likeUnlikePost", err)
	}

	message := "Post unliked successfully"
	if liked {
		message = "Post liked successfully"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// CommentOnPost appends a comment by the caller and returns the updated post
func (h *PostHandler) CommentOnPost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := h.validate(c, &req, "Text or image is required for a Comment"); err != nil {
		return err
	}

	post, err := h.posts.Comment(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			return echo.NewHTTPError(http.StatusBadRequest, "Text or image is required for a Comment")
		}
		return h.fail(c, "commentOnPost", err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return h.fail(c, "deletePost", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func (h *PostHandler) validate(c echo.Context, req interface{}, emptyMessage string) error {
	err := c.Validate(req)
	if err == nil {
		return nil
	}
	if validators.IsRequiredViolation(err) {
		return echo.NewHTTPError(http.StatusBadRequest, emptyMessage)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// fail maps domain errors to HTTP errors. Unknown errors are logged and
// surface as 500 with their message.
func (h *PostHandler) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrNotPostOwner):
		return echo.NewHTTPError(http.StatusUnauthorized, "You can't delete this post")
	}

	h.logger.ErrorContext(c.Request().Context(), "Error in "+op+" controller", slog.Any("error", err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func currentUser(c echo.Context) (primitive.ObjectID, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: No Token Provided")
	}
	return userID, nil
}
