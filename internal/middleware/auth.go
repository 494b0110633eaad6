package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	userIDKey   = "userID"
	tokenCookie = "jwt"
)

// SetUserID stores the authenticated user's ID in the echo context
func SetUserID(c echo.Context, id primitive.ObjectID) {
	c.Set(userIDKey, id)
}

// UserIDFromContext returns the authenticated user's ID
func UserIDFromContext(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get(userIDKey).(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(c echo.Context) string {
	parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
