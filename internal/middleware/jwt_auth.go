package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/anonto42/nano-midea/feed/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLookup resolves the user a session token was issued for
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// JWTAuthMiddleware checks for a valid session JWT, taken from the "jwt"
// cookie or a Bearer Authorization header, and stores the ID of the user it
// belongs to. Tokens of users that no longer exist are rejected.
func JWTAuthMiddleware(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ""
			if cookie, err := c.Cookie(tokenCookie); err == nil {
				tokenString = cookie.Value
			}
			if tokenString == "" {
				tokenString = bearerToken(c)
			}
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: No Token Provided")
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid Token")
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid Token")
			}

			user, err := users.GetUserByID(c.Request().Context(), userID.Hex())
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "User not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			SetUserID(c, user.ID)
			return next(c)
		}
	}
}
