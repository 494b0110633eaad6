package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a profile document. Accounts are created and edited by the
// account service; this service only maintains LikedPosts.
type User struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username    string               `json:"username" bson:"username"`
	FullName    string               `json:"fullName" bson:"fullName"`
	Email       string               `json:"email" bson:"email"`
	Password    string               `json:"-" bson:"password,omitempty"`
	FirebaseUID string               `json:"firebaseUid,omitempty" bson:"firebaseUid,omitempty"`
	Followers   []primitive.ObjectID `json:"followers" bson:"followers"`
	Following   []primitive.ObjectID `json:"following" bson:"following"`
	LikedPosts  []primitive.ObjectID `json:"likedPosts" bson:"likedPosts"`
	ProfileImg  string               `json:"profileImg" bson:"profileImg"`
	CoverImg    string               `json:"coverImg" bson:"coverImg"`
	Bio         string               `json:"bio" bson:"bio"`
	Link        string               `json:"link" bson:"link"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// JwtCustomClaims are the claims carried by the session token
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
