package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	// DeleteNotification removes one notification matching (from, to, type).
	// A missing notification is not an error.
	DeleteNotification(ctx context.Context, from, to primitive.ObjectID, typ models.NotificationType) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *MongoNotificationRepository) DeleteNotification(ctx context.Context, from, to primitive.ObjectID, typ models.NotificationType) error {
	filter := bson.M{"from": from, "to": to, "type": typ}
	err := r.collection.FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository keeps notifications in PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now().UTC()
	record := &models.NotificationRecord{
		ID:        notification.ID.Hex(),
		FromID:    notification.From.Hex(),
		ToID:      notification.To.Hex(),
		Type:      string(notification.Type),
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *postgresNotificationRepository) DeleteNotification(ctx context.Context, from, to primitive.ObjectID, typ models.NotificationType) error {
	var record models.NotificationRecord
	err := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ? AND type = ?", from.Hex(), to.Hex(), string(typ)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.db.WithContext(ctx).Delete(&record).Error
}
