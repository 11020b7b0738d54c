package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/penpalsapp/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByAccountID(ctx context.Context, accountID uint, limit int64) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, accountID uint) (int64, error)
	MarkAsRead(ctx context.Context, id string, accountID uint) error
	DeleteNotification(ctx context.Context, id string, accountID uint) error
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

func (r *MongoNotificationRepository) GetByAccountID(ctx context.Context, accountID uint, limit int64) ([]models.Notification, error) {
	var notifications []models.Notification
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"account_id": accountID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, accountID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"account_id": accountID, "is_read": false})
}

func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, id string, accountID uint) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "account_id": accountID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoNotificationRepository) DeleteNotification(ctx context.Context, id string, accountID uint) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "account_id": accountID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
