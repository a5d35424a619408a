package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gnanalytica/website/internal/core/domain"
)

const (
	signInCollection = "signin_events"

	// auditRetention bounds how long sign-in events are kept.
	auditRetention = 90 * 24 * time.Hour
)

// AuditRepository implements ports.AuditLog using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(signInCollection)}
}

// RecordSignIn appends one sign-in attempt to the signin_events collection.
func (r *AuditRepository) RecordSignIn(ctx context.Context, event domain.SignInEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	event.Timestamp = event.Timestamp.UTC()
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert signin event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index and the retention TTL index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}}},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(auditRetention.Seconds())),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
