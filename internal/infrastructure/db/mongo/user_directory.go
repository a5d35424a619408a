package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gnanalytica/website/internal/core/domain"
)

const usersCollection = "portal_users"

// UserDirectory implements ports.UserDirectory on a MongoDB collection.
type UserDirectory struct {
	coll *mongo.Collection
}

func NewUserDirectory(db *mongo.Database) *UserDirectory {
	return &UserDirectory{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           string   `bson:"_id"`
	Name         string   `bson:"name"`
	Email        string   `bson:"email"`
	PasswordHash string   `bson:"password_hash"`
	Role         string   `bson:"role"`
	Applications []string `bson:"applications"`
	CreatedAt    int64    `bson:"created_at"`
	UpdatedAt    int64    `bson:"updated_at"`
}

func (r *UserDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:           mu.ID,
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         domain.Role(mu.Role),
		Applications: mu.Applications,
	}, nil
}

// Seed upserts users by id. Profile fields and grants are overwritten; a
// password hash already stored is left alone so rotated credentials survive
// restarts.
func (r *UserDirectory) Seed(ctx context.Context, users []*domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	for _, u := range users {
		apps := u.Applications
		if apps == nil {
			apps = []string{}
		}
		update := bson.M{
			"$set": bson.M{
				"name":         u.Name,
				"email":        u.Email,
				"role":         string(u.Role),
				"applications": apps,
				"updated_at":   now,
			},
			"$setOnInsert": bson.M{
				"password_hash": u.PasswordHash,
				"created_at":    now,
			},
		}
		_, err := r.coll.UpdateOne(ctx, bson.M{"_id": u.ID}, update, options.Update().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("seed user %s: email already taken: %w", u.ID, err)
			}
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	return nil
}

// EnsureIndexes creates the unique email index.
func (r *UserDirectory) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
