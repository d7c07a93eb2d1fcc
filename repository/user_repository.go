package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musicalchairs/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// mongoUserRepository implements UserRepository on MongoDB.
type mongoUserRepository struct {
	db *mongo.Database
}

// NewMongoUserRepository creates a new mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{db: db}
}

// CreateUser stores a new account. Returns ErrDuplicateUser if the
// username is taken; the unique index on username backs the precheck up
// against concurrent registrations.
func (r *mongoUserRepository) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	existing, err := r.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	user := &model.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := r.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to insert user %s: %w", username, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T for user", res.InsertedID)
	}
	user.ID = id
	return user, nil
}

// GetUserByUsername retrieves an account by its exact username. Lookups
// are case-sensitive.
func (r *mongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", username, err)
	}
	return user, nil
}
