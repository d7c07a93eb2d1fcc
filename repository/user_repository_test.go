package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new username passes the precheck and is inserted", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "MusicalChairs.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		user, err := repo.CreateUser(context.Background(), "tristan", "$2a$10$fakehash")
		require.NoError(mt, err)
		assert.Equal(mt, "tristan", user.Username)
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("taken username maps to ErrDuplicateUser", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "MusicalChairs.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "username", Value: "tristan"},
			{Key: "passwordHash", Value: "$2a$10$fakehash"},
		}))

		_, err := repo.CreateUser(context.Background(), "tristan", "$2a$10$otherhash")
		assert.ErrorIs(mt, err, ErrDuplicateUser)
	})
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown username maps to ErrNotFound", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "MusicalChairs.users", mtest.FirstBatch))

		_, err := repo.GetUserByUsername(context.Background(), "nobody")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
