package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestFilterBuilder(t *testing.T) {
	t.Run("eq", func(t *testing.T) {
		got := NewFilter().Eq("username", "alex_w").Build()
		assert.Equal(t, bson.M{"username": "alex_w"}, got)
	})

	t.Run("or with ne", func(t *testing.T) {
		got := NewFilter().
			Ne("username", "alex_w").
			Or(bson.M{"username": "sam"}, bson.M{"email": "sam@example.com"}).
			Build()

		assert.Equal(t, bson.M{
			"username": bson.M{"$ne": "alex_w"},
			"$or":      []bson.M{{"username": "sam"}, {"email": "sam@example.com"}},
		}, got)
	})

	t.Run("and of ne and or", func(t *testing.T) {
		got := NewFilter().And(
			NewFilter().Ne("username", "alex_w").Build(),
			NewFilter().Or(bson.M{"username": "sam"}, bson.M{"email": "sam@example.com"}).Build(),
		).Build()

		assert.Equal(t, bson.M{"$and": []bson.M{
			{"username": bson.M{"$ne": "alex_w"}},
			{"$or": []bson.M{{"username": "sam"}, {"email": "sam@example.com"}}},
		}}, got)
	})

	t.Run("empty or is dropped", func(t *testing.T) {
		assert.Equal(t, bson.M{}, NewFilter().Or().And().Build())
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Empty())
	})
}

func TestUniqueIndexName(t *testing.T) {
	assert.Equal(t, "email_unique", UniqueIndexName("email"))
}

func TestDuplicateKeyIndex(t *testing.T) {
	_, ok := DuplicateKeyIndex(nil, "username")
	assert.False(t, ok)

	_, ok = DuplicateKeyIndex(assert.AnError, "username")
	assert.False(t, ok)
}

func TestDuplicateKeyIndexFromWriteException(t *testing.T) {
	err := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: userdir.users index: email_unique dup key: { email: "a@b.io" }`,
	}}}

	field, ok := DuplicateKeyIndex(err, "username", "email")
	assert.True(t, ok)
	assert.Equal(t, "email", field)
}
