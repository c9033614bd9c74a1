package db

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CaseInsensitiveCollation compares strings ignoring case and diacritics
// (ICU primary strength).
func CaseInsensitiveCollation() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 1}
}

// EnsureCollection makes sure the named collection exists with collation.
// With reset set, an existing collection is dropped and created again; this
// destroys all of its documents.
func EnsureCollection(ctx context.Context, db *mongo.Database, name string, collation *options.Collation, reset bool) error {
	if db == nil {
		return ErrNotConnected
	}

	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	exists := len(names) > 0

	if exists && reset {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop collection %s: %w", name, err)
		}
		exists = false
	}

	if exists {
		return nil
	}

	opts := options.CreateCollection()
	if collation != nil {
		opts.SetCollation(collation)
	}
	if err := db.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

// UniqueIndexName is the name EnsureUniqueIndexes gives the index on field.
func UniqueIndexName(field string) string {
	return field + "_unique"
}

// EnsureUniqueIndexes creates a single-field unique index per field. The
// indexes inherit the collection's default collation.
func EnsureUniqueIndexes(ctx context.Context, db *mongo.Database, name string, fields ...string) error {
	if db == nil {
		return ErrNotConnected
	}
	if len(fields) == 0 {
		return nil
	}

	models := make([]mongo.IndexModel, 0, len(fields))
	for _, field := range fields {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(UniqueIndexName(field)),
		})
	}

	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create unique indexes on %s: %w", name, err)
	}
	return nil
}

// DuplicateKeyIndex reports whether err is a duplicate-key write failure and,
// when the server named it, which of the candidate fields' unique index was
// violated.
func DuplicateKeyIndex(err error, fields ...string) (string, bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	msg := err.Error()
	for _, field := range fields {
		if strings.Contains(msg, UniqueIndexName(field)) {
			return field, true
		}
	}
	return "", true
}
