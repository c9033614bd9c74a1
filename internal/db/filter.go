package db

import (
	"go.mongodb.org/mongo-driver/bson"
)

// FilterBuilder builds the bson.M filters the user store sends to the
// collection. Conditions on the same field overwrite each other; combine
// them through And when both must hold.
type FilterBuilder struct {
	filter bson.M
}

// NewFilter creates a new FilterBuilder
func NewFilter() *FilterBuilder {
	return &FilterBuilder{filter: bson.M{}}
}

// Eq adds an equality condition
func (f *FilterBuilder) Eq(field string, value interface{}) *FilterBuilder {
	f.filter[field] = value
	return f
}

// Ne adds a not-equal condition
func (f *FilterBuilder) Ne(field string, value interface{}) *FilterBuilder {
	f.filter[field] = bson.M{"$ne": value}
	return f
}

// And requires every filter to match. No filters leaves the builder unchanged.
func (f *FilterBuilder) And(filters ...bson.M) *FilterBuilder {
	if len(filters) > 0 {
		f.filter["$and"] = filters
	}
	return f
}

// Or requires at least one filter to match. No filters leaves the builder
// unchanged.
func (f *FilterBuilder) Or(filters ...bson.M) *FilterBuilder {
	if len(filters) > 0 {
		f.filter["$or"] = filters
	}
	return f
}

// Build returns the final bson.M filter
func (f *FilterBuilder) Build() bson.M {
	return f.filter
}

// Empty returns an empty filter (matches all documents)
func Empty() bson.M {
	return bson.M{}
}
