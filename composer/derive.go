package composer

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field is a computed value added to every row after joins have run. It only
// reads data already present on the row.
type Field struct {
	Name string
	Expr any
}

func ref(path string) string { return "$" + path }

// arrayOrEmpty treats a missing array as empty so $size and $in never fail.
func arrayOrEmpty(path string) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{ref(path), bson.A{}}}}
}

// Count is the number of elements in the array at path.
func Count(name, path string) Field {
	return Field{Name: name, Expr: bson.D{{Key: "$size", Value: arrayOrEmpty(path)}}}
}

// Membership is true when actor appears in the array at path, for example
// "likes.likedBy". An anonymous (zero) actor always yields false.
func Membership(name, path string, actor primitive.ObjectID) Field {
	if actor.IsZero() {
		return Field{Name: name, Expr: bson.D{{Key: "$literal", Value: false}}}
	}
	return Field{Name: name, Expr: bson.D{{Key: "$in", Value: bson.A{actor, arrayOrEmpty(path)}}}}
}

// First flattens the array at path to its first element, or null when empty.
func First(name, path string) Field {
	return Field{Name: name, Expr: bson.D{{Key: "$ifNull", Value: bson.A{
		bson.D{{Key: "$arrayElemAt", Value: bson.A{ref(path), 0}}},
		nil,
	}}}}
}

// Sum adds up a numeric field across the array at path.
func Sum(name, path string) Field {
	return Field{Name: name, Expr: bson.D{{Key: "$sum", Value: ref(path)}}}
}

// AddFields renders fields as a single $addFields stage.
func AddFields(fields ...Field) bson.D {
	set := make(bson.D, 0, len(fields))
	for _, f := range fields {
		set = append(set, bson.E{Key: f.Name, Value: f.Expr})
	}
	return bson.D{{Key: "$addFields", Value: set}}
}

// Project keeps only the given fields. _id is always kept by Mongo.
func Project(fields ...string) bson.D {
	keep := make(bson.D, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		keep = append(keep, bson.E{Key: f, Value: 1})
	}
	return bson.D{{Key: "$project", Value: keep}}
}
