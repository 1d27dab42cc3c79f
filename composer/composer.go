// Package composer builds read models out of the normalized collections with
// aggregation pipelines: a match predicate, joins that embed related rows,
// computed fields and offset pagination.
package composer

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Source is the collection a view reads from. *mongo.Collection satisfies it.
type Source interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// View is a declarative read model over one base collection.
type View struct {
	// Match filters base rows. It is also the only thing counted when
	// paginating.
	Match bson.D
	// Sort orders base rows before pagination.
	Sort bson.D
	// Joins run in order after pagination.
	Joins []Join
	// Derive runs after all joins.
	Derive []Field
	// Stages are appended after Derive, before the final projection.
	Stages []bson.D
	// Project is the final field whitelist. Empty keeps every field.
	Project []string
}

// Pipeline renders the full pipeline. When page is non-nil, skip and limit
// are applied right after sorting so joins only run for the rows returned.
func (v View) Pipeline(page *Page) mongo.Pipeline {
	p := mongo.Pipeline{{{Key: "$match", Value: matchOrAll(v.Match)}}}
	if len(v.Sort) > 0 {
		p = append(p, bson.D{{Key: "$sort", Value: v.Sort}})
	}
	if page != nil {
		p = append(p,
			bson.D{{Key: "$skip", Value: page.Skip()}},
			bson.D{{Key: "$limit", Value: page.Size}},
		)
	}
	for _, j := range v.Joins {
		p = append(p, j.Stages()...)
	}
	if len(v.Derive) > 0 {
		p = append(p, AddFields(v.Derive...))
	}
	p = append(p, v.Stages...)
	if len(v.Project) > 0 {
		p = append(p, Project(v.Project...))
	}
	return p
}

func matchOrAll(m bson.D) bson.D {
	if m == nil {
		return bson.D{}
	}
	return m
}

// All runs v and decodes every row.
func All[T any](ctx context.Context, src Source, v View) ([]T, error) {
	return run[T](ctx, src, v.Pipeline(nil))
}

// One runs v and returns its first row, or mongo.ErrNoDocuments.
func One[T any](ctx context.Context, src Source, v View) (*T, error) {
	pipeline := append(v.Pipeline(nil), bson.D{{Key: "$limit", Value: 1}})
	rows, err := run[T](ctx, src, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &rows[0], nil
}

// Paginate runs one page of v and counts the rows matching v.Match. A page
// past the end returns no docs.
func Paginate[T any](ctx context.Context, src Source, v View, page Page) (Envelope[T], error) {
	total, err := src.CountDocuments(ctx, matchOrAll(v.Match))
	if err != nil {
		return Envelope[T]{}, fmt.Errorf("count: %w", err)
	}

	var docs []T
	if skip := page.Skip(); skip >= 0 && skip < total {
		docs, err = run[T](ctx, src, v.Pipeline(&page))
		if err != nil {
			return Envelope[T]{}, err
		}
	}
	return NewEnvelope(docs, total, page), nil
}

func run[T any](ctx context.Context, src Source, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := src.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []T{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return rows, nil
}
