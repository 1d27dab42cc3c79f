package composer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeSource returns canned rows and records what it was asked.
type fakeSource struct {
	rows  []interface{}
	total int64

	pipelines   []mongo.Pipeline
	countFilter interface{}
	aggErr      error
	countErr    error
}

func (f *fakeSource) Aggregate(ctx context.Context, pipeline interface{}, _ ...*options.AggregateOptions) (*mongo.Cursor, error) {
	f.pipelines = append(f.pipelines, pipeline.(mongo.Pipeline))
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	return mongo.NewCursorFromDocuments(f.rows, nil, nil)
}

func (f *fakeSource) CountDocuments(ctx context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	f.countFilter = filter
	return f.total, f.countErr
}

// stage returns the value of the first stage named op, and its index.
func stage(p mongo.Pipeline, op string) (interface{}, int) {
	for i, s := range p {
		if len(s) > 0 && s[0].Key == op {
			return s[0].Value, i
		}
	}
	return nil, -1
}

// stages returns the values of every stage named op.
func stages(p []bson.D, op string) []interface{} {
	var out []interface{}
	for _, s := range p {
		if len(s) > 0 && s[0].Key == op {
			out = append(out, s[0].Value)
		}
	}
	return out
}

func lookup(v interface{}) bson.D {
	return v.(bson.D)
}

func get(d bson.D, key string) interface{} {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}
