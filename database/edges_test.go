package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

// memEdges stores edges by key and enforces uniqueness like the index does.
type memEdges struct {
	rows map[string]int

	// inserted holds the documents upserts created: filter fields plus
	// $setOnInsert fields, as Mongo builds them.
	inserted []bson.D

	// raceOnUpsert makes the next upsert lose to a concurrent insert.
	raceOnUpsert bool
	deleteErr    error
}

func newMemEdges() *memEdges { return &memEdges{rows: map[string]int{}} }

func keyOf(filter interface{}) string { return fmt.Sprint(filter) }

func (m *memEdges) DeleteOne(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	k := keyOf(filter)
	if m.rows[k] == 0 {
		return &mongo.DeleteResult{}, nil
	}
	m.rows[k]--
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (m *memEdges) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	k := keyOf(filter)
	if m.raceOnUpsert {
		m.raceOnUpsert = false
		m.rows[k] = 1
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	}
	upsert := len(opts) > 0 && opts[0].Upsert != nil && *opts[0].Upsert
	if m.rows[k] > 0 {
		return &mongo.UpdateResult{MatchedCount: 1}, nil
	}
	if !upsert {
		return &mongo.UpdateResult{}, nil
	}
	m.rows[k] = 1
	doc := append(bson.D{}, filter.(bson.D)...)
	for _, op := range update.(bson.D) {
		if op.Key == "$setOnInsert" {
			doc = append(doc, op.Value.(bson.D)...)
		}
	}
	m.inserted = append(m.inserted, doc)
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func (m *memEdges) count() int {
	n := 0
	for _, c := range m.rows {
		n += c
	}
	return n
}

func TestToggleEdgeAlternates(t *testing.T) {
	ctx := context.Background()
	edges := newMemEdges()
	key := likeKey(models.Parent{Kind: models.ParentVideo, ID: primitive.NewObjectID()}, primitive.NewObjectID())

	want := []bool{true, false, true}
	for i, w := range want {
		got, err := toggleEdge(ctx, edges, key, time.Now())
		require.NoError(t, err)
		assert.Equal(t, w, got, "toggle %d", i)
	}
	assert.Equal(t, 1, edges.count(), "like, unlike, like leaves exactly one row")
}

func TestToggleLikeStoresOneParent(t *testing.T) {
	edges := newMemEdges()
	comment, user := primitive.NewObjectID(), primitive.NewObjectID()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := toggleEdge(context.Background(), edges, likeKey(models.Parent{Kind: models.ParentComment, ID: comment}, user), now)
	require.NoError(t, err)
	require.Len(t, edges.inserted, 1)

	raw, err := bson.Marshal(edges.inserted[0])
	require.NoError(t, err)
	var like models.Like
	require.NoError(t, bson.Unmarshal(raw, &like))

	require.NotNil(t, like.Comment)
	assert.Equal(t, comment, *like.Comment)
	assert.Nil(t, like.Video)
	assert.Nil(t, like.Tweet)
	assert.Equal(t, user, like.LikedBy)
	assert.True(t, now.Equal(like.CreatedAt))
}

func TestToggleEdgeRaceCountsAsCreated(t *testing.T) {
	edges := newMemEdges()
	edges.raceOnUpsert = true
	key := bson.D{{Key: "subscriber", Value: primitive.NewObjectID()}, {Key: "channel", Value: primitive.NewObjectID()}}

	got, err := toggleEdge(context.Background(), edges, key, time.Now())
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, edges.count())
}

func TestToggleEdgeKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	edges := newMemEdges()
	user := primitive.NewObjectID()
	a := likeKey(models.Parent{Kind: models.ParentVideo, ID: primitive.NewObjectID()}, user)
	b := likeKey(models.Parent{Kind: models.ParentTweet, ID: primitive.NewObjectID()}, user)

	for _, k := range []bson.D{a, b} {
		liked, err := toggleEdge(ctx, edges, k, time.Now())
		require.NoError(t, err)
		assert.True(t, liked)
	}
	assert.Equal(t, 2, edges.count())
}

func TestToggleEdgeDeleteError(t *testing.T) {
	edges := newMemEdges()
	edges.deleteErr = errors.New("network")
	_, err := toggleEdge(context.Background(), edges, bson.D{{Key: "x", Value: 1}}, time.Now())
	assert.ErrorContains(t, err, "delete edge")
}
