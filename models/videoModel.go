package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	VideoFile   Asset              `bson:"videoFile" json:"videoFile"`
	Thumbnail   Asset              `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"` // seconds
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Assets lists every stored file that belongs to the video.
func (v *Video) Assets() []Asset {
	var out []Asset
	for _, a := range []Asset{v.VideoFile, v.Thumbnail} {
		if !a.IsZero() {
			out = append(out, a)
		}
	}
	return out
}
