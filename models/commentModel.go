package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to exactly one video or tweet. On disk the parent is the
// one reference field that is present.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Content   string              `bson:"content" json:"content"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	Owner     primitive.ObjectID  `bson:"owner" json:"owner"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewComment builds a comment under parent. Only video and tweet parents are
// accepted.
func NewComment(parent Parent, owner primitive.ObjectID, content string, now time.Time) (*Comment, error) {
	if !kindAllowed(parent.Kind, CommentParents) {
		return nil, ErrParentKind
	}
	c := &Comment{Content: content, Owner: owner, CreatedAt: now, UpdatedAt: now}
	var unused *primitive.ObjectID
	setParent(parent, &c.Video, &unused, &c.Tweet)
	return c, nil
}
