package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParentKind names the entity a comment or like hangs off.
type ParentKind string

const (
	ParentVideo   ParentKind = "video"
	ParentComment ParentKind = "comment"
	ParentTweet   ParentKind = "tweet"
)

var (
	ErrParentCount   = errors.New("exactly one parent must be given")
	ErrParentKind    = errors.New("parent kind is not allowed here")
	ErrParentInvalid = errors.New("parent id is malformed")
)

// CommentParents are the kinds a comment may belong to.
var CommentParents = []ParentKind{ParentVideo, ParentTweet}

// LikeParents are the kinds a like may belong to.
var LikeParents = []ParentKind{ParentVideo, ParentComment, ParentTweet}

// Parent is the single entity a Comment or Like belongs to.
type Parent struct {
	Kind ParentKind
	ID   primitive.ObjectID
}

// ParentRefs carries raw ids as they arrive from a request. At most one of
// them may be set.
type ParentRefs struct {
	Video   string
	Comment string
	Tweet   string
}

// ResolveParent turns refs into a Parent, failing unless exactly one ref is
// set, its kind is in allowed, and it is a well formed ObjectID.
func ResolveParent(refs ParentRefs, allowed ...ParentKind) (Parent, error) {
	var (
		kind ParentKind
		raw  string
		n    int
	)
	for _, c := range []struct {
		kind ParentKind
		raw  string
	}{
		{ParentVideo, refs.Video},
		{ParentComment, refs.Comment},
		{ParentTweet, refs.Tweet},
	} {
		if c.raw != "" {
			kind, raw = c.kind, c.raw
			n++
		}
	}
	if n != 1 {
		return Parent{}, ErrParentCount
	}
	if !kindAllowed(kind, allowed) {
		return Parent{}, fmt.Errorf("%w: %s", ErrParentKind, kind)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return Parent{}, fmt.Errorf("%w: %s", ErrParentInvalid, kind)
	}
	return Parent{Kind: kind, ID: id}, nil
}

func kindAllowed(kind ParentKind, allowed []ParentKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// Field is the document field that stores the reference for this kind.
func (p Parent) Field() string {
	return string(p.Kind)
}

// Filter matches documents that reference this parent.
func (p Parent) Filter() bson.D {
	return bson.D{{Key: p.Field(), Value: p.ID}}
}

// setParent clears all reference fields and sets the one for p.
func setParent(p Parent, video, comment, tweet **primitive.ObjectID) {
	*video, *comment, *tweet = nil, nil, nil
	id := p.ID
	switch p.Kind {
	case ParentVideo:
		*video = &id
	case ParentComment:
		*comment = &id
	case ParentTweet:
		*tweet = &id
	}
}
